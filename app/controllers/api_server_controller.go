package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
)

// HandleListServers returns all servers, or those of one owner when ownerId is given.
func (ac *APIController) HandleListServers(c *fiber.Ctx) error {
	ownerID, set, ok := queryID(c, "ownerId")
	if !ok {
		return badRequest(c, "invalid ownerId")
	}
	var (
		servers []models.Server
		err     error
	)
	if set {
		servers, err = ac.repos.Server.ListByOwner(c.UserContext(), ownerID)
	} else {
		servers, err = ac.repos.Server.List(c.UserContext())
	}
	if err != nil {
		return ac.handleError(c, "Server", err)
	}
	return c.JSON(servers)
}

func (ac *APIController) HandleGetServer(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid server id")
	}
	server, err := ac.repos.Server.GetByID(c.UserContext(), id)
	if err != nil {
		return ac.handleError(c, "Server", err)
	}
	return c.JSON(server)
}

func (ac *APIController) HandleCreateServer(c *fiber.Ctx) error {
	var in models.ServerInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	server := in.ToServer()
	if err := ac.repos.Server.Create(c.UserContext(), server); err != nil {
		return ac.handleError(c, "Server", err)
	}
	return c.Status(fiber.StatusCreated).JSON(server)
}

// HandleUpdateServer applies a partial update and announces activation changes.
func (ac *APIController) HandleUpdateServer(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid server id")
	}
	var patch models.ServerPatch
	if ok, err := parseBody(c, &patch); !ok {
		return err
	}
	before, err := ac.repos.Server.GetByID(c.UserContext(), id)
	if err != nil {
		return ac.handleError(c, "Server", err)
	}
	server, err := ac.repos.Server.Update(c.UserContext(), id, patch)
	if err != nil {
		return ac.handleError(c, "Server", err)
	}
	if before.IsActive != server.IsActive {
		ac.broadcast(realtime.EventServerStatusChange, server)
		ac.invalidateStats(c.UserContext())
	}
	return c.JSON(server)
}
