package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/VendaBot/app/models"
)

const defaultPopularLimit = 10

func (ac *APIController) HandleListCommands(c *fiber.Ctx) error {
	commands, err := ac.repos.Command.List(c.UserContext())
	if err != nil {
		return ac.handleError(c, "Command", err)
	}
	return c.JSON(commands)
}

// HandlePopularCommands returns the most used commands.
func (ac *APIController) HandlePopularCommands(c *fiber.Ctx) error {
	limit, ok := queryLimit(c, defaultPopularLimit)
	if !ok {
		return badRequest(c, "invalid limit")
	}
	commands, err := ac.repos.Command.Popular(c.UserContext(), limit)
	if err != nil {
		return ac.handleError(c, "Command", err)
	}
	return c.JSON(commands)
}

func (ac *APIController) HandleGetCommand(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid command id")
	}
	command, err := ac.repos.Command.GetByID(c.UserContext(), id)
	if err != nil {
		return ac.handleError(c, "Command", err)
	}
	return c.JSON(command)
}

func (ac *APIController) HandleCreateCommand(c *fiber.Ctx) error {
	var in models.CommandInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	command := in.ToCommand()
	if err := ac.repos.Command.Create(c.UserContext(), command); err != nil {
		return ac.handleError(c, "Command", err)
	}
	return c.Status(fiber.StatusCreated).JSON(command)
}

func (ac *APIController) HandleUpdateCommand(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid command id")
	}
	var patch models.CommandPatch
	if ok, err := parseBody(c, &patch); !ok {
		return err
	}
	command, err := ac.repos.Command.Update(c.UserContext(), id, patch)
	if err != nil {
		return ac.handleError(c, "Command", err)
	}
	return c.JSON(command)
}
