package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// HandleListUsers returns every user.
func (ac *APIController) HandleListUsers(c *fiber.Ctx) error {
	users, err := ac.repos.User.List(c.UserContext())
	if err != nil {
		return ac.handleError(c, "User", err)
	}
	return c.JSON(users)
}

func (ac *APIController) HandleGetUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	user, err := ac.repos.User.GetByID(c.UserContext(), id)
	if err != nil {
		return ac.handleError(c, "User", err)
	}
	return c.JSON(user)
}

// HandleCreateUser validates the input, hashes the password and stores the user.
func (ac *APIController) HandleCreateUser(c *fiber.Ctx) error {
	var in models.UserInput
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	user, err := in.ToUser()
	if err != nil {
		return ac.handleError(c, "User", err)
	}
	if err := ac.repos.User.Create(c.UserContext(), user); err != nil {
		return ac.handleError(c, "User", err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (ac *APIController) HandleUpdateUser(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid user id")
	}
	var patch models.UserPatch
	if ok, err := parseBody(c, &patch); !ok {
		return err
	}
	if err := patch.HashPasswordField(); err != nil {
		return ac.handleError(c, "User", err)
	}
	user, err := ac.repos.User.Update(c.UserContext(), id, patch)
	if err != nil {
		return ac.handleError(c, "User", err)
	}
	return c.JSON(user)
}
