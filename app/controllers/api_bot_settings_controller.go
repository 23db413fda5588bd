package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/VendaBot/app/repository"
)

// HandleGetBotSettings returns the server's settings record, or an empty
// blob when the server was never configured.
func (ac *APIController) HandleGetBotSettings(c *fiber.Ctx) error {
	serverID, ok := paramID(c, "serverId")
	if !ok {
		return badRequest(c, "invalid server id")
	}
	settings, err := ac.repos.BotSettings.Get(c.UserContext(), serverID)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return c.JSON(fiber.Map{"settings": fiber.Map{}})
	}
	if err != nil {
		return ac.handleError(c, "Bot settings", err)
	}
	return c.JSON(settings)
}

// HandleSaveBotSettings replaces the server's settings blob with the request body.
func (ac *APIController) HandleSaveBotSettings(c *fiber.Ctx) error {
	serverID, ok := paramID(c, "serverId")
	if !ok {
		return badRequest(c, "invalid server id")
	}
	blob := map[string]any{}
	if err := c.BodyParser(&blob); err != nil {
		return badRequest(c, "settings must be a JSON object")
	}
	settings, err := ac.repos.BotSettings.Upsert(c.UserContext(), serverID, blob)
	if err != nil {
		return ac.handleError(c, "Server", err)
	}
	return c.JSON(settings)
}
