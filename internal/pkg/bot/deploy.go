package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	fiberlog "github.com/gofiber/fiber/v2/log"
)

// Registrar overwrites the command set of an application. guildID "" means global.
type Registrar func(appID, guildID string, cmds []*discordgo.ApplicationCommand) error

// SessionRegistrar registers commands through the REST API of a session.
func SessionRegistrar(s *discordgo.Session) Registrar {
	return func(appID, guildID string, cmds []*discordgo.ApplicationCommand) error {
		_, err := s.ApplicationCommandBulkOverwrite(appID, guildID, cmds)
		return err
	}
}

// DeployCommands replaces the registered commands. A guild-scoped deploy is
// visible immediately; a global one can take up to an hour to propagate.
func DeployCommands(register Registrar, appID, guildID string, descriptors []Descriptor) error {
	if appID == "" {
		return fmt.Errorf("DISCORD_CLIENT_ID is not set")
	}
	fiberlog.Info("Started refreshing application (/) commands.")
	if err := register(appID, guildID, ApplicationCommands(descriptors)); err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	if guildID != "" {
		fiberlog.Infof("Successfully registered guild commands for guild %s", guildID)
	} else {
		fiberlog.Info("Successfully registered global application commands.")
	}
	return nil
}
