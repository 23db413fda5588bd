package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"

	"github.com/ManuelReschke/VendaBot/internal/pkg/bot"
	"github.com/ManuelReschke/VendaBot/internal/pkg/env"
)

// connectFunc opens whatever is needed to register commands with the token.
type connectFunc func(token string) (bot.Registrar, error)

func main() {
	env.SetupEnvFile()

	if err := newRootCmd(discordRegistrar).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func discordRegistrar(token string) (bot.Registrar, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return bot.SessionRegistrar(session), nil
}

func newRootCmd(connect connectFunc) *cobra.Command {
	var (
		token    string
		clientID string
		guildID  string
		global   bool
		dryRun   bool
	)

	cmd := &cobra.Command{
		Use:   "deploy-commands",
		Short: "Register the VendaBot slash commands with Discord",
		Long: `Overwrites the application's slash commands with the bot's command registry.
Commands are registered for one guild when a guild id is configured, which makes
them available immediately. Use --global to register them for every guild.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			descriptors := bot.Registry()
			if global {
				guildID = ""
			}

			if dryRun {
				for _, cmdDef := range bot.ApplicationCommands(descriptors) {
					fmt.Fprintf(cmd.OutOrStdout(), "/%s - %s\n", cmdDef.Name, cmdDef.Description)
				}
				return nil
			}

			if token == "" {
				return fmt.Errorf("DISCORD_BOT_TOKEN is not set")
			}
			register, err := connect(token)
			if err != nil {
				return err
			}

			log.Printf("Deploying %d commands", len(descriptors))
			return bot.DeployCommands(register, clientID, guildID, descriptors)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&token, "token", env.GetEnv("DISCORD_BOT_TOKEN", ""), "bot token (default from DISCORD_BOT_TOKEN)")
	flags.StringVar(&clientID, "client-id", env.GetEnv("DISCORD_CLIENT_ID", ""), "application id (default from DISCORD_CLIENT_ID)")
	flags.StringVar(&guildID, "guild-id", env.GetEnv("DISCORD_GUILD_ID", ""), "guild to register in (default from DISCORD_GUILD_ID)")
	flags.BoolVar(&global, "global", false, "register globally even when a guild id is configured")
	flags.BoolVar(&dryRun, "dry-run", false, "print the commands without registering them")

	return cmd
}
