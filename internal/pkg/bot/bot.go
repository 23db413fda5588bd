package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
)

// ErrNoToken is returned by New when no bot token is configured.
var ErrNoToken = errors.New("DISCORD_BOT_TOKEN is not set")

const interactionTimeout = 3 * time.Second

const intents = discordgo.IntentsGuilds |
	discordgo.IntentsGuildMessages |
	discordgo.IntentsGuildMembers |
	discordgo.IntentMessageContent

// Bot owns the gateway session and forwards events to the dispatcher.
type Bot struct {
	session    *discordgo.Session
	dispatcher *Dispatcher
	components *ComponentRouter
	guilds     *GuildSync
}

// Deps are the collaborators a Bot needs besides its token.
type Deps struct {
	Env        *Env
	Dispatcher *Dispatcher
	Components *ComponentRouter
}

// New builds a session and wires the handlers. The connection is opened by Start.
func New(token string, deps Deps) (*Bot, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = intents

	b := &Bot{
		session:    session,
		dispatcher: deps.Dispatcher,
		components: deps.Components,
		guilds:     NewGuildSync(deps.Env.Repos, deps.Env.Notifier),
	}
	if deps.Env.Poster == nil {
		deps.Env.Poster = SessionPoster{Session: session}
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onGuildCreate)
	session.AddHandler(b.onGuildDelete)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Session exposes the underlying discordgo session.
func (b *Bot) Session() *discordgo.Session {
	return b.session
}

func (b *Bot) Start() error {
	return b.session.Open()
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	fiberlog.Infof("Discord bot ready! Logged in as %s", r.User.String())
	fiberlog.Infof("Bot is in %d server(s)", len(r.Guilds))
}

// GuildCreate fires for every guild after Ready and whenever the bot joins one.
func (b *Bot) onGuildCreate(_ *discordgo.Session, g *discordgo.GuildCreate) {
	if g.Guild == nil || g.Unavailable {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()
	b.guilds.Register(ctx, GuildInfo{ID: g.ID, Name: g.Name, IconURL: g.IconURL("")})
}

func (b *Bot) onGuildDelete(_ *discordgo.Session, g *discordgo.GuildDelete) {
	// Unavailable means an outage, not a removal
	if g.Guild == nil || g.Unavailable {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()
	b.guilds.Deactivate(ctx, g.ID)
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	var reply *Reply
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		reply = b.dispatcher.Dispatch(ctx, invocationFrom(i))
	case discordgo.InteractionMessageComponent:
		data := i.MessageComponentData()
		reply = b.components.Handle(ctx, i.GuildID, data.CustomID, data.Values)
	default:
		return
	}
	if reply == nil {
		return
	}
	if err := s.InteractionRespond(i.Interaction, reply.InteractionResponse()); err != nil {
		fiberlog.Errorf("bot: responding to interaction %s: %v", i.ID, err)
	}
}

func invocationFrom(i *discordgo.InteractionCreate) *Invocation {
	data := i.ApplicationCommandData()
	inv := &Invocation{
		Command:   data.Name,
		GuildID:   i.GuildID,
		ChannelID: i.ChannelID,
		Options:   Options(data.Options),
		Resolved:  data.Resolved,
	}
	switch {
	case i.Member != nil && i.Member.User != nil:
		inv.User = i.Member.User
	case i.User != nil:
		inv.User = i.User
	}
	return inv
}

// SessionPoster posts messages through a live session.
type SessionPoster struct {
	Session *discordgo.Session
}

func (p SessionPoster) PostMessage(channelID string, msg *discordgo.MessageSend) error {
	_, err := p.Session.ChannelMessageSendComplex(channelID, msg)
	return err
}

// GuildInfo is the part of a Discord guild stored as a Server.
type GuildInfo struct {
	ID      string
	Name    string
	IconURL string
}

// GuildSync mirrors guild membership into the server table.
type GuildSync struct {
	repos    *repository.Repositories
	notifier realtime.Notifier
}

func NewGuildSync(repos *repository.Repositories, notifier realtime.Notifier) *GuildSync {
	return &GuildSync{repos: repos, notifier: notifier}
}

// Register creates the server on first sight and reactivates it when the bot
// rejoins. Known active servers are left alone.
func (g *GuildSync) Register(ctx context.Context, guild GuildInfo) {
	existing, err := g.repos.Server.GetByDiscordID(ctx, guild.ID)
	switch {
	case err == nil:
		if existing.IsActive {
			return
		}
		active := true
		updated, err := g.repos.Server.Update(ctx, existing.ID, models.ServerPatch{IsActive: &active})
		if err != nil {
			fiberlog.Errorf("Failed to reactivate guild %s (%s): %v", guild.Name, guild.ID, err)
			return
		}
		g.broadcast(updated)
		return
	case !errors.Is(err, repository.ErrRecordNotFound):
		fiberlog.Errorf("Failed to look up guild %s: %v", guild.ID, err)
		return
	}

	server := &models.Server{
		DiscordServerID: guild.ID,
		Name:            guild.Name,
		Prefix:          models.DefaultPrefix,
		IsActive:        true,
	}
	if guild.IconURL != "" {
		icon := guild.IconURL
		server.IconURL = &icon
	}
	if err := g.repos.Server.Create(ctx, server); err != nil {
		fiberlog.Errorf("Failed to register guild %s: %v", guild.Name, err)
		return
	}
	fiberlog.Infof("Registered new guild: %s (%s)", guild.Name, guild.ID)
	g.broadcast(server)
}

// Deactivate marks the server of a guild the bot left as inactive.
func (g *GuildSync) Deactivate(ctx context.Context, guildID string) {
	existing, err := g.repos.Server.GetByDiscordID(ctx, guildID)
	if err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			fiberlog.Errorf("Failed to look up guild %s: %v", guildID, err)
		}
		return
	}
	if !existing.IsActive {
		return
	}
	inactive := false
	updated, err := g.repos.Server.Update(ctx, existing.ID, models.ServerPatch{IsActive: &inactive})
	if err != nil {
		fiberlog.Errorf("Failed to deactivate guild %s: %v", guildID, err)
		return
	}
	fiberlog.Infof("Left guild %s, server #%d deactivated", guildID, updated.ID)
	g.broadcast(updated)
}

func (g *GuildSync) broadcast(server *models.Server) {
	if g.notifier == nil {
		return
	}
	if err := g.notifier.Broadcast(realtime.EventServerStatusChange, server); err != nil {
		fiberlog.Warnf("bot: broadcasting server status: %v", err)
	}
}
