package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/entitlements"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
)

// Invocation is a slash command call detached from the gateway session.
type Invocation struct {
	Command   string
	GuildID   string
	ChannelID string
	User      *discordgo.User
	Options   Options
	Resolved  *discordgo.ApplicationCommandInteractionDataResolved

	// Decision is filled by the dispatcher once the gate allowed the call.
	Decision entitlements.Decision
}

// ResolvedUser returns the user Discord resolved for an option value, or a
// stub carrying only the id.
func (inv *Invocation) ResolvedUser(id string) *discordgo.User {
	if inv.Resolved != nil {
		if u, ok := inv.Resolved.Users[id]; ok && u != nil {
			return u
		}
	}
	return &discordgo.User{ID: id, Username: id}
}

// Reply is what a handler wants sent back to the invoking user.
type Reply struct {
	Content    string
	Embeds     []*discordgo.MessageEmbed
	Components []discordgo.MessageComponent
	Ephemeral  bool
}

func ephemeral(content string) *Reply {
	return &Reply{Content: content, Ephemeral: true}
}

// InteractionResponse renders the reply as an immediate channel message.
func (r *Reply) InteractionResponse() *discordgo.InteractionResponse {
	data := &discordgo.InteractionResponseData{
		Content:    r.Content,
		Embeds:     r.Embeds,
		Components: r.Components,
	}
	if r.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}
}

// ChannelPoster sends a message to a channel other than the invoking one.
type ChannelPoster interface {
	PostMessage(channelID string, msg *discordgo.MessageSend) error
}

// StatsInvalidator drops cached dashboard aggregates after a sale mutation.
type StatsInvalidator interface {
	Invalidate(ctx context.Context)
}

// Env carries the dependencies command handlers use.
type Env struct {
	Repos    *repository.Repositories
	Notifier realtime.Notifier
	Poster   ChannelPoster
	Stats    StatsInvalidator
	Location *time.Location
	Now      func() time.Time
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Env) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return time.Local
}

func (e *Env) timestamp() string {
	return e.now().UTC().Format(time.RFC3339)
}
