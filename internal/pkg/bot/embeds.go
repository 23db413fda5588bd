package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/VendaBot/app/models"
)

const (
	colorBlurple = 0x7289DA
	colorBlue    = 0x3498DB
	colorGreen   = 0x43B581
	colorRed     = 0xF04747
)

var errNoServer = errors.New("invocation without resolved server")

func field(name, value string, inline bool) *discordgo.MessageEmbedField {
	if value == "" {
		value = "-"
	}
	return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: inline}
}

func mention(userID string) string {
	return fmt.Sprintf("<@%s>", userID)
}

func channelMention(channelID string) string {
	return fmt.Sprintf("<#%s>", channelID)
}

func saleStatusLabel(status string) string {
	switch status {
	case models.SaleStatusPaid:
		return "Paga"
	case models.SaleStatusCancelled:
		return "Cancelada"
	default:
		return "Pendente"
	}
}

// server returns the server the gate resolved for this invocation.
func (inv *Invocation) server() (*models.Server, error) {
	if inv.Decision.Server == nil {
		return nil, errNoServer
	}
	return inv.Decision.Server, nil
}

func (e *Env) notify(eventType string, data any) {
	if e.Notifier == nil {
		return
	}
	if err := e.Notifier.Broadcast(eventType, data); err != nil {
		fiberlog.Warnf("bot: broadcasting %s: %v", eventType, err)
	}
}

func (e *Env) invalidateStats(ctx context.Context) {
	if e.Stats != nil {
		e.Stats.Invalidate(ctx)
	}
}
