package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/VendaBot/app/repository"
)

// Component custom id actions. A custom id is "action:param1:param2...".
const (
	ActionBuy              = "buy"
	ActionInfo             = "info"
	ActionCancelSale       = "cancel_sale"
	ActionConfirmSale      = "confirm_sale"
	MenuProductCategory    = "product_category"
	MenuSubscriptionTier   = "subscription_tier"
	unknownComponentAction = "Ação desconhecida."
)

// CustomID joins an action and its parameters into a component custom id.
func CustomID(action string, params ...string) string {
	return strings.Join(append([]string{action}, params...), ":")
}

// ComponentRouter answers button clicks and select menu choices. Every
// action only acknowledges; none of them changes stored state.
type ComponentRouter struct {
	repos *repository.Repositories
}

func NewComponentRouter(repos *repository.Repositories) *ComponentRouter {
	return &ComponentRouter{repos: repos}
}

// Handle routes by the action prefix of customID. values holds the selected
// options of a select menu. guildID scopes lookups to the clicking server.
func (r *ComponentRouter) Handle(ctx context.Context, guildID, customID string, values []string) *Reply {
	parts := strings.Split(customID, ":")
	action, params := parts[0], parts[1:]
	param := ""
	if len(params) > 0 {
		param = params[0]
	}
	selected := ""
	if len(values) > 0 {
		selected = values[0]
	}

	switch action {
	case ActionBuy:
		return ephemeral(fmt.Sprintf("Iniciando a compra do produto ID #%s...", param))
	case ActionInfo:
		return r.productInfo(ctx, guildID, param)
	case ActionCancelSale:
		return ephemeral(fmt.Sprintf("Cancelando a venda ID #%s...", param))
	case ActionConfirmSale:
		return ephemeral(fmt.Sprintf("Confirmando a venda ID #%s...", param))
	case MenuProductCategory:
		return ephemeral(fmt.Sprintf("Mostrando produtos da categoria: %s", selected))
	case MenuSubscriptionTier:
		return ephemeral(fmt.Sprintf("Selecionado o plano: %s", selected))
	default:
		return ephemeral(unknownComponentAction)
	}
}

// productInfo shows a product of the clicking server. Anything else gets the
// plain acknowledgement.
func (r *ComponentRouter) productInfo(ctx context.Context, guildID, param string) *Reply {
	fallback := ephemeral(fmt.Sprintf("Mostrando informações do produto ID #%s...", param))

	id, err := strconv.ParseUint(param, 10, 64)
	if err != nil {
		return fallback
	}
	server, err := r.repos.Server.GetByDiscordID(ctx, guildID)
	if err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			fiberlog.Errorf("bot: loading server %s: %v", guildID, err)
		}
		return fallback
	}
	product, err := r.repos.Product.GetByID(ctx, uint(id))
	if err != nil {
		if !errors.Is(err, repository.ErrRecordNotFound) {
			fiberlog.Errorf("bot: loading product %d: %v", id, err)
		}
		return fallback
	}
	if product.ServerID != server.ID {
		return fallback
	}
	return &Reply{
		Embeds:    []*discordgo.MessageEmbed{productEmbed(product)},
		Ephemeral: true,
	}
}
