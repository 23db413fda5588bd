package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/internal/pkg/money"
)

var errNoPoster = errors.New("no channel poster configured")

func handlePanel(ctx context.Context, env *Env, inv *Invocation) (*Reply, error) {
	server, err := inv.server()
	if err != nil {
		return nil, err
	}

	sub, opts := inv.Options.Subcommand()
	channelID, ok := opts.ID("canal")
	if !ok {
		return ephemeral("❌ Informe o canal."), nil
	}

	switch sub {
	case "produto":
		raw, _ := opts.String("id")
		product, reply, err := serverProduct(ctx, env, server, strings.TrimPrefix(strings.TrimSpace(raw), "#"))
		if reply != nil || err != nil {
			return reply, err
		}
		if !product.IsActive {
			return ephemeral(fmt.Sprintf("❌ Produto #%d está inativo.", product.ID)), nil
		}
		if env.Poster == nil {
			return nil, errNoPoster
		}
		if err := env.Poster.PostMessage(channelID, productPanel(product)); err != nil {
			return nil, fmt.Errorf("post panel to %s: %w", channelID, err)
		}
		return &Reply{Content: fmt.Sprintf("✅ Painel de produto criado com sucesso no canal %s!", channelMention(channelID))}, nil
	case "categoria":
		// products carry no category, so there is nothing to post
		categoria, _ := opts.String("categoria")
		return &Reply{Content: fmt.Sprintf("✅ Painel de categoria \"%s\" criado com sucesso no canal %s!", categoria, channelMention(channelID))}, nil
	default:
		return ephemeral(unknownComponentAction), nil
	}
}

func productEmbed(p *models.Product) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: p.Name,
		Color: colorBlurple,
		Fields: []*discordgo.MessageEmbedField{
			field("Preço", money.Format(p.Price), true),
		},
	}
	if p.Description != nil {
		embed.Description = *p.Description
	}
	if p.Stock != nil {
		embed.Fields = append(embed.Fields, field("Estoque", strconv.Itoa(*p.Stock), true))
	}
	if p.ImageURL != nil {
		embed.Image = &discordgo.MessageEmbedImage{URL: *p.ImageURL}
	}
	return embed
}

// productPanel is the message with buy and info buttons posted by /painel produto.
func productPanel(p *models.Product) *discordgo.MessageSend {
	id := strconv.FormatUint(uint64(p.ID), 10)
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{productEmbed(p)},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.Button{Label: "Comprar", Style: discordgo.SuccessButton, CustomID: CustomID(ActionBuy, id)},
				discordgo.Button{Label: "Informações", Style: discordgo.SecondaryButton, CustomID: CustomID(ActionInfo, id)},
			}},
		},
	}
}
