package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/money"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
)

// handleSell records a pending sale. Product and buyer are linked when they
// are known to the store.
func handleSell(ctx context.Context, env *Env, inv *Invocation) (*Reply, error) {
	server, err := inv.server()
	if err != nil {
		return nil, err
	}

	productName, _ := inv.Options.String("produto")
	valor, ok := inv.Options.Float("valor")
	if !ok || valor < 0 {
		return ephemeral("❌ Valor inválido."), nil
	}
	clientDiscordID, _ := inv.Options.ID("cliente")

	sale := &models.Sale{
		ServerID: server.ID,
		Price:    money.FromReais(valor),
		Status:   models.SaleStatusPending,
	}

	product, err := findProductByName(ctx, env, server.ID, productName)
	if err != nil {
		return nil, err
	}
	if product != nil {
		sale.ProductID = &product.ID
	}

	if clientDiscordID != "" {
		client, err := env.Repos.User.GetByDiscordID(ctx, clientDiscordID)
		switch {
		case err == nil:
			sale.ClientID = &client.ID
		case !errors.Is(err, repository.ErrRecordNotFound):
			return nil, err
		}
	}

	if err := env.Repos.Sale.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	env.invalidateStats(ctx)
	env.notify(realtime.EventNewSale, sale)

	return &Reply{
		Content: "✅ Venda registrada com sucesso!",
		Embeds: []*discordgo.MessageEmbed{{
			Title: "Detalhes da Venda",
			Color: colorBlurple,
			Fields: []*discordgo.MessageEmbedField{
				field("Produto", productName, true),
				field("Valor", money.Format(sale.Price), true),
				field("Cliente", mention(clientDiscordID), true),
				field("Status", saleStatusLabel(sale.Status), true),
				field("ID da Venda", fmt.Sprintf("#%d", sale.ID), true),
			},
			Timestamp: env.timestamp(),
		}},
	}, nil
}

// findProductByName matches active products of the server, ignoring case.
func findProductByName(ctx context.Context, env *Env, serverID uint, name string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}
	products, err := env.Repos.Product.ListByServer(ctx, serverID)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].IsActive && strings.EqualFold(products[i].Name, name) {
			return &products[i], nil
		}
	}
	return nil, nil
}
