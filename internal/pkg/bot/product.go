package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/money"
)

// Discord rejects embeds with more than 25 fields.
const maxEmbedFields = 25

func handleProduct(ctx context.Context, env *Env, inv *Invocation) (*Reply, error) {
	server, err := inv.server()
	if err != nil {
		return nil, err
	}

	sub, opts := inv.Options.Subcommand()
	switch sub {
	case "adicionar":
		return addProduct(ctx, env, server, opts)
	case "listar":
		return listProducts(ctx, env, server)
	case "remover":
		return removeProduct(ctx, env, server, opts)
	default:
		return ephemeral(unknownComponentAction), nil
	}
}

func addProduct(ctx context.Context, env *Env, server *models.Server, opts Options) (*Reply, error) {
	nome, _ := opts.String("nome")
	nome = strings.TrimSpace(nome)
	if nome == "" {
		return ephemeral("❌ Informe o nome do produto."), nil
	}
	preco, ok := opts.Float("preco")
	if !ok || preco < 0 {
		return ephemeral("❌ Preço inválido."), nil
	}
	descricao, _ := opts.String("descricao")

	product := &models.Product{
		Name:     nome,
		Price:    money.FromReais(preco),
		ServerID: server.ID,
		IsActive: true,
	}
	if descricao != "" {
		product.Description = &descricao
	}
	stockLabel := "Ilimitado"
	if estoque, ok := opts.Int("estoque"); ok && estoque > 0 {
		stock := int(estoque)
		product.Stock = &stock
		stockLabel = strconv.Itoa(stock)
	}

	if err := env.Repos.Product.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return &Reply{
		Content: "✅ Produto adicionado com sucesso!",
		Embeds: []*discordgo.MessageEmbed{{
			Title: "Novo Produto",
			Color: colorGreen,
			Fields: []*discordgo.MessageEmbedField{
				field("ID", fmt.Sprintf("#%d", product.ID), true),
				field("Nome", product.Name, true),
				field("Preço", money.Format(product.Price), true),
				field("Descrição", descricao, false),
				field("Estoque", stockLabel, true),
			},
			Timestamp: env.timestamp(),
		}},
	}, nil
}

func listProducts(ctx context.Context, env *Env, server *models.Server) (*Reply, error) {
	products, err := env.Repos.Product.ListByServer(ctx, server.ID)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return &Reply{Content: "❌ Nenhum produto cadastrado."}, nil
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(products))
	for _, p := range products {
		if len(fields) == maxEmbedFields {
			break
		}
		value := "💰 " + money.Format(p.Price)
		if !p.IsActive {
			value += " (Inativo)"
		}
		fields = append(fields, field(fmt.Sprintf("#%d - %s", p.ID, p.Name), value, false))
	}

	return &Reply{
		Embeds: []*discordgo.MessageEmbed{{
			Title:     "Lista de Produtos",
			Color:     colorBlurple,
			Fields:    fields,
			Timestamp: env.timestamp(),
			Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Total: %d produtos", len(products))},
		}},
	}, nil
}

// removeProduct deactivates the product; sales keep pointing at it.
func removeProduct(ctx context.Context, env *Env, server *models.Server, opts Options) (*Reply, error) {
	raw, _ := opts.String("id")
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")

	product, reply, err := serverProduct(ctx, env, server, raw)
	if reply != nil || err != nil {
		return reply, err
	}

	inactive := false
	if _, err := env.Repos.Product.Update(ctx, product.ID, models.ProductPatch{IsActive: &inactive}); err != nil {
		return nil, err
	}
	return &Reply{Content: fmt.Sprintf("✅ Produto #%d removido com sucesso!", product.ID)}, nil
}

// serverProduct loads a product by the raw id typed by the user and checks it
// belongs to the invoking server. A non-nil reply is the message to show
// instead.
func serverProduct(ctx context.Context, env *Env, server *models.Server, raw string) (*models.Product, *Reply, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, ephemeral("❌ ID de produto inválido."), nil
	}
	notFound := ephemeral(fmt.Sprintf("❌ Produto #%d não encontrado.", id))

	product, err := env.Repos.Product.GetByID(ctx, uint(id))
	if errors.Is(err, repository.ErrRecordNotFound) {
		return nil, notFound, nil
	}
	if err != nil {
		return nil, nil, err
	}
	if product.ServerID != server.ID {
		return nil, notFound, nil
	}
	return product, nil, nil
}
