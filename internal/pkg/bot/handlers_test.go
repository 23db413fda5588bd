package bot

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/internal/pkg/entitlements"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
)

func TestSellLinksKnownProductAndClient(t *testing.T) {
	f := newFixture(t, entitlements.LevelPro)
	ctx := context.Background()

	product := &models.Product{Name: "Plano VIP", Price: 4990, ServerID: f.server.ID, IsActive: true}
	require.NoError(t, f.repos.Product.Create(ctx, product))
	discordID := "c-1"
	client := &models.User{Username: "cliente", DiscordUserID: &discordID}
	require.NoError(t, f.repos.User.Create(ctx, client))

	reply := f.invoke("vender", StringOpt("produto", "plano vip"), NumberOpt("valor", 49.9), UserOpt("cliente", "c-1"))
	require.NotNil(t, reply)
	require.Len(t, reply.Embeds, 1)
	assert.Equal(t, "R$ 49,90", fieldValue(reply.Embeds[0], "Valor"))
	assert.Equal(t, "<@c-1>", fieldValue(reply.Embeds[0], "Cliente"))
	assert.Equal(t, "Pendente", fieldValue(reply.Embeds[0], "Status"))

	sales, err := f.repos.Sale.List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(4990), sales[0].Price)
	assert.Equal(t, models.SaleStatusPending, sales[0].Status)
	require.NotNil(t, sales[0].ProductID)
	assert.Equal(t, product.ID, *sales[0].ProductID)
	require.NotNil(t, sales[0].ClientID)
	assert.Equal(t, client.ID, *sales[0].ClientID)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, realtime.EventNewSale, f.notifier.events[0].Type)
	assert.Equal(t, sales[0].ID, f.notifier.events[0].Data.(*models.Sale).ID)
	assert.Equal(t, 1, f.stats.invalidated)
}

func TestSellUnknownProductLeavesIDsEmpty(t *testing.T) {
	f := newFixture(t, entitlements.LevelPro)

	f.invoke("vender", StringOpt("produto", "Fantasma"), NumberOpt("valor", 10), UserOpt("cliente", "ninguem"))

	sales, err := f.repos.Sale.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Nil(t, sales[0].ProductID)
	assert.Nil(t, sales[0].ClientID)
	assert.Equal(t, int64(1000), sales[0].Price)
}

func TestReportAggregatesRange(t *testing.T) {
	f := newFixture(t, entitlements.LevelBasic)
	ctx := context.Background()

	paid := models.SaleStatusPaid
	for _, price := range []int64{10000, 45780, 90000} {
		s := &models.Sale{ServerID: f.server.ID, Price: price}
		require.NoError(t, f.repos.Sale.Create(ctx, s))
		if price == 90000 {
			_, err := f.repos.Sale.Update(ctx, s.ID, models.SalePatch{Status: &paid})
			require.NoError(t, err)
		}
	}
	// another server's sale is not counted
	require.NoError(t, f.repos.Sale.Create(ctx, &models.Sale{ServerID: 99, Price: 1}))

	reply := f.invoke("relatorio", StringOpt("inicio", "10/03/2025"), StringOpt("fim", "10/03/2025"), StringOpt("tipo", reportDetailed))
	require.NotNil(t, reply)
	require.Len(t, reply.Embeds, 1)
	embed := reply.Embeds[0]
	assert.Equal(t, "Relatório de Vendas Detalhado", embed.Title)
	assert.Equal(t, "Período: 10/03/2025 até 10/03/2025", embed.Description)
	assert.Equal(t, "3", fieldValue(embed, "Total de Vendas"))
	assert.Equal(t, "R$ 1.457,80", fieldValue(embed, "Valor Total"))
	assert.Equal(t, "R$ 485,93", fieldValue(embed, "Média por Venda"))
	assert.Equal(t, "1 Pagas\n2 Pendentes\n0 Canceladas", fieldValue(embed, "Status"))
	assert.Contains(t, fieldValue(embed, "Vendas"), "#1 • R$ 100,00 • Pendente • 10/03/2025")

	reply = f.invoke("relatorio", StringOpt("inicio", "01/03/2025"), StringOpt("fim", "09/03/2025"))
	assert.Equal(t, "0", fieldValue(reply.Embeds[0], "Total de Vendas"))
	assert.Equal(t, "R$ 0,00", fieldValue(reply.Embeds[0], "Média por Venda"))
	assert.Empty(t, fieldValue(reply.Embeds[0], "Vendas"))
}

func TestReportRejectsBadDates(t *testing.T) {
	f := newFixture(t, entitlements.LevelBasic)

	reply := f.invoke("relatorio", StringOpt("inicio", "2025-03-01"), StringOpt("fim", "10/03/2025"))
	assert.Equal(t, invalidDateMessage, reply.Content)
	assert.True(t, reply.Ephemeral)

	reply = f.invoke("relatorio", StringOpt("inicio", "10/03/2025"), StringOpt("fim", "01/03/2025"))
	assert.True(t, reply.Ephemeral)
	assert.Contains(t, reply.Content, "data de fim")
}

func TestConfigMergesSettings(t *testing.T) {
	f := newFixture(t, entitlements.LevelPremium)
	ctx := context.Background()

	reply := f.invoke("config", StringOpt("modulo", ModuleNotifications), BoolOpt("ativar", true))
	require.NotNil(t, reply)
	assert.Equal(t, "✅ Configuração atualizada com sucesso!", reply.Content)
	assert.Equal(t, "Notificações", fieldValue(reply.Embeds[0], "Módulo"))
	assert.Equal(t, colorGreen, reply.Embeds[0].Color)

	reply = f.invoke("config", StringOpt("modulo", ModuleAutoSales), BoolOpt("ativar", false))
	assert.Equal(t, colorRed, reply.Embeds[0].Color)

	settings, err := f.repos.BotSettings.Get(ctx, f.server.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{ModuleNotifications: true, ModuleAutoSales: false}, settings.Settings)
}

func TestProductLifecycle(t *testing.T) {
	f := newFixture(t, entitlements.LevelBasic)
	ctx := context.Background()

	reply := f.invoke("produto", SubcommandOpt("listar"))
	assert.Equal(t, "❌ Nenhum produto cadastrado.", reply.Content)

	reply = f.invoke("produto", SubcommandOpt("adicionar",
		StringOpt("nome", "Plano VIP"), NumberOpt("preco", 19.99), StringOpt("descricao", "Acesso mensal"), NumberOpt("estoque", 5)))
	require.Len(t, reply.Embeds, 1)
	assert.Equal(t, "#1", fieldValue(reply.Embeds[0], "ID"))
	assert.Equal(t, "R$ 19,99", fieldValue(reply.Embeds[0], "Preço"))
	assert.Equal(t, "5", fieldValue(reply.Embeds[0], "Estoque"))

	product, err := f.repos.Product.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1999), product.Price)
	assert.Equal(t, f.server.ID, product.ServerID)
	require.NotNil(t, product.Stock)
	assert.Equal(t, 5, *product.Stock)

	reply = f.invoke("produto", SubcommandOpt("remover", StringOpt("id", "1")))
	assert.Equal(t, "✅ Produto #1 removido com sucesso!", reply.Content)
	product, err = f.repos.Product.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, product.IsActive)

	reply = f.invoke("produto", SubcommandOpt("listar"))
	assert.Equal(t, "💰 R$ 19,99 (Inativo)", fieldValue(reply.Embeds[0], "#1 - Plano VIP"))
	assert.Equal(t, "Total: 1 produtos", reply.Embeds[0].Footer.Text)

	reply = f.invoke("produto", SubcommandOpt("remover", StringOpt("id", "42")))
	assert.Equal(t, "❌ Produto #42 não encontrado.", reply.Content)
	reply = f.invoke("produto", SubcommandOpt("remover", StringOpt("id", "abc")))
	assert.Equal(t, "❌ ID de produto inválido.", reply.Content)
}

func TestProductRemoveIsScopedToServer(t *testing.T) {
	f := newFixture(t, entitlements.LevelBasic)
	ctx := context.Background()

	foreign := &models.Product{Name: "Outro", Price: 100, ServerID: f.server.ID + 1, IsActive: true}
	require.NoError(t, f.repos.Product.Create(ctx, foreign))

	reply := f.invoke("produto", SubcommandOpt("remover", StringOpt("id", "1")))
	assert.Equal(t, "❌ Produto #1 não encontrado.", reply.Content)

	got, err := f.repos.Product.GetByID(ctx, foreign.ID)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
}

func TestClientCommands(t *testing.T) {
	f := newFixture(t, entitlements.LevelPro)
	ctx := context.Background()

	inv := func(sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *Reply {
		return f.dispatcher.Dispatch(ctx, &Invocation{
			Command: "cliente",
			GuildID: testGuild,
			Options: Options{SubcommandOpt(sub, append([]*discordgo.ApplicationCommandInteractionDataOption{UserOpt("usuario", "d-7")}, opts...)...)},
			Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
				Users: map[string]*discordgo.User{"d-7": {ID: "d-7", Username: "maria"}},
			},
		})
	}

	reply := inv("buscar")
	assert.Equal(t, notAClientMessage, reply.Content)

	reply = inv("adicionar", StringOpt("email", "maria@example.com"))
	assert.Equal(t, "✅ Cliente adicionado com sucesso!", reply.Content)
	assert.Equal(t, "maria@example.com", fieldValue(reply.Embeds[0], "Email"))
	assert.Equal(t, notInformed, fieldValue(reply.Embeds[0], "Telefone"))

	user, err := f.repos.User.GetByDiscordID(ctx, "d-7")
	require.NoError(t, err)
	assert.Equal(t, "maria", user.Username)
	assert.NotEmpty(t, user.Password)

	// adding twice keeps a single record
	inv("adicionar")
	users, err := f.repos.User.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	reply = inv("buscar")
	assert.Equal(t, "#1", fieldValue(reply.Embeds[0], "ID"))

	reply = inv("historico")
	assert.Equal(t, "Não há compras registradas para este cliente.", reply.Embeds[0].Description)

	for _, price := range []int64{1000, 2500} {
		require.NoError(t, f.repos.Sale.Create(ctx, &models.Sale{ServerID: f.server.ID, ClientID: &user.ID, Price: price}))
	}
	reply = inv("historico")
	embed := reply.Embeds[0]
	assert.Equal(t, "2", fieldValue(embed, "Total de Compras"))
	assert.Equal(t, "R$ 35,00", fieldValue(embed, "Valor Total"))
	assert.Equal(t, "Cliente #1 - maria", embed.Footer.Text)
	assert.Equal(t, "#2 - Produto avulso", embed.Fields[2].Name)
}

func TestPanelProductPostsButtons(t *testing.T) {
	f := newFixture(t, entitlements.LevelPro)
	ctx := context.Background()

	product := &models.Product{Name: "Plano VIP", Price: 4990, ServerID: f.server.ID, IsActive: true}
	require.NoError(t, f.repos.Product.Create(ctx, product))

	reply := f.invoke("painel", SubcommandOpt("produto", StringOpt("id", "1"), ChannelOpt("canal", "ch-9")))
	require.NotNil(t, reply)
	assert.Equal(t, "✅ Painel de produto criado com sucesso no canal <#ch-9>!", reply.Content)

	require.NotNil(t, f.poster.msg)
	assert.Equal(t, "ch-9", f.poster.channel)
	assert.Equal(t, "Plano VIP", f.poster.msg.Embeds[0].Title)
	row := f.poster.msg.Components[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 2)
	assert.Equal(t, "buy:1", row.Components[0].(discordgo.Button).CustomID)
	assert.Equal(t, "info:1", row.Components[1].(discordgo.Button).CustomID)
}

func TestPanelCategoryAcknowledges(t *testing.T) {
	f := newFixture(t, entitlements.LevelPro)

	reply := f.invoke("painel", SubcommandOpt("categoria", StringOpt("categoria", "Cursos"), ChannelOpt("canal", "ch-9")))
	assert.Equal(t, "✅ Painel de categoria \"Cursos\" criado com sucesso no canal <#ch-9>!", reply.Content)
	assert.Nil(t, f.poster.msg)
}

func TestReplyInteractionResponse(t *testing.T) {
	resp := ephemeral("oi").InteractionResponse()
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)

	resp = (&Reply{Content: "público"}).InteractionResponse()
	assert.Zero(t, resp.Data.Flags)
}

func TestOptionsAreLenient(t *testing.T) {
	opts := Options{StringOpt("s", "x"), NumberOpt("n", 3), BoolOpt("b", true), UserOpt("u", "123")}

	_, ok := opts.Bool("s")
	assert.False(t, ok)
	n, ok := opts.Int("n")
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)
	_, ok = opts.Float("missing")
	assert.False(t, ok)
	id, ok := opts.ID("u")
	assert.True(t, ok)
	assert.Equal(t, "123", id)
	sub, rest := opts.Subcommand()
	assert.Empty(t, sub)
	assert.Nil(t, rest)
}

func TestSummarizeAverageRounds(t *testing.T) {
	r := summarize([]models.Sale{{Price: 1}, {Price: 2}, {CreatedAt: time.Now(), Price: 2}})
	assert.Equal(t, int64(2), r.Average())
	assert.Equal(t, int64(0), SalesReport{}.Average())
}
