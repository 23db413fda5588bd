package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/internal/pkg/entitlements"
)

// HandlerFunc runs a command after the gate allowed it.
type HandlerFunc func(ctx context.Context, env *Env, inv *Invocation) (*Reply, error)

// Descriptor declares one slash command.
type Descriptor struct {
	Name        string
	Description string
	Usage       string
	Category    string
	Icon        string
	MinLevel    int
	Options     []*discordgo.ApplicationCommandOption
	Handler     HandlerFunc
}

// ApplicationCommand renders the registration payload sent to Discord.
func (d Descriptor) ApplicationCommand() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        d.Name,
		Description: d.Description,
		Options:     d.Options,
	}
}

// Command builds the metadata record seeded into storage.
func (d Descriptor) Command() models.Command {
	usage := d.Usage
	category := d.Category
	icon := d.Icon
	if icon == "" {
		icon = models.DefaultCommandIcon
	}
	return models.Command{
		Name:                 d.Name,
		Description:          d.Description,
		Usage:                &usage,
		Category:             &category,
		MinSubscriptionLevel: d.MinLevel,
		IsActive:             true,
		Icon:                 icon,
	}
}

// SeedCommands returns the storage records for every registered command.
func SeedCommands() []models.Command {
	descriptors := Registry()
	out := make([]models.Command, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d.Command())
	}
	return out
}

// ApplicationCommands returns the registration payloads for every command.
func ApplicationCommands(descriptors []Descriptor) []*discordgo.ApplicationCommand {
	out := make([]*discordgo.ApplicationCommand, 0, len(descriptors))
	for _, d := range descriptors {
		out = append(out, d.ApplicationCommand())
	}
	return out
}

// Config module keys accepted by /config.
const (
	ModuleAutoSales     = "vendas_auto"
	ModuleNotifications = "notificacoes"
	ModuleReports       = "relatorios"
	ModuleIntegrations  = "integracoes"
)

var moduleNames = map[string]string{
	ModuleAutoSales:     "Vendas Automáticas",
	ModuleNotifications: "Notificações",
	ModuleReports:       "Relatórios",
	ModuleIntegrations:  "Integrações",
}

// Registry returns the command set in registration order.
func Registry() []Descriptor {
	return []Descriptor{
		{
			Name:        "vender",
			Description: "Processa uma nova venda com pagamento",
			Usage:       "/vender produto:string valor:number cliente:user",
			Category:    "vendas",
			Icon:        "fas fa-shopping-cart",
			MinLevel:    entitlements.LevelPro,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("produto", "Nome do produto", true),
				numberOption("valor", "Valor do produto em reais", true),
				userOption("cliente", "Cliente que está comprando", true),
			},
			Handler: handleSell,
		},
		{
			Name:        "relatorio",
			Description: "Gera relatório de vendas por período",
			Usage:       "/relatorio inicio:date fim:date [tipo:string]",
			Category:    "relatorios",
			Icon:        "fas fa-chart-line",
			MinLevel:    entitlements.LevelBasic,
			Options: []*discordgo.ApplicationCommandOption{
				stringOption("inicio", "Data de início (DD/MM/YYYY)", true),
				stringOption("fim", "Data de fim (DD/MM/YYYY)", true),
				withChoices(stringOption("tipo", "Tipo de relatório", false),
					choice("Resumido", reportSummary),
					choice("Detalhado", reportDetailed),
				),
			},
			Handler: handleReport,
		},
		{
			Name:        "config",
			Description: "Configuração rápida de automação",
			Usage:       "/config modulo:string ativar:boolean",
			Category:    "configuracao",
			Icon:        "fas fa-cog",
			MinLevel:    entitlements.LevelPremium,
			Options: []*discordgo.ApplicationCommandOption{
				withChoices(stringOption("modulo", "Módulo a ser configurado", true),
					choice(moduleNames[ModuleAutoSales], ModuleAutoSales),
					choice(moduleNames[ModuleNotifications], ModuleNotifications),
					choice(moduleNames[ModuleReports], ModuleReports),
					choice(moduleNames[ModuleIntegrations], ModuleIntegrations),
				),
				boolOption("ativar", "Ativar ou desativar o módulo", true),
			},
			Handler: handleConfig,
		},
		{
			Name:        "produto",
			Description: "Gerencia produtos para venda",
			Usage:       "/produto [adicionar|listar|remover] nome:string [preco:number] [descricao:string]",
			Category:    "produtos",
			Icon:        "fas fa-tag",
			MinLevel:    entitlements.LevelBasic,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("adicionar", "Adiciona um novo produto",
					stringOption("nome", "Nome do produto", true),
					numberOption("preco", "Preço do produto em reais", true),
					stringOption("descricao", "Descrição do produto", true),
					numberOption("estoque", "Quantidade em estoque (opcional)", false),
				),
				subcommand("listar", "Lista todos os produtos cadastrados"),
				subcommand("remover", "Remove um produto",
					stringOption("id", "ID do produto", true),
				),
			},
			Handler: handleProduct,
		},
		{
			Name:        "cliente",
			Description: "Gerencia informações de clientes",
			Usage:       "/cliente [adicionar|buscar|historico] usuario:user",
			Category:    "clientes",
			Icon:        "fas fa-user",
			MinLevel:    entitlements.LevelPro,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("adicionar", "Adiciona um novo cliente",
					userOption("usuario", "Usuário do Discord", true),
					stringOption("email", "Email do cliente", false),
					stringOption("telefone", "Telefone do cliente", false),
				),
				subcommand("buscar", "Busca informações de um cliente",
					userOption("usuario", "Usuário do Discord", true),
				),
				subcommand("historico", "Mostra o histórico de compras de um cliente",
					userOption("usuario", "Usuário do Discord", true),
				),
			},
			Handler: handleClient,
		},
		{
			Name:        "painel",
			Description: "Cria painéis interativos de venda",
			Usage:       "/painel [produto|categoria] id:number canal:channel",
			Category:    "paineis",
			Icon:        "fas fa-columns",
			MinLevel:    entitlements.LevelPro,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("produto", "Cria um painel para um produto específico",
					stringOption("id", "ID do produto", true),
					channelOption("canal", "Canal para enviar o painel", true),
				),
				subcommand("categoria", "Cria um painel para todos os produtos de uma categoria",
					stringOption("categoria", "Nome da categoria", true),
					channelOption("canal", "Canal para enviar o painel", true),
				),
			},
			Handler: handlePanel,
		},
	}
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: name, Description: description, Required: required}
}

func numberOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionNumber, Name: name, Description: description, Required: required}
}

func boolOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionBoolean, Name: name, Description: description, Required: required}
}

func userOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionUser, Name: name, Description: description, Required: required}
}

func channelOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:         discordgo.ApplicationCommandOptionChannel,
		Name:         name,
		Description:  description,
		Required:     required,
		ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
	}
}

func subcommand(name, description string, opts ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionSubCommand, Name: name, Description: description, Options: opts}
}

func choice(name, value string) *discordgo.ApplicationCommandOptionChoice {
	return &discordgo.ApplicationCommandOptionChoice{Name: name, Value: value}
}

func withChoices(opt *discordgo.ApplicationCommandOption, choices ...*discordgo.ApplicationCommandOptionChoice) *discordgo.ApplicationCommandOption {
	opt.Choices = choices
	return opt
}
