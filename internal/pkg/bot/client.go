package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/money"
)

const (
	clientHistoryLimit = 10
	notInformed        = "Não informado"
	notAClientMessage  = "❌ Este usuário não está cadastrado como cliente."
)

func handleClient(ctx context.Context, env *Env, inv *Invocation) (*Reply, error) {
	sub, opts := inv.Options.Subcommand()
	discordID, ok := opts.ID("usuario")
	if !ok {
		return ephemeral("❌ Informe o usuário."), nil
	}
	target := inv.ResolvedUser(discordID)

	user, err := env.Repos.User.GetByDiscordID(ctx, discordID)
	if err != nil && !errors.Is(err, repository.ErrRecordNotFound) {
		return nil, err
	}

	switch sub {
	case "adicionar":
		return addClient(ctx, env, target, user, opts)
	case "buscar":
		if user == nil {
			return &Reply{Content: notAClientMessage}, nil
		}
		return &Reply{Embeds: []*discordgo.MessageEmbed{{
			Title:     "Informações do Cliente",
			Color:     colorBlurple,
			Thumbnail: thumbnail(target),
			Fields: []*discordgo.MessageEmbedField{
				field("ID", fmt.Sprintf("#%d", user.ID), true),
				field("Discord", mention(discordID), true),
				field("Username", user.Username, true),
			},
			Timestamp: env.timestamp(),
		}}}, nil
	case "historico":
		if user == nil {
			return &Reply{Content: notAClientMessage}, nil
		}
		return clientHistory(ctx, env, target, user)
	default:
		return ephemeral(unknownComponentAction), nil
	}
}

// addClient registers the Discord user as a client. Clients never log into
// the dashboard, so they get a random password.
func addClient(ctx context.Context, env *Env, target *discordgo.User, user *models.User, opts Options) (*Reply, error) {
	if user == nil {
		password, err := models.HashPassword(uuid.NewString())
		if err != nil {
			return nil, err
		}
		discordID := target.ID
		user = &models.User{
			Username:      target.Username,
			Password:      password,
			DiscordUserID: &discordID,
		}
		if target.Avatar != "" {
			avatar := target.AvatarURL("")
			user.AvatarURL = &avatar
		}
		err = env.Repos.User.Create(ctx, user)
		if errors.Is(err, repository.ErrDuplicate) {
			// the username belongs to a dashboard account
			user.Username = fmt.Sprintf("%s#%s", target.Username, target.ID)
			err = env.Repos.User.Create(ctx, user)
		}
		if err != nil {
			return nil, fmt.Errorf("create client: %w", err)
		}
	}

	email, _ := opts.String("email")
	phone, _ := opts.String("telefone")
	if email == "" {
		email = notInformed
	}
	if phone == "" {
		phone = notInformed
	}

	return &Reply{
		Content: "✅ Cliente adicionado com sucesso!",
		Embeds: []*discordgo.MessageEmbed{{
			Title:     "Novo Cliente",
			Color:     colorGreen,
			Thumbnail: thumbnail(target),
			Fields: []*discordgo.MessageEmbedField{
				field("Discord", mention(target.ID), true),
				field("Username", user.Username, true),
				field("Email", email, true),
				field("Telefone", phone, true),
			},
			Timestamp: env.timestamp(),
		}},
	}, nil
}

func clientHistory(ctx context.Context, env *Env, target *discordgo.User, user *models.User) (*Reply, error) {
	sales, err := env.Repos.Sale.ListByClient(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	embed := &discordgo.MessageEmbed{
		Title:     "Histórico de Compras",
		Color:     colorBlurple,
		Thumbnail: thumbnail(target),
		Timestamp: env.timestamp(),
		Footer:    &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Cliente #%d - %s", user.ID, user.Username)},
	}
	if len(sales) == 0 {
		embed.Description = "Não há compras registradas para este cliente."
		return &Reply{Embeds: []*discordgo.MessageEmbed{embed}}, nil
	}

	report := summarize(sales)
	embed.Fields = append(embed.Fields,
		field("Total de Compras", fmt.Sprintf("%d", report.Count), true),
		field("Valor Total", money.Format(report.Total), true),
	)
	for i, s := range sales {
		if i == clientHistoryLimit {
			break
		}
		name := "Produto avulso"
		if s.ProductID != nil {
			if p, err := env.Repos.Product.GetByID(ctx, *s.ProductID); err == nil {
				name = p.Name
			}
		}
		embed.Fields = append(embed.Fields, field(
			fmt.Sprintf("#%d - %s", s.ID, name),
			fmt.Sprintf("%s • %s • %s", money.Format(s.Price), saleStatusLabel(s.Status), s.CreatedAt.In(env.location()).Format(reportDateLayout)),
			false,
		))
	}
	return &Reply{Embeds: []*discordgo.MessageEmbed{embed}}, nil
}

func thumbnail(u *discordgo.User) *discordgo.MessageEmbedThumbnail {
	if u == nil || u.Avatar == "" {
		return nil
	}
	return &discordgo.MessageEmbedThumbnail{URL: u.AvatarURL("")}
}
