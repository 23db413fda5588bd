package bot

import (
	"context"
	"errors"

	"github.com/bwmarrin/discordgo"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/app/repository"
)

// handleConfig flips one automation flag in the server's settings blob.
func handleConfig(ctx context.Context, env *Env, inv *Invocation) (*Reply, error) {
	server, err := inv.server()
	if err != nil {
		return nil, err
	}

	modulo, _ := inv.Options.String("modulo")
	name, known := moduleNames[modulo]
	if !known {
		return ephemeral("❌ Módulo desconhecido."), nil
	}
	ativar, ok := inv.Options.Bool("ativar")
	if !ok {
		return ephemeral("❌ Informe se o módulo deve ser ativado."), nil
	}

	settings := map[string]any{}
	current, err := env.Repos.BotSettings.Get(ctx, server.ID)
	switch {
	case err == nil:
		settings = models.CloneSettings(current.Settings)
	case !errors.Is(err, repository.ErrRecordNotFound):
		return nil, err
	}
	settings[modulo] = ativar

	if _, err := env.Repos.BotSettings.Upsert(ctx, server.ID, settings); err != nil {
		return nil, err
	}

	color, status := colorRed, "❌ Desativado"
	if ativar {
		color, status = colorGreen, "✅ Ativado"
	}
	return &Reply{
		Content: "✅ Configuração atualizada com sucesso!",
		Embeds: []*discordgo.MessageEmbed{{
			Title: "Configuração de Módulo",
			Color: color,
			Fields: []*discordgo.MessageEmbedField{
				field("Módulo", name, true),
				field("Status", status, true),
			},
			Timestamp: env.timestamp(),
		}},
	}, nil
}
