package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// DefaultTiers returns the plans every fresh store starts with.
func DefaultTiers() []models.SubscriptionTier {
	return []models.SubscriptionTier{
		{
			Name:        "Plano Básico",
			Price:       4990,
			Description: strPtr("Plano básico com funcionalidades essenciais"),
			Features:    []string{"Comandos básicos de vendas", "Painel de controle simplificado", "Até 100 vendas/mês"},
			Level:       1,
			Color:       "#3498db",
			MaxSales:    intPtr(100),
			MaxServers:  intPtr(1),
		},
		{
			Name:        "Plano Pro",
			Price:       8990,
			Description: strPtr("Plano profissional com automação e mais comandos"),
			Features:    []string{"Todos os comandos de vendas", "Automação de vendas", "Painéis personalizados", "Até 500 vendas/mês"},
			Level:       2,
			Color:       "#7289DA",
			MaxSales:    intPtr(500),
			MaxServers:  intPtr(3),
		},
		{
			Name:        "Plano Premium",
			Price:       12990,
			Description: strPtr("Plano premium com recursos ilimitados"),
			Features:    []string{"Todos os recursos do Pro", "Integração com plataformas", "API completa", "Vendas ilimitadas"},
			Level:       3,
			Color:       "#9b59b6",
			MaxServers:  intPtr(10),
		},
	}
}

// Seed inserts the default tiers and one record per command. Commands that
// already exist by name are left untouched, so seeding twice is harmless.
func Seed(ctx context.Context, repos *Repositories, commands []models.Command) error {
	tiers, err := repos.SubscriptionTier.List(ctx)
	if err != nil {
		return err
	}
	if len(tiers) == 0 {
		for _, tier := range DefaultTiers() {
			tier := tier
			if err := repos.SubscriptionTier.Create(ctx, &tier); err != nil {
				return fmt.Errorf("seed tier %q: %w", tier.Name, err)
			}
		}
	}

	for _, cmd := range commands {
		cmd := cmd
		if _, err := repos.Command.GetByName(ctx, cmd.Name); err == nil {
			continue
		} else if !errors.Is(err, ErrRecordNotFound) {
			return err
		}
		if err := repos.Command.Create(ctx, &cmd); err != nil {
			return fmt.Errorf("seed command %q: %w", cmd.Name, err)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
