package entitlements

import (
	"context"
	"errors"
	"fmt"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/app/repository"
)

// Subscription levels, ordered. A tier grants access to every command whose
// minimum level is at or below its own.
const (
	LevelNone    = 0
	LevelBasic   = 1
	LevelPro     = 2
	LevelPremium = 3
)

// LevelName returns the plan name shown to Discord users for a level.
func LevelName(level int) string {
	switch level {
	case LevelBasic:
		return "Básico"
	case LevelPro:
		return "Pro"
	case LevelPremium:
		return "Premium"
	default:
		return "Gratuito"
	}
}

// Requirement phrases the plan needed for a level inside a sentence.
func Requirement(level int) string {
	switch {
	case level <= LevelBasic:
		return "pelo menos o plano " + LevelName(LevelBasic)
	case level == LevelPro:
		return "o plano " + LevelName(LevelPro) + " ou superior"
	default:
		return "o plano " + LevelName(LevelPremium)
	}
}

// DenialMessage is the reply sent when a server's plan is below minLevel.
func DenialMessage(minLevel int) string {
	return fmt.Sprintf("❌ Seu servidor precisa ter %s para usar este comando.", Requirement(minLevel))
}

// Decision is the resolved chain server -> subscription -> tier. Fields are
// filled as far as the chain could be followed.
type Decision struct {
	Allowed      bool
	Server       *models.Server
	Subscription *models.ServerSubscription
	Tier         *models.SubscriptionTier
}

// Level returns the effective plan level, LevelNone without a tier.
func (d Decision) Level() int {
	if d.Tier == nil {
		return LevelNone
	}
	return d.Tier.Level
}

// Gate answers whether a Discord server may run a command of a given level.
type Gate struct {
	repos *repository.Repositories
}

func NewGate(repos *repository.Repositories) *Gate {
	return &Gate{repos: repos}
}

// Decide follows server -> active subscription -> tier. Any missing link
// denies. Store errors other than not-found are logged and also deny.
func (g *Gate) Decide(ctx context.Context, discordServerID string, minLevel int) Decision {
	var d Decision

	server, err := g.repos.Server.GetByDiscordID(ctx, discordServerID)
	if err != nil {
		logUnexpected("server", err)
		return d
	}
	d.Server = server

	sub, err := g.repos.ServerSubscription.GetActive(ctx, server.ID)
	if err != nil {
		logUnexpected("subscription", err)
		return d
	}
	d.Subscription = sub

	tier, err := g.repos.SubscriptionTier.GetByID(ctx, sub.TierID)
	if err != nil {
		logUnexpected("tier", err)
		return d
	}
	d.Tier = tier

	d.Allowed = tier.Level >= minLevel
	return d
}

// HasAccess is Decide reduced to its verdict.
func (g *Gate) HasAccess(ctx context.Context, discordServerID string, minLevel int) bool {
	return g.Decide(ctx, discordServerID, minLevel).Allowed
}

func logUnexpected(what string, err error) {
	if !errors.Is(err, repository.ErrRecordNotFound) {
		fiberlog.Errorf("entitlements: resolving %s: %v", what, err)
	}
}
