package repository

import (
	"context"
	"time"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// UserRepository defines the operations on dashboard users and bot clients
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByDiscordID(ctx context.Context, discordUserID string) (*models.User, error)
	Update(ctx context.Context, id uint, patch models.UserPatch) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// ServerRepository defines the operations on Discord servers (tenants)
type ServerRepository interface {
	Create(ctx context.Context, server *models.Server) error
	GetByID(ctx context.Context, id uint) (*models.Server, error)
	GetByDiscordID(ctx context.Context, discordServerID string) (*models.Server, error)
	Update(ctx context.Context, id uint, patch models.ServerPatch) (*models.Server, error)
	List(ctx context.Context) ([]models.Server, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Server, error)
}

// SubscriptionTierRepository defines the operations on plans
type SubscriptionTierRepository interface {
	Create(ctx context.Context, tier *models.SubscriptionTier) error
	GetByID(ctx context.Context, id uint) (*models.SubscriptionTier, error)
	Update(ctx context.Context, id uint, patch models.SubscriptionTierPatch) (*models.SubscriptionTier, error)
	List(ctx context.Context) ([]models.SubscriptionTier, error)
}

// CommandRepository defines the operations on command metadata and usage counters
type CommandRepository interface {
	Create(ctx context.Context, command *models.Command) error
	GetByID(ctx context.Context, id uint) (*models.Command, error)
	GetByName(ctx context.Context, name string) (*models.Command, error)
	Update(ctx context.Context, id uint, patch models.CommandPatch) (*models.Command, error)
	IncrementUsage(ctx context.Context, id uint) error
	List(ctx context.Context) ([]models.Command, error)
	ListBySubscriptionLevel(ctx context.Context, level int) ([]models.Command, error)
	Popular(ctx context.Context, limit int) ([]models.Command, error)
}

// ProductRepository defines the operations on products
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	Update(ctx context.Context, id uint, patch models.ProductPatch) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	ListByServer(ctx context.Context, serverID uint) ([]models.Product, error)
}

// SaleRepository defines the operations on sales
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetByID(ctx context.Context, id uint) (*models.Sale, error)
	Update(ctx context.Context, id uint, patch models.SalePatch) (*models.Sale, error)
	List(ctx context.Context) ([]models.Sale, error)
	ListByServer(ctx context.Context, serverID uint) ([]models.Sale, error)
	ListByClient(ctx context.Context, clientID uint) ([]models.Sale, error)
	ListBetween(ctx context.Context, serverID uint, from, to time.Time) ([]models.Sale, error)
	Recent(ctx context.Context, limit int) ([]models.Sale, error)
	Stats(ctx context.Context) (SalesStats, error)
}

// ServerSubscriptionRepository defines the operations on server subscriptions
type ServerSubscriptionRepository interface {
	Create(ctx context.Context, subscription *models.ServerSubscription) error
	GetByID(ctx context.Context, id uint) (*models.ServerSubscription, error)
	GetActive(ctx context.Context, serverID uint) (*models.ServerSubscription, error)
	Update(ctx context.Context, id uint, patch models.ServerSubscriptionPatch) (*models.ServerSubscription, error)
	List(ctx context.Context) ([]models.ServerSubscription, error)
	ExpireEnded(ctx context.Context, now time.Time) ([]models.ServerSubscription, error)
}

// BotSettingsRepository defines the operations on per-server bot settings
type BotSettingsRepository interface {
	Get(ctx context.Context, serverID uint) (*models.BotSettings, error)
	Upsert(ctx context.Context, serverID uint, settings map[string]any) (*models.BotSettings, error)
}

// SalesStats is the aggregate returned by SaleRepository.Stats.
type SalesStats struct {
	TotalSales  int   `json:"totalSales"`
	TotalAmount int64 `json:"totalAmount"`
}
