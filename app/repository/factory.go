package repository

// Repositories struct holds all repository instances
type Repositories struct {
	User               UserRepository
	Server             ServerRepository
	SubscriptionTier   SubscriptionTierRepository
	Command            CommandRepository
	Product            ProductRepository
	Sale               SaleRepository
	ServerSubscription ServerSubscriptionRepository
	BotSettings        BotSettingsRepository
}

// NewRepositories creates all repositories on top of one store
func NewRepositories(store *Store) *Repositories {
	return &Repositories{
		User:               NewUserRepository(store),
		Server:             NewServerRepository(store),
		SubscriptionTier:   NewSubscriptionTierRepository(store),
		Command:            NewCommandRepository(store),
		Product:            NewProductRepository(store),
		Sale:               NewSaleRepository(store),
		ServerSubscription: NewServerSubscriptionRepository(store),
		BotSettings:        NewBotSettingsRepository(store),
	}
}
