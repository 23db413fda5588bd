package router

import (
	"net"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/VendaBot/app/controllers"
	"github.com/ManuelReschke/VendaBot/internal/pkg/cache"
	"github.com/ManuelReschke/VendaBot/internal/pkg/env"
	"github.com/ManuelReschke/VendaBot/internal/pkg/middleware"
)

const (
	defaultRateLimit = 120
	// limiter counters live in their own Redis database (cache uses DB 0)
	limiterDatabase = 2
)

type ApiRouter struct {
	api   *controllers.APIController
	cache *cache.Cache
}

func NewApiRouter(api *controllers.APIController, c *cache.Cache) *ApiRouter {
	return &ApiRouter{api: api, cache: c}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", h.limiter(), middleware.Authenticate)
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	ac := h.api

	api.Get("/users", ac.HandleListUsers)
	api.Get("/users/:id", ac.HandleGetUser)
	api.Post("/users", ac.HandleCreateUser)
	api.Patch("/users/:id", ac.HandleUpdateUser)

	api.Get("/servers", ac.HandleListServers)
	api.Get("/servers/:id", ac.HandleGetServer)
	api.Post("/servers", ac.HandleCreateServer)
	api.Patch("/servers/:id", ac.HandleUpdateServer)

	api.Get("/subscription-tiers", ac.HandleListTiers)
	api.Get("/subscription-tiers/:id", ac.HandleGetTier)
	api.Post("/subscription-tiers", ac.HandleCreateTier)
	api.Patch("/subscription-tiers/:id", ac.HandleUpdateTier)

	// static segments before :id
	api.Get("/commands", ac.HandleListCommands)
	api.Get("/commands/popular", ac.HandlePopularCommands)
	api.Get("/commands/:id", ac.HandleGetCommand)
	api.Post("/commands", ac.HandleCreateCommand)
	api.Patch("/commands/:id", ac.HandleUpdateCommand)

	api.Get("/products", ac.HandleListProducts)
	api.Get("/products/:id", ac.HandleGetProduct)
	api.Post("/products", ac.HandleCreateProduct)
	api.Patch("/products/:id", ac.HandleUpdateProduct)

	api.Get("/sales", ac.HandleListSales)
	api.Get("/sales/recent", ac.HandleRecentSales)
	api.Get("/sales/stats", ac.HandleSalesStats)
	api.Get("/sales/:id", ac.HandleGetSale)
	api.Post("/sales", ac.HandleCreateSale)
	api.Patch("/sales/:id", ac.HandleUpdateSale)

	api.Get("/server-subscriptions", ac.HandleListServerSubscriptions)
	api.Get("/server-subscriptions/:serverId/active", ac.HandleGetActiveSubscription)
	api.Post("/server-subscriptions", ac.HandleCreateServerSubscription)
	api.Patch("/server-subscriptions/:id", ac.HandleUpdateServerSubscription)

	api.Get("/bot-settings/:serverId", ac.HandleGetBotSettings)
	api.Post("/bot-settings/:serverId", ac.HandleSaveBotSettings)

	api.Get("/dashboard/stats", ac.HandleDashboardStats)
}

func (h ApiRouter) limiter() fiber.Handler {
	cfg := limiter.Config{
		Max:        env.GetEnvInt("API_RATE_LIMIT", defaultRateLimit),
		Expiration: 1 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "too_many_requests",
				"message": "Rate limit exceeded",
			})
		},
	}
	if storage := limiterStorage(h.cache); storage != nil {
		cfg.Storage = storage
	}
	return limiter.New(cfg)
}

// limiterStorage shares the rate-limit counters between instances through
// Redis when a cache is configured. Nil keeps the limiter in memory.
func limiterStorage(c *cache.Cache) fiber.Storage {
	client := c.Client()
	if client == nil {
		return nil
	}
	host := "localhost"
	port := 6379
	if h, p, err := net.SplitHostPort(client.Options().Addr); err == nil {
		host = h
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}
	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: client.Options().Password,
		Database: limiterDatabase,
		Reset:    false,
	})
}
