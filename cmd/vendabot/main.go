package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ManuelReschke/VendaBot/app/controllers"
	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/bot"
	"github.com/ManuelReschke/VendaBot/internal/pkg/cache"
	"github.com/ManuelReschke/VendaBot/internal/pkg/entitlements"
	"github.com/ManuelReschke/VendaBot/internal/pkg/env"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
	"github.com/ManuelReschke/VendaBot/internal/pkg/router"
	"github.com/ManuelReschke/VendaBot/internal/pkg/scheduler"
	"github.com/ManuelReschke/VendaBot/internal/pkg/statistics"
)

const shutdownTimeout = 10 * time.Second

// Application holds everything main starts and later stops.
type Application struct {
	App       *fiber.App
	Store     *repository.Store
	Cache     *cache.Cache
	Hub       *realtime.Hub
	Bot       *bot.Bot
	Scheduler *scheduler.Scheduler
}

func main() {
	application, err := NewApplication(context.Background())
	if err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	if err := application.Scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	if application.Bot != nil {
		if err := application.Bot.Start(); err != nil {
			log.Printf("Failed to connect Discord bot: %v", err)
		}
	}

	go func() {
		addr := fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "5000"))
		log.Printf("Server listening on %s", addr)
		if err := application.App.Listen(addr); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	application.Shutdown()
	log.Println("Shutdown complete")
}

// NewApplication wires the store, services, bot and HTTP server. The Discord
// bot is left nil when DISCORD_BOT_TOKEN is not set.
func NewApplication(ctx context.Context) (*Application, error) {
	env.SetupEnvFile()

	store := repository.NewStore()
	repos := repository.NewRepositories(store)
	if err := repository.Seed(ctx, repos, bot.SeedCommands()); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	c := cache.SetupCache(ctx)
	hub := realtime.NewHub()
	stats := statistics.NewService(repos, c,
		statistics.WithServerLimit(env.GetEnvInt("DASHBOARD_SERVER_LIMIT", statistics.DefaultServerLimit)))

	botEnv := &bot.Env{
		Repos:    repos,
		Notifier: hub,
		Stats:    stats,
		Location: location(),
	}
	dispatcher := bot.NewDispatcher(botEnv, entitlements.NewGate(repos), bot.Registry())

	discord, err := bot.New(env.GetEnv("DISCORD_BOT_TOKEN", ""), bot.Deps{
		Env:        botEnv,
		Dispatcher: dispatcher,
		Components: bot.NewComponentRouter(repos),
	})
	switch {
	case errors.Is(err, bot.ErrNoToken):
		log.Println("DISCORD_BOT_TOKEN not set, Discord bot disabled")
	case err != nil:
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName: "VendaBot",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// ROUTER
	router.InstallRouter(app, router.Deps{
		API:      controllers.NewAPIController(repos, hub, stats),
		Hub:      hub,
		Cache:    c,
		BasePath: router.FindBasePath(),
	})

	return &Application{
		App:       app,
		Store:     store,
		Cache:     c,
		Hub:       hub,
		Bot:       discord,
		Scheduler: scheduler.New(repos, stats, hub),
	}, nil
}

// Shutdown stops the jobs, the bot and the server, then drops the store.
func (a *Application) Shutdown() {
	a.Scheduler.Stop()
	if a.Bot != nil {
		if err := a.Bot.Close(); err != nil {
			log.Printf("Error closing Discord session: %v", err)
		}
	}
	a.Hub.CloseAll()
	if err := a.App.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Printf("Error shutting down server: %v", err)
	}
	if err := a.Cache.Close(); err != nil {
		log.Printf("Error closing cache: %v", err)
	}
	if err := a.Store.Close(); err != nil {
		log.Printf("Error closing store: %v", err)
	}
}

func location() *time.Location {
	name := env.GetEnv("APP_TIMEZONE", "")
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Unknown APP_TIMEZONE %q, using local time: %v", name, err)
		return time.Local
	}
	return loc
}
