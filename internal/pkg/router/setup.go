package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/VendaBot/app/controllers"
	"github.com/ManuelReschke/VendaBot/internal/pkg/cache"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
)

// Router installs one group of routes on the app.
type Router interface {
	InstallRouter(app *fiber.App)
}

// Deps are the services the routes are bound to.
type Deps struct {
	API   *controllers.APIController
	Hub   *realtime.Hub
	Cache *cache.Cache
	// BasePath is the project root used to locate public/ files.
	BasePath string
}

func InstallRouter(app *fiber.App, deps Deps) {
	// metrics first so the Prometheus middleware sees every request
	setup(app,
		NewMetricsRouter(),
		NewDocsRouter(deps.BasePath),
		NewRealtimeRouter(deps.Hub),
		NewApiRouter(deps.API, deps.Cache),
	)
}

func setup(app *fiber.App, router ...Router) {
	for _, r := range router {
		r.InstallRouter(app)
	}
}
