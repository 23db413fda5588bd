package router

import (
	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/monitor"

	"github.com/ManuelReschke/VendaBot/internal/pkg/env"
	"github.com/ManuelReschke/VendaBot/internal/pkg/metrics"
)

type MetricsRouter struct {
}

func NewMetricsRouter() *MetricsRouter {
	return &MetricsRouter{}
}

// InstallRouter always counts requests. The scrape endpoints are only served
// when METRICS_PASSWORD is set.
func (m MetricsRouter) InstallRouter(app *fiber.App) {
	app.Use(metrics.Middleware())

	password := env.GetEnv("METRICS_PASSWORD", "")
	if password == "" {
		fiberlog.Warn("METRICS_PASSWORD not set, /metrics endpoints disabled")
		return
	}
	auth := basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("METRICS_USER", "admin"): password,
		},
	})

	// fiber dashboard and prometheus scrape endpoint
	app.Get("/metrics", auth, monitor.New(monitor.Config{Title: "VendaBot Metrics"}))
	app.Get("/metrics/prometheus", auth, adaptor.HTTPHandler(metrics.Handler()))
}
