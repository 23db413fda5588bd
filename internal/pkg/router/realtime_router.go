package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
)

type RealtimeRouter struct {
	hub *realtime.Hub
}

func NewRealtimeRouter(hub *realtime.Hub) *RealtimeRouter {
	return &RealtimeRouter{hub: hub}
}

func (r RealtimeRouter) InstallRouter(app *fiber.App) {
	app.Use("/ws", realtime.UpgradeRequired())
	app.Get("/ws", r.hub.Handler())
}
