package controllers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/realtime"
	"github.com/ManuelReschke/VendaBot/internal/pkg/statistics"
)

// APIController serves the JSON API used by the admin panel.
type APIController struct {
	repos    *repository.Repositories
	notifier realtime.Notifier
	stats    *statistics.Service
}

// NewAPIController creates the controller. notifier may be nil.
func NewAPIController(repos *repository.Repositories, notifier realtime.Notifier, stats *statistics.Service) *APIController {
	return &APIController{
		repos:    repos,
		notifier: notifier,
		stats:    stats,
	}
}

// validatable is implemented by every insert and patch schema in app/models.
type validatable interface {
	Validate() error
}

// parseBody decodes and validates the request body into in. On failure the
// 400 response has already been written and the returned error is the
// result of writing it.
func parseBody(c *fiber.Ctx, in validatable) (bool, error) {
	if err := c.BodyParser(in); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": []models.FieldError{{Field: "body", Rule: "json", Message: "invalid JSON body"}},
		})
	}
	if err := in.Validate(); err != nil {
		list, ok := models.ValidationErrors(err)
		if !ok {
			return false, badRequest(c, err.Error())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": list})
	}
	return true, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": message})
}

// paramID reads a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// queryID reads an optional positive numeric query parameter. set is false
// when the parameter is absent.
func queryID(c *fiber.Ctx, name string) (id uint, set bool, ok bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false, true
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return 0, true, false
	}
	return uint(v), true, true
}

// queryLimit reads the limit query parameter, falling back to def.
func queryLimit(c *fiber.Ctx, def int) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// handleError maps repository errors to responses.
func (ac *APIController) handleError(c *fiber.Ctx, resource string, err error) error {
	switch {
	case errors.Is(err, repository.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": resource + " not found"})
	case errors.Is(err, repository.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "conflict", "message": resource + " already exists"})
	default:
		fiberlog.Errorf("%s %s: %v", c.Method(), c.Path(), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Internal server error"})
	}
}

func (ac *APIController) broadcast(eventType string, data any) {
	if ac.notifier == nil {
		return
	}
	if err := ac.notifier.Broadcast(eventType, data); err != nil {
		fiberlog.Warnf("broadcast %s: %v", eventType, err)
	}
}

func (ac *APIController) invalidateStats(ctx context.Context) {
	if ac.stats != nil {
		ac.stats.Invalidate(ctx)
	}
}
