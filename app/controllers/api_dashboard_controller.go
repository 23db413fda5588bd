package controllers

import "github.com/gofiber/fiber/v2"

// HandleDashboardStats returns the dashboard aggregates.
func (ac *APIController) HandleDashboardStats(c *fiber.Ctx) error {
	stats, err := ac.stats.Dashboard(c.UserContext())
	if err != nil {
		return ac.handleError(c, "Statistics", err)
	}
	return c.JSON(stats)
}
