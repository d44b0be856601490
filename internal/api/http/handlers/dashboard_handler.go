package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/careops/hospitalops/internal/service"
)

// DashboardHandler serves the cached unit stat cards.
type DashboardHandler struct {
	stats *service.StatsService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(statsService *service.StatsService) *DashboardHandler {
	return &DashboardHandler{stats: statsService}
}

// Stats GET /dashboard/stats.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	stats, err := h.stats.UnitStats(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}
