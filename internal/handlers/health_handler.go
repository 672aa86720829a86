package handlers

import (
	"github.com/gofiber/fiber/v2"

	"katalog/internal/health"
)

// HealthHandler reports whether the service is ready to serve requests.
type HealthHandler struct {
	status *health.Status
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(status *health.Status) *HealthHandler {
	return &HealthHandler{status: status}
}

// RegisterRoutes registers the liveness route.
func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.HandleLiveness)
}

// HandleLiveness answers 200 once the store connection is established and
// 500 before that.
func (h *HealthHandler) HandleLiveness(c *fiber.Ctx) error {
	if !h.status.Ready() {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "DB Connection Failed",
		})
	}
	return c.JSON(fiber.Map{
		"message": "API is running",
	})
}
