package middleware

import (
	"github.com/gofiber/fiber/v2"

	"katalog/internal/health"
)

// RequireReady is a Fiber middleware that rejects requests until the store
// connection is established.
func RequireReady(status *health.Status) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !status.Ready() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"message": "Service is starting",
			})
		}
		return c.Next()
	}
}
