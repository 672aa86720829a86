package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"katalog/internal/metrics"
)

// RequestLogger assigns every request an X-Request-ID, stores a request
// scoped logger in the user context and logs the outcome of the request.
// m may be nil.
func RequestLogger(base zerolog.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := utils.CopyString(c.Get(fiber.HeaderXRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(fiber.HeaderXRequestID, requestID)

		logger := base.With().Str("request_id", requestID).Logger()
		c.SetUserContext(logger.WithContext(c.UserContext()))

		err := c.Next()

		// The app error handler has not written the response yet.
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		latency := time.Since(start)
		// Label values are kept by the registry, so they must not alias
		// fasthttp's request buffer.
		method := utils.CopyString(c.Method())
		route := utils.CopyString(c.Route().Path)
		m.ObserveRequest(method, route, status, latency)

		var event *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			event = logger.Error().Err(err)
		case status >= fiber.StatusBadRequest:
			event = logger.Warn()
		default:
			event = logger.Info()
		}
		event.
			Str("method", method).
			Str("path", c.Path()).
			Str("route", route).
			Int("status", status).
			Dur("latency", latency).
			Msg("Request handled")

		return err
	}
}
