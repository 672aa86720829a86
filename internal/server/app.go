package server

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"katalog/internal/config"
	"katalog/internal/handlers"
	"katalog/internal/health"
	"katalog/internal/metrics"
	"katalog/internal/middleware"
	"katalog/internal/services"
)

// Dependencies are the collaborators the HTTP app is built from.
type Dependencies struct {
	Config   *config.Config
	Service  *services.ProductService
	Status   *health.Status
	Gatherer prometheus.Gatherer
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
}

// NewApp builds the Fiber app with the product API under /api, liveness
// on / and the Prometheus registry on /metrics.
func NewApp(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "katalog",
		ReadTimeout:           deps.Config.ReadTimeout,
		WriteTimeout:          deps.Config.WriteTimeout,
		IdleTimeout:           deps.Config.IdleTimeout,
		DisableStartupMessage: true,
	})

	// The request logger wraps recover so recovered panics are logged and measured.
	app.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			zerolog.Ctx(c.UserContext()).Error().
				Interface("panic", e).
				Bytes("stack", debug.Stack()).
				Msg("Recovered from panic")
		},
	}))

	handlers.NewHealthHandler(deps.Status).RegisterRoutes(app)

	if deps.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api", middleware.RequireReady(deps.Status))
	handlers.NewProductHandler(deps.Service).RegisterRoutes(api)

	return app
}
