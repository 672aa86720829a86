package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"katalog/internal/config"
	"katalog/internal/health"
	"katalog/internal/metrics"
	"katalog/internal/server"
	"katalog/internal/services"
	"katalog/internal/telemetry"
	"katalog/pkg/logger"
	"katalog/pkg/rabbitmq"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// --- Configuration ---
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	l := logger.Configure(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	// Graceful shutdown on SIGINT and SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(l.WithContext(ctx), cfg, l); err != nil {
		l.Fatal().Err(err).Msg("Service stopped with error")
	}
}

// run starts the service and blocks until ctx is cancelled. Startup
// failures are returned without retry.
func run(ctx context.Context, cfg *config.Config, l zerolog.Logger) error {
	// --- Tracing ---
	shutdownTracing, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.OTLPEndpoint,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			l.Error().Err(err).Msg("Error during tracer shutdown")
		}
	}()

	// --- Product store ---
	status := health.New()
	repo, closeStore, err := server.OpenRepository(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			l.Error().Err(err).Msg("Error closing product store")
		}
	}()
	status.MarkReady()
	l.Info().Str("driver", cfg.StoreDriver).Msg("Connected to product store")

	// --- Event publisher ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Queue: cfg.RabbitMQQueue})
		if err != nil {
			return err
		}
		defer mqClient.Close()
		publisher = mqClient
		l.Info().Str("queue", mqClient.Queue()).Msg("Publishing product events")
	}

	// --- HTTP ---
	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	app := server.NewApp(server.Dependencies{
		Config:   cfg,
		Service:  services.NewProductService(repo, publisher, m),
		Status:   status,
		Gatherer: reg,
		Metrics:  m,
		Logger:   l,
	})

	listenErr := make(chan error, 1)
	go func() {
		l.Info().Str("addr", cfg.Addr()).Msg("Starting server")
		listenErr <- app.Listen(cfg.Addr())
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
	}

	l.Info().Msg("Shutting down server...")
	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		l.Error().Err(err).Msg("Error during Fiber shutdown")
	}
	l.Info().Msg("Server gracefully stopped")
	return nil
}
