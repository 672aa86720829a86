package server

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"katalog/internal/config"
	"katalog/internal/repositories"
	"katalog/pkg/mongodb"
)

// CloseFunc releases the store connection.
type CloseFunc func(ctx context.Context) error

// OpenRepository connects the store selected by cfg.StoreDriver and pings it
// within cfg.ConnectTimeout. There is no retry.
func OpenRepository(ctx context.Context, cfg *config.Config) (repositories.ProductRepository, CloseFunc, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	var (
		repo   repositories.ProductRepository
		closer CloseFunc
	)

	switch cfg.StoreDriver {
	case config.DriverMongoDB:
		client, err := mongodb.NewClient(ctx, mongodb.Config{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
			Timeout:  cfg.ConnectTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		repo = repositories.NewMongoProductRepository(client.Collection(repositories.ProductCollection))
		closer = client.Close

	case config.DriverPostgres, config.DriverSQLite:
		gormRepo, err := openGORM(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		repo = gormRepo
		closer = func(context.Context) error { return gormRepo.Close() }

	case config.DriverMemory:
		repo = repositories.NewMemoryProductRepository()
		closer = func(context.Context) error { return nil }

	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	if err := repo.Ping(ctx); err != nil {
		_ = closer(context.Background())
		return nil, nil, err
	}
	return repo, closer, nil
}

func openGORM(ctx context.Context, cfg *config.Config) (*repositories.GORMProductRepository, error) {
	dialector := postgres.Open(cfg.DatabaseDSN)
	if cfg.StoreDriver == config.DriverSQLite {
		dialector = sqlite.Open(cfg.DatabaseDSN)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGORMLogger(*zerolog.Ctx(ctx)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.StoreDriver, err)
	}

	repo := repositories.NewGORMProductRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

// gormWriter sends GORM log lines to zerolog.
type gormWriter struct {
	logger zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.logger.Warn().Msgf(format, args...)
}

func newGORMLogger(l zerolog.Logger) gormlogger.Interface {
	return gormlogger.New(gormWriter{logger: l.With().Str("component", "gorm").Logger()}, gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}
