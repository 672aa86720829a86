package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config selects the level and output format of the logger.
type Config struct {
	Level  string
	Format string // "json" or "console"
	Output io.Writer
}

// Configure builds the service logger, installs it as the global logger and
// as the fallback for zerolog.Ctx on contexts that carry none.
func Configure(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var output io.Writer = os.Stdout
	if cfg.Output != nil {
		output = cfg.Output
	}
	if strings.EqualFold(cfg.Format, "console") {
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}

	l := zerolog.New(output).
		With().
		Timestamp().
		Str("service", "katalog").
		Logger()

	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return l
}
