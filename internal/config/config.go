package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	DriverMongoDB  = "mongodb"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is the runtime configuration of the service.
type Config struct {
	Port           string        `mapstructure:"PORT" validate:"required,numeric"`
	StoreDriver    string        `mapstructure:"STORE_DRIVER" validate:"oneof=mongodb postgres sqlite memory"`
	MongoURI       string        `mapstructure:"MONGODB_URI" validate:"required_if=StoreDriver mongodb"`
	MongoDatabase  string        `mapstructure:"MONGODB_DATABASE" validate:"required_if=StoreDriver mongodb"`
	DatabaseDSN    string        `mapstructure:"DATABASE_DSN" validate:"required_if=StoreDriver postgres,required_if=StoreDriver sqlite"`
	ConnectTimeout time.Duration `mapstructure:"DB_CONNECT_TIMEOUT" validate:"gt=0"`
	ReadTimeout    time.Duration `mapstructure:"HTTP_READ_TIMEOUT"`
	WriteTimeout   time.Duration `mapstructure:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout    time.Duration `mapstructure:"HTTP_IDLE_TIMEOUT"`
	RabbitMQURL    string        `mapstructure:"RABBITMQ_URL" validate:"omitempty,url"`
	RabbitMQQueue  string        `mapstructure:"RABBITMQ_QUEUE"`
	OTLPEndpoint   string        `mapstructure:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName    string        `mapstructure:"OTEL_SERVICE_NAME"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	LogFormat      string        `mapstructure:"LOG_FORMAT" validate:"oneof=json console"`
}

var keys = []string{
	"PORT", "STORE_DRIVER", "MONGODB_URI", "MONGODB_DATABASE", "DATABASE_DSN",
	"DB_CONNECT_TIMEOUT", "HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT",
	"RABBITMQ_URL", "RABBITMQ_QUEUE", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_SERVICE_NAME",
	"LOG_LEVEL", "LOG_FORMAT",
}

// New returns a viper instance with the service defaults, reading the
// process environment and an optional env file.
func New(envFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("PORT", "3030")
	v.SetDefault("STORE_DRIVER", DriverMongoDB)
	v.SetDefault("MONGODB_DATABASE", "katalog")
	v.SetDefault("DB_CONNECT_TIMEOUT", "10s")
	v.SetDefault("HTTP_READ_TIMEOUT", "10s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "10s")
	v.SetDefault("HTTP_IDLE_TIMEOUT", "60s")
	v.SetDefault("RABBITMQ_QUEUE", "product_events")
	v.SetDefault("OTEL_SERVICE_NAME", "katalog")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	// Unmarshal only sees keys viper knows about, so bind every key
	// explicitly for AutomaticEnv to pick it up.
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	v.AutomaticEnv()

	if envFile == "" {
		return v, nil
	}
	if _, err := os.Stat(envFile); errors.Is(err, fs.ErrNotExist) {
		return v, nil
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
	}
	return v, nil
}

// Load reads and validates the configuration.
func Load(envFile string) (*Config, error) {
	v, err := New(envFile)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(cfg.StoreDriver)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := newConfigValidator().Struct(&cfg); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, e := range validationErrors {
				msgs = append(msgs, fmt.Sprintf("%s failed on the '%s' rule", e.Field(), e.Tag()))
			}
			return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Addr returns the fiber listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func newConfigValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their environment key.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("mapstructure")
	})
	return v
}
