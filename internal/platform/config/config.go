// Package config loads runtime settings from POS_-prefixed environment
// variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends selectable via POS_STORAGE_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Redis   RedisConfig
	Sales   SalesConfig
	Log     LogConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string        `envconfig:"PORT" default:"8080"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"IDLE_TIMEOUT" default:"120s"`
}

// StorageConfig selects the persistence backend for carts and budgets.
type StorageConfig struct {
	Backend string `envconfig:"BACKEND" default:"memory"`
	DataDir string `envconfig:"DATA_DIR" default:"./data"`
}

// RedisConfig stores connection parameters for the redis backend.
type RedisConfig struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Password string `envconfig:"PASSWORD" default:""`
	DB       int    `envconfig:"DB" default:"0"`
}

// SalesConfig tunes order numbering and currency presentation.
type SalesConfig struct {
	OrderPrefix string `envconfig:"ORDER_PREFIX" default:"PDV"`
	Currency    string `envconfig:"CURRENCY" default:"BRL"`
}

// LogConfig controls logger verbosity.
type LogConfig struct {
	Level string `envconfig:"LEVEL" default:"info"`
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Load assembles the application configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("POS", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Sales.OrderPrefix = strings.TrimSpace(cfg.Sales.OrderPrefix)
	cfg.Sales.Currency = strings.ToUpper(strings.TrimSpace(cfg.Sales.Currency))

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Port) == "" {
		missing = append(missing, "Server.Port")
	}
	switch cfg.Storage.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		missing = append(missing, "Storage.Backend")
	}
	if cfg.Storage.Backend == BackendFile && strings.TrimSpace(cfg.Storage.DataDir) == "" {
		missing = append(missing, "Storage.DataDir")
	}
	if cfg.Storage.Backend == BackendRedis && strings.TrimSpace(cfg.Redis.Addr) == "" {
		missing = append(missing, "Redis.Addr")
	}
	if cfg.Sales.OrderPrefix == "" {
		missing = append(missing, "Sales.OrderPrefix")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}
