package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret   string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	SessionMode string        `env:"SESSION_MODE" envDefault:"global" validate:"oneof=global single"`

	// RelayRequireAuth gates POST /pusher behind bearer verification. Off by
	// default: the subscribe-side channel authorizer is the enforced
	// boundary, matching the original client contract.
	RelayRequireAuth bool `env:"RELAY_REQUIRE_AUTH" envDefault:"false"`

	PusherAppID   string `env:"PUSHER_APP_ID"  validate:"required_unless=Env local"`
	PusherKey     string `env:"PUSHER_KEY"     validate:"required_unless=Env local"`
	PusherSecret  string `env:"PUSHER_SECRET"  validate:"required_unless=Env local"`
	PusherCluster string `env:"PUSHER_CLUSTER" validate:"required_unless=Env local"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
