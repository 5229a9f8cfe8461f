// Package config loads application settings from .env and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultSessionSecret = "secret_key_change_me"

type Config struct {
	Env           string `mapstructure:"APP_ENV"`
	Port          string `mapstructure:"PORT"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	SessionSecret string `mapstructure:"SESSION_SECRET"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`
}

// Load reads .env (if present) and then the process environment.
// defaultPort lets each app keep its own port when PORT is unset.
func Load(defaultPort string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, reading env vars from system")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", defaultPort)
	v.SetDefault("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=yaportal port=5432 sslmode=disable")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.IsProduction() && c.SessionSecret == defaultSessionSecret {
		return errors.New("SESSION_SECRET must be changed from the default value in production")
	}
	return nil
}
