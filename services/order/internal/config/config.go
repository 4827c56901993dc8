package config

import (
	"fmt"

	pkgconfig "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/config"
)

// Config holds all configuration for the order service.
type Config struct {
	Environment string   `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	// Migrate applies the embedded schema at startup.
	Migrate bool `env:"ORDER_MIGRATE" envDefault:"true"`

	pkgconfig.HTTP
	pkgconfig.Postgres
	pkgconfig.Kafka
	pkgconfig.Tracing
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load order config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if err := pkgconfig.ValidatePort("HTTP_PORT", c.HTTP.Port); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	return pkgconfig.ValidateBrokers(c.Brokers)
}
