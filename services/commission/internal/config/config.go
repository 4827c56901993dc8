package config

import (
	"fmt"

	pkgconfig "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/config"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
)

// Config holds all configuration for the commission service.
type Config struct {
	Environment string   `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	Migrate     bool     `env:"COMMISSION_MIGRATE" envDefault:"true"`

	// LedgerConsumer enables the payment.succeeded consumer.
	LedgerConsumer bool   `env:"COMMISSION_CONSUMER_ENABLED" envDefault:"true"`
	ConsumerGroup  string `env:"KAFKA_CONSUMER_GROUP" envDefault:"commission-service"`

	pkgconfig.HTTP
	pkgconfig.Postgres
	pkgconfig.Kafka
	pkgconfig.Tracing
	Redis database.RedisConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load commission config: %w", err)
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
	if c.LedgerConsumer {
		return pkgconfig.ValidateBrokers(c.Brokers)
	}
	return nil
}
