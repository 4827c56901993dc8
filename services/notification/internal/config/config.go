package config

import (
	"fmt"

	pkgconfig "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/config"
	"github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/database"
)

// WhatsApp delivery drivers.
const (
	DriverTwilio = "twilio"
	DriverMock   = "mock"
)

// Config holds all configuration for the notification service.
type Config struct {
	Environment string   `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	Migrate     bool     `env:"NOTIFICATION_MIGRATE" envDefault:"true"`

	// Twilio credentials. Any one missing leaves WhatsApp unconfigured.
	TwilioAccountSID   string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken    string `env:"TWILIO_AUTH_TOKEN"`
	TwilioWhatsAppFrom string `env:"TWILIO_WHATSAPP_FROM"`
	WhatsAppDriver     string `env:"WHATSAPP_DRIVER" envDefault:"twilio"`

	// OrderConfirmations enables the order.created consumer.
	OrderConfirmations bool   `env:"ORDER_CONFIRMATIONS_ENABLED" envDefault:"true"`
	ConsumerGroup      string `env:"KAFKA_CONSUMER_GROUP" envDefault:"notification-service"`

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
		return nil, fmt.Errorf("load notification config: %w", err)
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
	switch c.WhatsAppDriver {
	case DriverTwilio, DriverMock:
	default:
		return fmt.Errorf("WHATSAPP_DRIVER must be %q or %q, got %q", DriverTwilio, DriverMock, c.WhatsAppDriver)
	}
	if c.OrderConfirmations {
		return pkgconfig.ValidateBrokers(c.Brokers)
	}
	return nil
}
