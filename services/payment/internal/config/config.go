package config

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "github.com/eliezerphilippe0-spec/union-digitale-sub006/pkg/config"
)

// Checkout drivers.
const (
	DriverStripe = "stripe"
	DriverMock   = "mock"
)

// Config holds all configuration for the payment service.
type Config struct {
	Environment string   `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	Migrate     bool     `env:"PAYMENT_MIGRATE" envDefault:"true"`

	// AppBaseURL is the storefront origin used to build return URLs.
	AppBaseURL string `env:"APP_BASE_URL" envDefault:"http://localhost:5173"`

	// StripeSecretKey empty leaves the gateway unconfigured.
	StripeSecretKey string        `env:"STRIPE_SECRET_KEY"`
	StripeAPIURL    string        `env:"STRIPE_API_URL"`
	StripeTimeout   time.Duration `env:"STRIPE_TIMEOUT" envDefault:"15s"`
	Driver          string        `env:"PAYMENT_DRIVER" envDefault:"stripe"`

	pkgconfig.HTTP
	pkgconfig.Postgres
	pkgconfig.Tracing
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load payment config: %w", err)
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
	u, err := url.Parse(c.AppBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("APP_BASE_URL must be an absolute URL, got %q", c.AppBaseURL)
	}
	switch c.Driver {
	case DriverStripe, DriverMock:
	default:
		return fmt.Errorf("PAYMENT_DRIVER must be %q or %q, got %q", DriverStripe, DriverMock, c.Driver)
	}
	return nil
}
