package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from the process environment using its `env` tags.
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

// HTTP holds the listener settings shared by every service.
type HTTP struct {
	Port       int    `env:"HTTP_PORT" envDefault:"8080"`
	JWTSecret  string `env:"JWT_SECRET"`
	RatePerSec int    `env:"EDGE_RATE_PER_SEC" envDefault:"20"`
	RateBurst  int    `env:"EDGE_RATE_BURST" envDefault:"40"`
}

// Postgres holds the connection settings of the shared database.
type Postgres struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	User     string `env:"POSTGRES_USER" envDefault:"union"`
	Password string `env:"POSTGRES_PASSWORD" envDefault:"union"`
	DB       string `env:"POSTGRES_DB" envDefault:"union_digitale"`
	SSLMode  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
}

// DSN renders the settings as a libpq connection URL.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

// Kafka holds the broker list; topics are owned by each service.
type Kafka struct {
	Brokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`
}

// Tracing configures the OTLP exporter. An empty endpoint disables export.
type Tracing struct {
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SampleRate   float64 `env:"OTEL_SAMPLE_RATE" envDefault:"0.1"`
}

// ValidatePort reports an error when port is outside 1..65535.
func ValidatePort(name string, port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", name, port)
	}
	return nil
}

// ValidateBrokers reports an error when no usable broker address is configured.
func ValidateBrokers(brokers []string) error {
	for _, b := range brokers {
		if strings.TrimSpace(b) != "" {
			return nil
		}
	}
	return fmt.Errorf("KAFKA_BROKERS must list at least one broker")
}
