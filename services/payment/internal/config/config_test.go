package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5173", cfg.AppBaseURL)
	assert.Empty(t, cfg.StripeSecretKey)
	assert.Equal(t, 15*time.Second, cfg.StripeTimeout)
	assert.Equal(t, DriverStripe, cfg.Driver)
	assert.True(t, cfg.Migrate)
}

func TestLoad_Stripe(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("APP_BASE_URL", "https://uniondigitale.ht")
	t.Setenv("STRIPE_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sk_test_123", cfg.StripeSecretKey)
	assert.Equal(t, "https://uniondigitale.ht", cfg.AppBaseURL)
	assert.Equal(t, 5*time.Second, cfg.StripeTimeout)
}

func TestLoad_RejectsRelativeBaseURL(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("APP_BASE_URL", "/shop")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_BASE_URL")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PAYMENT_DRIVER", "paypal")

	_, err := Load()
	assert.Error(t, err)
}
