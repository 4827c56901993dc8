package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("HTTP_PORT", "8101")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://uniondigitale.ht,http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8101, cfg.HTTP.Port)
	assert.True(t, cfg.Migrate)
	assert.Equal(t, []string{"https://uniondigitale.ht", "http://localhost:5173"}, cfg.CORSOrigins)
	assert.Equal(t, "union_digitale", cfg.Postgres.DB)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoad_RejectsBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("HTTP_PORT", "0")

	_, err := Load()
	assert.Error(t, err)
}
