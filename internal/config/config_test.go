package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DB_NAME", "nextcut")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 8*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 12*time.Hour, cfg.QueueEntryMaxAge)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.Release())
	assert.Contains(t, cfg.DSN(), "dbname=nextcut")
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("DB_NAME", "nextcut")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "JWT_SECRET", cfgErr.Field)
}

func TestLoad_InvalidPort(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "70000")

	_, err := Load()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "PORT", cfgErr.Field)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000")
	t.Setenv("GIN_MODE", "release")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.Release())
}

func TestLoad_BadDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("QUEUE_ENTRY_MAX_AGE", "forever")

	_, err := Load()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "QUEUE_ENTRY_MAX_AGE", cfgErr.Field)
}

func TestLoad_UnknownGinMode(t *testing.T) {
	setRequired(t)
	t.Setenv("GIN_MODE", "production")

	_, err := Load()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "GIN_MODE", cfgErr.Field)
}
