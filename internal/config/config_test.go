package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_SECRET", "")

	cfg, err := Load("8001")
	require.NoError(t, err)
	assert.Equal(t, "8001", cfg.Port)
	assert.Equal(t, defaultSessionSecret, cfg.SessionSecret)
	assert.NotEmpty(t, cfg.DatabaseURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_SECRET", "from-env")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("8000")
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "from-env", cfg.SessionSecret)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestValidateProductionSecret(t *testing.T) {
	cfg := &Config{Env: "production", Port: "8000", DatabaseURL: "dsn", SessionSecret: defaultSessionSecret}
	assert.Error(t, cfg.Validate())

	cfg.SessionSecret = "a-real-secret"
	assert.NoError(t, cfg.Validate())
}
