package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "APP_ENV", "JWT_SECRET"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, DefaultJWTSecret, cfg.JWTSecret)
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	cfg := &Config{Environment: "production", JWTSecret: DefaultJWTSecret}
	assert.ErrorIs(t, cfg.Validate(), ErrDefaultSecretInProduction)

	cfg.JWTSecret = "an-actual-secret"
	require.NoError(t, cfg.Validate())

	// Outside production the default is tolerated (with a startup warning).
	dev := &Config{Environment: "development", JWTSecret: DefaultJWTSecret}
	assert.NoError(t, dev.Validate())
}
