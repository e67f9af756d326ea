package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	t.Run("Defaults from config.yml", func(t *testing.T) {
		cfg, err := InitConfig()
		require.NoError(t, err)
		assert.Equal(t, "8080", cfg.Server.HTTPPort)
		assert.Equal(t, 60*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 7, cfg.Generation.MaxAttempts)
		assert.Equal(t, "gemini", cfg.GenerativeAI.Provider)
		assert.Equal(t, "voyage_project", cfg.Geo.UserAgent)
		assert.Equal(t, 24*time.Hour, cfg.Geo.CacheTTL)
		assert.Equal(t, "voyage", cfg.Repositories.Postgres.DB)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("VOYAGE_GENERATION_MAXATTEMPTS", "3")
		t.Setenv("VOYAGE_GENERATIVEAI_PROVIDER", "openai")
		t.Setenv("VOYAGE_AUTH_JWTSECRET", "s3cret")

		cfg, err := InitConfig()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.Generation.MaxAttempts)
		assert.Equal(t, "openai", cfg.GenerativeAI.Provider)
		assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	})

	t.Run("Non-positive attempts fall back to seven", func(t *testing.T) {
		t.Setenv("VOYAGE_GENERATION_MAXATTEMPTS", "0")

		cfg, err := InitConfig()
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Generation.MaxAttempts)
	})
}
