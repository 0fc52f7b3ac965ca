package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_USER", "vedawell")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "vedawell")
	t.Setenv("RECIPE_API_URL", "https://recipes.example.com")
	// Make sure no stray secrets dir leaks into the test
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults applied over required values", func(t *testing.T) {
		setRequiredEnv(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "disable", cfg.DBSSLMode)
		assert.Equal(t, 0, cfg.RedisDB)
		assert.Empty(t, cfg.AllowedOrigins)
	})

	t.Run("missing required values are reported", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		_, err := LoadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_SECRET")
	})

	t.Run("docker secret files fill gaps", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("JWT_SECRET", "")

		secretsDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "jwt_secret"), []byte("from-secret-file\n"), 0o600))
		t.Setenv("SECRETS_DIR", secretsDir)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "from-secret-file", cfg.JWTSecret)
	})

	t.Run("allowed origins are split and trimmed", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, http://localhost:5173")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.AllowedOrigins)
	})

	t.Run("invalid redis db", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("REDIS_DB", "not-a-number")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
