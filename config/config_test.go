package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SECRETS_DIR", t.TempDir())

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "localhost", cfg.DBHost)
		assert.Equal(t, "https://openrouter.ai/api/v1/chat/completions", cfg.OpenRouterAPIURL)
		assert.Equal(t, "openai/gpt-4o-mini", cfg.OpenRouterModel)
		assert.Equal(t, 0, cfg.RedisDB)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("CATALOG_URL", "https://cdn.example.com/recipes.csv")
		t.Setenv("REDIS_DB", "3")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.ServerPort)
		assert.Equal(t, "https://cdn.example.com/recipes.csv", cfg.CatalogURL)
		assert.Equal(t, 3, cfg.RedisDB)
	})

	t.Run("invalid port rejected", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "not-a-port")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("invalid redis db rejected", func(t *testing.T) {
		t.Setenv("REDIS_DB", "three")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}

func TestLoadConfigMissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SECRETS_DIR", t.TempDir())

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestSecretFileFallback(t *testing.T) {
	secretsDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(secretsDir, "jwt_secret"), []byte("file-secret\n"), 0o600))

	t.Setenv("JWT_SECRET", "")
	t.Setenv("SECRETS_DIR", secretsDir)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
}

func TestKeyFileFallback(t *testing.T) {
	dir := t.TempDir()
	keyPath := filepath.Join(dir, "openrouter.key")
	require.NoError(t, os.WriteFile(keyPath, []byte("sk-or-test\n"), 0o600))

	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SECRETS_DIR", t.TempDir())
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENROUTER_API_KEY_FILE", keyPath)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sk-or-test", cfg.OpenRouterAPIKey)
}
