package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-support/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"FARUM_CONFIG_FILE", "FARUM_MODE", "FARUM_PORT", "PORT", "FARUM_LOG_LEVEL",
		"FARUM_GCP_PROJECT", "FARUM_GCP_LOCATION", "FARUM_LLM_PROVIDER", "FARUM_MODEL_NAME",
		"FARUM_USE_MOCK_LLM", "OPENAI_API_KEY", "GEMINI_API_KEY", "FARUM_GEN_TEMPERATURE",
		"FARUM_GEN_TOP_P", "FARUM_GEN_MAX_TOKENS", "FARUM_GEN_TIMEOUT", "FARUM_GEN_MAX_ATTEMPTS",
		"FARUM_GEN_RETRY_BACKOFF", "FARUM_STORAGE_BACKEND", "FARUM_SQLITE_PATH",
		"FARUM_SESSION_TIMEOUT", "FARUM_PERSONAS_FILE",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.ModeLocal, cfg.Mode)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 30*time.Minute, cfg.SessionTimeout)
	assert.Equal(t, 3, cfg.Generation.MaxAttempts)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)

	t.Run("generation settings", func(t *testing.T) {
		t.Setenv("FARUM_GEN_TEMPERATURE", "0.2")
		t.Setenv("FARUM_GEN_MAX_TOKENS", "256")
		t.Setenv("FARUM_GEN_TIMEOUT", "5s")
		t.Setenv("FARUM_GEN_MAX_ATTEMPTS", "5")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.InDelta(t, 0.2, cfg.Generation.Temperature, 1e-6)
		assert.Equal(t, int32(256), cfg.Generation.MaxTokens)
		assert.Equal(t, 5*time.Second, cfg.Generation.Timeout)
		assert.Equal(t, 5, cfg.Generation.MaxAttempts)
	})

	t.Run("invalid numbers keep defaults", func(t *testing.T) {
		t.Setenv("FARUM_GEN_MAX_TOKENS", "lots")
		t.Setenv("FARUM_GEN_TIMEOUT", "soon")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, int32(1024), cfg.Generation.MaxTokens)
		assert.Equal(t, 30*time.Second, cfg.Generation.Timeout)
	})

	t.Run("legacy mock flag wins", func(t *testing.T) {
		t.Setenv("FARUM_LLM_PROVIDER", "openai")
		t.Setenv("FARUM_USE_MOCK_LLM", "true")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "mock", cfg.LLM.Provider)
	})

	t.Run("openai key from environment", func(t *testing.T) {
		t.Setenv("FARUM_LLM_PROVIDER", "openai")
		t.Setenv("OPENAI_API_KEY", "sk-test")

		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	})
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "farum.yaml")
	body := []byte(`
port: "9090"
storage:
  backend: sqlite
  sqlite_path: /tmp/farum-test.db
generation:
  max_attempts: 2
  timeout: 10s
`)
	require.NoError(t, os.WriteFile(path, body, 0o600))
	t.Setenv("FARUM_CONFIG_FILE", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, 2, cfg.Generation.MaxAttempts)
	assert.Equal(t, 10*time.Second, cfg.Generation.Timeout)
	// untouched keys keep their defaults
	assert.Equal(t, "mock", cfg.LLM.Provider)

	t.Run("env beats file", func(t *testing.T) {
		t.Setenv("FARUM_PORT", "7070")
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "7070", cfg.Port)
	})
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("FARUM_CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := config.Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		ok     bool
	}{
		{"defaults", func(*config.Config) {}, true},
		{"gcp without project", func(c *config.Config) { c.Mode = config.ModeGCP }, false},
		{"firestore without project", func(c *config.Config) { c.Storage.Backend = "firestore" }, false},
		{"firestore with project", func(c *config.Config) {
			c.Storage.Backend = "firestore"
			c.GCPProjectID = "p"
		}, true},
		{"unknown backend", func(c *config.Config) { c.Storage.Backend = "redis" }, false},
		{"unknown provider", func(c *config.Config) { c.LLM.Provider = "llama" }, false},
		{"openai without key", func(c *config.Config) { c.LLM.Provider = "openai" }, false},
		{"zero attempts", func(c *config.Config) { c.Generation.MaxAttempts = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
