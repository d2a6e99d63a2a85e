package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "dev-secret-key", cfg.SecretKey)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, 20.0, cfg.RateLimitRPS)
	assert.Equal(t, 40, cfg.RateLimitBurst)
	assert.Equal(t, int64(64<<10), cfg.MaxBodyBytes)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.False(t, cfg.EnableHSTS)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("SEED_DEMO", "false")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, http://localhost:5173,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		field string
	}{
		{"short secret", "SECRET_KEY", "short", "SecretKey"},
		{"unknown log level", "LOG_LEVEL", "verbose", "LogLevel"},
		{"zero rate", "RATE_LIMIT_RPS", "0", "RateLimitRPS"},
		{"tiny body limit", "MAX_BODY_BYTES", "10", "MaxBodyBytes"},
		{"bad origin", "CORS_ALLOWED_ORIGINS", "not a url", "AllowedOrigins"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := Load()
			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	content := "APP_ADDR=:7000\nLOG_LEVEL=warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, ".env"), []byte(content), 0644))

	t.Setenv("APP_ADDR", ":8000")
	// Registered so the value loaded from the file is removed after the test.
	t.Setenv("LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("LOG_LEVEL"))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	LoadEnvFiles()

	assert.Equal(t, ":8000", os.Getenv("APP_ADDR"))
	assert.Equal(t, "warn", os.Getenv("LOG_LEVEL"))
}
