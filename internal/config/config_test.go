package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LISTEN_ADDR", "SESSION_DB_PATH", "LOG_LEVEL", "ENV",
		"SESSION_SECRET", "SESSION_TTL", "ROSTER_SEED_PATH", "KPI_REFRESH_SPEC",
		"ATS_BASE_URL", "ATS_TIMEOUT", "ATS_EXPIRES_IN_MINS",
		"RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "RATE_LIMIT_TRUST_PROXY",
		"CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, "talentboard.sqlite", cfg.SessionDBPath)
	assert.Equal(t, "https://dummyjson.com", cfg.ATS.BaseURL)
	assert.Equal(t, 60, cfg.ATS.ExpiresInMins)
	assert.Equal(t, 10*time.Second, cfg.ATS.Timeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "dev-secret-change-in-production", cfg.SessionSecret)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.RateLimitTrustProxy)
	assert.NotEmpty(t, cfg.Warnings, "insecure session secret should produce a warning")
}

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", ":9999")
	t.Setenv("SESSION_DB_PATH", "/tmp/test.sqlite")
	t.Setenv("ATS_BASE_URL", "http://localhost:4567")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("ATS_EXPIRES_IN_MINS", "15")
	t.Setenv("RATE_LIMIT_RPS", "7.5")
	t.Setenv("RATE_LIMIT_BURST", "42")
	t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.ListenAddr)
	assert.Equal(t, "/tmp/test.sqlite", cfg.SessionDBPath)
	assert.Equal(t, "http://localhost:4567", cfg.ATS.BaseURL)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15, cfg.ATS.ExpiresInMins)
	assert.InDelta(t, 7.5, cfg.RateLimitRPS, 0.001)
	assert.Equal(t, 42, cfg.RateLimitBurst)
	assert.True(t, cfg.RateLimitTrustProxy)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadFromEnv_BadATSBaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("ATS_BASE_URL", "not a url")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestLoadFromEnv_ProductionRejectsInsecureDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://dashboard.example")

	_, err := LoadFromEnv()
	require.Error(t, err, "default session secret must be fatal in production")

	t.Setenv("SESSION_SECRET", "prod-secret")
	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoadFromEnv_ProductionRejectsCORSWildcard(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "production")
	t.Setenv("SESSION_SECRET", "prod-secret")

	_, err := LoadFromEnv()
	require.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel(), "level %q", tt.level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\n\nLISTEN_ADDR=:7777\nSESSION_SECRET=\"quoted\"\nBROKEN LINE\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("SESSION_SECRET", "already-set")

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, ":7777", os.Getenv("LISTEN_ADDR"))
	assert.Equal(t, "already-set", os.Getenv("SESSION_SECRET"), "existing env vars take precedence")
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}
