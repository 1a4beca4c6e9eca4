// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the dashboard server.
type Config struct {
	ListenAddr    string // HTTP listen address (default ":8080")
	SessionDBPath string // path to the SQLite session/roster/feedback store
	LogLevel      string // log level: debug, info, warn, error (default "info")
	Env           string // environment: "development" (default) or "production"

	// ATS holds the external candidate/auth collaborator configuration.
	ATS ATSConfig

	// Session cookie signing and lifetime.
	SessionSecret string        // HS256 secret for the session cookie
	SessionTTL    time.Duration // cookie/session lifetime (default 24h)

	// RosterSeedPath points to the YAML fixture the admin roster is seeded
	// from on first start. Empty disables seeding.
	RosterSeedPath string

	// KPIRefreshSpec is the cron spec for regenerating dashboard KPIs
	// (default "@every 1m").
	KPIRefreshSpec string

	// Rate limiting
	RateLimitRPS        float64 // sustained requests per second (default 100)
	RateLimitBurst      int     // burst capacity (default 200)
	RateLimitTrustProxy bool    // key clients by X-Forwarded-For (default false)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// ATSConfig holds the external mock-ATS collaborator settings.
type ATSConfig struct {
	BaseURL       string        // collaborator base URL (default https://dummyjson.com)
	Timeout       time.Duration // per-request timeout (default 10s)
	ExpiresInMins int           // login token lifetime requested from the ATS (default 60)
}

// Validate checks that the ATS configuration is usable.
func (a *ATSConfig) Validate() error {
	u, err := url.Parse(a.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("ATS_BASE_URL %q is not an absolute URL", a.BaseURL)
	}
	return nil
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// IsProduction returns true when the server is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// LoadFromEnv loads configuration from environment variables and applies
// defaults. Insecure defaults are warnings in development and fatal in
// production.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:     os.Getenv("LISTEN_ADDR"),
		SessionDBPath:  os.Getenv("SESSION_DB_PATH"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		Env:            os.Getenv("ENV"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		RosterSeedPath: os.Getenv("ROSTER_SEED_PATH"),
		KPIRefreshSpec: os.Getenv("KPI_REFRESH_SPEC"),
		ATS: ATSConfig{
			BaseURL: os.Getenv("ATS_BASE_URL"),
		},
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionTTL = d
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("SESSION_TTL %q is not a duration — using default", v))
		}
	}
	if v := os.Getenv("ATS_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.ATS.Timeout = d
		}
	}
	if v := os.Getenv("ATS_EXPIRES_IN_MINS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ATS.ExpiresInMins = n
		}
	}

	// Rate limiting
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}
	if v := os.Getenv("RATE_LIMIT_TRUST_PROXY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.RateLimitTrustProxy = b
		}
	}

	// CORS
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = compactNonEmpty(origins)
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.SessionDBPath == "" {
		cfg.SessionDBPath = "talentboard.sqlite"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.KPIRefreshSpec == "" {
		cfg.KPIRefreshSpec = "@every 1m"
	}
	if cfg.ATS.BaseURL == "" {
		cfg.ATS.BaseURL = "https://dummyjson.com"
	}
	if cfg.ATS.Timeout == 0 {
		cfg.ATS.Timeout = 10 * time.Second
	}
	if cfg.ATS.ExpiresInMins == 0 {
		cfg.ATS.ExpiresInMins = 60
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}
	if err := cfg.ATS.Validate(); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev-secret-change-in-production"
		cfg.Warnings = append(cfg.Warnings, "SESSION_SECRET not set — using insecure default. Set SESSION_SECRET in production!")
	}

	// Production mode: insecure defaults are fatal errors.
	if cfg.IsProduction() {
		if cfg.SessionSecret == "dev-secret-change-in-production" {
			return nil, fmt.Errorf("SESSION_SECRET must be set in production (ENV=production)")
		}
		if len(cfg.CORSAllowedOrigins) == 1 && cfg.CORSAllowedOrigins[0] == "*" {
			return nil, fmt.Errorf("CORS wildcard (*) is not allowed in production (ENV=production)")
		}
	}

	return cfg, nil
}

func compactNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = stripQuotes(value)
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
