package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // TIMEZONE must resolve on hosts without a zone database

	"github.com/SscSPs/internet_banking/internal/utils"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool
	LogLevel     slog.Level

	// Reference zone for transaction timestamps and the daily withdrawal count
	TimeZone string
	Location *time.Location

	// Session Config
	SessionSecret          string
	SessionCookieName      string
	SessionIssuer          string
	SessionTTL             time.Duration
	SessionCleanupInterval time.Duration

	RateLimit          string   // ulule/limiter formatted rate, e.g. "60-M"
	CORSAllowedOrigins []string // Origins allowed to call the JSON API

	PosthogAPIKey   string
	PosthogEndpoint string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_COOKIE_NAME", "sid")
	v.SetDefault("SESSION_ISSUER", "internet-banking")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_CLEANUP_INTERVAL", "10m")
	v.SetDefault("RATE_LIMIT", "60-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")

	// Environment variables override the defaults (and anything godotenv loaded).
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		slog.Warn("PORT environment variable not set. Defaulting.", slog.String("port", cfg.Port))
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	logLevelStr := v.GetString("LOG_LEVEL")
	if err := cfg.LogLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		cfg.LogLevel = slog.LevelInfo
		slog.Warn("Invalid value for LOG_LEVEL. Defaulting to info.", slog.String("value", logLevelStr))
	}

	cfg.TimeZone = v.GetString("TIMEZONE")
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.TimeZone, err)
	}
	cfg.Location = loc

	cfg.SessionSecret = v.GetString("SESSION_SECRET")
	if cfg.SessionSecret == "" {
		if cfg.IsProduction {
			return nil, errors.New("SESSION_SECRET must be set in production")
		}
		secret, err := utils.GenerateSecureRandomString(32)
		if err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		cfg.SessionSecret = secret
		slog.Warn("SESSION_SECRET not set. Using a random per-process secret; sessions will not survive a restart.")
	}

	cfg.SessionCookieName = v.GetString("SESSION_COOKIE_NAME")
	cfg.SessionIssuer = v.GetString("SESSION_ISSUER")
	cfg.SessionTTL = durationOrDefault(v, "SESSION_TTL", 24*time.Hour)
	cfg.SessionCleanupInterval = durationOrDefault(v, "SESSION_CLEANUP_INTERVAL", 10*time.Minute)

	cfg.RateLimit = v.GetString("RATE_LIMIT")

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, errors.New("CORS_ALLOWED_ORIGINS must list at least one origin")
	}

	cfg.PosthogAPIKey = v.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = v.GetString("POSTHOG_ENDPOINT")

	return cfg, nil
}

// durationOrDefault reads a positive duration such as "30m", warning and
// falling back to def when the value is unparsable.
func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("Invalid duration in configuration. Using default.",
			slog.String("key", key), slog.String("value", raw), slog.Duration("default", def))
		return def
	}
	return d
}
