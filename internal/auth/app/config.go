package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/snapvault/snapvault/pkg/jwtx"
)

type Config struct {
	AccessSecret  string // Required: HMAC key for access and email tokens
	RefreshSecret string // Required: HMAC key for refresh tokens, must differ

	AccessAlgorithm  string        // Optional: HMAC algorithm for access/email tokens (default: HS256)
	RefreshAlgorithm string        // Optional: HMAC algorithm for refresh tokens (default: HS512)
	AccessTTL        time.Duration // Optional: access token lifetime (default: 24h)
	RefreshTTL       time.Duration // Optional: refresh token lifetime (default: 168h)
	EmailTTL         time.Duration // Optional: email token lifetime (default: 12h)

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./auth.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		AccessSecret:  os.Getenv("AUTH_ACCESS_SECRET"),
		RefreshSecret: os.Getenv("AUTH_REFRESH_SECRET"),

		AccessAlgorithm:  getEnvOrDefault("AUTH_ACCESS_ALGORITHM", "HS256"),
		RefreshAlgorithm: getEnvOrDefault("AUTH_REFRESH_ALGORITHM", "HS512"),
		AccessTTL:        getEnvDurationOrDefault("AUTH_ACCESS_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTTL:       getEnvDurationOrDefault("AUTH_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL),
		EmailTTL:         getEnvDurationOrDefault("AUTH_EMAIL_TTL", jwtx.DefaultEmailTokenTTL),

		DatabaseFile:        getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:          getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate catches deployment faults before anything is listening. A missing
// or shared secret must stop the process, not surface per-request.
func (cfg Config) Validate() error {
	if cfg.AccessSecret == "" {
		return errors.New("AUTH_ACCESS_SECRET is required")
	}
	if cfg.RefreshSecret == "" {
		return errors.New("AUTH_REFRESH_SECRET is required")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return errors.New("AUTH_ACCESS_SECRET and AUTH_REFRESH_SECRET must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 || cfg.EmailTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if cfg.RefreshTTL <= cfg.AccessTTL {
		return fmt.Errorf("refresh lifetime %s must exceed access lifetime %s", cfg.RefreshTTL, cfg.AccessTTL)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer hours, for compact deployments
	if hours, err := strconv.Atoi(value); err == nil {
		return time.Duration(hours) * time.Hour
	}

	return defaultValue
}
