// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"fintrack/internal/logger"
)

// Config holds application configuration. It is constructed once at process
// start and passed explicitly to the components that need it; request-handling
// code never reads the environment directly.
type Config struct {
	// Server
	Port string
	Env  string

	// Token signing. Access and refresh tokens use distinct secrets so that
	// compromise of one does not compromise the other.
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// Load loads configuration from environment variables. The token signing
// configuration is required: a missing secret or TTL is a startup error,
// never a per-request one.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Warn(".env file not found")
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),
	}

	var err error
	if cfg.AccessSecret, err = requireEnv("JWT_ACCESS_SECRET"); err != nil {
		return nil, err
	}
	if cfg.RefreshSecret, err = requireEnv("JWT_REFRESH_SECRET"); err != nil {
		return nil, err
	}
	if cfg.AccessTTL, err = requireDuration("JWT_ACCESS_TTL"); err != nil {
		return nil, err
	}
	if cfg.RefreshTTL, err = requireDuration("JWT_REFRESH_TTL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// requireEnv retrieves an environment variable that must be set.
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}

// requireDuration retrieves a required environment variable and parses it as
// a Go duration string (e.g. "15m", "168h").
func requireDuration(key string) (time.Duration, error) {
	value, err := requireEnv(key)
	if err != nil {
		return 0, err
	}
	dur, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration in %s: %w", key, err)
	}
	if dur <= 0 {
		return 0, fmt.Errorf("duration in %s must be positive", key)
	}
	return dur, nil
}
