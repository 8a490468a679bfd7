// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// server mode, content paths, and cache settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Content Configuration
	DataDir        string        // Directory holding <roomId>.json content files
	RoomCacheSize  int           // Max parsed rooms kept in the in-process LRU
	ReimportPeriod time.Duration // How often room files are re-imported (0 = disabled)

	// CrossTopicPath is the cross-topic recommendation table. Relative
	// paths are resolved against DataDir.
	CrossTopicPath string

	// Metrics Authentication
	MetricsUsername string // Username for /metrics endpoint Basic Auth (default: "prometheus")
	MetricsPassword string // Password for /metrics endpoint Basic Auth (empty = no auth)

	// Better Stack log shipping (optional)
	BetterStackToken    string
	BetterStackEndpoint string

	// Sentry error tracking (optional)
	SentryToken       string
	SentryHost        string
	SentryEnvironment string
}

// Load reads configuration from environment variables.
// It attempts to load .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "10000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", 30*time.Second),

		DataDir:        getEnv("DATA_DIR", "./data"),
		RoomCacheSize:  getIntEnv("ROOM_CACHE_SIZE", 64),
		ReimportPeriod: getDurationEnv("REIMPORT_PERIOD", 6*time.Hour),
		CrossTopicPath: getEnv("CROSS_TOPIC_PATH", filepath.Join("system", "cross_topic_recommendations.json")),

		MetricsUsername: getEnv("METRICS_USERNAME", "prometheus"),
		MetricsPassword: getEnv("METRICS_PASSWORD", ""),

		BetterStackToken:    getEnv("BETTERSTACK_TOKEN", ""),
		BetterStackEndpoint: getEnv("BETTERSTACK_ENDPOINT", ""),

		SentryToken:       getEnv("SENTRY_TOKEN", ""),
		SentryHost:        getEnv("SENTRY_HOST", "errors.betterstack.com"),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", "production"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("DATA_DIR is required"))
	}
	if c.RoomCacheSize <= 0 {
		errs = append(errs, fmt.Errorf("ROOM_CACHE_SIZE must be positive, got %d", c.RoomCacheSize))
	}
	if c.ReimportPeriod < 0 {
		errs = append(errs, fmt.Errorf("REIMPORT_PERIOD cannot be negative, got %v", c.ReimportPeriod))
	}

	return errors.Join(errs...)
}

// SQLitePath returns the full path to the SQLite content database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "rooms.db")
}

// CrossTopicFile resolves the cross-topic table path against DataDir.
func (c *Config) CrossTopicFile() string {
	if filepath.IsAbs(c.CrossTopicPath) {
		return c.CrossTopicPath
	}
	return filepath.Join(c.DataDir, c.CrossTopicPath)
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
