// Package config loads runtime configuration from the environment.
// cmd/bondi calls godotenv first so a local .env file can supply these.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds every runtime knob.
type Config struct {
	// DataDir is where the database file, CSV exports, and session file live.
	DataDir string

	// SessionSecret signs CLI session tokens.
	SessionSecret string

	// SessionTTL is how long a login stays valid.
	SessionTTL time.Duration

	// LogLevel is debug, info, warn, or error.
	LogLevel string
}

// Load reads configuration from the environment with defaults.
func Load() *Config {
	return &Config{
		DataDir:       getEnv("BONDI_DATA_DIR", "./datasets"),
		SessionSecret: getEnv("BONDI_SESSION_SECRET", "dev-secret-change-me"),
		SessionTTL:    getEnvDuration("BONDI_SESSION_TTL", 24*time.Hour),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

// Validate returns an error describing every invalid setting.
func (c *Config) Validate() error {
	var problems []string

	if c.DataDir == "" {
		problems = append(problems, "data dir must not be empty")
	}
	if c.SessionSecret == "" {
		problems = append(problems, "session secret must not be empty")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, fmt.Sprintf("session TTL %s: must be positive", c.SessionTTL))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level %q: must be debug, info, warn, or error", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
