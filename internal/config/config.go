// Package config loads runtime configuration for the realty core.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the settings the core needs at startup.
type Config struct {
	DBPath     string        // SQLite database path; empty means the default path
	SessionTTL time.Duration // lifetime of issued sessions
	DevMode    bool          // human-readable logs, debug level
}

// Load reads a .env file (if one exists) and then the environment.
// Missing values fall back to defaults.
func Load() Config {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	return Config{
		DBPath:     os.Getenv("REALTY_DB_PATH"),
		SessionTTL: envDuration("REALTY_SESSION_TTL", 30*24*time.Hour),
		DevMode:    os.Getenv("REALTY_DEV_MODE") == "true",
	}
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
