// Package config loads process configuration from environment variables,
// optionally seeded from a .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backend identifiers accepted by ROOMBOOKING_STORAGE.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config captures environment driven configuration for the booking store.
type Config struct {
	Storage   string
	SQLiteDSN string
	LogLevel  slog.Level
}

// Load parses configuration from the current process environment. A .env
// file in the working directory is applied first when present; real
// environment variables take precedence over it.
//
// Defaults are applied for every field; invalid values are reported
// together rather than one at a time.
func Load() (Config, error) {
	// Missing .env is the common case and not an error.
	_ = godotenv.Load()

	cfg := Config{
		Storage:   StorageSQLite,
		SQLiteDSN: "file:roombooking.db?_pragma=foreign_keys(1)",
		LogLevel:  slog.LevelInfo,
	}

	var invalid []string

	if storage := strings.TrimSpace(os.Getenv("ROOMBOOKING_STORAGE")); storage != "" {
		switch storage {
		case StorageMemory, StorageSQLite:
			cfg.Storage = storage
		default:
			invalid = append(invalid, "ROOMBOOKING_STORAGE")
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("ROOMBOOKING_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if levelValue := strings.TrimSpace(os.Getenv("ROOMBOOKING_LOG_LEVEL")); levelValue != "" {
		switch strings.ToLower(levelValue) {
		case "debug":
			cfg.LogLevel = slog.LevelDebug
		case "info":
			cfg.LogLevel = slog.LevelInfo
		case "warn":
			cfg.LogLevel = slog.LevelWarn
		case "error":
			cfg.LogLevel = slog.LevelError
		default:
			invalid = append(invalid, "ROOMBOOKING_LOG_LEVEL")
		}
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variable values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
