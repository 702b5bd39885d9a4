package config

import (
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig

	// SecretKey signs the flash cookie. It is regenerated on every start,
	// so flashes do not survive a restart.
	SecretKey string
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	// URL is either a postgres DSN (postgres://...) or a sqlite path.
	URL string
	// QueryLogging echoes every statement through the bun query hook.
	QueryLogging bool
	// AutoMigrate runs pending migrations on startup.
	AutoMigrate bool
	// MigrationsDir holds the golang-migrate SQL files (postgres only).
	MigrationsDir string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         getEnv("ADDR", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{
			URL:           getEnv("DATABASE_URL", "file:booking.db?cache=shared"),
			QueryLogging:  getEnvBool("QUERY_LOGGING", false),
			AutoMigrate:   getEnvBool("AUTO_MIGRATE", true),
			MigrationsDir: getEnv("MIGRATIONS_DIR", "./migrations"),
		},
		SecretKey: uuid.NewString(),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
