package dbconfig

import (
	"fmt"
	"os"
	"strconv"
)

// Driver selects the storage backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Config holds database connection settings.
type Config struct {
	Driver   Driver
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
	// SQLitePath is the database file for the sqlite driver.
	SQLitePath string
}

// NewConfigFromEnv reads DB_* environment variables (with defaults).
// DB_DRIVER defaults to sqlite so the service runs with zero setup.
func NewConfigFromEnv() Config {
	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		port = 5432
	}

	return Config{
		Driver:     Driver(getEnv("DB_DRIVER", string(DriverSQLite))),
		Host:       getEnv("DB_HOST", "localhost"),
		Port:       port,
		User:       getEnv("DB_USER", "postgres"),
		Password:   getEnv("DB_PASSWORD", "postgres"),
		Database:   getEnv("DB_NAME", "quizrush"),
		SSLMode:    getEnv("DB_SSLMODE", "disable"),
		SQLitePath: getEnv("DB_SQLITE_PATH", "quizrush.db"),
	}
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	switch c.Driver {
	case DriverPostgres:
		return fmt.Sprintf(
			"postgres://%s:%s@%s:%d/%s?sslmode=%s",
			c.User, c.Password, c.Host, c.Port, c.Database, c.SSLMode,
		)
	default:
		return fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout(5000)", c.SQLitePath)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
