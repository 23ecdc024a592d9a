package config

import (
	"os"
	"strconv"
	"time"

	"pointage/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Auth     AuthConfig
	Reports  ReportConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path        string
	BusyTimeout time.Duration
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// AuthConfig holds JWT settings
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// ReportConfig holds reporting defaults
type ReportConfig struct {
	DefaultRangeDays int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			Path:        getEnvOrDefault("DATABASE_PATH", "./pointage.db"),
			BusyTimeout: getEnvDurationOrDefault("DB_BUSY_TIMEOUT", 5*time.Second),
		},
		Server: ServerConfig{
			Port:            getEnvOrDefault("PORT", "8080"),
			RequestTimeout:  getEnvDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  getEnvDurationOrDefault("TOKEN_TTL", 12*time.Hour),
		},
		Reports: ReportConfig{
			DefaultRangeDays: getEnvIntOrDefault("REPORT_DEFAULT_RANGE_DAYS", 30),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Database.Path == "" {
		return errors.ConfigInvalid("database path is required")
	}
	if config.Auth.JWTSecret == "" {
		return errors.ConfigInvalid("JWT_SECRET is required")
	}
	if config.Reports.DefaultRangeDays <= 0 {
		return errors.ConfigInvalid("report default range must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
