package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the auth service
type Config struct {
	// Server
	Port     string `env:"PORT" default:"9500"`
	Host     string `env:"HOST" default:"0.0.0.0"`
	LogLevel string `env:"LOG_LEVEL" default:"info"`

	// Database. A full DATABASE_URL takes precedence; otherwise the DSN is
	// assembled from the DB_* parts.
	DatabaseURL      string `env:"DATABASE_URL"`
	DatabaseHost     string `env:"DB_HOST" default:"auth-postgres"`
	DatabasePort     string `env:"DB_PORT" default:"5432"`
	DatabaseName     string `env:"DB_NAME" default:"auth_db"`
	DatabaseUser     string `env:"DB_USER" default:"auth_user"`
	DatabasePassword string `env:"DB_PASSWORD"`
	DatabaseSSLMode  string `env:"DB_SSL_MODE" default:"require"`

	// Sessions
	SessionCookieName string `env:"SESSION_COOKIE_NAME" default:"session_id"`

	// Password hashing (argon2id)
	HashMemoryKiB   int `env:"HASH_MEMORY_KIB" default:"65536"`
	HashIterations  int `env:"HASH_ITERATIONS" default:"3"`
	HashParallelism int `env:"HASH_PARALLELISM" default:"2"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "9500")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Database configuration
	config.DatabaseURL = os.Getenv("DATABASE_URL")
	config.DatabaseHost = getEnvOrDefault("DB_HOST", "auth-postgres")
	config.DatabasePort = getEnvOrDefault("DB_PORT", "5432")
	config.DatabaseName = getEnvOrDefault("DB_NAME", "auth_db")
	config.DatabaseUser = getEnvOrDefault("DB_USER", "auth_user")
	config.DatabasePassword = os.Getenv("DB_PASSWORD")
	config.DatabaseSSLMode = getEnvOrDefault("DB_SSL_MODE", "require")

	if config.DatabaseURL == "" && config.DatabasePassword == "" {
		return nil, fmt.Errorf("either DATABASE_URL or DB_PASSWORD is required")
	}

	// Session configuration
	config.SessionCookieName = getEnvOrDefault("SESSION_COOKIE_NAME", "session_id")

	// Password hashing configuration
	var err error
	if config.HashMemoryKiB, err = getIntEnv("HASH_MEMORY_KIB", 64*1024); err != nil {
		return nil, err
	}
	if config.HashIterations, err = getIntEnv("HASH_ITERATIONS", 3); err != nil {
		return nil, err
	}
	if config.HashParallelism, err = getIntEnv("HASH_PARALLELISM", 2); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate port
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	// Check port range (1-65535)
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	// Validate log level
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	// Validate session cookie name
	if c.SessionCookieName == "" {
		return fmt.Errorf("session cookie name must not be empty")
	}

	// Validate hashing parameters (minimums keep argon2 meaningful)
	if c.HashMemoryKiB < 8*1024 {
		return fmt.Errorf("hash memory must be at least 8192 KiB, got: %d", c.HashMemoryKiB)
	}
	if c.HashIterations < 1 {
		return fmt.Errorf("hash iterations must be at least 1, got: %d", c.HashIterations)
	}
	if c.HashParallelism < 1 {
		return fmt.Errorf("hash parallelism must be at least 1, got: %d", c.HashParallelism)
	}

	return nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return parsed, nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
