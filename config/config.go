package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backend identifiers accepted in STORE_BACKEND.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config holds all application configuration
type Config struct {
	ServerPort      int           `json:"server_port"`
	TasksFile       string        `json:"tasks_file"`
	LogLevel        string        `json:"log_level"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	Version         string        `json:"version"`

	// Store backend selection
	StoreBackend string `json:"store_backend"` // "file" or "redis"
	RedisURL     string `json:"redis_url"`
	RedisKey     string `json:"redis_key"` // Redis key holding the task list
}

// LoadConfig loads configuration from environment variables with sensible defaults
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnvInt("PORT", 8000),
		TasksFile:       getEnvString("TASKS_FILE", "tasks.txt"),
		LogLevel:        getEnvString("LOG_LEVEL", "INFO"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		Version:         getEnvString("VERSION", "1.0.0"),
		StoreBackend:    getEnvString("STORE_BACKEND", BackendFile),
		RedisURL:        getEnvString("REDIS_URL", "redis://localhost:6379"),
		RedisKey:        getEnvString("REDIS_KEY", "tasks"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Address returns the server address in host:port format
func (c *Config) Address() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

// Helper functions for environment variable parsing
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// validate performs basic validation of the configuration
func (c *Config) validate() error {
	// Validate ServerPort
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("invalid server port %d: must be between 1 and 65535", c.ServerPort)
	}

	// Validate TasksFile
	if strings.TrimSpace(c.TasksFile) == "" {
		return fmt.Errorf("tasks file path cannot be empty")
	}

	// Validate and normalize LogLevel
	validLevels := map[string]bool{
		"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true,
	}
	upperLevel := strings.ToUpper(strings.TrimSpace(c.LogLevel))
	if !validLevels[upperLevel] {
		return fmt.Errorf("invalid log level '%s': must be DEBUG, INFO, WARN, or ERROR", c.LogLevel)
	}
	c.LogLevel = upperLevel

	// Validate ShutdownTimeout
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %v: must be positive", c.ShutdownTimeout)
	}
	if c.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("invalid shutdown timeout %v: must not exceed 5 minutes", c.ShutdownTimeout)
	}

	// Validate Version
	if strings.TrimSpace(c.Version) == "" {
		return fmt.Errorf("version cannot be empty")
	}
	c.Version = strings.TrimSpace(c.Version)

	// Validate store backend selection
	switch c.StoreBackend {
	case BackendFile:
		// TasksFile already validated above
	case BackendRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("redis URL cannot be empty when redis backend is selected")
		}
		if strings.TrimSpace(c.RedisKey) == "" {
			return fmt.Errorf("redis key cannot be empty when redis backend is selected")
		}
	default:
		return fmt.Errorf("invalid store backend '%s': must be %s or %s", c.StoreBackend, BackendFile, BackendRedis)
	}

	return nil
}
