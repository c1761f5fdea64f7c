package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port            int
	Env             string
	ShutdownTimeout time.Duration

	// CORS
	AllowedOrigins []string

	// History store. Empty RedisURL keeps history in memory.
	RedisURL    string
	HistorySize int

	// Recorder pool
	RecorderWorkers       int
	RecorderQueueSize     int
	RecorderBatchSize     int
	RecorderFlushInterval time.Duration
}

// Load loads configuration from environment variables.
// Every setting has a default, so an empty environment yields a runnable config.
func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnvInt("PORT", 5000),
		Env:             getEnv("ENV", "development"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		RedisURL:    getEnv("REDIS_URL", ""),
		HistorySize: getEnvInt("HISTORY_SIZE", 100),

		RecorderWorkers:       getEnvInt("RECORDER_WORKERS", 2),
		RecorderQueueSize:     getEnvInt("RECORDER_QUEUE_SIZE", 1000),
		RecorderBatchSize:     getEnvInt("RECORDER_BATCH_SIZE", 50),
		RecorderFlushInterval: getEnvDuration("RECORDER_FLUSH_INTERVAL", 1*time.Second),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "*")
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail later at bind or store time.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d: must be between 1 and 65535", c.Port)
	}
	if c.HistorySize <= 0 {
		return fmt.Errorf("invalid HISTORY_SIZE %d: must be positive", c.HistorySize)
	}
	return nil
}

// Addr is the listen address on all interfaces.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
