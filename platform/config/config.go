// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// MigrationConfig provides the migrations directory used at startup.
type MigrationConfig interface {
	DatabaseConfig
	GetMigrationsDir() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetCheckoutRatePerMinute() int
}

// InteractionsConfig provides settings for the interaction-check service.
type InteractionsConfig interface {
	GetLambdaURL() string
	GetLambdaToken() string
	GetLambdaTimeout() time.Duration
}

// QueueConfig provides settings for the order command queue.
type QueueConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetCommandBuffer() int
	IsRedisEnabled() bool
}

// TracingConfig provides settings for span export.
type TracingConfig interface {
	IsTracingEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                   string
	HTTPAddr              string
	DatabaseURL           string
	MigrationsDir         string
	LambdaURL             string
	LambdaToken           string
	LambdaTimeout         time.Duration
	CORSAllowAll          bool
	CORSOrigins           []string
	CORSAllowCreds        bool
	CheckoutRatePerMinute int
	RedisURL              string
	RedisTLSInsecure      bool
	AsynqQueueName        string
	AsynqConcurrency      int
	CommandBuffer         int
	TracingEnabled        bool
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string   { return c.DatabaseURL }
func (c *Config) GetMigrationsDir() string { return c.MigrationsDir }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string           { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool         { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string      { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool       { return c.CORSAllowCreds }
func (c *Config) GetCheckoutRatePerMinute() int { return c.CheckoutRatePerMinute }

// InteractionsConfig implementation
func (c *Config) GetLambdaURL() string            { return c.LambdaURL }
func (c *Config) GetLambdaToken() string          { return c.LambdaToken }
func (c *Config) GetLambdaTimeout() time.Duration { return c.LambdaTimeout }

// QueueConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }
func (c *Config) GetCommandBuffer() int     { return c.CommandBuffer }
func (c *Config) IsRedisEnabled() bool      { return c.RedisURL != "" }

// TracingConfig implementation
func (c *Config) IsTracingEnabled() bool { return c.TracingEnabled }

// Load reads configuration for the API server from environment variables.
func Load() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if cfg.LambdaURL == "" || cfg.LambdaToken == "" {
		return nil, fmt.Errorf("LAMBDA_URL and LAMBDA_TOKEN are required")
	}
	return cfg, nil
}

// LoadWorker reads configuration for the order worker, which consumes the
// Redis-backed queue and never calls the interaction service.
func LoadWorker() (*Config, error) {
	cfg, err := load()
	if err != nil {
		return nil, err
	}
	if !cfg.IsRedisEnabled() {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	return cfg, nil
}

func load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	lambdaTimeout, err := parseDuration(getEnv("LAMBDA_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("LAMBDA_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Env:                   getEnv("APP_ENV", "development"),
		HTTPAddr:              getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		MigrationsDir:         getEnv("MIGRATIONS_DIR", ""),
		LambdaURL:             getEnv("LAMBDA_URL", ""),
		LambdaToken:           getEnv("LAMBDA_TOKEN", ""),
		LambdaTimeout:         lambdaTimeout,
		CORSAllowAll:          corsAllowAll,
		CORSOrigins:           corsOrigins,
		CORSAllowCreds:        strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "false"), "true"),
		CheckoutRatePerMinute: mustInt(getEnv("CHECKOUT_RATE_PER_MIN", "60")),
		RedisURL:              getEnv("REDIS_URL", ""),
		RedisTLSInsecure:      strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:        getEnv("ASYNQ_QUEUE", "orders"),
		AsynqConcurrency:      mustInt(getEnv("ASYNQ_CONCURRENCY", "1")),
		CommandBuffer:         mustInt(getEnv("COMMAND_BUFFER", "64")),
		TracingEnabled:        strings.EqualFold(getEnv("TRACING_ENABLED", "false"), "true"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// parseDuration accepts Go durations and a bare "0" meaning no timeout.
func parseDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration %q", value)
	}
	return d, nil
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
