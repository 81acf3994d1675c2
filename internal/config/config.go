// Package config loads and validates environment-based configuration.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// ConfigError represents a configuration error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	Port int

	JWTSecret string
	TokenTTL  time.Duration

	// Empty RedisAddr disables the cross-instance event relay.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	QueueEntryMaxAge time.Duration
	PruneSchedule    string

	CORSOrigins []string
	GinMode     string
}

// LoadEnvFile reads .env unless ENV_CHEK is set, which is how deployments
// signal that the environment is already populated.
func LoadEnvFile(paths ...string) error {
	if os.Getenv("ENV_CHEK") != "" {
		return nil
	}
	log.Println("loading .env")
	return godotenv.Load(paths...)
}

// Load reads and validates environment variables.
// Returns a ConfigError for any missing or invalid value.
func Load() (*Config, error) {
	cfg := &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		PruneSchedule: getEnv("PRUNE_SCHEDULE", "0 */15 * * * *"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		GinMode:       getEnv("GIN_MODE", gin.DebugMode),
	}

	if cfg.DBName == "" {
		return nil, &ConfigError{Field: "DB_NAME", Message: "required but not set"}
	}
	if cfg.JWTSecret == "" {
		return nil, &ConfigError{Field: "JWT_SECRET", Message: "required but not set"}
	}

	port, err := parseIntEnv("PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	redisDB, err := parseIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = redisDB

	if cfg.TokenTTL, err = parseDurationEnv("TOKEN_TTL", 8*time.Hour); err != nil {
		return nil, err
	}
	if cfg.QueueEntryMaxAge, err = parseDurationEnv("QUEUE_ENTRY_MAX_AGE", 12*time.Hour); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate re-checks fields on an already-constructed Config.
func (c *Config) Validate() error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, &ConfigError{Field: "PORT", Message: "must be between 1 and 65535"})
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, &ConfigError{Field: "TOKEN_TTL", Message: "must be positive"})
	}
	if c.QueueEntryMaxAge <= 0 {
		errs = append(errs, &ConfigError{Field: "QUEUE_ENTRY_MAX_AGE", Message: "must be positive"})
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		errs = append(errs, &ConfigError{Field: "GIN_MODE", Message: "must be debug, release or test"})
	}
	return errors.Join(errs...)
}

// DSN builds the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Release reports whether the server runs in production-like mode.
func (c *Config) Release() bool {
	return c.GinMode == gin.ReleaseMode
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntEnv(key string, defaultVal int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ConfigError{Field: key, Message: "must be a valid integer"}
	}
	return v, nil
}

// parseDurationEnv accepts Go duration strings like "15m", "8h".
func parseDurationEnv(key string, defaultVal time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, &ConfigError{Field: key, Message: "must be a duration such as 8h"}
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
