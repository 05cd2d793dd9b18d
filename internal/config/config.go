// Package config handles configuration loading for the auth service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the auth service.
type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	JWTSecret       string
	JWTExpiry       time.Duration
	SetupKey        string
	Port            string
	Environment     string
	AllowedOrigins  []string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Load reads configuration from environment variables. It returns an error
// naming the first missing required variable.
func Load() (*Config, error) {
	cfg := &Config{
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		JWTExpiry:       parseDuration(getEnv("JWT_EXPIRY", "1h"), time.Hour),
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		RateLimitMax:    parseInt(getEnv("RATE_LIMIT_MAX", "5"), 5),
		RateLimitWindow: parseDuration(getEnv("RATE_LIMIT_WINDOW", "15m"), 15*time.Minute),
	}

	required := []struct {
		name string
		dst  *string
	}{
		{"DB_HOST", &cfg.DBHost},
		{"DB_PORT", &cfg.DBPort},
		{"DB_USER", &cfg.DBUser},
		{"DB_PASSWORD", &cfg.DBPassword},
		{"DB_NAME", &cfg.DBName},
		{"REDIS_HOST", &cfg.RedisHost},
		{"REDIS_PORT", &cfg.RedisPort},
		{"JWT_SECRET", &cfg.JWTSecret},
		{"SETUP_KEY", &cfg.SetupKey},
	}
	for _, v := range required {
		value := os.Getenv(v.name)
		if value == "" {
			return nil, fmt.Errorf("required environment variable %s is not set", v.name)
		}
		*v.dst = value
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func parseInt(value string, defaultValue int) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
