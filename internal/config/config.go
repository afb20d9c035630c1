// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the server settings.
type Config struct {
	Port   int
	DBPath string

	JWTSecret string
	TokenTTL  time.Duration

	LogLevel  string
	LogFormat string

	// RedisURL enables the Redis locker when set, for deployments that run
	// more than one server against the same database.
	RedisURL string

	CORSOrigins []string
}

const defaultJWTSecret = "dev-secret-change-in-production"

// Load reads .env files (when present) and then the environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Port:        port,
		DBPath:      getEnv("DB_PATH", "./data/sanagustin.db"),
		JWTSecret:   getEnv("JWT_SECRET", defaultJWTSecret),
		TokenTTL:    ttl,
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		RedisURL:    os.Getenv("REDIS_URL"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
	}
	return cfg, nil
}

// InsecureSecret reports whether the JWT secret is the built-in default.
func (c *Config) InsecureSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
