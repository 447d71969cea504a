package config

import (
	"fmt"
	"os"
)

// Config holds the application configuration.
type Config struct {
	Port         string
	DatabaseDSN  string
	JWTSecret    string
	Environment  string // "development" or "production"
	CookieDomain string
}

// Load loads configuration from environment variables or sets defaults.
// JWT_SECRET has no default: refusing to start beats signing sessions with
// a guessable key.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	return &Config{
		Port:         getEnv("PORT", "3000"),
		DatabaseDSN:  getEnv("DATABASE_URL", "host=localhost user=quill password=quill dbname=quill port=5432 sslmode=disable"),
		JWTSecret:    secret,
		Environment:  getEnv("APP_ENV", "development"),
		CookieDomain: os.Getenv("DOMAIN"),
	}, nil
}

// IsProduction reports whether the process runs with production hardening
// (secure cookies, no error detail in responses).
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
