// Package config loads process configuration from the environment once at
// startup. Misconfiguration is reported as an error so main can exit
// before serving any traffic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultMealDBBaseURL = "https://www.themealdb.com/api/json/v1/1/"

// Config holds every runtime knob the server reads.
type Config struct {
	Port              string
	DatabasePath      string
	JWTSecret         string
	AllowedOrigin     string
	Production        bool
	BcryptCost        int
	MinPasswordLength int
	TokenTTL          time.Duration
	MealDBBaseURL     string
}

// Load reads configuration from the environment and validates it.
// JWT_SECRET is required; a missing or short secret is a startup failure,
// never a per-request one.
func Load() (*Config, error) {
	cfg := &Config{
		Port:              envOrDefault("PORT", "8080"),
		DatabasePath:      envOrDefault("DATABASE_PATH", "recipe-box.db"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AllowedOrigin:     os.Getenv("ALLOWED_ORIGIN"),
		Production:        os.Getenv("APP_ENV") == "production",
		BcryptCost:        12,
		MinPasswordLength: 7,
		TokenTTL:          time.Hour,
		MealDBBaseURL:     envOrDefault("MEALDB_BASE_URL", defaultMealDBBaseURL),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if parsed < 4 || parsed > 14 {
			return nil, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", parsed)
		}
		cfg.BcryptCost = parsed
	}

	if v := os.Getenv("MIN_PASSWORD_LENGTH"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MIN_PASSWORD_LENGTH: %w", err)
		}
		if parsed < 1 {
			return nil, fmt.Errorf("MIN_PASSWORD_LENGTH must be positive, got %d", parsed)
		}
		cfg.MinPasswordLength = parsed
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
