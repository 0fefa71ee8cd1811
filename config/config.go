package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	RedisURL string

	JWTSecret    string
	JWTExpiresIn time.Duration

	// Billing rule for closed tickets. The rate has changed over the life of
	// the lot, so it is configuration rather than a constant.
	RatePerHour          float64
	MinimumBillableHours int

	OTelServiceName string
	OTelEndpoint    string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		OTelServiceName: getEnv("OTEL_SERVICE_NAME", "parking-lot-api"),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
	}

	expiresIn := getEnv("JWT_EXPIRES_IN", "168h")
	duration, err := time.ParseDuration(expiresIn)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRES_IN: %w", err)
	}
	cfg.JWTExpiresIn = duration

	rate := getEnv("RATE_PER_HOUR", "5.0")
	cfg.RatePerHour, err = strconv.ParseFloat(rate, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_PER_HOUR: %w", err)
	}

	minHours := getEnv("MINIMUM_BILLABLE_HOURS", "1")
	cfg.MinimumBillableHours, err = strconv.Atoi(minHours)
	if err != nil {
		return nil, fmt.Errorf("invalid MINIMUM_BILLABLE_HOURS: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.RatePerHour < 0 {
		return fmt.Errorf("RATE_PER_HOUR must not be negative")
	}
	if c.MinimumBillableHours < 1 {
		return fmt.Errorf("MINIMUM_BILLABLE_HOURS must be at least 1")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
