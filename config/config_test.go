package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/parking_test")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, 168*time.Hour, cfg.JWTExpiresIn)
	assert.InDelta(t, 5.0, cfg.RatePerHour, 0.001)
	assert.Equal(t, 1, cfg.MinimumBillableHours)
	assert.Equal(t, "parking-lot-api", cfg.OTelServiceName)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoadFromEnv(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("RATE_PER_HOUR", "3.0")
	t.Setenv("MINIMUM_BILLABLE_HOURS", "2")
	t.Setenv("JWT_EXPIRES_IN", "24h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.IsDevelopment())
	assert.InDelta(t, 3.0, cfg.RatePerHour, 0.001)
	assert.Equal(t, 2, cfg.MinimumBillableHours)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiresIn)
}

func TestLoadRejectsMissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoadRejectsMissingJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/parking_test")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoadRejectsBadBillingValues(t *testing.T) {
	setRequired(t)

	t.Setenv("RATE_PER_HOUR", "not-a-number")
	_, err := Load()
	assert.ErrorContains(t, err, "RATE_PER_HOUR")

	t.Setenv("RATE_PER_HOUR", "-1")
	_, err = Load()
	assert.ErrorContains(t, err, "RATE_PER_HOUR")

	t.Setenv("RATE_PER_HOUR", "5.0")
	t.Setenv("MINIMUM_BILLABLE_HOURS", "0")
	_, err = Load()
	assert.ErrorContains(t, err, "MINIMUM_BILLABLE_HOURS")
}
