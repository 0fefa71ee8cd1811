package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeeRoundsUpToFullHours(t *testing.T) {
	entry := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		stay time.Duration
		want float64
	}{
		{"ninety minutes bills two hours", 90 * time.Minute, 10.00},
		{"ten minutes bills the minimum hour", 10 * time.Minute, 5.00},
		{"exactly one hour bills one hour", time.Hour, 5.00},
		{"one hour and a second bills two", time.Hour + time.Second, 10.00},
		{"full day", 24 * time.Hour, 120.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fee(5.0, 1, entry, entry.Add(tt.stay))
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestFeeAppliesMinimum(t *testing.T) {
	entry := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	assert.InDelta(t, 5.00, Fee(5.0, 1, entry, entry), 0.001)
	assert.InDelta(t, 15.00, Fee(5.0, 3, entry, entry.Add(30*time.Minute)), 0.001)

	// Clock skew between entry and exit must not produce a negative fee.
	assert.InDelta(t, 5.00, Fee(5.0, 1, entry, entry.Add(-10*time.Minute)), 0.001)
}

func TestFeeUsesConfiguredRate(t *testing.T) {
	entry := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	assert.InDelta(t, 6.00, Fee(3.0, 1, entry, entry.Add(2*time.Hour)), 0.001)
	assert.InDelta(t, 0.00, Fee(0.0, 1, entry, entry.Add(2*time.Hour)), 0.001)
}

func TestFeeRoundsToCents(t *testing.T) {
	entry := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	got := Fee(3.333, 1, entry, entry.Add(3*time.Hour))
	assert.InDelta(t, 10.00, got, 0.001)
}
