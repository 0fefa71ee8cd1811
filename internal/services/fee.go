package services

import (
	"math"
	"time"
)

// Fee computes the charge for a stay. Every started hour is billed in full,
// and a stay is never billed for less than minHours (so a zero or negative
// duration still pays the minimum). The result is rounded to cents.
func Fee(rate float64, minHours int, entry, exit time.Time) float64 {
	hours := exit.Sub(entry).Hours()

	billable := math.Ceil(hours)
	if billable < float64(minHours) {
		billable = float64(minHours)
	}

	fee := billable * rate
	return math.Round(fee*100) / 100
}
