package utils

import (
	"math"

	"busfleet/internal/domain/models"
)

// ComputeFare prices a journey as base fare + per-km rate x distance, rounded to cents.
// When the distance could not be resolved it returns fallbackPrice (the schedule's stored price).
func ComputeFare(policy models.FarePolicy, distanceKM float64, resolved bool, fallbackPrice float64) float64 {
	if !resolved || distanceKM < 0 {
		return fallbackPrice
	}
	return Round2(policy.BaseFare + policy.PerKMRate*distanceKM)
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
