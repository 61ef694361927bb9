package utils

import (
	"testing"

	"busfleet/internal/domain/models"
)

func TestComputeFare_BasePlusDistance(t *testing.T) {
	policy := models.FarePolicy{BaseFare: 50, PerKMRate: 2, PerStopRate: 3}
	if got := ComputeFare(policy, 25, true, 999); got != 100 {
		t.Fatalf("expected 100.00, got %v", got)
	}
}

func TestComputeFare_RoundsToCents(t *testing.T) {
	policy := models.FarePolicy{BaseFare: 10, PerKMRate: 1.333}
	if got := ComputeFare(policy, 3, true, 0); got != 14 {
		t.Fatalf("expected 14.00, got %v", got)
	}
	if got := ComputeFare(models.FarePolicy{PerKMRate: 0.125}, 1, true, 0); got != 0.13 {
		t.Fatalf("expected 0.13, got %v", got)
	}
}

func TestComputeFare_UnresolvedFallsBack(t *testing.T) {
	policy := models.FarePolicy{BaseFare: 50, PerKMRate: 2}
	if got := ComputeFare(policy, 0, false, 75.5); got != 75.5 {
		t.Fatalf("expected fallback 75.5, got %v", got)
	}
}
