package services

import (
	"context"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
)

type FuelService struct {
	Fuel    repositories.FuelRepository
	Timeout time.Duration
}

func (s FuelService) Record(ctx context.Context, f models.FuelRecord) (models.FuelRecord, error) {
	switch {
	case f.BusID <= 0:
		return f, domain.ValidationError{Field: "bus_id", Msg: "required"}
	case f.Liters <= 0:
		return f, domain.ValidationError{Field: "liters", Msg: "must be positive"}
	case f.Cost < 0 || f.OdometerKM < 0:
		return f, domain.ValidationError{Field: "cost/odometer_km", Msg: "must not be negative"}
	}
	if f.FilledAt.IsZero() {
		f.FilledAt = time.Now()
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	id, err := s.Fuel.Insert(ctx, f)
	if err != nil {
		return f, domain.Internal(err)
	}
	f.ID = id
	return f, nil
}

func (s FuelService) List(ctx context.Context, busID int64) ([]models.FuelRecord, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	out, err := s.Fuel.List(ctx, busID)
	return out, domain.Internal(err)
}
