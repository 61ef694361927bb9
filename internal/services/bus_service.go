package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
)

type BusService struct {
	Buses   repositories.BusRepository
	DB      *sql.DB
	Timeout time.Duration
}

func (s BusService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s BusService) List(ctx context.Context) ([]models.Bus, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	out, err := s.Buses.List(ctx)
	return out, domain.Internal(err)
}

func (s BusService) Get(ctx context.Context, id int64) (models.Bus, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	b, err := s.Buses.GetByID(ctx, nil, id)
	return b, domain.Internal(err)
}

// Save creates a bus or updates the one with the same bus number, together
// with its fare policy.
func (s BusService) Save(ctx context.Context, in models.BusInput) (models.Bus, error) {
	if err := validateBus(in); err != nil {
		return models.Bus{}, err
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	var bus models.Bus
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		id, err := s.Buses.Upsert(ctx, tx, in)
		if err != nil {
			return err
		}
		if err := s.Buses.SaveFarePolicy(ctx, tx, fareFrom(id, in)); err != nil {
			return err
		}
		bus, err = s.Buses.GetByID(ctx, tx, id)
		return err
	})
	return bus, domain.Internal(err)
}

// Update edits a bus by id; renaming onto an existing bus number is a Conflict.
func (s BusService) Update(ctx context.Context, id int64, in models.BusInput) (models.Bus, error) {
	if err := validateBus(in); err != nil {
		return models.Bus{}, err
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	var bus models.Bus
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		if err := s.Buses.Update(ctx, tx, id, in); err != nil {
			return err
		}
		if err := s.Buses.SaveFarePolicy(ctx, tx, fareFrom(id, in)); err != nil {
			return err
		}
		var err error
		bus, err = s.Buses.GetByID(ctx, tx, id)
		return err
	})
	return bus, domain.Internal(err)
}

func (s BusService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	return domain.Internal(s.Buses.Delete(ctx, id))
}

func fareFrom(busID int64, in models.BusInput) models.FarePolicy {
	return models.FarePolicy{
		BusID:       busID,
		BaseFare:    in.BaseFare,
		PerKMRate:   in.PerKMRate,
		PerStopRate: in.PerStopRate,
	}
}

func validateBus(in models.BusInput) error {
	switch {
	case strings.TrimSpace(in.BusNumber) == "":
		return domain.ValidationError{Field: "bus_number", Msg: "required"}
	case in.Capacity <= 0:
		return domain.ValidationError{Field: "capacity", Msg: "must be positive"}
	case in.BaseFare < 0 || in.PerKMRate < 0 || in.PerStopRate < 0:
		return domain.ValidationError{Field: "fare", Msg: "rates must not be negative"}
	}
	return nil
}
