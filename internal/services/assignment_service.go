package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
)

// AssignmentService binds buses to routes. A bus holds at most one schedule,
// and a route carries at most one schedule together with its distance legs.
type AssignmentService struct {
	Buses     repositories.BusRepository
	Routes    repositories.RouteRepository
	Schedules repositories.ScheduleRepository
	Bookings  repositories.BookingRepository
	DB        *sql.DB
	Timeout   time.Duration
}

func (s AssignmentService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s AssignmentService) List(ctx context.Context) ([]models.Schedule, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	out, err := s.Schedules.List(ctx)
	return out, domain.Internal(err)
}

// Assign creates the schedule and the route's legs in one transaction.
func (s AssignmentService) Assign(ctx context.Context, in models.AssignInput) (models.AssignResult, error) {
	if err := validateAssign(in); err != nil {
		return models.AssignResult{}, err
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	var out models.AssignResult
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		bus, err := s.Buses.GetByID(ctx, tx, in.BusID)
		if err != nil {
			return err
		}
		if err := checkSeats(in, bus); err != nil {
			return err
		}
		if _, err := s.Routes.GetByID(ctx, tx, in.RouteID); err != nil {
			return err
		}

		held, err := s.Schedules.BusAssigned(ctx, tx, in.BusID, 0)
		if err != nil {
			return err
		}
		if held {
			return domain.ConflictError{Resource: "bus", Msg: "bus is already assigned to a route"}
		}
		if _, err := s.Schedules.GetByRoute(ctx, tx, in.RouteID); err == nil {
			return domain.ConflictError{Resource: "route", Msg: "route already has a bus assigned"}
		} else if !domain.IsNotFound(err) {
			return err
		}

		id, err := s.Schedules.Insert(ctx, tx, scheduleFrom(in, bus))
		if err != nil {
			if intdb.IsDuplicateKey(err) {
				return domain.ConflictError{Resource: "bus", Msg: "bus is already assigned to a route", Err: err}
			}
			return err
		}
		if err := s.replaceLegs(ctx, tx, in.RouteID, in.Distances); err != nil {
			return err
		}

		out = models.AssignResult{ScheduleID: id, BusNumber: bus.BusNumber}
		return nil
	})
	if err != nil {
		return models.AssignResult{}, domain.Internal(err)
	}
	return out, nil
}

// Reassign updates the route's schedule in place and replaces its legs.
func (s AssignmentService) Reassign(ctx context.Context, in models.AssignInput) (models.AssignResult, error) {
	if err := validateAssign(in); err != nil {
		return models.AssignResult{}, err
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	var out models.AssignResult
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		existing, err := s.Schedules.GetByRoute(ctx, tx, in.RouteID)
		if err != nil {
			return err
		}
		bus, err := s.Buses.GetByID(ctx, tx, in.BusID)
		if err != nil {
			return err
		}
		if err := checkSeats(in, bus); err != nil {
			return err
		}
		held, err := s.Schedules.BusAssigned(ctx, tx, in.BusID, existing.ID)
		if err != nil {
			return err
		}
		if held {
			return domain.ConflictError{Resource: "bus", Msg: "bus is already assigned to another route"}
		}

		booked, err := s.Bookings.SeatsBooked(ctx, tx, existing.ID)
		if err != nil {
			return err
		}
		seats, err := seatsAfterBookings(in, bus, booked)
		if err != nil {
			return err
		}

		next := scheduleFrom(in, bus)
		next.ID = existing.ID
		next.AvailableSeats = seats
		if err := s.Schedules.Update(ctx, tx, next); err != nil {
			if intdb.IsDuplicateKey(err) {
				return domain.ConflictError{Resource: "bus", Msg: "bus is already assigned to another route", Err: err}
			}
			return err
		}
		if err := s.replaceLegs(ctx, tx, in.RouteID, in.Distances); err != nil {
			return err
		}

		out = models.AssignResult{ScheduleID: existing.ID, BusNumber: bus.BusNumber}
		return nil
	})
	if err != nil {
		return models.AssignResult{}, domain.Internal(err)
	}
	return out, nil
}

// Deassign removes the route's schedule and legs. A route without a schedule
// is NotFound and nothing is deleted.
func (s AssignmentService) Deassign(ctx context.Context, routeID int64) error {
	if routeID <= 0 {
		return domain.ValidationError{Field: "route_id", Msg: "required"}
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		existing, err := s.Schedules.GetByRoute(ctx, tx, routeID)
		if err != nil {
			return err
		}
		if err := s.Routes.DeleteLegs(ctx, tx, routeID); err != nil {
			return err
		}
		return s.Schedules.Delete(ctx, tx, existing.ID)
	})
	return domain.Internal(err)
}

func (s AssignmentService) replaceLegs(ctx context.Context, tx *sql.Tx, routeID int64, legs []models.DistanceLeg) error {
	if err := s.Routes.DeleteLegs(ctx, tx, routeID); err != nil {
		return err
	}
	return s.Routes.InsertLegs(ctx, tx, routeID, legs)
}

func scheduleFrom(in models.AssignInput, bus models.Bus) models.Schedule {
	seats := in.AvailableSeats
	if seats == 0 {
		seats = bus.Capacity
	}
	return models.Schedule{
		BusID:          in.BusID,
		RouteID:        in.RouteID,
		DepartureTime:  in.DepartureTime,
		ArrivalTime:    in.ArrivalTime,
		Price:          in.Price,
		AvailableSeats: seats,
	}
}

func checkSeats(in models.AssignInput, bus models.Bus) error {
	if bus.Capacity > 0 && in.AvailableSeats > bus.Capacity {
		return domain.ValidationError{Field: "available_seats", Msg: "exceeds bus capacity"}
	}
	return nil
}

// seatsAfterBookings keeps sold seats plus available seats within the bus
// capacity. Zero requested means every unsold seat.
func seatsAfterBookings(in models.AssignInput, bus models.Bus, booked int) (int, error) {
	remaining := bus.Capacity - booked
	switch {
	case remaining < 0:
		return 0, domain.ValidationError{Field: "bus_id", Msg: fmt.Sprintf("bus capacity %d is below the %d seats already booked", bus.Capacity, booked)}
	case in.AvailableSeats == 0:
		return remaining, nil
	case in.AvailableSeats > remaining:
		return 0, domain.ValidationError{Field: "available_seats", Msg: fmt.Sprintf("only %d seats remain after %d booked", remaining, booked)}
	}
	return in.AvailableSeats, nil
}

// maxLegs bounds one route's leg set; the resolver explores every edge-disjoint path.
const maxLegs = 64

func validateAssign(in models.AssignInput) error {
	switch {
	case in.RouteID <= 0:
		return domain.ValidationError{Field: "route_id", Msg: "required"}
	case in.BusID <= 0:
		return domain.ValidationError{Field: "bus_id", Msg: "required"}
	case in.DepartureTime.IsZero() || in.ArrivalTime.IsZero():
		return domain.ValidationError{Field: "departure_time/arrival_time", Msg: "required"}
	case !in.ArrivalTime.After(in.DepartureTime):
		return domain.ValidationError{Field: "arrival_time", Msg: "must be after departure_time"}
	case in.Price < 0:
		return domain.ValidationError{Field: "price", Msg: "must not be negative"}
	case in.AvailableSeats < 0:
		return domain.ValidationError{Field: "available_seats", Msg: "must not be negative"}
	case len(in.Distances) > maxLegs:
		return domain.ValidationError{Field: "distances", Msg: fmt.Sprintf("at most %d legs per route", maxLegs)}
	}
	for _, l := range in.Distances {
		if strings.TrimSpace(l.FromStop) == "" || strings.TrimSpace(l.ToStop) == "" {
			return domain.ValidationError{Field: "distances", Msg: "from_stop and to_stop are required"}
		}
		if l.DistanceKM < 0 {
			return domain.ValidationError{Field: "distances", Msg: "distance must not be negative"}
		}
	}
	return nil
}
