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
	"busfleet/internal/utils"

	"github.com/sirupsen/logrus"
)

type BookingService struct {
	Schedules repositories.ScheduleRepository
	Bookings  repositories.BookingRepository
	DB        *sql.DB
	Timeout   time.Duration
}

func (s BookingService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

// Book reserves seats on a schedule. The seat check, the decrement and the
// booking insert commit together or not at all.
//
// The charged price per seat is the schedule's stored price; a differing
// client quote is logged and ignored.
func (s BookingService) Book(ctx context.Context, req models.BookingRequest) (models.BookingResult, error) {
	req.PassengerName = utils.NormalizeSpace(req.PassengerName)
	req.PassengerEmail = utils.NormalizeEmail(req.PassengerEmail)
	if err := validateBooking(req); err != nil {
		return models.BookingResult{}, err
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	var out models.BookingResult
	err := intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		available, price, err := s.Schedules.LockSeats(ctx, tx, req.ScheduleID)
		if err != nil {
			return err
		}
		if req.Seats > available {
			return domain.InsufficientCapacityError{Requested: req.Seats, Available: available}
		}

		ok, err := s.Schedules.DecrementSeats(ctx, tx, req.ScheduleID, req.Seats)
		if err != nil {
			return err
		}
		if !ok {
			return domain.InsufficientCapacityError{Requested: req.Seats, Available: available}
		}

		if req.PricePerSeat > 0 && utils.Round2(req.PricePerSeat) != utils.Round2(price) {
			logrus.WithFields(logrus.Fields{
				"schedule_id":  req.ScheduleID,
				"quoted_price": req.PricePerSeat,
				"stored_price": price,
			}).Warn("client price per seat differs from schedule price; charging schedule price")
		}

		total := utils.Round2(float64(req.Seats) * price)
		id, err := s.Bookings.Insert(ctx, tx, models.Booking{
			ScheduleID:     req.ScheduleID,
			PassengerName:  req.PassengerName,
			PassengerEmail: req.PassengerEmail,
			SeatsBooked:    req.Seats,
			TotalPrice:     total,
		})
		if err != nil {
			return err
		}

		out = models.BookingResult{
			BookingID:    id,
			ScheduleID:   req.ScheduleID,
			PricePerSeat: price,
			TotalPrice:   total,
		}
		return nil
	})
	if err != nil {
		return models.BookingResult{}, domain.Internal(err)
	}
	return out, nil
}

// ResolveSchedule finds the schedule a booking form refers to.
func (s BookingService) ResolveSchedule(ctx context.Context, busID, routeID int64, arrival *time.Time) (int64, error) {
	if busID <= 0 || routeID <= 0 {
		return 0, domain.ValidationError{Field: "busId/routeId", Msg: "required"}
	}
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	id, err := s.Schedules.FindForBooking(ctx, busID, routeID, arrival)
	return id, domain.Internal(err)
}

func (s BookingService) Get(ctx context.Context, id int64) (models.BookingDetail, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	d, err := s.Bookings.GetDetail(ctx, id)
	return d, domain.Internal(err)
}

func (s BookingService) ListForPassenger(ctx context.Context, email string) ([]models.Booking, error) {
	email = utils.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ValidationError{Field: "email", Msg: "required"}
	}
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	out, err := s.Bookings.ListByEmail(ctx, email)
	return out, domain.Internal(err)
}

func validateBooking(req models.BookingRequest) error {
	switch {
	case req.ScheduleID <= 0:
		return domain.ValidationError{Field: "schedule_id", Msg: "required"}
	case req.Seats <= 0:
		return domain.ValidationError{Field: "seats", Msg: "must be a positive integer"}
	case strings.TrimSpace(req.PassengerName) == "":
		return domain.ValidationError{Field: "name", Msg: "required"}
	case !utils.LooksLikeEmail(req.PassengerEmail):
		return domain.ValidationError{Field: "email", Msg: "invalid address"}
	}
	return nil
}
