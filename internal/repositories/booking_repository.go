package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
)

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r BookingRepository) Insert(ctx context.Context, q intdb.DBTX, b models.Booking) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO bookings (schedule_id, passenger_name, passenger_email, seats_booked, total_price, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		b.ScheduleID, strings.TrimSpace(b.PassengerName), strings.TrimSpace(b.PassengerEmail), b.SeatsBooked, b.TotalPrice)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// SeatsBooked sums the seats already sold on a schedule.
func (r BookingRepository) SeatsBooked(ctx context.Context, q intdb.DBTX, scheduleID int64) (int, error) {
	var n int
	err := q.QueryRowContext(ctx, `SELECT COALESCE(SUM(seats_booked), 0) FROM bookings WHERE schedule_id = ?`, scheduleID).Scan(&n)
	return n, err
}

// GetDetail loads a booking with the schedule, bus and route it belongs to.
func (r BookingRepository) GetDetail(ctx context.Context, id int64) (models.BookingDetail, error) {
	var d models.BookingDetail
	err := r.db().QueryRowContext(ctx, `
		SELECT bk.id, bk.schedule_id, bk.passenger_name, bk.passenger_email, bk.seats_booked, bk.total_price, bk.created_at,
		       b.bus_number, rt.name, rt.source, rt.destination, s.departure_time, s.arrival_time
		FROM bookings bk
		JOIN schedules s ON s.id = bk.schedule_id
		JOIN buses b ON b.id = s.bus_id
		JOIN routes rt ON rt.id = s.route_id
		WHERE bk.id = ? LIMIT 1`, id).Scan(
		&d.ID, &d.ScheduleID, &d.PassengerName, &d.PassengerEmail, &d.SeatsBooked, &d.TotalPrice, &d.CreatedAt,
		&d.BusNumber, &d.RouteName, &d.Source, &d.Destination, &d.DepartureTime, &d.ArrivalTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return d, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return d, err
}

// ListByEmail returns a passenger's bookings, newest first.
func (r BookingRepository) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT id, schedule_id, passenger_name, passenger_email, seats_booked, total_price, created_at
		FROM bookings WHERE passenger_email = ? ORDER BY created_at DESC, id DESC`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Booking{}
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(&b.ID, &b.ScheduleID, &b.PassengerName, &b.PassengerEmail, &b.SeatsBooked, &b.TotalPrice, &b.CreatedAt); err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
