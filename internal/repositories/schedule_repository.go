package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
)

type ScheduleRepository struct {
	DB *sql.DB
}

func (r ScheduleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const scheduleSelect = `
	SELECT id, bus_id, route_id, departure_time, arrival_time, price, available_seats
	FROM schedules`

func scanSchedule(sc interface{ Scan(...any) error }) (models.Schedule, error) {
	var s models.Schedule
	err := sc.Scan(&s.ID, &s.BusID, &s.RouteID, &s.DepartureTime, &s.ArrivalTime, &s.Price, &s.AvailableSeats)
	return s, err
}

func (r ScheduleRepository) List(ctx context.Context) ([]models.Schedule, error) {
	rows, err := r.db().QueryContext(ctx, scheduleSelect+` ORDER BY departure_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Schedule{}
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetByRoute locks and returns the schedule assigned to a route.
func (r ScheduleRepository) GetByRoute(ctx context.Context, q intdb.DBTX, routeID int64) (models.Schedule, error) {
	s, err := scanSchedule(q.QueryRowContext(ctx, scheduleSelect+` WHERE route_id = ? LIMIT 1 FOR UPDATE`, routeID))
	if errors.Is(err, sql.ErrNoRows) {
		return s, domain.NotFoundError{Resource: "schedule", Err: err}
	}
	return s, err
}

// BusAssigned reports whether a bus already holds a schedule other than exceptID.
func (r ScheduleRepository) BusAssigned(ctx context.Context, q intdb.DBTX, busID, exceptID int64) (bool, error) {
	var id int64
	err := q.QueryRowContext(ctx, `SELECT id FROM schedules WHERE bus_id = ? AND id <> ? LIMIT 1 FOR UPDATE`, busID, exceptID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r ScheduleRepository) Insert(ctx context.Context, q intdb.DBTX, s models.Schedule) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO schedules (bus_id, route_id, departure_time, arrival_time, price, available_seats)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.BusID, s.RouteID, s.DepartureTime, s.ArrivalTime, s.Price, s.AvailableSeats)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r ScheduleRepository) Update(ctx context.Context, q intdb.DBTX, s models.Schedule) error {
	res, err := q.ExecContext(ctx, `
		UPDATE schedules
		SET bus_id = ?, departure_time = ?, arrival_time = ?, price = ?, available_seats = ?
		WHERE id = ?`,
		s.BusID, s.DepartureTime, s.ArrivalTime, s.Price, s.AvailableSeats, s.ID)
	if err != nil {
		return err
	}
	return requireAffected(res, "schedule")
}

func (r ScheduleRepository) Delete(ctx context.Context, q intdb.DBTX, id int64) error {
	res, err := q.ExecContext(ctx, `DELETE FROM schedules WHERE id = ?`, id)
	if err != nil {
		return bookedAsConflict(err, "schedule")
	}
	return requireAffected(res, "schedule")
}

// FindForBooking resolves the schedule a passenger picked by bus, route and,
// when given, arrival time.
func (r ScheduleRepository) FindForBooking(ctx context.Context, busID, routeID int64, arrival *time.Time) (int64, error) {
	query := `SELECT id FROM schedules WHERE bus_id = ? AND route_id = ?`
	args := []any{busID, routeID}
	if arrival != nil {
		query += ` AND arrival_time = ?`
		args = append(args, *arrival)
	}
	var id int64
	err := r.db().QueryRowContext(ctx, query+` LIMIT 1`, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.NotFoundError{Resource: "schedule", Err: err}
	}
	return id, err
}

// LockSeats reads the seat counter and price under a row lock. This row lock
// is the serialization point for concurrent bookings of one schedule.
func (r ScheduleRepository) LockSeats(ctx context.Context, q intdb.DBTX, id int64) (available int, price float64, err error) {
	err = q.QueryRowContext(ctx, `SELECT available_seats, price FROM schedules WHERE id = ? FOR UPDATE`, id).
		Scan(&available, &price)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, 0, domain.NotFoundError{Resource: "schedule", Err: err}
	}
	return available, price, err
}

// DecrementSeats takes seats off the counter only if enough remain.
// It returns false when the conditional update matched no row.
func (r ScheduleRepository) DecrementSeats(ctx context.Context, q intdb.DBTX, id int64, seats int) (bool, error) {
	res, err := q.ExecContext(ctx, `
		UPDATE schedules
		SET available_seats = available_seats - ?
		WHERE id = ? AND available_seats >= ?`, seats, id, seats)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// Search lists schedules whose route visits source before destination, once
// per schedule even when a route repeats a stop name.
// date (YYYY-MM-DD) is optional.
func (r ScheduleRepository) Search(ctx context.Context, source, destination, date string) ([]models.SearchResult, error) {
	query := `
		SELECT s.id, s.bus_id, b.bus_number, r.id, r.name,
		       s.departure_time, s.arrival_time, s.available_seats, s.price,
		       COALESCE(f.base_fare, 0), COALESCE(f.per_km_rate, 0), COALESCE(f.per_stop_rate, 0)
		FROM schedules s
		JOIN buses b ON b.id = s.bus_id
		JOIN routes r ON r.id = s.route_id
		LEFT JOIN fare_policies f ON f.bus_id = b.id
		WHERE s.available_seats > 0
		  AND EXISTS (
			SELECT 1 FROM stops src
			JOIN stops dst ON dst.route_id = src.route_id AND dst.stop_order > src.stop_order
			WHERE src.route_id = r.id AND src.name = ? AND dst.name = ?)`
	args := []any{strings.TrimSpace(source), strings.TrimSpace(destination)}
	if date = strings.TrimSpace(date); date != "" {
		query += ` AND DATE(s.departure_time) = ?`
		args = append(args, date)
	}
	query += ` ORDER BY s.departure_time`

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.SearchResult{}
	for rows.Next() {
		var sr models.SearchResult
		if err := rows.Scan(&sr.ScheduleID, &sr.BusID, &sr.BusNumber, &sr.RouteID, &sr.RouteName,
			&sr.DepartureTime, &sr.ArrivalTime, &sr.AvailableSeats, &sr.Price,
			&sr.Fare.BaseFare, &sr.Fare.PerKMRate, &sr.Fare.PerStopRate); err != nil {
			return out, err
		}
		sr.Fare.BusID = sr.BusID
		out = append(out, sr)
	}
	return out, rows.Err()
}
