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

type BusRepository struct {
	DB *sql.DB
}

func (r BusRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const busSelect = `
	SELECT b.id, b.bus_number, b.model, b.capacity, b.status, b.created_at,
	       COALESCE(f.base_fare, 0), COALESCE(f.per_km_rate, 0), COALESCE(f.per_stop_rate, 0)
	FROM buses b
	LEFT JOIN fare_policies f ON f.bus_id = b.id`

func scanBus(sc interface{ Scan(...any) error }) (models.Bus, error) {
	var b models.Bus
	err := sc.Scan(&b.ID, &b.BusNumber, &b.Model, &b.Capacity, &b.Status, &b.CreatedAt,
		&b.Fare.BaseFare, &b.Fare.PerKMRate, &b.Fare.PerStopRate)
	b.Fare.BusID = b.ID
	return b, err
}

func (r BusRepository) List(ctx context.Context) ([]models.Bus, error) {
	rows, err := r.db().QueryContext(ctx, busSelect+` ORDER BY b.bus_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Bus{}
	for rows.Next() {
		b, err := scanBus(rows)
		if err != nil {
			return out, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID loads a bus with its fare policy. q may be a transaction.
func (r BusRepository) GetByID(ctx context.Context, q intdb.DBTX, id int64) (models.Bus, error) {
	if q == nil {
		q = r.db()
	}
	b, err := scanBus(q.QueryRowContext(ctx, busSelect+` WHERE b.id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bus{}, domain.NotFoundError{Resource: "bus", Err: err}
	}
	return b, err
}

// Upsert inserts a bus or, when bus_number already exists, updates it in place.
// It returns the id of the inserted or updated row.
func (r BusRepository) Upsert(ctx context.Context, q intdb.DBTX, in models.BusInput) (int64, error) {
	res, err := q.ExecContext(ctx, `
		INSERT INTO buses (bus_number, model, capacity, status)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			model = VALUES(model),
			capacity = VALUES(capacity),
			status = VALUES(status),
			id = LAST_INSERT_ID(id)`,
		strings.TrimSpace(in.BusNumber), strings.TrimSpace(in.Model), in.Capacity, busStatus(in.Status))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r BusRepository) Update(ctx context.Context, q intdb.DBTX, id int64, in models.BusInput) error {
	res, err := q.ExecContext(ctx, `
		UPDATE buses SET bus_number = ?, model = ?, capacity = ?, status = ?
		WHERE id = ?`,
		strings.TrimSpace(in.BusNumber), strings.TrimSpace(in.Model), in.Capacity, busStatus(in.Status), id)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return domain.ConflictError{Resource: "bus", Msg: "bus number already exists", Err: err}
		}
		return err
	}
	return requireAffected(res, "bus")
}

// SaveFarePolicy creates or replaces the fare policy of a bus.
func (r BusRepository) SaveFarePolicy(ctx context.Context, q intdb.DBTX, f models.FarePolicy) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO fare_policies (bus_id, base_fare, per_km_rate, per_stop_rate)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			base_fare = VALUES(base_fare),
			per_km_rate = VALUES(per_km_rate),
			per_stop_rate = VALUES(per_stop_rate)`,
		f.BusID, f.BaseFare, f.PerKMRate, f.PerStopRate)
	return err
}

func (r BusRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM buses WHERE id = ?`, id)
	if err != nil {
		return bookedAsConflict(err, "bus")
	}
	return requireAffected(res, "bus")
}

func busStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "active"
	}
	return s
}

// requireAffected maps zero affected rows to NotFound. The DSN sets
// clientFoundRows, so unchanged-but-matched rows still count.
// bookedAsConflict maps a delete blocked by bookings on the schedule to Conflict.
func bookedAsConflict(err error, resource string) error {
	if intdb.IsRowReferenced(err) {
		return domain.ConflictError{Resource: resource, Msg: "schedule has bookings", Err: err}
	}
	return err
}

func requireAffected(res sql.Result, resource string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFoundError{Resource: resource}
	}
	return nil
}
