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

type RouteRepository struct {
	DB *sql.DB
}

func (r RouteRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT id, name, source, destination FROM routes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Route{}
	for rows.Next() {
		var rt models.Route
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Source, &rt.Destination); err != nil {
			return out, err
		}
		out = append(out, rt)
	}
	return out, rows.Err()
}

// GetByID loads a route without its stops.
func (r RouteRepository) GetByID(ctx context.Context, q intdb.DBTX, id int64) (models.Route, error) {
	if q == nil {
		q = r.db()
	}
	var rt models.Route
	err := q.QueryRowContext(ctx, `SELECT id, name, source, destination FROM routes WHERE id = ? LIMIT 1`, id).
		Scan(&rt.ID, &rt.Name, &rt.Source, &rt.Destination)
	if errors.Is(err, sql.ErrNoRows) {
		return rt, domain.NotFoundError{Resource: "route", Err: err}
	}
	return rt, err
}

func (r RouteRepository) Insert(ctx context.Context, q intdb.DBTX, in models.RouteInput) (int64, error) {
	res, err := q.ExecContext(ctx, `INSERT INTO routes (name, source, destination) VALUES (?, ?, ?)`,
		strings.TrimSpace(in.Name), strings.TrimSpace(in.Source), strings.TrimSpace(in.Destination))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r RouteRepository) Update(ctx context.Context, q intdb.DBTX, id int64, in models.RouteInput) error {
	res, err := q.ExecContext(ctx, `UPDATE routes SET name = ?, source = ?, destination = ? WHERE id = ?`,
		strings.TrimSpace(in.Name), strings.TrimSpace(in.Source), strings.TrimSpace(in.Destination), id)
	if err != nil {
		return err
	}
	return requireAffected(res, "route")
}

// Delete removes the route; stops, legs and schedules go with it via cascade.
func (r RouteRepository) Delete(ctx context.Context, q intdb.DBTX, id int64) error {
	res, err := q.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return bookedAsConflict(err, "route")
	}
	return requireAffected(res, "route")
}

func (r RouteRepository) ListStops(ctx context.Context, q intdb.DBTX, routeID int64) ([]models.Stop, error) {
	if q == nil {
		q = r.db()
	}
	rows, err := q.QueryContext(ctx, `
		SELECT id, route_id, name, stop_order
		FROM stops WHERE route_id = ? ORDER BY stop_order`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Stop{}
	for rows.Next() {
		var s models.Stop
		if err := rows.Scan(&s.ID, &s.RouteID, &s.Name, &s.Order); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ReplaceStops swaps the whole stop list of a route. Run it inside a transaction.
func (r RouteRepository) ReplaceStops(ctx context.Context, q intdb.DBTX, routeID int64, stops []models.Stop) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM stops WHERE route_id = ?`, routeID); err != nil {
		return err
	}
	for _, s := range stops {
		if _, err := q.ExecContext(ctx, `INSERT INTO stops (route_id, name, stop_order) VALUES (?, ?, ?)`,
			routeID, strings.TrimSpace(s.Name), s.Order); err != nil {
			if intdb.IsDuplicateKey(err) {
				return domain.ValidationError{Field: "stops", Msg: "stop order must be unique per route", Err: err}
			}
			return err
		}
	}
	return nil
}

func (r RouteRepository) ListLegs(ctx context.Context, q intdb.DBTX, routeID int64) ([]models.DistanceLeg, error) {
	if q == nil {
		q = r.db()
	}
	rows, err := q.QueryContext(ctx, `
		SELECT route_id, from_stop, to_stop, distance_km
		FROM distance_legs WHERE route_id = ? ORDER BY id`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.DistanceLeg{}
	for rows.Next() {
		var l models.DistanceLeg
		if err := rows.Scan(&l.RouteID, &l.FromStop, &l.ToStop, &l.DistanceKM); err != nil {
			return out, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r RouteRepository) InsertLegs(ctx context.Context, q intdb.DBTX, routeID int64, legs []models.DistanceLeg) error {
	for _, l := range legs {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO distance_legs (route_id, from_stop, to_stop, distance_km)
			VALUES (?, ?, ?, ?)`,
			routeID, strings.TrimSpace(l.FromStop), strings.TrimSpace(l.ToStop), l.DistanceKM); err != nil {
			return err
		}
	}
	return nil
}

func (r RouteRepository) DeleteLegs(ctx context.Context, q intdb.DBTX, routeID int64) error {
	_, err := q.ExecContext(ctx, `DELETE FROM distance_legs WHERE route_id = ?`, routeID)
	return err
}
