package repositories

import (
	"context"
	"database/sql"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain/models"
)

type FuelRepository struct {
	DB *sql.DB
}

func (r FuelRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r FuelRepository) Insert(ctx context.Context, f models.FuelRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO fuel_records (bus_id, liters, cost, odometer_km, filled_at)
		VALUES (?, ?, ?, ?, ?)`, f.BusID, f.Liters, f.Cost, f.OdometerKM, f.FilledAt)
	if err != nil {
		return 0, foreignKeyAsNotFound(err, "bus")
	}
	return res.LastInsertId()
}

// List returns fuel records, optionally restricted to one bus (busID > 0).
func (r FuelRepository) List(ctx context.Context, busID int64) ([]models.FuelRecord, error) {
	query := `SELECT id, bus_id, liters, cost, odometer_km, filled_at FROM fuel_records`
	args := []any{}
	if busID > 0 {
		query += ` WHERE bus_id = ?`
		args = append(args, busID)
	}
	rows, err := r.db().QueryContext(ctx, query+` ORDER BY filled_at DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.FuelRecord{}
	for rows.Next() {
		var f models.FuelRecord
		if err := rows.Scan(&f.ID, &f.BusID, &f.Liters, &f.Cost, &f.OdometerKM, &f.FilledAt); err != nil {
			return out, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
