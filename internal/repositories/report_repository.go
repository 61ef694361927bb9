package repositories

import (
	"context"
	"database/sql"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain/models"
)

type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Totals fills the scalar counters of the dashboard.
func (r ReportRepository) Totals(ctx context.Context, d *models.Dashboard) error {
	return r.db().QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM buses),
			(SELECT COUNT(*) FROM routes),
			(SELECT COUNT(*) FROM schedules),
			(SELECT COUNT(*) FROM bookings),
			(SELECT COALESCE(SUM(total_price), 0) FROM bookings)`).
		Scan(&d.Buses, &d.Routes, &d.ActiveSchedules, &d.Bookings, &d.Revenue)
}

func (r ReportRepository) RevenueByRoute(ctx context.Context) ([]models.RouteRevenue, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT rt.id, rt.name, COUNT(bk.id), COALESCE(SUM(bk.seats_booked), 0), COALESCE(SUM(bk.total_price), 0)
		FROM routes rt
		LEFT JOIN schedules s ON s.route_id = rt.id
		LEFT JOIN bookings bk ON bk.schedule_id = s.id
		GROUP BY rt.id, rt.name
		ORDER BY 5 DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.RouteRevenue{}
	for rows.Next() {
		var rr models.RouteRevenue
		if err := rows.Scan(&rr.RouteID, &rr.RouteName, &rr.Bookings, &rr.Seats, &rr.Revenue); err != nil {
			return out, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r ReportRepository) FuelByBus(ctx context.Context) ([]models.BusFuel, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT b.id, b.bus_number, COALESCE(SUM(f.liters), 0), COALESCE(SUM(f.cost), 0)
		FROM buses b
		LEFT JOIN fuel_records f ON f.bus_id = b.id
		GROUP BY b.id, b.bus_number
		ORDER BY b.bus_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BusFuel{}
	for rows.Next() {
		var bf models.BusFuel
		if err := rows.Scan(&bf.BusID, &bf.BusNumber, &bf.Liters, &bf.Cost); err != nil {
			return out, err
		}
		out = append(out, bf)
	}
	return out, rows.Err()
}
