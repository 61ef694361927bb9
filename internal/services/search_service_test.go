package services

import (
	"context"
	"testing"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var searchCols = []string{"id", "bus_id", "bus_number", "route_id", "route_name", "departure_time", "arrival_time",
	"available_seats", "price", "base_fare", "per_km_rate", "per_stop_rate"}

func searchService(t *testing.T) (SearchService, sqlmock.Sqlmock) {
	db, mock := newMock(t)
	return SearchService{
		Schedules: repositories.ScheduleRepository{DB: db},
		Routes:    repositories.RouteRepository{DB: db},
	}, mock
}

func TestSearch_PricesFromShortestDistance(t *testing.T) {
	svc, mock := searchService(t)
	dep := time.Date(2026, 3, 1, 8, 0, 0, 0, time.Local)

	mock.ExpectQuery("WHERE src.route_id = r.id AND src.name = \\? AND dst.name = \\?").
		WithArgs("A", "C", "2026-03-01").
		WillReturnRows(sqlmock.NewRows(searchCols).
			AddRow(9, 2, "BUS-02", 1, "R1", dep, dep.Add(2*time.Hour), 40, 80.0, 50.0, 2.0, 5.0))
	mock.ExpectQuery("FROM distance_legs WHERE route_id = \\?").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"route_id", "from_stop", "to_stop", "distance_km"}).
			AddRow(1, "A", "B", 10.0).
			AddRow(1, "B", "C", 15.0))

	out, err := svc.Search(context.Background(), "A", "C", "2026-03-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 result, got %d", len(out))
	}
	if out[0].Price != 100 {
		t.Fatalf("expected price 100.00, got %v", out[0].Price)
	}
	if out[0].DistanceKM == nil || *out[0].DistanceKM != 25 {
		t.Fatalf("expected distance 25, got %v", out[0].DistanceKM)
	}
	assertMet(t, mock)
}

func TestSearch_UnresolvedDistanceKeepsStoredPrice(t *testing.T) {
	svc, mock := searchService(t)
	dep := time.Now()

	mock.ExpectQuery("FROM schedules s").
		WithArgs("A", "C").
		WillReturnRows(sqlmock.NewRows(searchCols).
			AddRow(9, 2, "BUS-02", 1, "R1", dep, dep.Add(time.Hour), 40, 80.0, 50.0, 2.0, 0.0).
			AddRow(10, 3, "BUS-03", 1, "R1", dep, dep.Add(time.Hour), 12, 70.0, 10.0, 1.0, 0.0))
	mock.ExpectQuery("FROM distance_legs").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"route_id", "from_stop", "to_stop", "distance_km"}).
			AddRow(1, "A", "B", 10.0))

	out, err := svc.Search(context.Background(), "A", "C", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 || out[0].Price != 80 || out[1].Price != 70 {
		t.Fatalf("expected stored prices, got %+v", out)
	}
	if out[0].DistanceKM != nil {
		t.Fatalf("expected no distance when unresolved")
	}
	assertMet(t, mock)
}

func TestSearch_Validation(t *testing.T) {
	svc, mock := searchService(t)

	if _, err := svc.Search(context.Background(), "", "C", ""); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := svc.Search(context.Background(), "A", "C", "03/01/2026"); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for date, got %v", err)
	}
	assertMet(t, mock)
}
