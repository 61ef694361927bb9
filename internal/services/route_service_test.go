package services

import (
	"context"
	"testing"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func routeService(t *testing.T) (RouteService, sqlmock.Sqlmock) {
	db, mock := newMock(t)
	return RouteService{Routes: repositories.RouteRepository{DB: db}, DB: db}, mock
}

func TestRouteCreate_StoresStopsInOrder(t *testing.T) {
	svc, mock := routeService(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO routes").WithArgs("R1", "A", "C").WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectExec("DELETE FROM stops WHERE route_id = \\?").WithArgs(3).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO stops").WithArgs(3, "A", 1).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO stops").WithArgs(3, "B", 2).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("INSERT INTO stops").WithArgs(3, "C", 3).WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	rt, err := svc.Create(context.Background(), models.RouteInput{
		Name: "R1", Source: "A", Destination: "C",
		Stops: []models.Stop{{Name: "A"}, {Name: " B "}, {Name: "C"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.ID != 3 || len(rt.Stops) != 3 || rt.Stops[2].Order != 3 {
		t.Fatalf("unexpected route %+v", rt)
	}
	assertMet(t, mock)
}

func TestRouteUpdate_MissingRouteRollsBack(t *testing.T) {
	svc, mock := routeService(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE routes SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Update(context.Background(), 42, models.RouteInput{Name: "R", Source: "A", Destination: "B"})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	assertMet(t, mock)
}

func TestNormalizeRoute_RejectsDuplicateOrder(t *testing.T) {
	in := models.RouteInput{
		Name: "R", Source: "A", Destination: "B",
		Stops: []models.Stop{{Name: "A", Order: 1}, {Name: "B", Order: 1}},
	}
	if _, err := normalizeRoute(&in); !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}
