package services

import (
	"context"
	"errors"
	"testing"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestDashboard_CollectsTotalsAndBreakdowns(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM buses").
		WillReturnRows(sqlmock.NewRows([]string{"buses", "routes", "schedules", "bookings", "revenue"}).
			AddRow(3, 2, 2, 5, 410.5))
	mock.ExpectQuery("FROM routes rt").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "bookings", "seats", "revenue"}).
			AddRow(1, "Airport", 4, 9, 360.0).
			AddRow(2, "Harbour", 1, 1, 50.5))
	mock.ExpectQuery("FROM buses b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "bus_number", "liters", "cost"}).
			AddRow(1, "B-1", 120.0, 180.0))

	d, err := ReportService{Reports: repositories.ReportRepository{DB: db}}.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Buses != 3 || d.Bookings != 5 || d.Revenue != 410.5 {
		t.Fatalf("unexpected totals %+v", d)
	}
	if len(d.RevenueByRoute) != 2 || d.RevenueByRoute[0].RouteName != "Airport" {
		t.Fatalf("unexpected revenue breakdown %+v", d.RevenueByRoute)
	}
	if len(d.FuelByBus) != 1 || d.FuelByBus[0].Cost != 180 {
		t.Fatalf("unexpected fuel breakdown %+v", d.FuelByBus)
	}
	assertMet(t, mock)
}

func TestDashboard_StoreFailureIsInternal(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset"))

	_, err := ReportService{Reports: repositories.ReportRepository{DB: db}}.Dashboard(context.Background())
	if !domain.IsInternal(err) {
		t.Fatalf("expected Internal, got %v", err)
	}
}

func TestFuelRecord_ValidatesBeforeInsert(t *testing.T) {
	svc := FuelService{}
	cases := []models.FuelRecord{
		{Liters: 10},
		{BusID: 1},
		{BusID: 1, Liters: 10, Cost: -1},
	}
	for _, f := range cases {
		if _, err := svc.Record(context.Background(), f); !domain.IsValidation(err) {
			t.Fatalf("%+v: expected Validation, got %v", f, err)
		}
	}
}

func TestFuelRecord_DefaultsFilledAt(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO fuel_records").
		WithArgs(1, 40.0, 60.0, 1000.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(8, 1))

	rec, err := FuelService{Fuel: repositories.FuelRepository{DB: db}}.Record(context.Background(), models.FuelRecord{
		BusID: 1, Liters: 40, Cost: 60, OdometerKM: 1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.ID != 8 || rec.FilledAt.IsZero() {
		t.Fatalf("unexpected record %+v", rec)
	}
	assertMet(t, mock)
}

func TestCreateRole_DuplicateIsConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO staff_roles").
		WithArgs("Driver").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := StaffService{Staff: repositories.StaffRepository{DB: db}}.CreateRole(context.Background(), " Driver ")
	if !domain.IsConflict(err) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestAssignToBus_UpsertsPerRole(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO bus_staff .* ON DUPLICATE KEY UPDATE staff_id").
		WithArgs(2, 1, 5).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := StaffService{Staff: repositories.StaffRepository{DB: db}}.AssignToBus(context.Background(), models.BusStaff{
		BusID: 2, StaffID: 5, RoleID: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertMet(t, mock)
}

func TestCreateStaff_RequiresRole(t *testing.T) {
	_, err := StaffService{}.Create(context.Background(), models.Staff{Name: "Ali"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected Validation, got %v", err)
	}
}
