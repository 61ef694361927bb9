package repositories

import (
	"context"
	"database/sql"
	"testing"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestBusUpsert_ReturnsExistingIDOnDuplicateNumber(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO buses .* ON DUPLICATE KEY UPDATE").
		WithArgs("B-1", "Volvo", 40, "active").
		WillReturnResult(sqlmock.NewResult(3, 2))

	id, err := BusRepository{DB: db}.Upsert(context.Background(), db, models.BusInput{
		BusNumber: " B-1 ", Model: "Volvo", Capacity: 40,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 3 {
		t.Fatalf("expected id 3, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBusDelete_MissingRowIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM buses WHERE id = \\?").
		WithArgs(9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := BusRepository{DB: db}.Delete(context.Background(), 9)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestBusDelete_WithBookedScheduleIsConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("DELETE FROM buses WHERE id = \\?").
		WithArgs(4).
		WillReturnError(&mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"})

	err := BusRepository{DB: db}.Delete(context.Background(), 4)
	if !domain.IsConflict(err) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestBusUpdate_DuplicateNumberIsConflict(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE buses SET bus_number").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := BusRepository{DB: db}.Update(context.Background(), db, 1, models.BusInput{BusNumber: "B-2", Capacity: 10})
	if !domain.IsConflict(err) {
		t.Fatalf("expected Conflict, got %v", err)
	}
}

func TestStaffAssignToBus_UnknownForeignKeyIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO bus_staff").
		WithArgs(1, 2, 3).
		WillReturnError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	err := StaffRepository{DB: db}.AssignToBus(context.Background(), 1, 3, 2)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestScheduleDecrementSeats_NoRowMeansNotEnoughSeats(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("UPDATE schedules SET available_seats = available_seats - \\? WHERE id = \\? AND available_seats >= \\?").
		WithArgs(4, 7, 4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := ScheduleRepository{DB: db}.DecrementSeats(context.Background(), db, 7, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected decrement to be refused")
	}
}

func TestScheduleSearch_MatchesStopsWithExistsNotJoins(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("JOIN routes r ON r.id = s.route_id LEFT JOIN fare_policies f ON f.bus_id = b.id WHERE s.available_seats > 0 AND EXISTS \\(").
		WithArgs("A", "A").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := (ScheduleRepository{DB: db}).Search(context.Background(), "A", "A", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScheduleSearch_AddsDateFilterOnlyWhenGiven(t *testing.T) {
	db, mock := newMock(t)
	cols := []string{"id", "bus_id", "bus_number", "route_id", "route_name", "departure_time", "arrival_time",
		"available_seats", "price", "base_fare", "per_km_rate", "per_stop_rate"}

	mock.ExpectQuery("AND DATE\\(s.departure_time\\) = \\? ORDER BY").
		WithArgs("A", "C", "2026-05-01").
		WillReturnRows(sqlmock.NewRows(cols))
	mock.ExpectQuery("dst.name = \\?\\) ORDER BY").
		WithArgs("A", "C").
		WillReturnRows(sqlmock.NewRows(cols))

	repo := ScheduleRepository{DB: db}
	if _, err := repo.Search(context.Background(), "A", "C", "2026-05-01"); err != nil {
		t.Fatalf("dated search: %v", err)
	}
	out, err := repo.Search(context.Background(), " A ", "C", "")
	if err != nil {
		t.Fatalf("undated search: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
