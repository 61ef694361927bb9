package services

import (
	"context"
	"errors"
	"testing"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func bookingService(t *testing.T) (BookingService, sqlmock.Sqlmock) {
	db, mock := newMock(t)
	return BookingService{
		Schedules: repositories.ScheduleRepository{DB: db},
		Bookings:  repositories.BookingRepository{DB: db},
		DB:        db,
	}, mock
}

func expectLock(mock sqlmock.Sqlmock, scheduleID int64, available int, price float64) {
	mock.ExpectQuery("SELECT available_seats, price FROM schedules WHERE id = \\? FOR UPDATE").
		WithArgs(scheduleID).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "price"}).AddRow(available, price))
}

func TestBook_DecrementsAndInserts(t *testing.T) {
	svc, mock := bookingService(t)

	mock.ExpectBegin()
	expectLock(mock, 7, 5, 40.0)
	mock.ExpectExec("UPDATE schedules SET available_seats = available_seats - \\?").
		WithArgs(3, 7, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(7, "Ann Lee", "ann@example.com", 3, 120.0).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	res, err := svc.Book(context.Background(), models.BookingRequest{
		ScheduleID:     7,
		Seats:          3,
		PassengerName:  "  Ann   Lee ",
		PassengerEmail: "Ann@Example.com",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.BookingID != 11 || res.TotalPrice != 120 || res.PricePerSeat != 40 {
		t.Fatalf("unexpected result %+v", res)
	}
	assertMet(t, mock)
}

func TestBook_ChargesSchedulePriceNotClientQuote(t *testing.T) {
	svc, mock := bookingService(t)

	mock.ExpectBegin()
	expectLock(mock, 7, 10, 25.5)
	mock.ExpectExec("UPDATE schedules").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(7, "Bo", "bo@example.com", 2, 51.0).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	res, err := svc.Book(context.Background(), models.BookingRequest{
		ScheduleID: 7, Seats: 2, PassengerName: "Bo", PassengerEmail: "bo@example.com", PricePerSeat: 1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalPrice != 51 {
		t.Fatalf("expected total 51 from stored price, got %v", res.TotalPrice)
	}
	assertMet(t, mock)
}

func TestBook_InsufficientSeatsLeavesCounter(t *testing.T) {
	svc, mock := bookingService(t)

	mock.ExpectBegin()
	expectLock(mock, 7, 2, 40.0)
	mock.ExpectRollback()

	_, err := svc.Book(context.Background(), models.BookingRequest{
		ScheduleID: 7, Seats: 3, PassengerName: "Ann", PassengerEmail: "ann@example.com",
	})
	if !domain.IsInsufficientCapacity(err) {
		t.Fatalf("expected InsufficientCapacity, got %v", err)
	}
	assertMet(t, mock)
}

// Two 3-seat bookings against 5 seats: the row lock serializes them, so the
// second transaction sees the decremented counter and fails.
func TestBook_SecondOverlappingBookingFails(t *testing.T) {
	svc, mock := bookingService(t)

	mock.ExpectBegin()
	expectLock(mock, 7, 5, 10.0)
	mock.ExpectExec("UPDATE schedules").WithArgs(3, 7, 3).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	expectLock(mock, 7, 2, 10.0)
	mock.ExpectRollback()

	req := models.BookingRequest{ScheduleID: 7, Seats: 3, PassengerName: "A", PassengerEmail: "a@example.com"}
	if _, err := svc.Book(context.Background(), req); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := svc.Book(context.Background(), req)
	if !domain.IsInsufficientCapacity(err) {
		t.Fatalf("expected InsufficientCapacity for second booking, got %v", err)
	}
	assertMet(t, mock)
}

func TestBook_ConditionalDecrementGuardsCounter(t *testing.T) {
	svc, mock := bookingService(t)

	mock.ExpectBegin()
	expectLock(mock, 7, 5, 10.0)
	mock.ExpectExec("UPDATE schedules").WithArgs(3, 7, 3).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Book(context.Background(), models.BookingRequest{
		ScheduleID: 7, Seats: 3, PassengerName: "A", PassengerEmail: "a@example.com",
	})
	if !domain.IsInsufficientCapacity(err) {
		t.Fatalf("expected InsufficientCapacity, got %v", err)
	}
	assertMet(t, mock)
}

func TestBook_InsertFailureRollsBackDecrement(t *testing.T) {
	svc, mock := bookingService(t)

	mock.ExpectBegin()
	expectLock(mock, 7, 5, 10.0)
	mock.ExpectExec("UPDATE schedules").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO bookings").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := svc.Book(context.Background(), models.BookingRequest{
		ScheduleID: 7, Seats: 1, PassengerName: "A", PassengerEmail: "a@example.com",
	})
	if !domain.IsInternal(err) {
		t.Fatalf("expected InternalError, got %v", err)
	}
	assertMet(t, mock)
}

func TestBook_UnknownSchedule(t *testing.T) {
	svc, mock := bookingService(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT available_seats, price FROM schedules").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"available_seats", "price"}))
	mock.ExpectRollback()

	_, err := svc.Book(context.Background(), models.BookingRequest{
		ScheduleID: 99, Seats: 1, PassengerName: "A", PassengerEmail: "a@example.com",
	})
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	assertMet(t, mock)
}

func TestBook_ValidationSkipsStore(t *testing.T) {
	svc, mock := bookingService(t)

	cases := []models.BookingRequest{
		{ScheduleID: 1, Seats: 0, PassengerName: "A", PassengerEmail: "a@example.com"},
		{ScheduleID: 1, Seats: -2, PassengerName: "A", PassengerEmail: "a@example.com"},
		{ScheduleID: 0, Seats: 1, PassengerName: "A", PassengerEmail: "a@example.com"},
		{ScheduleID: 1, Seats: 1, PassengerName: " ", PassengerEmail: "a@example.com"},
		{ScheduleID: 1, Seats: 1, PassengerName: "A", PassengerEmail: "not-an-email"},
	}
	for _, req := range cases {
		if _, err := svc.Book(context.Background(), req); !domain.IsValidation(err) {
			t.Fatalf("%+v: expected ValidationError, got %v", req, err)
		}
	}
	assertMet(t, mock)
}

func TestResolveSchedule(t *testing.T) {
	svc, mock := bookingService(t)

	mock.ExpectQuery("SELECT id FROM schedules WHERE bus_id = \\? AND route_id = \\?").
		WithArgs(2, 3).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))
	mock.ExpectQuery("SELECT id FROM schedules").
		WithArgs(2, 4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	id, err := svc.ResolveSchedule(context.Background(), 2, 3, nil)
	if err != nil || id != 8 {
		t.Fatalf("expected schedule 8, got %d (%v)", id, err)
	}
	if _, err := svc.ResolveSchedule(context.Background(), 2, 4, nil); !domain.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	assertMet(t, mock)
}
