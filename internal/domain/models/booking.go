package models

import "time"

type Booking struct {
	ID             int64     `json:"id"`
	ScheduleID     int64     `json:"schedule_id"`
	PassengerName  string    `json:"passenger_name"`
	PassengerEmail string    `json:"passenger_email"`
	SeatsBooked    int       `json:"seats_booked"`
	TotalPrice     float64   `json:"total_price"`
	CreatedAt      time.Time `json:"created_at"`
}

// BookingRequest is the input of the booking transaction.
// PricePerSeat is the client's quoted price; the charged price comes from the schedule.
type BookingRequest struct {
	ScheduleID     int64
	Seats          int
	PassengerName  string
	PassengerEmail string
	PricePerSeat   float64
}

type BookingResult struct {
	BookingID    int64   `json:"booking_id"`
	ScheduleID   int64   `json:"schedule_id"`
	PricePerSeat float64 `json:"pricePerSeat"`
	TotalPrice   float64 `json:"totalPrice"`
}

// BookingDetail joins a booking with its schedule, bus and route for tickets.
type BookingDetail struct {
	Booking
	BusNumber     string    `json:"bus_number"`
	RouteName     string    `json:"route_name"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
}
