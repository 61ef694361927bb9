package models

import "time"

// Schedule binds one bus to one route for a journey and holds the seat counter.
type Schedule struct {
	ID             int64     `json:"id"`
	BusID          int64     `json:"bus_id"`
	RouteID        int64     `json:"route_id"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          float64   `json:"price"`
	AvailableSeats int       `json:"available_seats"`
}

type AssignInput struct {
	RouteID        int64         `json:"route_id"`
	BusID          int64         `json:"bus_id"`
	DepartureTime  time.Time     `json:"departure_time"`
	ArrivalTime    time.Time     `json:"arrival_time"`
	Price          float64       `json:"price"`
	AvailableSeats int           `json:"available_seats"`
	Distances      []DistanceLeg `json:"distances"`
}

type AssignResult struct {
	ScheduleID int64  `json:"schedule_id"`
	BusNumber  string `json:"bus_number"`
}

// SearchResult is one schedule offered for a source/destination query.
type SearchResult struct {
	ScheduleID     int64     `json:"schedule_id"`
	BusID          int64     `json:"bus_id"`
	BusNumber      string    `json:"bus_number"`
	RouteID        int64     `json:"route_id"`
	RouteName      string    `json:"route_name"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	AvailableSeats int       `json:"available_seats"`
	DistanceKM     *float64  `json:"distance_km,omitempty"`
	Price          float64   `json:"price"`

	Fare FarePolicy `json:"-"`
}
