package models

type RouteRevenue struct {
	RouteID   int64   `json:"route_id"`
	RouteName string  `json:"route_name"`
	Bookings  int     `json:"bookings"`
	Seats     int     `json:"seats"`
	Revenue   float64 `json:"revenue"`
}

type BusFuel struct {
	BusID     int64   `json:"bus_id"`
	BusNumber string  `json:"bus_number"`
	Liters    float64 `json:"liters"`
	Cost      float64 `json:"cost"`
}

type Dashboard struct {
	Buses           int            `json:"buses"`
	Routes          int            `json:"routes"`
	ActiveSchedules int            `json:"active_schedules"`
	Bookings        int            `json:"bookings"`
	Revenue         float64        `json:"revenue"`
	RevenueByRoute  []RouteRevenue `json:"revenue_by_route"`
	FuelByBus       []BusFuel      `json:"fuel_by_bus"`
}
