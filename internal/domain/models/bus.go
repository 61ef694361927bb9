package models

import "time"

type Bus struct {
	ID        int64      `json:"id"`
	BusNumber string     `json:"bus_number"`
	Model     string     `json:"model"`
	Capacity  int        `json:"capacity"`
	Status    string     `json:"status"`
	Fare      FarePolicy `json:"fare"`
	CreatedAt time.Time  `json:"created_at"`
}

// FarePolicy is the per-bus pricing. PerStopRate is stored but not applied to fares.
type FarePolicy struct {
	BusID       int64   `json:"bus_id"`
	BaseFare    float64 `json:"base_fare"`
	PerKMRate   float64 `json:"per_km_rate"`
	PerStopRate float64 `json:"per_stop_rate"`
}

type BusInput struct {
	BusNumber   string  `json:"bus_number" binding:"required"`
	Model       string  `json:"model"`
	Capacity    int     `json:"capacity" binding:"required,gt=0"`
	Status      string  `json:"status"`
	BaseFare    float64 `json:"base_fare" binding:"gte=0"`
	PerKMRate   float64 `json:"per_km_rate" binding:"gte=0"`
	PerStopRate float64 `json:"per_stop_rate" binding:"gte=0"`
}

type FuelRecord struct {
	ID         int64     `json:"id"`
	BusID      int64     `json:"bus_id"`
	Liters     float64   `json:"liters"`
	Cost       float64   `json:"cost"`
	OdometerKM float64   `json:"odometer_km"`
	FilledAt   time.Time `json:"filled_at"`
}
