package models

type Route struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Stops       []Stop `json:"stops,omitempty"`
}

type Stop struct {
	ID      int64  `json:"id,omitempty"`
	RouteID int64  `json:"route_id,omitempty"`
	Name    string `json:"name"`
	Order   int    `json:"order"`
}

// DistanceLeg is one directed edge of a route's stop graph.
type DistanceLeg struct {
	RouteID    int64   `json:"route_id,omitempty"`
	FromStop   string  `json:"from_stop"`
	ToStop     string  `json:"to_stop"`
	DistanceKM float64 `json:"distance"`
}

type RouteInput struct {
	Name        string `json:"name" binding:"required"`
	Source      string `json:"source" binding:"required"`
	Destination string `json:"destination" binding:"required"`
	Stops       []Stop `json:"stops"`
}
