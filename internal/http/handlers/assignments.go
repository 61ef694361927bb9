package handlers

import (
	"net/http"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/services"
	"busfleet/internal/utils"

	"github.com/gin-gonic/gin"
)

func assignmentService() services.AssignmentService {
	return services.AssignmentService{
		Buses:     repositories.BusRepository{},
		Routes:    repositories.RouteRepository{},
		Schedules: repositories.ScheduleRepository{},
		Bookings:  repositories.BookingRepository{},
		Timeout:   timeout(),
	}
}

type assignPayload struct {
	RouteID        int64                `json:"route_id"`
	BusID          int64                `json:"bus_id"`
	DepartureTime  string               `json:"departure_time"`
	ArrivalTime    string               `json:"arrival_time"`
	Price          float64              `json:"price"`
	AvailableSeats int                  `json:"available_seats"`
	Distances      []models.DistanceLeg `json:"distances"`
}

func (p assignPayload) toInput() (models.AssignInput, error) {
	dep, err := parseTimeField("departure_time", p.DepartureTime)
	if err != nil {
		return models.AssignInput{}, err
	}
	arr, err := parseTimeField("arrival_time", p.ArrivalTime)
	if err != nil {
		return models.AssignInput{}, err
	}
	return models.AssignInput{
		RouteID:        p.RouteID,
		BusID:          p.BusID,
		DepartureTime:  dep,
		ArrivalTime:    arr,
		Price:          p.Price,
		AvailableSeats: p.AvailableSeats,
		Distances:      p.Distances,
	}, nil
}

func parseTimeField(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, domain.ValidationError{Field: field, Msg: "required"}
	}
	t, err := utils.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, domain.ValidationError{Field: field, Msg: "invalid timestamp", Err: err}
	}
	return t, nil
}

// GET /api/admin/assignments
func GetAssignments(c *gin.Context) {
	out, err := assignmentService().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/admin/assign-bus
func AssignBus(c *gin.Context) {
	var p assignPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	in, err := p.toInput()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := assignmentService().Assign(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "bus assigned",
		"schedule_id": res.ScheduleID,
		"bus_number":  res.BusNumber,
	})
}

// PUT /api/admin/reassign-bus
func ReassignBus(c *gin.Context) {
	var p assignPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	in, err := p.toInput()
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	res, err := assignmentService().Reassign(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "bus reassigned",
		"schedule_id": res.ScheduleID,
		"bus_number":  res.BusNumber,
	})
}

// DELETE /api/admin/deassign-bus/:routeId
func DeassignBus(c *gin.Context) {
	routeID, ok := paramID(c, "routeId")
	if !ok {
		return
	}
	if err := assignmentService().Deassign(c.Request.Context(), routeID); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus deassigned", "route_id": routeID})
}
