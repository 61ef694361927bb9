package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/http/middleware"
	"busfleet/internal/repositories"
	"busfleet/internal/services"

	"github.com/gin-gonic/gin"
)

func bookingService() services.BookingService {
	return services.BookingService{
		Schedules: repositories.ScheduleRepository{},
		Bookings:  repositories.BookingRepository{},
		Timeout:   timeout(),
	}
}

// bookPayload accepts either a schedule id or the (bus, route, arrival)
// triple a search result carries.
type bookPayload struct {
	ScheduleID   int64   `json:"scheduleId"`
	BusID        int64   `json:"busId"`
	RouteID      int64   `json:"routeId"`
	Arrival      string  `json:"arrival"`
	Seats        int     `json:"seats"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	PricePerSeat float64 `json:"pricePerSeat"`
}

// POST /api/book
func BookSeats(c *gin.Context) {
	var p bookPayload
	if !BindJSONOrError(c, &p) {
		return
	}
	svc := bookingService()
	ctx := c.Request.Context()

	scheduleID := p.ScheduleID
	if scheduleID <= 0 {
		var arrival *time.Time
		if strings.TrimSpace(p.Arrival) != "" {
			t, err := parseTimeField("arrival", p.Arrival)
			if err != nil {
				RespondDomainError(c, err)
				return
			}
			arrival = &t
		}
		id, err := svc.ResolveSchedule(ctx, p.BusID, p.RouteID, arrival)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		scheduleID = id
	}

	res, err := svc.Book(ctx, models.BookingRequest{
		ScheduleID:     scheduleID,
		Seats:          p.Seats,
		PassengerName:  p.Name,
		PassengerEmail: p.Email,
		PricePerSeat:   p.PricePerSeat,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "booking confirmed",
		"booking_id":   res.BookingID,
		"schedule_id":  res.ScheduleID,
		"pricePerSeat": res.PricePerSeat,
		"totalPrice":   res.TotalPrice,
	})
}

// GET /api/bookings/:id
// Passengers may only read their own bookings.
func GetBooking(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	d, err := bookingService().Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if !canSeeBooking(c, d.PassengerEmail) {
		RespondDomainError(c, domain.NotFoundError{Resource: "booking"})
		return
	}
	c.JSON(http.StatusOK, d)
}

// GET /api/bookings/:id/ticket
func GetBookingTicket(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bsvc := bookingService()
	svc := services.TicketService{
		Bookings:  repositories.BookingRepository{},
		RequestID: middleware.GetRequestID(c),
		Timeout:   timeout(),
		Loader: func(ctx context.Context, bookingID int64) (models.BookingDetail, error) {
			d, err := bsvc.Get(ctx, bookingID)
			if err != nil {
				return d, err
			}
			if !canSeeBooking(c, d.PassengerEmail) {
				return d, domain.NotFoundError{Resource: "booking"}
			}
			return d, nil
		},
	}
	pdf, filename, err := svc.Generate(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/bookings/mine
func GetMyBookings(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	out, err := bookingService().ListForPassenger(c.Request.Context(), p.Email)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func canSeeBooking(c *gin.Context, email string) bool {
	p, ok := middleware.Principal(c)
	if !ok {
		return false
	}
	return p.IsAdmin() || strings.EqualFold(p.Email, email)
}
