package handlers

import (
	"net/http"

	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/services"

	"github.com/gin-gonic/gin"
)

func busService() services.BusService {
	return services.BusService{Buses: repositories.BusRepository{}, Timeout: timeout()}
}

// GET /api/admin/buses
func GetBuses(c *gin.Context) {
	buses, err := busService().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, buses)
}

// GET /api/admin/buses/:id
func GetBusByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bus, err := busService().Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// POST /api/admin/buses
// A bus number that already exists is updated in place.
func SaveBus(c *gin.Context) {
	var in models.BusInput
	if !BindJSONOrError(c, &in) {
		return
	}
	bus, err := busService().Save(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// PUT /api/admin/buses/:id
func UpdateBus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.BusInput
	if !BindJSONOrError(c, &in) {
		return
	}
	bus, err := busService().Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, bus)
}

// DELETE /api/admin/buses/:id
func DeleteBus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := busService().Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bus deleted"})
}
