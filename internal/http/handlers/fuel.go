package handlers

import (
	"net/http"

	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/services"

	"github.com/gin-gonic/gin"
)

func fuelService() services.FuelService {
	return services.FuelService{Fuel: repositories.FuelRepository{}, Timeout: timeout()}
}

// POST /api/admin/fuel
func CreateFuelRecord(c *gin.Context) {
	var in models.FuelRecord
	if !BindJSONOrError(c, &in) {
		return
	}
	rec, err := fuelService().Record(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GET /api/admin/fuel?bus_id=
func GetFuelRecords(c *gin.Context) {
	busID, ok := queryID(c, "bus_id")
	if !ok {
		return
	}
	out, err := fuelService().List(c.Request.Context(), busID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
