package handlers

import (
	"net/http"

	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/search-buses?source=&destination=&date=
func SearchBuses(c *gin.Context) {
	svc := services.SearchService{
		Schedules: repositories.ScheduleRepository{},
		Routes:    repositories.RouteRepository{},
		Timeout:   timeout(),
	}
	out, err := svc.Search(c.Request.Context(), c.Query("source"), c.Query("destination"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if out == nil {
		out = []models.SearchResult{}
	}
	c.JSON(http.StatusOK, out)
}
