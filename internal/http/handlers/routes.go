package handlers

import (
	"net/http"

	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/services"

	"github.com/gin-gonic/gin"
)

func routeService() services.RouteService {
	return services.RouteService{Routes: repositories.RouteRepository{}, Timeout: timeout()}
}

// GET /api/admin/routes
func GetRoutes(c *gin.Context) {
	routes, err := routeService().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, routes)
}

// GET /api/admin/routes/:id
func GetRouteByID(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rt, err := routeService().Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// POST /api/admin/routes
func CreateRoute(c *gin.Context) {
	var in models.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rt, err := routeService().Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rt)
}

// PUT /api/admin/routes/:id
func UpdateRoute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.RouteInput
	if !BindJSONOrError(c, &in) {
		return
	}
	rt, err := routeService().Update(c.Request.Context(), id, in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rt)
}

// DELETE /api/admin/routes/:id
func DeleteRoute(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := routeService().Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "route deleted"})
}

// GET /api/routes/:id/stops
func GetRouteStops(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	rt, err := routeService().Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	stops := rt.Stops
	if stops == nil {
		stops = []models.Stop{}
	}
	c.JSON(http.StatusOK, stops)
}

// GET /api/admin/routes/:id/distances
func GetRouteDistances(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	legs, err := routeService().Legs(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, legs)
}
