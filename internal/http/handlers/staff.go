package handlers

import (
	"net/http"

	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/services"

	"github.com/gin-gonic/gin"
)

func staffService() services.StaffService {
	return services.StaffService{Staff: repositories.StaffRepository{}, Timeout: timeout()}
}

// GET /api/admin/staff-roles
func GetStaffRoles(c *gin.Context) {
	out, err := staffService().Roles(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/admin/staff-roles
func CreateStaffRole(c *gin.Context) {
	var in models.StaffRole
	if !BindJSONOrError(c, &in) {
		return
	}
	role, err := staffService().CreateRole(c.Request.Context(), in.Name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

// GET /api/admin/staff
func GetStaff(c *gin.Context) {
	out, err := staffService().List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /api/admin/staff
func CreateStaff(c *gin.Context) {
	var in models.Staff
	if !BindJSONOrError(c, &in) {
		return
	}
	st, err := staffService().Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, st)
}

// PUT /api/admin/staff/:id
func UpdateStaff(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var in models.Staff
	if !BindJSONOrError(c, &in) {
		return
	}
	in.ID = id
	st, err := staffService().Update(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DELETE /api/admin/staff/:id
func DeleteStaff(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := staffService().Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "staff deleted"})
}

// POST /api/admin/bus-staff
func AssignBusStaff(c *gin.Context) {
	var in models.BusStaff
	if !BindJSONOrError(c, &in) {
		return
	}
	if err := staffService().AssignToBus(c.Request.Context(), in); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "staff assigned"})
}

// GET /api/admin/bus-staff/:busId
func GetBusStaff(c *gin.Context) {
	busID, ok := paramID(c, "busId")
	if !ok {
		return
	}
	out, err := staffService().BusCrew(c.Request.Context(), busID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
