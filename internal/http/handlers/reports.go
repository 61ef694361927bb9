package handlers

import (
	"net/http"

	"busfleet/internal/repositories"
	"busfleet/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/reports/dashboard
func GetDashboard(c *gin.Context) {
	svc := services.ReportService{Reports: repositories.ReportRepository{}, Timeout: timeout()}
	out, err := svc.Dashboard(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
