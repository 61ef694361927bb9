package handlers

import (
	"net/http"

	"busfleet/internal/domain"
	"busfleet/internal/http/middleware"
	"busfleet/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Details   any    `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		Details:   details,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses.
// Conflicts and seat shortages are client errors on the public booking and
// assignment endpoints, so both answer 400.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case domain.IsInsufficientCapacity(err):
		respondError(c, http.StatusBadRequest, "insufficient_seats", err.Error(), nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusBadRequest, "conflict", err.Error(), nil)
	default:
		utils.LogFailure(middleware.GetRequestID(c), "http", c.FullPath(), err)
		respondError(c, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}
