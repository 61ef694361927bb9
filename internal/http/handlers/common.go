package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	intconfig "busfleet/internal/config"
	"busfleet/internal/domain"
	"busfleet/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	settingsMu       sync.RWMutex
	statementTimeout = 5 * time.Second
	jwtSecret        = []byte("change-me")
)

// Configure applies runtime settings shared by all handlers.
func Configure(env intconfig.Env) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	if env.StatementTimeout > 0 {
		statementTimeout = env.StatementTimeout
	}
	if env.JWTSecret != "" {
		jwtSecret = []byte(env.JWTSecret)
	}
}

func timeout() time.Duration {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return statementTimeout
}

func secret() []byte {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return jwtSecret
}

// RespondError sends a plain error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"error":      message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["details"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id <= 0 {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, name string) (int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		RespondDomainError(c, domain.ValidationError{Field: name, Msg: "must be a positive integer"})
		return 0, false
	}
	return id, true
}
