package handlers

import (
	"context"
	"net/http"
	"sync"

	intconfig "busfleet/internal/config"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes-index).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "busfleet backend running"})
}

func DBCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout())
	defer cancel()

	if err := intconfig.EnsureDB(ctx); err != nil {
		RespondError(c, http.StatusInternalServerError, "database not reachable", err)
		return
	}

	var buses int
	if err := intconfig.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM buses").Scan(&buses); err != nil {
		RespondError(c, http.StatusInternalServerError, "database query failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection ok", "buses_in_db": buses})
}

// RoutesIndex lists the registered HTTP routes.
func RoutesIndex(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		RespondError(c, http.StatusServiceUnavailable, "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
