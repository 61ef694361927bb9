package middleware

import (
	"net/http"
	"strings"

	"busfleet/internal/domain"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// TokenParser verifies a bearer token and returns its principal.
type TokenParser func(token string) (domain.RequestContext, error)

// AuthRequired rejects requests without a valid bearer token and stores the
// principal on the request context.
func AuthRequired(parse TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		principal, err := parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// Principal returns the authenticated principal, if any.
func Principal(c *gin.Context) (domain.RequestContext, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return domain.RequestContext{}, false
	}
	p, ok := v.(domain.RequestContext)
	return p, ok
}
