package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"busfleet/internal/domain"

	"github.com/gin-gonic/gin"
)

func init() { gin.SetMode(gin.TestMode) }

func fakeParser(token string) (domain.RequestContext, error) {
	switch token {
	case "admin-token":
		return domain.RequestContext{UserID: 1, Role: domain.RoleAdmin}, nil
	case "passenger-token":
		return domain.RequestContext{UserID: 2, Role: domain.RolePassenger}, nil
	}
	return domain.RequestContext{}, errors.New("bad token")
}

func guarded() *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/admin", AuthRequired(fakeParser), RequireRoles("admin"), func(c *gin.Context) {
		p, _ := Principal(c)
		c.JSON(http.StatusOK, gin.H{"user": p.UserID})
	})
	return r
}

func TestAuthAndRoles(t *testing.T) {
	r := guarded()
	cases := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer nope", http.StatusUnauthorized},
		{"Basic admin-token", http.StatusUnauthorized},
		{"Bearer passenger-token", http.StatusForbidden},
		{"Bearer admin-token", http.StatusOK},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		r.ServeHTTP(w, req)
		if w.Code != tc.want {
			t.Fatalf("%q: got %d want %d", tc.header, w.Code, tc.want)
		}
		if w.Header().Get("X-Request-ID") == "" {
			t.Fatalf("%q: missing X-Request-ID", tc.header)
		}
	}
}

func TestRequestID_KeepsIncomingHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	r.ServeHTTP(w, req)
	if w.Body.String() != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", w.Body.String())
	}
}
