package handlers

import (
	"errors"
	"net/http"

	"busfleet/internal/domain"
	"busfleet/internal/http/middleware"
	"busfleet/internal/repositories"
	"busfleet/internal/services"

	"github.com/gin-gonic/gin"
)

func authService() services.AuthService {
	return services.AuthService{
		Users:   repositories.UserRepository{},
		Secret:  secret(),
		Timeout: timeout(),
	}
}

// ParseToken is the token verifier used by middleware.AuthRequired.
func ParseToken(token string) (domain.RequestContext, error) {
	return authService().ParseToken(token)
}

type loginRequest struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password" binding:"required"`
}

func (r loginRequest) identity() string {
	switch {
	case r.Login != "":
		return r.Login
	case r.Username != "":
		return r.Username
	default:
		return r.Email
	}
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := authService()
	user, err := svc.Authenticate(c.Request.Context(), req.identity(), req.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		RespondError(c, http.StatusUnauthorized, err.Error(), nil)
		return
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	token, err := svc.IssueToken(user)
	if err != nil {
		RespondDomainError(c, domain.InternalError{Msg: "could not issue token", Err: err})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	user, err := authService().Register(c.Request.Context(), req.Name, req.Username, req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GET /api/auth/me
func Me(c *gin.Context) {
	p, ok := middleware.Principal(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	c.JSON(http.StatusOK, p)
}
