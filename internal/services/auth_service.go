package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/utils"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username/email or password")

// AuthService is the credential store: bcrypt-hashed passwords and HS256 tokens.
type AuthService struct {
	Users    repositories.UserRepository
	Secret   []byte
	TokenTTL time.Duration
	Timeout  time.Duration
}

type claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate returns the principal for a login (username or email) and password.
func (s AuthService) Authenticate(ctx context.Context, login, password string) (models.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	u, err := s.Users.GetByLogin(ctx, login)
	if err != nil {
		if domain.IsNotFound(err) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, domain.Internal(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// Register creates a passenger account.
func (s AuthService) Register(ctx context.Context, name, username, email, password string) (models.User, error) {
	u := models.User{
		Name:     utils.NormalizeSpace(name),
		Username: strings.TrimSpace(username),
		Email:    utils.NormalizeEmail(email),
		Role:     domain.RolePassenger,
	}
	switch {
	case u.Name == "" || u.Username == "":
		return u, domain.ValidationError{Field: "name/username", Msg: "required"}
	case !utils.LooksLikeEmail(u.Email):
		return u, domain.ValidationError{Field: "email", Msg: "invalid address"}
	case len(password) < 8:
		return u, domain.ValidationError{Field: "password", Msg: "must be at least 8 characters"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return u, domain.InternalError{Msg: "could not hash password", Err: err}
	}
	u.PasswordHash = string(hash)

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	id, err := s.Users.Insert(ctx, u)
	if err != nil {
		return u, domain.Internal(err)
	}
	u.ID = id
	return u, nil
}

func (s AuthService) IssueToken(u models.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID:   u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(s.Secret)
}

// ParseToken verifies a bearer token and returns the request principal.
func (s AuthService) ParseToken(raw string) (domain.RequestContext, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return s.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return domain.RequestContext{}, err
	}
	return domain.RequestContext{
		UserID:   domain.ID(c.UserID),
		Username: c.Username,
		Email:    c.Email,
		Role:     c.Role,
	}, nil
}
