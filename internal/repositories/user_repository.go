package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
)

type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByLogin finds a user by username or email.
func (r UserRepository) GetByLogin(ctx context.Context, login string) (models.User, error) {
	var u models.User
	err := r.db().QueryRowContext(ctx, `
		SELECT id, name, username, email, password_hash, role, created_at
		FROM users WHERE username = ? OR email = ? LIMIT 1`, login, login).Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return u, domain.NotFoundError{Resource: "user", Err: err}
	}
	return u, err
}

func (r UserRepository) Insert(ctx context.Context, u models.User) (int64, error) {
	res, err := r.db().ExecContext(ctx, `
		INSERT INTO users (name, username, email, password_hash, role, created_at)
		VALUES (?, ?, ?, ?, ?, NOW())`, u.Name, u.Username, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "user", Msg: "username or email already registered", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}
