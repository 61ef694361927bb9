package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"

	"github.com/go-sql-driver/mysql"
)

type StaffRepository struct {
	DB *sql.DB
}

func (r StaffRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r StaffRepository) ListRoles(ctx context.Context) ([]models.StaffRole, error) {
	rows, err := r.db().QueryContext(ctx, `SELECT id, name FROM staff_roles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.StaffRole{}
	for rows.Next() {
		var role models.StaffRole
		if err := rows.Scan(&role.ID, &role.Name); err != nil {
			return out, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

func (r StaffRepository) CreateRole(ctx context.Context, name string) (int64, error) {
	res, err := r.db().ExecContext(ctx, `INSERT INTO staff_roles (name) VALUES (?)`, strings.TrimSpace(name))
	if err != nil {
		if intdb.IsDuplicateKey(err) {
			return 0, domain.ConflictError{Resource: "staff role", Msg: "role already exists", Err: err}
		}
		return 0, err
	}
	return res.LastInsertId()
}

func (r StaffRepository) List(ctx context.Context) ([]models.Staff, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT s.id, s.name, s.phone, s.role_id, COALESCE(sr.name, '')
		FROM staff s LEFT JOIN staff_roles sr ON sr.id = s.role_id
		ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Staff{}
	for rows.Next() {
		var s models.Staff
		if err := rows.Scan(&s.ID, &s.Name, &s.Phone, &s.RoleID, &s.RoleName); err != nil {
			return out, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r StaffRepository) Create(ctx context.Context, s models.Staff) (int64, error) {
	res, err := r.db().ExecContext(ctx, `INSERT INTO staff (name, phone, role_id) VALUES (?, ?, ?)`,
		strings.TrimSpace(s.Name), strings.TrimSpace(s.Phone), s.RoleID)
	if err != nil {
		return 0, foreignKeyAsNotFound(err, "staff role")
	}
	return res.LastInsertId()
}

func (r StaffRepository) Update(ctx context.Context, s models.Staff) error {
	res, err := r.db().ExecContext(ctx, `UPDATE staff SET name = ?, phone = ?, role_id = ? WHERE id = ?`,
		strings.TrimSpace(s.Name), strings.TrimSpace(s.Phone), s.RoleID, s.ID)
	if err != nil {
		return foreignKeyAsNotFound(err, "staff role")
	}
	return requireAffected(res, "staff")
}

func (r StaffRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, `DELETE FROM staff WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res, "staff")
}

// AssignToBus sets the staff member holding a role on a bus, replacing any previous holder.
func (r StaffRepository) AssignToBus(ctx context.Context, busID, staffID, roleID int64) error {
	_, err := r.db().ExecContext(ctx, `
		INSERT INTO bus_staff (bus_id, role_id, staff_id) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE staff_id = VALUES(staff_id)`, busID, roleID, staffID)
	return foreignKeyAsNotFound(err, "bus or staff")
}

func (r StaffRepository) ListBusStaff(ctx context.Context, busID int64) ([]models.BusStaff, error) {
	rows, err := r.db().QueryContext(ctx, `
		SELECT bs.bus_id, bs.staff_id, bs.role_id, s.name, COALESCE(sr.name, '')
		FROM bus_staff bs
		JOIN staff s ON s.id = bs.staff_id
		LEFT JOIN staff_roles sr ON sr.id = bs.role_id
		WHERE bs.bus_id = ? ORDER BY sr.name`, busID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.BusStaff{}
	for rows.Next() {
		var bs models.BusStaff
		if err := rows.Scan(&bs.BusID, &bs.StaffID, &bs.RoleID, &bs.StaffName, &bs.RoleName); err != nil {
			return out, err
		}
		out = append(out, bs)
	}
	return out, rows.Err()
}

// foreignKeyAsNotFound maps MySQL 1452 (missing parent row) to NotFound.
func foreignKeyAsNotFound(err error, resource string) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1452 {
		return domain.NotFoundError{Resource: resource, Err: err}
	}
	return err
}
