package services

import (
	"context"
	"strings"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
)

type StaffService struct {
	Staff   repositories.StaffRepository
	Timeout time.Duration
}

func (s StaffService) Roles(ctx context.Context) ([]models.StaffRole, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	out, err := s.Staff.ListRoles(ctx)
	return out, domain.Internal(err)
}

func (s StaffService) CreateRole(ctx context.Context, name string) (models.StaffRole, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.StaffRole{}, domain.ValidationError{Field: "name", Msg: "required"}
	}
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	id, err := s.Staff.CreateRole(ctx, name)
	if err != nil {
		return models.StaffRole{}, domain.Internal(err)
	}
	return models.StaffRole{ID: id, Name: name}, nil
}

func (s StaffService) List(ctx context.Context) ([]models.Staff, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	out, err := s.Staff.List(ctx)
	return out, domain.Internal(err)
}

func (s StaffService) Create(ctx context.Context, in models.Staff) (models.Staff, error) {
	if err := validateStaff(in); err != nil {
		return models.Staff{}, err
	}
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	id, err := s.Staff.Create(ctx, in)
	if err != nil {
		return models.Staff{}, domain.Internal(err)
	}
	in.ID = id
	return in, nil
}

func (s StaffService) Update(ctx context.Context, in models.Staff) (models.Staff, error) {
	if err := validateStaff(in); err != nil {
		return models.Staff{}, err
	}
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	return in, domain.Internal(s.Staff.Update(ctx, in))
}

func (s StaffService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	return domain.Internal(s.Staff.Delete(ctx, id))
}

// AssignToBus puts a staff member on a bus for their role, replacing whoever held it.
func (s StaffService) AssignToBus(ctx context.Context, a models.BusStaff) error {
	if a.BusID <= 0 || a.StaffID <= 0 || a.RoleID <= 0 {
		return domain.ValidationError{Field: "bus_id/staff_id/role_id", Msg: "required"}
	}
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	return domain.Internal(s.Staff.AssignToBus(ctx, a.BusID, a.StaffID, a.RoleID))
}

func (s StaffService) BusCrew(ctx context.Context, busID int64) ([]models.BusStaff, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	out, err := s.Staff.ListBusStaff(ctx, busID)
	return out, domain.Internal(err)
}

func validateStaff(in models.Staff) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ValidationError{Field: "name", Msg: "required"}
	}
	if in.RoleID <= 0 {
		return domain.ValidationError{Field: "role_id", Msg: "required"}
	}
	return nil
}
