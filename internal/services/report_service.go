package services

import (
	"context"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
)

type ReportService struct {
	Reports repositories.ReportRepository
	Timeout time.Duration
}

// Dashboard aggregates fleet, booking and fuel figures for the admin view.
func (s ReportService) Dashboard(ctx context.Context) (models.Dashboard, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	var d models.Dashboard
	if err := s.Reports.Totals(ctx, &d); err != nil {
		return d, domain.Internal(err)
	}
	var err error
	if d.RevenueByRoute, err = s.Reports.RevenueByRoute(ctx); err != nil {
		return d, domain.Internal(err)
	}
	if d.FuelByBus, err = s.Reports.FuelByBus(ctx); err != nil {
		return d, domain.Internal(err)
	}
	return d, nil
}
