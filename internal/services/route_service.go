package services

import (
	"context"
	"database/sql"
	"strings"
	"time"

	intconfig "busfleet/internal/config"
	intdb "busfleet/internal/db"
	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
)

type RouteService struct {
	Routes  repositories.RouteRepository
	DB      *sql.DB
	Timeout time.Duration
}

func (s RouteService) db() *sql.DB {
	if s.DB != nil {
		return s.DB
	}
	return intconfig.DB
}

func (s RouteService) List(ctx context.Context) ([]models.Route, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	out, err := s.Routes.List(ctx)
	return out, domain.Internal(err)
}

// Get returns a route with its ordered stops.
func (s RouteService) Get(ctx context.Context, id int64) (models.Route, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	rt, err := s.Routes.GetByID(ctx, nil, id)
	if err != nil {
		return rt, domain.Internal(err)
	}
	rt.Stops, err = s.Routes.ListStops(ctx, nil, id)
	return rt, domain.Internal(err)
}

// Create stores a route and its stops atomically.
func (s RouteService) Create(ctx context.Context, in models.RouteInput) (models.Route, error) {
	stops, err := normalizeRoute(&in)
	if err != nil {
		return models.Route{}, err
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	var id int64
	err = intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		var err error
		if id, err = s.Routes.Insert(ctx, tx, in); err != nil {
			return err
		}
		return s.Routes.ReplaceStops(ctx, tx, id, stops)
	})
	if err != nil {
		return models.Route{}, domain.Internal(err)
	}
	return models.Route{ID: id, Name: in.Name, Source: in.Source, Destination: in.Destination, Stops: stops}, nil
}

// Update rewrites the route and replaces its stops wholesale.
func (s RouteService) Update(ctx context.Context, id int64, in models.RouteInput) (models.Route, error) {
	stops, err := normalizeRoute(&in)
	if err != nil {
		return models.Route{}, err
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	err = intdb.WithTx(ctx, s.db(), func(tx *sql.Tx) error {
		if err := s.Routes.Update(ctx, tx, id, in); err != nil {
			return err
		}
		return s.Routes.ReplaceStops(ctx, tx, id, stops)
	})
	if err != nil {
		return models.Route{}, domain.Internal(err)
	}
	return models.Route{ID: id, Name: in.Name, Source: in.Source, Destination: in.Destination, Stops: stops}, nil
}

func (s RouteService) Delete(ctx context.Context, id int64) error {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	return domain.Internal(s.Routes.Delete(ctx, s.db(), id))
}

func (s RouteService) Legs(ctx context.Context, id int64) ([]models.DistanceLeg, error) {
	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	out, err := s.Routes.ListLegs(ctx, nil, id)
	return out, domain.Internal(err)
}

// normalizeRoute trims names and numbers stops 1..n when no order is given.
func normalizeRoute(in *models.RouteInput) ([]models.Stop, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Source = strings.TrimSpace(in.Source)
	in.Destination = strings.TrimSpace(in.Destination)
	if in.Name == "" || in.Source == "" || in.Destination == "" {
		return nil, domain.ValidationError{Field: "name/source/destination", Msg: "required"}
	}

	explicit := false
	for _, st := range in.Stops {
		if st.Order != 0 {
			explicit = true
			break
		}
	}

	seen := make(map[int]struct{}, len(in.Stops))
	out := make([]models.Stop, 0, len(in.Stops))
	for i, st := range in.Stops {
		name := strings.TrimSpace(st.Name)
		if name == "" {
			return nil, domain.ValidationError{Field: "stops", Msg: "stop name is required"}
		}
		order := st.Order
		if !explicit {
			order = i + 1
		}
		if order <= 0 {
			return nil, domain.ValidationError{Field: "stops", Msg: "stop order must be positive"}
		}
		if _, dup := seen[order]; dup {
			return nil, domain.ValidationError{Field: "stops", Msg: "stop order must be unique per route"}
		}
		seen[order] = struct{}{}
		out = append(out, models.Stop{Name: name, Order: order})
	}
	return out, nil
}
