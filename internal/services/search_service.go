package services

import (
	"context"
	"strings"
	"time"

	"busfleet/internal/domain"
	"busfleet/internal/domain/models"
	"busfleet/internal/repositories"
	"busfleet/internal/routegraph"
	"busfleet/internal/utils"

	"github.com/sirupsen/logrus"
)

type SearchService struct {
	Schedules repositories.ScheduleRepository
	Routes    repositories.RouteRepository
	Timeout   time.Duration
}

// Search lists buses running from source to destination and prices each one
// from the route's stop graph. Pricing is best-effort: when the distance
// cannot be resolved the schedule's stored price is kept.
func (s SearchService) Search(ctx context.Context, source, destination, date string) ([]models.SearchResult, error) {
	source = strings.TrimSpace(source)
	destination = strings.TrimSpace(destination)
	if source == "" || destination == "" {
		return nil, domain.ValidationError{Field: "source/destination", Msg: "required"}
	}
	if date = strings.TrimSpace(date); date != "" {
		if _, err := utils.ParseDate(date); err != nil {
			return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD", Err: err}
		}
	}

	ctx, cancel := bounded(ctx, s.Timeout)
	defer cancel()

	results, err := s.Schedules.Search(ctx, source, destination, date)
	if err != nil {
		return nil, domain.Internal(err)
	}

	graphs := make(map[int64]*routegraph.Graph)
	for i := range results {
		sr := &results[i]
		g, ok := graphs[sr.RouteID]
		if !ok {
			legs, err := s.Routes.ListLegs(ctx, nil, sr.RouteID)
			if err != nil {
				logrus.WithError(err).WithField("route_id", sr.RouteID).Warn("could not load distance legs; using stored price")
			}
			g = graphFromLegs(legs)
			graphs[sr.RouteID] = g
		}

		dist, resolved := g.ShortestDistance(source, destination)
		if resolved {
			d := dist
			sr.DistanceKM = &d
		}
		sr.Price = utils.ComputeFare(sr.Fare, dist, resolved, sr.Price)
	}
	return results, nil
}

func graphFromLegs(legs []models.DistanceLeg) *routegraph.Graph {
	out := make([]routegraph.Leg, 0, len(legs))
	for _, l := range legs {
		out = append(out, routegraph.Leg{From: l.FromStop, To: l.ToStop, DistanceKM: l.DistanceKM})
	}
	return routegraph.New(out)
}
