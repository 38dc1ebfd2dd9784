package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

const metersPerMile = 1609.34

// Surfaced when a start or end address cannot be geocoded. An input error:
// no retry, no partial plan.
var ErrLocationNotFound = errors.New("could not locate address")

// Surfaced when the routing service fails or returns no route. Planning
// fails fast; a default route is never substituted.
var ErrRouteUnavailable = errors.New("route unavailable")

type PlanFuelRouteRequest struct {
	StartLocation string
	EndLocation   string
}

// PlanFuelRoute geocodes the endpoints, fetches the driving route, builds
// the refueling plan, and persists it.
//
// The repository may be nil, in which case the plan is returned without
// being stored (used by tests and dry runs).
func PlanFuelRoute(
	ctx context.Context,
	req PlanFuelRouteRequest,
	geocoder ports.Geocoder,
	router ports.Router,
	builder *PlanBuilder,
	repo ports.PlanRepository,
) (_ *domain.RoutePlan, err error) {
	defer obs.Time(ctx, "services.PlanFuelRoute")(&err)

	start := strings.TrimSpace(req.StartLocation)
	end := strings.TrimSpace(req.EndLocation)
	if start == "" || end == "" {
		return nil, errors.New("plan fuel route: start and end locations must be non-empty")
	}

	// Both endpoints are needed before routing; resolve them concurrently.
	var startCoords, endCoords domain.Coordinates
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := geocoder.Geocode(gctx, start)
		if err != nil {
			return geocodeErr(start, err)
		}
		startCoords = c
		return nil
	})
	g.Go(func() error {
		c, err := geocoder.Geocode(gctx, end)
		if err != nil {
			return geocodeErr(end, err)
		}
		endCoords = c
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan fuel route: %w", err)
	}

	route, err := router.Route(ctx, startCoords, endCoords)
	if err != nil {
		return nil, fmt.Errorf("plan fuel route: %w: %v", ErrRouteUnavailable, err)
	}
	if len(route.Geometry) < 2 {
		return nil, fmt.Errorf("plan fuel route: %w: geometry has %d points", ErrRouteUnavailable, len(route.Geometry))
	}

	totalMiles := route.DistanceMeters / metersPerMile

	plan, err := builder.BuildPlan(ctx, start, end, startCoords, endCoords, totalMiles, route.Geometry)
	if err != nil {
		return nil, fmt.Errorf("plan fuel route: %w", err)
	}

	if repo != nil {
		if err := repo.SavePlan(ctx, plan); err != nil {
			return nil, fmt.Errorf("plan fuel route: save plan: %w", err)
		}
	}

	return plan, nil
}

func geocodeErr(address string, err error) error {
	if errors.Is(err, ports.ErrNoResults) {
		return fmt.Errorf("%w: %q", ErrLocationNotFound, address)
	}
	return fmt.Errorf("geocode %q: %w", address, err)
}
