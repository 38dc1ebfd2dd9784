package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"fuel-route-service/internal/domain"
)

// Per-segment search starts tight and widens until the cap; keeping the
// first pass narrow favors stations with a small detour.
const (
	initialSearchRadiusMiles = 50.0
	searchRadiusGrowth       = 1.5
)

// Route fractions tried when no segment produced a stop. A station found at
// any of these points yields a single stop covering the whole route's fuel
// need, so a plan is never empty when any station exists within the radius
// cap of the route.
var fallbackFractions = []float64{0.25, 0.5, 0.75}

// PlanBuilder orchestrates the segmenter and selector across a whole route,
// accumulating fuel stops and their total cost.
type PlanBuilder struct {
	Selector *StationSelector
	Vehicle  domain.Vehicle
}

func NewPlanBuilder(selector *StationSelector, vehicle domain.Vehicle) (*PlanBuilder, error) {
	if selector == nil {
		return nil, errors.New("plan builder: selector must be non-nil")
	}
	if err := vehicle.Validate(); err != nil {
		return nil, fmt.Errorf("plan builder: %w", err)
	}
	return &PlanBuilder{Selector: selector, Vehicle: vehicle}, nil
}

// BuildPlan produces a refueling plan for the given route.
//
// Each target segment gets a station search that starts at
// initialSearchRadiusMiles and escalates by searchRadiusGrowth per miss up
// to the cap (the selector performs a secondary internal doubling within
// each call). A segment with no reachable station is logged and skipped:
// the plan may end up short of the physically required stops, which is an
// accepted degraded outcome rather than a hard failure.
func (b *PlanBuilder) BuildPlan(
	ctx context.Context,
	startLabel, endLabel string,
	startCoords, endCoords domain.Coordinates,
	totalDistance float64,
	routePoints []domain.Coordinates,
) (*domain.RoutePlan, error) {
	plan := &domain.RoutePlan{
		StartLocation:    startLabel,
		EndLocation:      endLabel,
		StartCoords:      startCoords,
		EndCoords:        endCoords,
		TotalDistance:    totalDistance,
		TotalFuelGallons: b.Vehicle.FuelForDistance(totalDistance),
		Stops:            []domain.FuelStop{},
	}

	targets, err := SegmentRoute(routePoints, totalDistance, b.Vehicle.MaxRangeMiles)
	if err != nil {
		return nil, fmt.Errorf("build plan: %w", err)
	}

	usableRange := effectiveRange(b.Vehicle.MaxRangeMiles)
	remaining := totalDistance

	for i, target := range targets {
		station, err := b.findStation(ctx, target.Point)
		if err != nil {
			return nil, fmt.Errorf("build plan: segment %d: %w", i+1, err)
		}
		if station == nil {
			log.Printf("no station within %.0f miles of segment %d (%.1f mi mark), skipping",
				maxSearchRadiusMiles, i+1, target.TargetDistance)
			continue
		}

		distanceCovered := math.Min(usableRange, remaining)
		plan.AppendStop(*station, target.TargetDistance, b.Vehicle.FuelForDistance(distanceCovered))
		remaining -= distanceCovered
	}

	if len(plan.Stops) == 0 && totalDistance > 0 {
		if err := b.fallbackStop(ctx, plan, routePoints); err != nil {
			return nil, fmt.Errorf("build plan: %w", err)
		}
	}

	plan.Finalize()
	return plan, nil
}

// findStation widens the search radius per miss until the cap is reached.
func (b *PlanBuilder) findStation(ctx context.Context, point domain.Coordinates) (*domain.FuelStation, error) {
	radius := initialSearchRadiusMiles
	for {
		station, err := b.Selector.SelectBest(ctx, point, radius)
		if err != nil {
			return nil, err
		}
		if station != nil {
			return station, nil
		}
		if radius >= maxSearchRadiusMiles {
			return nil, nil
		}

		radius *= searchRadiusGrowth
		if radius > maxSearchRadiusMiles {
			radius = maxSearchRadiusMiles
		}
	}
}

// fallbackStop retries fixed route fractions at the maximum radius and, on
// the first success, records a single stop covering the entire route's fuel
// need. Exhausting every fraction leaves the plan empty with zero cost; the
// caller decides whether that is a user-facing error.
func (b *PlanBuilder) fallbackStop(ctx context.Context, plan *domain.RoutePlan, routePoints []domain.Coordinates) error {
	for _, frac := range fallbackFractions {
		idx := int(math.Floor(frac * float64(len(routePoints))))
		if idx > len(routePoints)-1 {
			idx = len(routePoints) - 1
		}

		station, err := b.Selector.SelectBest(ctx, routePoints[idx], maxSearchRadiusMiles)
		if err != nil {
			return fmt.Errorf("fallback stop: %w", err)
		}
		if station == nil {
			continue
		}

		log.Printf("fallback stop selected at %.0f%% of route (station_id=%d)", frac*100, station.ID)
		plan.AppendStop(*station, frac*plan.TotalDistance, b.Vehicle.FuelForDistance(plan.TotalDistance))
		return nil
	}

	log.Printf("no feasible stations found for route %q -> %q", plan.StartLocation, plan.EndLocation)
	return nil
}
