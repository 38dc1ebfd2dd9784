package services

import (
	"errors"
	"fmt"
	"math"

	"fuel-route-service/internal/domain"
)

// Fraction of tank range usable for planning. The remaining 20% is held in
// reserve so the truck never runs dry before reaching the planned station.
const rangeSafetyFactor = 0.8

// StopTarget is a planned refueling point: a distance along the route and
// the polyline point it maps to.
type StopTarget struct {
	TargetDistance float64 // miles from route start
	Point          domain.Coordinates
}

func effectiveRange(tankRange float64) float64 {
	return tankRange * rangeSafetyFactor
}

// SegmentRoute computes the sequence of target refueling points for a route.
//
// Stops are spaced evenly by distance fraction rather than by fixed range
// increments, so the plan distributes stops uniformly instead of maxing out
// range and then stopping short near the end. At least one stop is always
// produced so every route gets a fuel-cost estimate.
//
// Target distances are mapped to polyline indices proportionally, which
// assumes roughly uniform point density along the polyline. It is not
// distance-accurate for polylines with uneven vertex spacing.
func SegmentRoute(routePoints []domain.Coordinates, totalDistance, tankRange float64) ([]StopTarget, error) {
	if len(routePoints) < 2 {
		return nil, fmt.Errorf("segment route: need at least 2 route points, got %d", len(routePoints))
	}
	if totalDistance <= 0 {
		return nil, errors.New("segment route: total distance must be positive")
	}
	if tankRange <= 0 {
		return nil, errors.New("segment route: tank range must be positive")
	}

	stopsNeeded := int(math.Ceil(totalDistance / effectiveRange(tankRange)))
	if stopsNeeded < 1 {
		stopsNeeded = 1
	}

	targets := make([]StopTarget, 0, stopsNeeded)
	for stopNum := 0; stopNum < stopsNeeded; stopNum++ {
		targetDistance := float64(stopNum+1) * (totalDistance / float64(stopsNeeded))

		idx := int(math.Floor((targetDistance / totalDistance) * float64(len(routePoints))))
		if idx > len(routePoints)-1 {
			idx = len(routePoints) - 1
		}

		targets = append(targets, StopTarget{
			TargetDistance: targetDistance,
			Point:          routePoints[idx],
		})
	}

	return targets, nil
}
