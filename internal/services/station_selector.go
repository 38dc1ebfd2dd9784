package services

import (
	"context"
	"fmt"
	"sort"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
	"fuel-route-service/internal/ports"
)

// Hard cap on how far from a route point a station may be, regardless of
// how the search radius escalates.
const maxSearchRadiusMiles = 200.0

// Weight of the distance term in the station score. Distance is normalized
// to the search radius so it acts as a soft penalty that never outweighs a
// full dollar-per-gallon price difference.
const distanceScoreWeight = 0.5

// StationSelector finds the best-value station near a point, balancing
// retail price against detour distance.
type StationSelector struct {
	Index ports.StationIndex
}

func NewStationSelector(index ports.StationIndex) *StationSelector {
	return &StationSelector{Index: index}
}

// scoreStation ranks a candidate. Price dominates; distance breaks ties
// between similarly priced stations.
func scoreStation(price, distanceMiles, maxRadius float64) float64 {
	return price + (distanceMiles/maxRadius)*distanceScoreWeight
}

type scoredStation struct {
	station  domain.FuelStation
	distance float64
	score    float64
}

// SelectBest returns the lowest-scoring station within maxRadius miles of
// point, or nil when none is found. A nil result with a nil error is an
// expected outcome the caller must handle.
//
// When the first query finds no candidate and the radius is below the cap,
// the search retries once with double the radius (capped at
// maxSearchRadiusMiles). The plan builder layers its own slower radius
// escalation on top of this; both levels are intentional.
func (s *StationSelector) SelectBest(ctx context.Context, point domain.Coordinates, maxRadius float64) (*domain.FuelStation, error) {
	if maxRadius > maxSearchRadiusMiles {
		maxRadius = maxSearchRadiusMiles
	}

	best, err := s.selectWithin(ctx, point, maxRadius)
	if err != nil {
		return nil, err
	}
	if best != nil || maxRadius >= maxSearchRadiusMiles {
		return best, nil
	}

	retryRadius := maxRadius * 2
	if retryRadius > maxSearchRadiusMiles {
		retryRadius = maxSearchRadiusMiles
	}
	return s.selectWithin(ctx, point, retryRadius)
}

func (s *StationSelector) selectWithin(ctx context.Context, point domain.Coordinates, maxRadius float64) (*domain.FuelStation, error) {
	box := geo.BoxAround(point, maxRadius)

	candidates, err := s.Index.QueryBox(ctx, box)
	if err != nil {
		return nil, fmt.Errorf("select station: query stations: %w", err)
	}

	scored := make([]scoredStation, 0, len(candidates))
	for _, st := range candidates {
		pos, ok := st.Position()
		if !ok {
			// Malformed row from the index; never fatal for the query.
			continue
		}

		// The bounding box is a superset pre-filter: degree-to-mile
		// conversion is anisotropic away from the equator, so each
		// candidate needs an exact distance check.
		d := geo.Miles(point, pos)
		if d > maxRadius {
			continue
		}

		scored = append(scored, scoredStation{
			station:  st,
			distance: d,
			score:    scoreStation(st.RetailPrice, d, maxRadius),
		})
	}

	if len(scored) == 0 {
		return nil, nil
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score < scored[j].score
		}
		if scored[i].station.RetailPrice != scored[j].station.RetailPrice {
			return scored[i].station.RetailPrice < scored[j].station.RetailPrice
		}
		return scored[i].distance < scored[j].distance
	})

	best := scored[0].station
	return &best, nil
}
