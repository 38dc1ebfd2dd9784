package ports

import (
	"context"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
)

// Port: a boundary for querying fuel stations by geographic area.
type StationIndex interface {
	// Return all stations inside the bounding box that have both a retail
	// price and coordinates. Unordered, no side effects.
	QueryBox(ctx context.Context, box geo.BoundingBox) ([]domain.FuelStation, error)
}

// Port: read-only station listings for the API surface.
type StationRepository interface {
	// Return stations ordered by retail price ascending.
	ListStations(ctx context.Context, limit, offset int) ([]domain.FuelStation, error)
}
