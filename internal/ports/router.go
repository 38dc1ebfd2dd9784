package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// A driving route between two points as returned by the routing service.
// Geometry is an ordered polyline of at least two points.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	Geometry        []domain.Coordinates
}

// Contract for retrieving a driving route between two coordinates.
type Router interface {
	// Return the driving route from start to end. Any failure means the
	// route is unavailable; callers must not substitute a default route.
	Route(ctx context.Context, start, end domain.Coordinates) (RouteResult, error)
}
