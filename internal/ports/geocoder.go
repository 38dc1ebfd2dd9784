package ports

import (
	"context"
	"errors"

	"fuel-route-service/internal/domain"
)

// Returned by a Geocoder when the provider has no match for an address.
// Callers treat this as an input error, not a provider failure.
var ErrNoResults = errors.New("geocoder: no results")

// Contract for resolving a free-form address into coordinates.
type Geocoder interface {
	// Return the best-match coordinates for the address, or ErrNoResults.
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
