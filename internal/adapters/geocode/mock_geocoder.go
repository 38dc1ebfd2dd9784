package geocode

import (
	"context"
	"fmt"
	"sync/atomic"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// In-memory Geocoder used by tests. Addresses missing from Coords resolve
// to ErrNoResults. The call counter is atomic because callers may geocode
// several addresses concurrently.
type MockGeocoder struct {
	Coords map[string]domain.Coordinates
	Calls  atomic.Int64
}

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	m.Calls.Add(1)
	c, ok := m.Coords[address]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrNoResults)
	}
	return c, nil
}
