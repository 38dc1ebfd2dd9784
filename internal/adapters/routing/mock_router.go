package routing

import (
	"context"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// In-memory Router used by tests.
type MockRouter struct {
	Result ports.RouteResult
	Err    error
	Calls  int
}

func (m *MockRouter) Route(ctx context.Context, start, end domain.Coordinates) (ports.RouteResult, error) {
	m.Calls++
	if m.Err != nil {
		return ports.RouteResult{}, m.Err
	}
	return m.Result, nil
}
