package ports

import (
	"context"
	"errors"

	"fuel-route-service/internal/domain"
)

var ErrPlanNotFound = errors.New("route plan not found")

// Port: persistence boundary for finished route plans.
type PlanRepository interface {
	// Persist the plan and its stops, assigning generated IDs in place.
	SavePlan(ctx context.Context, plan *domain.RoutePlan) error
	// Retrieve a stored plan with its stops ordered by stop number.
	// Returns ErrPlanNotFound when no plan has the given id.
	GetPlan(ctx context.Context, id int64) (*domain.RoutePlan, error)
	// Return recent plans without their stop details, newest first.
	ListPlans(ctx context.Context, limit int) ([]*domain.RoutePlan, error)
}
