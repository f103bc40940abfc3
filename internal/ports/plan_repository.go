package ports

import (
	"context"
	"relief-dispatch-service/internal/domain"
)

// Port: storage for finished plans so they can be served again.
type PlanRepository interface {
	SavePlan(ctx context.Context, plan *domain.PlanRecord) error
	// Returns domain.ErrPlanNotFound when absent.
	GetPlan(ctx context.Context, id string) (*domain.PlanRecord, error)
}
