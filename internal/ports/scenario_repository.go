package ports

import (
	"context"
	"relief-dispatch-service/internal/domain"
)

// Port: a boundary for retrieving dispatch scenarios from a data source.
type ScenarioRepository interface {
	// List the scenarios available for planning, ordered by name.
	ListScenarios(ctx context.Context) ([]domain.ScenarioInfo, error)
	// Retrieve one scenario; returns domain.ErrScenarioNotFound when absent.
	GetScenario(ctx context.Context, name string) (*domain.Scenario, error)
}
