package services

import (
	"context"
	"errors"
	"relief-dispatch-service/internal/adapters/cache"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/ports"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryScenarios map[string]*domain.Scenario

func (m memoryScenarios) ListScenarios(ctx context.Context) ([]domain.ScenarioInfo, error) {
	return nil, nil
}

func (m memoryScenarios) GetScenario(ctx context.Context, name string) (*domain.Scenario, error) {
	s, ok := m[name]
	if !ok {
		return nil, domain.ErrScenarioNotFound
	}
	return s, nil
}

type memoryPlans struct {
	mu    sync.Mutex
	plans map[string]*domain.PlanRecord
}

func (m *memoryPlans) SavePlan(ctx context.Context, p *domain.PlanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plans == nil {
		m.plans = map[string]*domain.PlanRecord{}
	}
	m.plans[p.ID] = p
	return nil
}

func (m *memoryPlans) GetPlan(ctx context.Context, id string) (*domain.PlanRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plans[id]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	return p, nil
}

type countingRecorder struct {
	runs  int
	plans int
}

func (c *countingRecorder) RecordRun(domain.Run) { c.runs++ }

func (c *countingRecorder) RecordPlan(domain.DeliveryReport, time.Duration) { c.plans++ }

func reliefScenario() *domain.Scenario {
	return &domain.Scenario{
		Locations: []domain.Location{
			{ID: 0, Name: "Depot", Latitude: 29.76, Longitude: -95.36},
			{ID: 1, Name: "A", Latitude: 29.78, Longitude: -95.33, Demand: 5},
			{ID: 2, Name: "B", Latitude: 29.74, Longitude: -95.39, Demand: 3},
		},
		Roads: roads(twoWay(0, 1, 4), twoWay(0, 2, 2)),
		Meta:  domain.Meta{Name: "Relief", Trucks: 2, TruckCapacity: 10},
	}
}

func TestPlannerPlanScenario(t *testing.T) {
	plans := &memoryPlans{}
	rec := &countingRecorder{}
	var pathCache *cache.PathCache
	p := &Planner{
		Plans:    plans,
		Recorder: rec,
		NewPathFinder: func(g *domain.Graph) ports.PathFinder {
			pathCache = cache.NewPathCache(NewGraphPathFinder(g))
			return pathCache
		},
		WarmPaths:   true,
		WarmWorkers: 2,
	}

	got, err := p.PlanScenario(context.Background(), "relief", reliefScenario())
	require.NoError(t, err)

	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "relief", got.Scenario)
	assert.True(t, got.Report.Complete)
	assert.Equal(t, map[string]int{"A": 5, "B": 3}, got.Report.DeliveredByName())
	require.Len(t, got.Report.Vehicles, 2)
	require.Len(t, got.Report.Vehicles[0].Runs, 1)
	assert.Equal(t, []int{0, 2, 1, 0}, got.Report.Vehicles[0].Runs[0].Stops)
	assert.Empty(t, got.Report.Vehicles[1].Runs)

	stored, err := plans.GetPlan(context.Background(), got.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)

	assert.Equal(t, 1, rec.runs)
	assert.Equal(t, 1, rec.plans)
	require.NotNil(t, pathCache)
	assert.Equal(t, 3, pathCache.Len())
}

func TestPlannerRejectsMalformedInput(t *testing.T) {
	s := reliefScenario()
	s.Roads[0].To = 42

	_, err := (&Planner{}).PlanScenario(context.Background(), "bad", s)

	var inErr *domain.InputError
	require.True(t, errors.As(err, &inErr))
	assert.Equal(t, "road", inErr.Record)
	assert.Equal(t, 42, inErr.ID)
}

func TestPlannerPartialCompletion(t *testing.T) {
	s := reliefScenario()
	s.Locations = append(s.Locations, domain.Location{ID: 3, Name: "Cut off", Demand: 6})
	s.Roads = append(s.Roads, domain.Road{From: 0, To: 3, TravelTime: 1, Blocked: true})
	plans := &memoryPlans{}

	got, err := (&Planner{Plans: plans}).PlanScenario(context.Background(), "", s)

	var partial *domain.PartialCompletionError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, []int{3}, partial.Unserved)
	assert.Equal(t, []string{"Cut off"}, partial.Names)

	require.NotNil(t, got)
	assert.Equal(t, "Relief", got.Scenario)
	assert.False(t, got.Report.Complete)
	assert.Equal(t, []int{3}, got.Report.Unserved)
	assert.Equal(t, 8, got.Report.TotalDelivered())
	assert.Len(t, plans.plans, 1)
}

func TestPlannerPlanByName(t *testing.T) {
	p := &Planner{Scenarios: memoryScenarios{"relief": reliefScenario()}}

	got, err := p.PlanByName(context.Background(), "relief")
	require.NoError(t, err)
	assert.Equal(t, 8, got.Report.TotalDelivered())

	_, err = p.PlanByName(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrScenarioNotFound)
}

func TestPlannerUnreachableReturnFails(t *testing.T) {
	s := reliefScenario()
	s.Roads = []domain.Road{{From: 0, To: 1, TravelTime: 1}, {From: 0, To: 2, TravelTime: 1}, {From: 2, To: 0, TravelTime: 1}}

	got, err := (&Planner{}).PlanScenario(context.Background(), "oneway", s)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrUnreachable)
}
