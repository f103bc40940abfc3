package services

import (
	"context"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/platform/obs"
	"relief-dispatch-service/internal/ports"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Planner is the composition point for one dispatch: validation, graph
// construction, dispatch, aggregation, metrics and storage. Repositories and
// the recorder are optional.
type Planner struct {
	Scenarios ports.ScenarioRepository
	Plans     ports.PlanRepository
	Recorder  ports.DispatchRecorder

	// NewPathFinder wraps the built graph; defaults to NewGraphPathFinder.
	NewPathFinder func(g *domain.Graph) ports.PathFinder

	WarmPaths     bool
	WarmWorkers   int
	VehiclePrefix string

	Now func() time.Time
}

// PlanByName loads a stored scenario and plans it.
func (p *Planner) PlanByName(ctx context.Context, name string) (*domain.PlanRecord, error) {
	if p.Scenarios == nil {
		return nil, errors.New("plan by name: no scenario repository configured")
	}
	s, err := p.Scenarios.GetScenario(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("plan by name: get scenario %q: %w", name, err)
	}
	return p.PlanScenario(ctx, name, s)
}

// PlanScenario dispatches the fleet over the scenario's road network.
//
// Malformed input fails before any routing. On partial completion the record
// is still built and stored, and is returned together with the
// *domain.PartialCompletionError.
func (p *Planner) PlanScenario(ctx context.Context, name string, s *domain.Scenario) (_ *domain.PlanRecord, err error) {
	defer obs.Time(ctx, "planner.PlanScenario")(&err)

	if s == nil {
		return nil, errors.New("plan scenario: scenario must be non-nil")
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("plan scenario: %w", err)
	}

	if name == "" {
		name = s.Meta.Name
	}
	title := s.Meta.Name
	if title == "" {
		title = name
	}

	log := zerolog.Ctx(ctx).With().Str("scenario", name).Logger()
	ctx = log.WithContext(ctx)

	start := p.now()
	depot := s.Depot()
	graph := domain.BuildGraph(s.Locations, s.Roads)

	newFinder := p.NewPathFinder
	if newFinder == nil {
		newFinder = func(g *domain.Graph) ports.PathFinder { return NewGraphPathFinder(g) }
	}
	finder := newFinder(graph)

	demand := domain.NewDemandLedger(s.Locations)

	// Precompute searches from every place a vehicle can stand when supported.
	if w, ok := finder.(ports.WarmablePathFinder); ok && p.WarmPaths {
		sources := append([]int{depot}, demand.Outstanding()...)
		if err := w.Warm(ctx, sources, p.WarmWorkers); err != nil {
			return nil, fmt.Errorf("plan scenario: warm path finder: %w", err)
		}
	}

	fleet := domain.NewFleet(s.Meta.Trucks, s.Meta.TruckCapacity, p.VehiclePrefix)
	agg := NewRunAggregator(title, depot, s.Locations, fleet)

	runs, dispatchErr := DispatchAll(ctx, finder, depot, demand, fleet)

	var partial *domain.PartialCompletionError
	if dispatchErr != nil && !errors.As(dispatchErr, &partial) {
		return nil, fmt.Errorf("plan scenario: %w", dispatchErr)
	}

	for _, run := range runs {
		agg.Add(run)
		if p.Recorder != nil {
			p.Recorder.RecordRun(run)
		}
	}

	var unserved []int
	if partial != nil {
		unserved = partial.Unserved
		partial.Names = domain.NewDirectory(s.Locations).Names(unserved)
	}
	report := agg.Report(unserved)

	if p.Recorder != nil {
		p.Recorder.RecordPlan(report, p.now().Sub(start))
	}

	rec := &domain.PlanRecord{
		ID:        uuid.NewString(),
		Scenario:  name,
		CreatedAt: p.now().UTC(),
		Input:     *s,
		Report:    report,
	}

	if p.Plans != nil {
		if err := p.Plans.SavePlan(ctx, rec); err != nil {
			return nil, fmt.Errorf("plan scenario: save plan: %w", err)
		}
	}

	log.Info().
		Str("plan_id", rec.ID).
		Int("runs", report.RunCount()).
		Int("delivered", report.TotalDelivered()).
		Bool("complete", report.Complete).
		Msg("plan finished")

	if partial != nil {
		return rec, partial
	}
	return rec, nil
}

func (p *Planner) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
