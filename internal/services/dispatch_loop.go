package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/ports"

	"github.com/rs/zerolog"
)

// PlanRun builds one vehicle run using a greedy nearest-demand heuristic.
//
// From the current position it picks the reachable location with the smallest
// travel time among those still needing goods, delivers as much as the
// remaining capacity allows, and moves there. It stops when the vehicle is full,
// no demand remains, or nothing outstanding is reachable, then drives back to
// the depot. This is not a global optimiser; it keeps strict less-than
// selection with ascending-id tie-break so output is deterministic.
//
// The ledger is decremented in place. A run that delivers nothing comes back
// with Load 0 and Stops [depot].
func PlanRun(
	ctx context.Context,
	finder ports.PathFinder,
	depot int,
	demand *domain.DemandLedger,
	capacity int,
) (domain.Run, error) {
	if finder == nil {
		return domain.Run{}, errors.New("plan run: path finder must be non-nil")
	}
	if demand == nil {
		return domain.Run{}, errors.New("plan run: demand ledger must be non-nil")
	}
	if capacity <= 0 {
		return domain.Run{}, &domain.InputError{
			Record: "capacity",
			Index:  -1,
			Reason: fmt.Sprintf("must be positive, got %d", capacity),
		}
	}

	log := zerolog.Ctx(ctx)

	run := domain.Run{
		Stops:     []int{depot},
		Path:      []int{depot},
		Delivered: map[int]int{},
	}
	current := depot

	for run.Load < capacity && !demand.Done() {
		sp, err := finder.ShortestPaths(ctx, current)
		if err != nil {
			return domain.Run{}, fmt.Errorf("plan run: shortest paths from %d: %w", current, err)
		}

		chosen := -1
		best := math.Inf(1)
		// Outstanding is ascending by id, so strict less-than keeps the lowest id on ties.
		for _, id := range demand.Outstanding() {
			d, ok := sp.Dist[id]
			if !ok {
				continue
			}
			if d < best {
				best = d
				chosen = id
			}
		}

		if chosen < 0 {
			log.Debug().Int("position", current).Msg("no reachable demand from position")
			break
		}

		qty := demand.Take(chosen, capacity-run.Load)
		run.Load += qty
		run.Delivered[chosen] += qty
		run.TotalTime += best
		run.Stops = append(run.Stops, chosen)
		run.Path = append(run.Path, sp.Paths[chosen][1:]...)
		current = chosen

		log.Debug().
			Int("stop", chosen).
			Float64("travel_time", best).
			Int("quantity", qty).
			Int("load", run.Load).
			Msg("stop selected")
	}

	if current != depot {
		sp, err := finder.ShortestPaths(ctx, current)
		if err != nil {
			return domain.Run{}, fmt.Errorf("plan run: shortest paths for return leg from %d: %w", current, err)
		}
		back, ok := sp.Dist[depot]
		if !ok {
			return domain.Run{}, &domain.UnreachableError{From: current, To: depot}
		}
		tail := sp.Paths[depot][1:]
		run.Stops = append(run.Stops, tail...)
		run.Path = append(run.Path, tail...)
		run.TotalTime += back
	}

	return run, nil
}

// DispatchAll plans runs round-robin across the fleet until the ledger is
// empty. The ledger is the only mutable state and is owned by this call for
// its duration.
//
// If a run starting at the depot can reach none of the remaining demand, no
// later run could either; dispatch stops and returns the runs made so far with
// a *domain.PartialCompletionError listing the unserved location ids. An
// unreachable depot-return aborts with a *domain.UnreachableError.
func DispatchAll(
	ctx context.Context,
	finder ports.PathFinder,
	depot int,
	demand *domain.DemandLedger,
	fleet []*domain.Vehicle,
) ([]domain.Run, error) {
	if len(fleet) == 0 {
		return nil, &domain.InputError{Record: "fleet", Index: -1, Reason: "fleet must not be empty"}
	}

	log := zerolog.Ctx(ctx)
	runs := []domain.Run{}
	idx := 0

	for !demand.Done() {
		if err := ctx.Err(); err != nil {
			return runs, fmt.Errorf("dispatch: %w", err)
		}

		v := fleet[idx%len(fleet)]
		run, err := PlanRun(ctx, finder, depot, demand, v.Capacity)
		if err != nil {
			var unreachable *domain.UnreachableError
			if errors.As(err, &unreachable) {
				unreachable.Vehicle = v.Label
			}
			return runs, fmt.Errorf("dispatch: %s: %w", v.Label, err)
		}

		if run.Load == 0 {
			unserved := demand.Outstanding()
			log.Warn().Ints("unserved", unserved).Msg("remaining demand is unreachable from depot")
			return runs, &domain.PartialCompletionError{Unserved: unserved}
		}

		run.Vehicle = v.Label
		run.Number = v.RecordRun()
		runs = append(runs, run)

		log.Debug().
			Str("vehicle", run.Vehicle).
			Int("run", run.Number).
			Ints("stops", run.Stops).
			Float64("total_time", run.TotalTime).
			Int("load", run.Load).
			Msg("run planned")

		idx = (idx + 1) % len(fleet)
	}

	return runs, nil
}
