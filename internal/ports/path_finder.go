package ports

import (
	"context"
	"relief-dispatch-service/internal/domain"
)

// Contract for single-source shortest-path lookups over an immutable road graph.
type PathFinder interface {
	// Return travel time and path from source to every reachable location.
	ShortestPaths(ctx context.Context, source int) (domain.ShortestPaths, error)
}

// Optional extension of PathFinder that can precompute many sources up front.
type WarmablePathFinder interface {
	PathFinder
	// Compute and retain results for the given sources using up to workers goroutines.
	Warm(ctx context.Context, sources []int, workers int) error
}
