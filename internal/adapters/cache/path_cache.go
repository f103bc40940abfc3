package cache

import (
	"context"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/platform/obs"
	"relief-dispatch-service/internal/ports"
	"sync"
	"sync/atomic"
)

const defaultWarmWorkers = 4

// PathCache memoises single-source results of an inner PathFinder. The road
// graph is immutable for a plan, so a result never goes stale; one cache must
// not outlive the graph it was built for.
//
// The cache is safe for concurrent use. Cached results are shared and must be
// treated as read-only by callers.
type PathCache struct {
	inner ports.PathFinder

	mu      sync.RWMutex
	results map[int]domain.ShortestPaths

	hits   atomic.Int64
	misses atomic.Int64
}

func NewPathCache(inner ports.PathFinder) *PathCache {
	return &PathCache{
		inner:   inner,
		results: make(map[int]domain.ShortestPaths),
	}
}

// Return the cached result for source, computing it on a miss.
func (c *PathCache) ShortestPaths(ctx context.Context, source int) (domain.ShortestPaths, error) {
	if c.inner == nil {
		return domain.ShortestPaths{}, errors.New("path cache: inner path finder is nil")
	}

	c.mu.RLock()
	sp, ok := c.results[source]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return sp, nil
	}

	sp, err := c.inner.ShortestPaths(ctx, source)
	if err != nil {
		return domain.ShortestPaths{}, fmt.Errorf("path cache: %w", err)
	}

	c.misses.Add(1)
	c.mu.Lock()
	// Keep the first stored result so every caller sees the same maps.
	if existing, ok := c.results[source]; ok {
		sp = existing
	} else {
		c.results[source] = sp
	}
	c.mu.Unlock()

	return sp, nil
}

// Compute results for many sources concurrently. Searches are read-only over
// the graph, so they can run in parallel. The first failure cancels the rest.
func (c *PathCache) Warm(ctx context.Context, sources []int, workers int) (err error) {
	defer obs.Time(ctx, "path.cache.Warm")(&err)

	if workers <= 0 {
		workers = defaultWarmWorkers
	}

	seen := make(map[int]struct{}, len(sources))
	uniq := make([]int, 0, len(sources))
	for _, s := range sources {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		uniq = append(uniq, s)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, workers)
	errCh := make(chan error, len(uniq))
	var wg sync.WaitGroup

	for _, source := range uniq {
		wg.Add(1)
		go func(src int) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if _, e := c.ShortestPaths(ctx, src); e != nil {
				errCh <- fmt.Errorf("warm source %d: %w", src, e)
				cancel()
			}
		}(source)
	}

	wg.Wait()
	close(errCh)

	for e := range errCh {
		if err == nil {
			err = e
		}
	}
	return err
}

// Stats reports cache hits and misses.
func (c *PathCache) Stats() (hits, misses int) {
	return int(c.hits.Load()), int(c.misses.Load())
}

// Len reports how many sources are cached.
func (c *PathCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}
