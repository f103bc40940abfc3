package cache

import (
	"context"
	"errors"
	"relief-dispatch-service/internal/domain"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFinder struct {
	mu    sync.Mutex
	calls map[int]int
	fail  map[int]bool
}

func newCountingFinder() *countingFinder {
	return &countingFinder{calls: map[int]int{}, fail: map[int]bool{}}
}

func (f *countingFinder) ShortestPaths(ctx context.Context, source int) (domain.ShortestPaths, error) {
	f.mu.Lock()
	f.calls[source]++
	fail := f.fail[source]
	f.mu.Unlock()

	if fail {
		return domain.ShortestPaths{}, errors.New("boom")
	}
	return domain.ShortestPaths{
		Source: source,
		Dist:   map[int]float64{source: 0},
		Paths:  map[int][]int{source: {source}},
	}, nil
}

func TestPathCacheMemoises(t *testing.T) {
	inner := newCountingFinder()
	c := NewPathCache(inner)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		sp, err := c.ShortestPaths(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, sp.Source)
	}

	assert.Equal(t, 1, inner.calls[4])
	hits, misses := c.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)
}

func TestPathCacheWarm(t *testing.T) {
	inner := newCountingFinder()
	c := NewPathCache(inner)

	require.NoError(t, c.Warm(context.Background(), []int{0, 1, 2, 2, 3}, 2))
	assert.Equal(t, 4, c.Len())

	_, err := c.ShortestPaths(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls[3])
}

func TestPathCacheWarmReportsFailure(t *testing.T) {
	inner := newCountingFinder()
	inner.fail[2] = true
	c := NewPathCache(inner)

	err := c.Warm(context.Background(), []int{0, 1, 2}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "warm source 2")
}

func TestPathCacheConcurrentHitsCounted(t *testing.T) {
	inner := newCountingFinder()
	c := NewPathCache(inner)
	ctx := context.Background()

	_, err := c.ShortestPaths(ctx, 1)
	require.NoError(t, err)

	const readers, reads = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < reads; j++ {
				sp, err := c.ShortestPaths(ctx, 1)
				assert.NoError(t, err)
				assert.Equal(t, 1, sp.Source)
			}
		}()
	}
	wg.Wait()

	hits, misses := c.Stats()
	assert.Equal(t, readers*reads, hits)
	assert.Equal(t, 1, misses)
	assert.Equal(t, 1, inner.calls[1])
}
