package services

import (
	"context"
	"math"
	"math/rand"
	"relief-dispatch-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

func locs(ids ...int) []domain.Location {
	out := make([]domain.Location, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Location{ID: id, Name: "L" + string(rune('A'+id))})
	}
	return out
}

func TestShortestPathsSourceOnly(t *testing.T) {
	g := domain.BuildGraph(locs(0, 1), nil)

	sp := ShortestPaths(g, 0)

	assert.Equal(t, map[int]float64{0: 0}, sp.Dist)
	assert.Equal(t, map[int][]int{0: {0}}, sp.Paths)
	assert.False(t, sp.Reachable(1))
	assert.Nil(t, sp.PathTo(1))
}

func TestShortestPathsPrefersCheaperDetour(t *testing.T) {
	g := domain.BuildGraph(locs(0, 1, 2, 3), []domain.Road{
		{From: 0, To: 1, TravelTime: 10},
		{From: 0, To: 2, TravelTime: 3},
		{From: 2, To: 1, TravelTime: 4},
		{From: 1, To: 3, TravelTime: 1},
	})

	sp := ShortestPaths(g, 0)

	assert.Equal(t, 7.0, sp.Dist[1])
	assert.Equal(t, []int{0, 2, 1}, sp.Paths[1])
	assert.Equal(t, 8.0, sp.Dist[3])
	assert.Equal(t, []int{0, 2, 1, 3}, sp.Paths[3])
}

func TestShortestPathsFirstFoundWinsTies(t *testing.T) {
	g := domain.BuildGraph(locs(0, 1, 2), []domain.Road{
		{From: 0, To: 1, TravelTime: 2},
		{From: 0, To: 2, TravelTime: 1},
		{From: 2, To: 1, TravelTime: 1},
	})

	sp := ShortestPaths(g, 0)

	assert.Equal(t, 2.0, sp.Dist[1])
	assert.Equal(t, []int{0, 1}, sp.Paths[1])
}

func TestShortestPathsIgnoresBlockedRoads(t *testing.T) {
	g := domain.BuildGraph(locs(0, 1, 2), []domain.Road{
		{From: 0, To: 1, TravelTime: 9},
		{From: 0, To: 2, TravelTime: 1, Blocked: true},
		{From: 2, To: 1, TravelTime: 1},
	})

	sp := ShortestPaths(g, 0)

	assert.Equal(t, 9.0, sp.Dist[1])
	assert.Equal(t, []int{0, 1}, sp.Paths[1])
	assert.False(t, sp.Reachable(2))
}

func TestShortestPathsIsReinvokable(t *testing.T) {
	g := domain.BuildGraph(locs(0, 1, 2), []domain.Road{
		{From: 0, To: 1, TravelTime: 1},
		{From: 1, To: 2, TravelTime: 1},
		{From: 2, To: 0, TravelTime: 1},
	})

	first := ShortestPaths(g, 1)
	_ = ShortestPaths(g, 0)
	again := ShortestPaths(g, 1)

	assert.Equal(t, first, again)
	assert.Equal(t, []int{1, 2, 0}, again.Paths[0])
}

// randomRoads builds a directed network without self loops. Some roads are
// blocked; parallel roads are allowed.
func randomRoads(r *rand.Rand, n, m int) []domain.Road {
	roads := make([]domain.Road, 0, m)
	for len(roads) < m {
		from, to := r.Intn(n), r.Intn(n)
		if from == to {
			continue
		}
		roads = append(roads, domain.Road{
			From:       from,
			To:         to,
			TravelTime: float64(1 + r.Intn(20)),
			Blocked:    r.Intn(6) == 0,
		})
	}
	return roads
}

func TestShortestPathsMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(7))

	for trial := 0; trial < 25; trial++ {
		n := 2 + r.Intn(14)
		ids := make([]int, n)
		for i := range ids {
			ids[i] = i
		}
		roads := randomRoads(r, n, r.Intn(n*4))

		g := domain.BuildGraph(locs(ids...), roads)

		// Reference graph keeps the cheapest open road per ordered pair.
		ref := simple.NewWeightedDirectedGraph(0, math.Inf(1))
		for _, id := range ids {
			ref.AddNode(simple.Node(id))
		}
		cheapest := map[[2]int]float64{}
		for _, rd := range roads {
			if rd.Blocked {
				continue
			}
			k := [2]int{rd.From, rd.To}
			if w, ok := cheapest[k]; !ok || rd.TravelTime < w {
				cheapest[k] = rd.TravelTime
			}
		}
		for k, w := range cheapest {
			ref.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(k[0]), T: simple.Node(k[1]), W: w})
		}

		for _, src := range ids {
			sp := ShortestPaths(g, src)
			oracle := path.DijkstraFrom(simple.Node(src), ref)

			for _, dst := range ids {
				want := oracle.WeightTo(int64(dst))
				got, ok := sp.Dist[dst]
				if math.IsInf(want, 1) {
					assert.False(t, ok, "trial %d: %d->%d should be unreachable", trial, src, dst)
					continue
				}
				require.True(t, ok, "trial %d: %d->%d should be reachable", trial, src, dst)
				assert.Equal(t, want, got, "trial %d: distance %d->%d", trial, src, dst)

				p := sp.Paths[dst]
				require.NotEmpty(t, p)
				assert.Equal(t, src, p[0])
				assert.Equal(t, dst, p[len(p)-1])

				sum := 0.0
				for i := 0; i+1 < len(p); i++ {
					w, ok := cheapest[[2]int{p[i], p[i+1]}]
					require.True(t, ok, "trial %d: path %v uses a missing or blocked road", trial, p)
					sum += w
				}
				assert.Equal(t, got, sum, "trial %d: path %v edge sum", trial, p)
			}
		}
	}
}

func TestGraphPathFinderHonoursContext(t *testing.T) {
	f := NewGraphPathFinder(domain.BuildGraph(locs(0), nil))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.ShortestPaths(ctx, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
