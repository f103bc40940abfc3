package services

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"relief-dispatch-service/internal/domain"
)

// frontierItem is a tentative distance admitted to the frontier. seq records
// discovery order so equal distances pop first-found first.
type frontierItem struct {
	node int
	dist float64
	seq  int
}

type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	it := old[n-1]
	*f = old[:n-1]
	return it
}

// ShortestPaths runs a priority-driven single-source search over g.
//
// Each improved neighbor records its full path (settled prefix + neighbor)
// rather than a predecessor pointer. A neighbor is only updated on a strictly
// shorter distance, so the first path found wins ties. Stale frontier entries
// are skipped when popped. The graph is never modified, so concurrent calls
// are safe.
func ShortestPaths(g *domain.Graph, source int) domain.ShortestPaths {
	res := domain.ShortestPaths{
		Source: source,
		Dist:   map[int]float64{source: 0},
		Paths:  map[int][]int{source: {source}},
	}

	settled := make(map[int]struct{})
	seq := 0
	pq := &frontier{{node: source, dist: 0, seq: seq}}

	for pq.Len() > 0 {
		cur := heap.Pop(pq).(frontierItem)
		if _, done := settled[cur.node]; done {
			continue
		}
		settled[cur.node] = struct{}{}

		prefix := res.Paths[cur.node]
		for _, e := range g.Neighbors(cur.node) {
			if _, done := settled[e.To]; done {
				continue
			}
			cost := cur.dist + e.TravelTime
			if known, ok := res.Dist[e.To]; ok && cost >= known {
				continue
			}

			p := make([]int, len(prefix)+1)
			copy(p, prefix)
			p[len(prefix)] = e.To

			res.Dist[e.To] = cost
			res.Paths[e.To] = p
			seq++
			heap.Push(pq, frontierItem{node: e.To, dist: cost, seq: seq})
		}
	}

	return res
}

// GraphPathFinder implements ports.PathFinder by searching the graph on every call.
type GraphPathFinder struct {
	Graph *domain.Graph
}

func NewGraphPathFinder(g *domain.Graph) *GraphPathFinder {
	return &GraphPathFinder{Graph: g}
}

func (f *GraphPathFinder) ShortestPaths(ctx context.Context, source int) (domain.ShortestPaths, error) {
	if f.Graph == nil {
		return domain.ShortestPaths{}, errors.New("shortest paths: graph is nil")
	}
	if err := ctx.Err(); err != nil {
		return domain.ShortestPaths{}, fmt.Errorf("shortest paths from %d: %w", source, err)
	}
	return ShortestPaths(f.Graph, source), nil
}
