package domain

// Edge is one outgoing, non-blocked road.
type Edge struct {
	To         int
	TravelTime float64
}

// Graph is the directed road network. It is read-only once built and safe
// for concurrent readers.
type Graph struct {
	adj   map[int][]Edge
	nodes []int
}

// BuildGraph creates an adjacency list with one entry per location, so
// isolated locations are present with no outgoing edges. Blocked roads and
// roads whose origin is not a known location are left out.
func BuildGraph(locations []Location, roads []Road) *Graph {
	g := &Graph{
		adj:   make(map[int][]Edge, len(locations)),
		nodes: make([]int, 0, len(locations)),
	}
	for _, l := range locations {
		if _, ok := g.adj[l.ID]; ok {
			continue
		}
		g.adj[l.ID] = []Edge{}
		g.nodes = append(g.nodes, l.ID)
	}
	for _, r := range roads {
		if r.Blocked {
			continue
		}
		if _, ok := g.adj[r.From]; !ok {
			continue
		}
		g.adj[r.From] = append(g.adj[r.From], Edge{To: r.To, TravelTime: r.TravelTime})
	}
	return g
}

// Neighbors returns the outgoing edges of id in road input order.
// The returned slice must not be modified.
func (g *Graph) Neighbors(id int) []Edge {
	return g.adj[id]
}

func (g *Graph) Has(id int) bool {
	_, ok := g.adj[id]
	return ok
}

// Nodes returns node ids in location input order.
func (g *Graph) Nodes() []int {
	return append([]int(nil), g.nodes...)
}

func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.adj {
		n += len(edges)
	}
	return n
}
