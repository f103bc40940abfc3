package domain

// ShortestPaths is the result of one single-source search. Unreachable nodes
// are absent from both maps. Each path starts at Source and ends at its key.
type ShortestPaths struct {
	Source int
	Dist   map[int]float64
	Paths  map[int][]int
}

func (sp ShortestPaths) Reachable(id int) bool {
	_, ok := sp.Dist[id]
	return ok
}

// PathTo returns a copy of the path to id, or nil when id is unreachable.
func (sp ShortestPaths) PathTo(id int) []int {
	p, ok := sp.Paths[id]
	if !ok {
		return nil
	}
	return append([]int(nil), p...)
}
