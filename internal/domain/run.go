package domain

// Run is one round trip from the depot. Stops holds the depot, each delivery
// stop in order, then the return leg back to the depot. Path holds every
// node driven through. Delivered is keyed by location id.
type Run struct {
	Vehicle   string      `json:"vehicle"`
	Number    int         `json:"number"`
	Stops     []int       `json:"stops"`
	Path      []int       `json:"path"`
	TotalTime float64     `json:"total_time"`
	Load      int         `json:"load"`
	Delivered map[int]int `json:"delivered"`
}

// DeliveryStops returns the stops where goods were dropped, in visiting order.
func (r Run) DeliveryStops() []int {
	out := make([]int, 0, len(r.Delivered))
	seen := make(map[int]struct{}, len(r.Delivered))
	for _, id := range r.Stops {
		if _, ok := r.Delivered[id]; !ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
