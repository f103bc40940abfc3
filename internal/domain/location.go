package domain

import (
	"sort"
	"strconv"
)

// A place on the road network. Demand is the initial quantity requested;
// remaining demand during dispatch is tracked by a DemandLedger.
type Location struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Demand    int     `json:"demand"`
}

func (l Location) Coordinates() Coordinates {
	return Coordinates{Lon: l.Longitude, Lat: l.Latitude}
}

// Directory is the canonical id -> location lookup. All internal structures
// are keyed by id; names are projected only when reporting.
type Directory struct {
	byID  map[int]Location
	order []int
}

func NewDirectory(locations []Location) Directory {
	d := Directory{
		byID:  make(map[int]Location, len(locations)),
		order: make([]int, 0, len(locations)),
	}
	for _, l := range locations {
		if _, ok := d.byID[l.ID]; ok {
			continue
		}
		d.byID[l.ID] = l
		d.order = append(d.order, l.ID)
	}
	return d
}

func (d Directory) Lookup(id int) (Location, bool) {
	l, ok := d.byID[id]
	return l, ok
}

// Name returns the display name for id, falling back to "#<id>" for unknown ids.
func (d Directory) Name(id int) string {
	if l, ok := d.byID[id]; ok && l.Name != "" {
		return l.Name
	}
	return "#" + strconv.Itoa(id)
}

func (d Directory) Names(ids []int) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, d.Name(id))
	}
	return out
}

// IDs returns location ids in input order.
func (d Directory) IDs() []int {
	return append([]int(nil), d.order...)
}

// ByName projects an id-keyed quantity map onto location names.
func (d Directory) ByName(qty map[int]int) map[string]int {
	out := make(map[string]int, len(qty))
	for id, q := range qty {
		out[d.Name(id)] += q
	}
	return out
}

func sortedIDs[V any](m map[int]V) []int {
	ids := make([]int, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}
