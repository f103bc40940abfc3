package geo

import (
	"relief-dispatch-service/internal/domain"

	"github.com/paulmach/orb/geo"
)

// Position is where one vehicle stands in a frame.
type Position struct {
	Vehicle    string  `json:"vehicle"`
	LocationID int     `json:"location_id"`
	Name       string  `json:"name"`
	Lon        float64 `json:"lon"`
	Lat        float64 `json:"lat"`
	// Straight-line distance covered so far, in kilometres.
	DistanceKm float64 `json:"distance_km"`
	Done       bool    `json:"done"`
}

type Frame struct {
	Index     int        `json:"index"`
	Positions []Position `json:"positions"`
}

// Itinerary concatenates a vehicle's run paths into a single node sequence.
// The depot shared by the end of one run and the start of the next appears once.
func Itinerary(runs []domain.Run) []int {
	var out []int
	for _, run := range runs {
		path := run.Path
		if len(out) > 0 && len(path) > 0 && out[len(out)-1] == path[0] {
			path = path[1:]
		}
		out = append(out, path...)
	}
	return out
}

// Frames projects the report onto animation frames. Frame i places every
// vehicle at node i of its itinerary; vehicles whose itinerary is exhausted
// stay on their last node. Vehicles that never ran are omitted.
func Frames(report domain.DeliveryReport) []Frame {
	dir := report.Directory()

	type track struct {
		label string
		nodes []int
		km    []float64
	}
	var tracks []track
	longest := 0
	for _, v := range report.Vehicles {
		nodes := Itinerary(v.Runs)
		if len(nodes) == 0 {
			continue
		}
		km := make([]float64, len(nodes))
		for i := 1; i < len(nodes); i++ {
			km[i] = km[i-1]
			a, okA := dir.Lookup(nodes[i-1])
			b, okB := dir.Lookup(nodes[i])
			if okA && okB {
				km[i] += geo.Distance(a.Coordinates().Point(), b.Coordinates().Point()) / 1000
			}
		}
		tracks = append(tracks, track{label: v.Label, nodes: nodes, km: km})
		if len(nodes) > longest {
			longest = len(nodes)
		}
	}

	frames := make([]Frame, 0, longest)
	for i := 0; i < longest; i++ {
		f := Frame{Index: i, Positions: make([]Position, 0, len(tracks))}
		for _, t := range tracks {
			at := i
			if at >= len(t.nodes) {
				at = len(t.nodes) - 1
			}
			id := t.nodes[at]
			p := Position{
				Vehicle:    t.label,
				LocationID: id,
				Name:       dir.Name(id),
				DistanceKm: t.km[at],
				Done:       i >= len(t.nodes)-1,
			}
			if loc, ok := dir.Lookup(id); ok {
				p.Lon, p.Lat = loc.Longitude, loc.Latitude
			}
			f.Positions = append(f.Positions, p)
		}
		frames = append(frames, f)
	}
	return frames
}
