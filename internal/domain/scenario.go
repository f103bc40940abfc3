package domain

import (
	"fmt"
	"math"
	"strings"
)

// DefaultDepotID is the depot used when meta does not name one.
const DefaultDepotID = 0

// Meta carries fleet parameters and the scenario title.
type Meta struct {
	Name          string `json:"name"`
	Trucks        int    `json:"trucks"`
	TruckCapacity int    `json:"truck_capacity"`
	DepotID       *int   `json:"depot_id,omitempty"`
}

// Scenario is the single input document: locations, roads and meta.
type Scenario struct {
	Locations []Location `json:"locations"`
	Roads     []Road     `json:"roads"`
	Meta      Meta       `json:"meta"`
}

func (s *Scenario) Depot() int {
	if s.Meta.DepotID != nil {
		return *s.Meta.DepotID
	}
	return DefaultDepotID
}

// Validate rejects malformed input before any routing work is done.
// It reports the first offending record.
func (s *Scenario) Validate() error {
	if s.Meta.Trucks <= 0 {
		return &InputError{Record: "meta.trucks", Index: -1, Reason: fmt.Sprintf("must be positive, got %d", s.Meta.Trucks)}
	}
	if s.Meta.TruckCapacity <= 0 {
		return &InputError{Record: "meta.truck_capacity", Index: -1, Reason: fmt.Sprintf("must be positive, got %d", s.Meta.TruckCapacity)}
	}
	if len(s.Locations) == 0 {
		return &InputError{Record: "locations", Index: -1, Reason: "at least one location is required"}
	}

	seen := make(map[int]struct{}, len(s.Locations))
	for i, l := range s.Locations {
		if l.ID < 0 {
			return &InputError{Record: "location", Index: i, ID: l.ID, Reason: "id must be non-negative"}
		}
		if _, ok := seen[l.ID]; ok {
			return &InputError{Record: "location", Index: i, ID: l.ID, Reason: "duplicate id"}
		}
		seen[l.ID] = struct{}{}
		if strings.TrimSpace(l.Name) == "" {
			return &InputError{Record: "location", Index: i, ID: l.ID, Reason: "name is required"}
		}
		if l.Demand < 0 {
			return &InputError{Record: "location", Index: i, ID: l.ID, Reason: fmt.Sprintf("demand must be non-negative, got %d", l.Demand)}
		}
		if l.Latitude < -90 || l.Latitude > 90 || l.Longitude < -180 || l.Longitude > 180 {
			return &InputError{Record: "location", Index: i, ID: l.ID, Reason: "coordinates out of range"}
		}
	}

	depot := s.Depot()
	found := false
	for _, l := range s.Locations {
		if l.ID != depot {
			continue
		}
		found = true
		if l.Demand != 0 {
			return &InputError{Record: "depot", Index: -1, Reason: fmt.Sprintf("depot %d must have demand 0, got %d", depot, l.Demand)}
		}
	}
	if !found {
		return &InputError{Record: "depot", Index: -1, Reason: fmt.Sprintf("no location with depot id %d", depot)}
	}

	for i, r := range s.Roads {
		if _, ok := seen[r.From]; !ok {
			return &InputError{Record: "road", Index: i, ID: r.From, Reason: fmt.Sprintf("from_id %d references unknown location", r.From)}
		}
		if _, ok := seen[r.To]; !ok {
			return &InputError{Record: "road", Index: i, ID: r.To, Reason: fmt.Sprintf("to_id %d references unknown location", r.To)}
		}
		if !(r.TravelTime > 0) || math.IsInf(r.TravelTime, 0) {
			return &InputError{Record: "road", Index: i, ID: r.From, Reason: fmt.Sprintf("travel_time_minutes must be positive, got %v", r.TravelTime)}
		}
	}

	return nil
}

// ScenarioInfo summarises a stored scenario for listings.
type ScenarioInfo struct {
	Name      string
	Locations int
	Roads     int
}
