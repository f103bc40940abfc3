package domain

import (
	"encoding/json"
	"fmt"
)

// scenarioWire mirrors Scenario with pointer fields so that an absent
// key can be told apart from an explicit zero.
type scenarioWire struct {
	Locations []locationWire `json:"locations"`
	Roads     []roadWire     `json:"roads"`
	Meta      Meta           `json:"meta"`
}

type locationWire struct {
	ID        *int     `json:"id"`
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Demand    *int     `json:"demand"`
}

type roadWire struct {
	From       *int     `json:"from_id"`
	To         *int     `json:"to_id"`
	TravelTime *float64 `json:"travel_time_minutes"`
	Blocked    bool     `json:"blocked"`
}

// DecodeScenario parses a scenario document and rejects any location or
// road that omits a required field. It does not run Validate.
func DecodeScenario(data []byte) (*Scenario, error) {
	var w scenarioWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s := &Scenario{
		Locations: make([]Location, 0, len(w.Locations)),
		Roads:     make([]Road, 0, len(w.Roads)),
		Meta:      w.Meta,
	}
	for i, l := range w.Locations {
		loc, err := l.toLocation(i)
		if err != nil {
			return nil, err
		}
		s.Locations = append(s.Locations, loc)
	}
	for i, r := range w.Roads {
		road, err := r.toRoad(i)
		if err != nil {
			return nil, err
		}
		s.Roads = append(s.Roads, road)
	}
	return s, nil
}

func (l locationWire) toLocation(i int) (Location, error) {
	missing := func(field string) error {
		id := -1
		if l.ID != nil {
			id = *l.ID
		}
		return &InputError{Record: "location", Index: i, ID: id, Reason: field + " is required"}
	}
	switch {
	case l.ID == nil:
		return Location{}, missing("id")
	case l.Name == nil:
		return Location{}, missing("name")
	case l.Latitude == nil:
		return Location{}, missing("latitude")
	case l.Longitude == nil:
		return Location{}, missing("longitude")
	case l.Demand == nil:
		return Location{}, missing("demand")
	}
	return Location{
		ID:        *l.ID,
		Name:      *l.Name,
		Latitude:  *l.Latitude,
		Longitude: *l.Longitude,
		Demand:    *l.Demand,
	}, nil
}

func (r roadWire) toRoad(i int) (Road, error) {
	missing := func(field string) error {
		id := -1
		if r.From != nil {
			id = *r.From
		}
		return &InputError{Record: "road", Index: i, ID: id, Reason: field + " is required"}
	}
	switch {
	case r.From == nil:
		return Road{}, missing("from_id")
	case r.To == nil:
		return Road{}, missing("to_id")
	case r.TravelTime == nil:
		return Road{}, missing("travel_time_minutes")
	}
	return Road{From: *r.From, To: *r.To, TravelTime: *r.TravelTime, Blocked: r.Blocked}, nil
}
