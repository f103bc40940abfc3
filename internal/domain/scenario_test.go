package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScenario() Scenario {
	return Scenario{
		Locations: []Location{
			{ID: 0, Name: "Depot", Latitude: 10, Longitude: 20},
			{ID: 1, Name: "A", Latitude: 10.1, Longitude: 20.1, Demand: 5},
			{ID: 2, Name: "B", Latitude: 10.2, Longitude: 20.2, Demand: 3},
		},
		Roads: []Road{
			{From: 0, To: 1, TravelTime: 4},
			{From: 1, To: 0, TravelTime: 4},
			{From: 0, To: 2, TravelTime: 2},
			{From: 2, To: 0, TravelTime: 2},
		},
		Meta: Meta{Name: "test", Trucks: 1, TruckCapacity: 10},
	}
}

func TestScenarioValidate(t *testing.T) {
	depot := 7
	tests := []struct {
		name   string
		mutate func(s *Scenario)
		record string
		index  int
	}{
		{"valid", func(s *Scenario) {}, "", 0},
		{"zero trucks", func(s *Scenario) { s.Meta.Trucks = 0 }, "meta.trucks", -1},
		{"zero capacity", func(s *Scenario) { s.Meta.TruckCapacity = 0 }, "meta.truck_capacity", -1},
		{"no locations", func(s *Scenario) { s.Locations = nil }, "locations", -1},
		{"duplicate id", func(s *Scenario) { s.Locations[2].ID = 1 }, "location", 2},
		{"negative demand", func(s *Scenario) { s.Locations[1].Demand = -1 }, "location", 1},
		{"missing name", func(s *Scenario) { s.Locations[1].Name = " " }, "location", 1},
		{"depot with demand", func(s *Scenario) { s.Locations[0].Demand = 2 }, "depot", -1},
		{"missing depot", func(s *Scenario) { s.Meta.DepotID = &depot }, "depot", -1},
		{"unknown from", func(s *Scenario) { s.Roads[1].From = 9 }, "road", 1},
		{"unknown to", func(s *Scenario) { s.Roads[3].To = 9 }, "road", 3},
		{"zero travel time", func(s *Scenario) { s.Roads[0].TravelTime = 0 }, "road", 0},
		{"negative travel time", func(s *Scenario) { s.Roads[2].TravelTime = -3 }, "road", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validScenario()
			tt.mutate(&s)
			err := s.Validate()
			if tt.record == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidInput))
			var inErr *InputError
			require.True(t, errors.As(err, &inErr))
			assert.Equal(t, tt.record, inErr.Record)
			assert.Equal(t, tt.index, inErr.Index)
		})
	}
}

func TestScenarioDepotOverride(t *testing.T) {
	s := validScenario()
	assert.Equal(t, 0, s.Depot())

	depot := 2
	s.Meta.DepotID = &depot
	assert.Equal(t, 2, s.Depot())
}
