package services

import (
	"relief-dispatch-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunAggregatorAccumulates(t *testing.T) {
	locations := []domain.Location{
		{ID: 0, Name: "Depot"},
		{ID: 1, Name: "A", Demand: 7},
		{ID: 2, Name: "B", Demand: 3},
		{ID: 3, Name: "C", Demand: 1},
	}
	fleet := domain.NewFleet(3, 5, "")
	agg := NewRunAggregator("Flood relief", 0, locations, fleet)

	agg.Add(domain.Run{Vehicle: "Truck 1", Number: 1, Stops: []int{0, 2, 1, 0}, Load: 5, TotalTime: 9, Delivered: map[int]int{2: 3, 1: 2}})
	agg.Add(domain.Run{Vehicle: "Truck 2", Number: 1, Stops: []int{0, 1, 0}, Load: 5, TotalTime: 8, Delivered: map[int]int{1: 5}})

	r := agg.Report([]int{3})

	assert.Equal(t, "Flood relief", r.Title)
	assert.False(t, r.Complete)
	assert.Equal(t, []int{3}, r.Unserved)
	assert.Equal(t, map[int]int{1: 7, 2: 3, 3: 0}, r.Delivered)
	assert.Equal(t, map[string]int{"A": 7, "B": 3, "C": 0}, r.DeliveredByName())
	assert.Equal(t, 17.0, r.TotalTime())

	labels := make([]string, 0, len(r.Vehicles))
	for _, v := range r.Vehicles {
		labels = append(labels, v.Label)
	}
	assert.Equal(t, []string{"Truck 1", "Truck 2", "Truck 3"}, labels)
	assert.Len(t, r.Vehicles[0].Runs, 1)
	assert.Empty(t, r.Vehicles[2].Runs)
}

func TestRunAggregatorReportIsSnapshot(t *testing.T) {
	locations := []domain.Location{{ID: 0, Name: "Depot"}, {ID: 1, Name: "A", Demand: 2}}
	agg := NewRunAggregator("", 0, locations, domain.NewFleet(1, 2, ""))

	before := agg.Report(nil)
	agg.Add(domain.Run{Vehicle: "Truck 1", Number: 1, Load: 2, Delivered: map[int]int{1: 2}})
	after := agg.Report(nil)

	assert.True(t, before.Complete)
	assert.Equal(t, 0, before.Delivered[1])
	assert.Empty(t, before.Vehicles[0].Runs)
	assert.Equal(t, 2, after.Delivered[1])
}
