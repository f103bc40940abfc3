package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeliveryReportRunsInDispatchOrder(t *testing.T) {
	r := DeliveryReport{
		Vehicles: []VehicleRuns{
			{Label: "Truck 1", Runs: []Run{{Vehicle: "Truck 1", Number: 1}, {Vehicle: "Truck 1", Number: 2}}},
			{Label: "Truck 2", Runs: []Run{{Vehicle: "Truck 2", Number: 1}}},
		},
	}

	runs := r.Runs()
	got := make([]string, 0, len(runs))
	for _, run := range runs {
		got = append(got, run.Vehicle)
	}
	assert.Equal(t, []string{"Truck 1", "Truck 2", "Truck 1"}, got)
	assert.Equal(t, 3, r.RunCount())
}

func TestDeliveredByName(t *testing.T) {
	r := DeliveryReport{
		Locations: []Location{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
		Delivered: map[int]int{1: 5, 2: 3},
	}

	assert.Equal(t, map[string]int{"A": 5, "B": 3}, r.DeliveredByName())
	assert.Equal(t, 8, r.TotalDelivered())
}

func TestRunDeliveryStops(t *testing.T) {
	run := Run{
		Stops:     []int{0, 2, 1, 4, 0},
		Delivered: map[int]int{2: 3, 1: 5},
	}
	assert.Equal(t, []int{2, 1}, run.DeliveryStops())
}
