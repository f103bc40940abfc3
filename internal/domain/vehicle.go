package domain

import "fmt"

// DefaultVehiclePrefix labels vehicles "Truck 1", "Truck 2", ...
const DefaultVehiclePrefix = "Truck"

// A delivery vehicle. It carries no state between runs apart from its run count.
type Vehicle struct {
	Label    string
	Capacity int
	Runs     int
}

// NewFleet creates size vehicles of equal capacity labelled "<prefix> <n>".
func NewFleet(size, capacity int, prefix string) []*Vehicle {
	if prefix == "" {
		prefix = DefaultVehiclePrefix
	}
	fleet := make([]*Vehicle, 0, size)
	for i := 0; i < size; i++ {
		fleet = append(fleet, &Vehicle{
			Label:    fmt.Sprintf("%s %d", prefix, i+1),
			Capacity: capacity,
		})
	}
	return fleet
}

// RecordRun counts one completed run and returns its 1-based number.
func (v *Vehicle) RecordRun() int {
	v.Runs++
	return v.Runs
}
