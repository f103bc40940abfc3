package services

import (
	"relief-dispatch-service/internal/domain"
	"sort"
)

// RunAggregator accumulates emitted runs into a DeliveryReport. It does no
// routing work; totals are kept by location id and projected to names only
// by the report consumers.
type RunAggregator struct {
	title     string
	depot     int
	locations []domain.Location
	order     []string
	byVehicle map[string]*domain.VehicleRuns
	delivered map[int]int
}

// NewRunAggregator registers every vehicle up front so idle vehicles still
// appear in the report.
func NewRunAggregator(title string, depot int, locations []domain.Location, fleet []*domain.Vehicle) *RunAggregator {
	a := &RunAggregator{
		title:     title,
		depot:     depot,
		locations: append([]domain.Location(nil), locations...),
		byVehicle: make(map[string]*domain.VehicleRuns, len(fleet)),
		delivered: make(map[int]int),
	}
	for _, v := range fleet {
		a.vehicle(v.Label, v.Capacity)
	}
	return a
}

func (a *RunAggregator) vehicle(label string, capacity int) *domain.VehicleRuns {
	vr, ok := a.byVehicle[label]
	if !ok {
		vr = &domain.VehicleRuns{Label: label, Capacity: capacity, Runs: []domain.Run{}}
		a.byVehicle[label] = vr
		a.order = append(a.order, label)
	}
	return vr
}

// Add merges one run's deliveries into the running totals and appends it to
// its vehicle's run list.
func (a *RunAggregator) Add(run domain.Run) {
	for id, q := range run.Delivered {
		a.delivered[id] += q
	}
	vr := a.vehicle(run.Vehicle, 0)
	vr.Runs = append(vr.Runs, run)
}

// Report returns a snapshot. unserved lists locations that were never fully
// served; an empty list marks the plan complete.
func (a *RunAggregator) Report(unserved []int) domain.DeliveryReport {
	r := domain.DeliveryReport{
		Title:     a.title,
		Depot:     a.depot,
		Locations: append([]domain.Location(nil), a.locations...),
		Vehicles:  make([]domain.VehicleRuns, 0, len(a.order)),
		Delivered: make(map[int]int, len(a.delivered)),
		Complete:  len(unserved) == 0,
	}
	for _, label := range a.order {
		vr := a.byVehicle[label]
		r.Vehicles = append(r.Vehicles, domain.VehicleRuns{
			Label:    vr.Label,
			Capacity: vr.Capacity,
			Runs:     append([]domain.Run(nil), vr.Runs...),
		})
	}
	// Every location with demand gets a row, even when nothing arrived.
	for _, l := range a.locations {
		if l.Demand > 0 {
			r.Delivered[l.ID] = 0
		}
	}
	for id, q := range a.delivered {
		r.Delivered[id] = q
	}
	if len(unserved) > 0 {
		r.Unserved = append([]int(nil), unserved...)
		sort.Ints(r.Unserved)
	}
	return r
}
