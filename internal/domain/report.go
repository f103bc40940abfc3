package domain

// VehicleRuns groups the runs made by one vehicle.
type VehicleRuns struct {
	Label    string `json:"label"`
	Capacity int    `json:"capacity"`
	Runs     []Run  `json:"runs"`
}

// DeliveryReport is the artifact handed to presentation layers.
type DeliveryReport struct {
	Title     string        `json:"title"`
	Depot     int           `json:"depot"`
	Locations []Location    `json:"locations"`
	Vehicles  []VehicleRuns `json:"vehicles"`
	Delivered map[int]int   `json:"delivered"`
	Complete  bool          `json:"complete"`
	Unserved  []int         `json:"unserved,omitempty"`
}

func (r DeliveryReport) Directory() Directory { return NewDirectory(r.Locations) }

// DeliveredByName projects cumulative totals onto location names.
func (r DeliveryReport) DeliveredByName() map[string]int {
	return r.Directory().ByName(r.Delivered)
}

func (r DeliveryReport) TotalDelivered() int {
	n := 0
	for _, q := range r.Delivered {
		n += q
	}
	return n
}

func (r DeliveryReport) RunCount() int {
	n := 0
	for _, v := range r.Vehicles {
		n += len(v.Runs)
	}
	return n
}

func (r DeliveryReport) TotalTime() float64 {
	t := 0.0
	for _, v := range r.Vehicles {
		for _, run := range v.Runs {
			t += run.TotalTime
		}
	}
	return t
}

// Runs returns every run in dispatch order (vehicle round-robin order).
func (r DeliveryReport) Runs() []Run {
	out := make([]Run, 0, r.RunCount())
	for round := 0; ; round++ {
		added := false
		for _, v := range r.Vehicles {
			if round < len(v.Runs) {
				out = append(out, v.Runs[round])
				added = true
			}
		}
		if !added {
			return out
		}
	}
}
