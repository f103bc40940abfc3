package config

import (
	"fmt"
	"relief-dispatch-service/internal/domain"
	"runtime"
)

type PlannerConfig struct {
	// WarmPaths precomputes shortest paths from the depot and every stop
	// with demand before dispatch starts.
	WarmPaths          bool   `json:"warm_paths"`
	WarmWorkers        int    `json:"warm_workers"`
	VehicleLabelPrefix string `json:"vehicle_label_prefix"`
}

func (c *PlannerConfig) SetDefaults() {
	if c.WarmWorkers == 0 {
		c.WarmWorkers = runtime.GOMAXPROCS(0)
	}
	if c.VehicleLabelPrefix == "" {
		c.VehicleLabelPrefix = domain.DefaultVehiclePrefix
	}
}

func (c PlannerConfig) Validate() error {
	if c.WarmWorkers < 0 {
		return fmt.Errorf("warm_workers must not be negative")
	}
	return nil
}
