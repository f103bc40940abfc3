package dto

import (
	"bytes"
	"encoding/json"
	"relief-dispatch-service/internal/domain"
	"time"
)

// PlanRequest names a stored scenario or carries one inline; exactly one is set.
// Data stays raw so it can go through domain.DecodeScenario.
type PlanRequest struct {
	Scenario string          `json:"scenario"`
	Data     json.RawMessage `json:"data"`
}

// HasData reports whether an inline scenario was sent. An explicit null counts as absent.
func (p PlanRequest) HasData() bool {
	trimmed := bytes.TrimSpace(p.Data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

type RunResponse struct {
	Number    int            `json:"number"`
	Stops     []string       `json:"stops"`
	StopIDs   []int          `json:"stop_ids"`
	Path      []int          `json:"path"`
	TotalTime float64        `json:"total_time"`
	Load      int            `json:"load"`
	Delivered map[string]int `json:"delivered"`
}

type VehicleResponse struct {
	Label    string        `json:"label"`
	Capacity int           `json:"capacity"`
	Runs     []RunResponse `json:"runs"`
}

type LocationRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PlanResponse struct {
	ID             string            `json:"id"`
	Scenario       string            `json:"scenario"`
	Title          string            `json:"title"`
	CreatedAt      time.Time         `json:"created_at"`
	Complete       bool              `json:"complete"`
	Unserved       []LocationRef     `json:"unserved"`
	Vehicles       []VehicleResponse `json:"vehicles"`
	Delivered      map[string]int    `json:"delivered"`
	TotalDelivered int               `json:"total_delivered"`
	TotalTime      float64           `json:"total_time"`
	Summary        string            `json:"summary"`
}

// NewPlanResponse projects a stored plan onto names for clients.
func NewPlanResponse(rec *domain.PlanRecord, summary string) PlanResponse {
	report := rec.Report
	dir := report.Directory()

	res := PlanResponse{
		ID:             rec.ID,
		Scenario:       rec.Scenario,
		Title:          report.Title,
		CreatedAt:      rec.CreatedAt,
		Complete:       report.Complete,
		Unserved:       make([]LocationRef, 0, len(report.Unserved)),
		Vehicles:       make([]VehicleResponse, 0, len(report.Vehicles)),
		Delivered:      report.DeliveredByName(),
		TotalDelivered: report.TotalDelivered(),
		TotalTime:      report.TotalTime(),
		Summary:        summary,
	}
	for _, id := range report.Unserved {
		res.Unserved = append(res.Unserved, LocationRef{ID: id, Name: dir.Name(id)})
	}
	for _, v := range report.Vehicles {
		vr := VehicleResponse{Label: v.Label, Capacity: v.Capacity, Runs: make([]RunResponse, 0, len(v.Runs))}
		for _, run := range v.Runs {
			vr.Runs = append(vr.Runs, RunResponse{
				Number:    run.Number,
				Stops:     dir.Names(run.Stops),
				StopIDs:   run.Stops,
				Path:      run.Path,
				TotalTime: run.TotalTime,
				Load:      run.Load,
				Delivered: dir.ByName(run.Delivered),
			})
		}
		res.Vehicles = append(res.Vehicles, vr)
	}
	return res
}
