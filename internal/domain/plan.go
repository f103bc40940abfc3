package domain

import "time"

// PlanRecord is a finished plan as stored and served by the API.
type PlanRecord struct {
	ID        string         `json:"id"`
	Scenario  string         `json:"scenario"`
	CreatedAt time.Time      `json:"created_at"`
	Input     Scenario       `json:"input"`
	Report    DeliveryReport `json:"report"`
}
