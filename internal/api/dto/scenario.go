package dto

import "relief-dispatch-service/internal/domain"

type ScenarioSummary struct {
	Name      string `json:"name"`
	Locations int    `json:"locations"`
	Roads     int    `json:"roads"`
}

type ListScenariosResponse struct {
	Scenarios []ScenarioSummary `json:"scenarios"`
}

type ScenarioResponse struct {
	Name      string            `json:"name"`
	Meta      domain.Meta       `json:"meta"`
	Locations []domain.Location `json:"locations"`
	Roads     []domain.Road     `json:"roads"`
}

func NewScenarioResponse(name string, s *domain.Scenario) ScenarioResponse {
	return ScenarioResponse{
		Name:      name,
		Meta:      s.Meta,
		Locations: s.Locations,
		Roads:     s.Roads,
	}
}
