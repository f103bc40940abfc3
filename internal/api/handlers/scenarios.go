package handlers

import (
	"net/http"
	"relief-dispatch-service/internal/api/dto"
	"relief-dispatch-service/internal/ports"
)

// ScenarioHandler exposes read-only scenario endpoints.
type ScenarioHandler struct {
	Repo ports.ScenarioRepository
}

func (h *ScenarioHandler) List(w http.ResponseWriter, r *http.Request) {
	infos, err := h.Repo.ListScenarios(r.Context())
	if err != nil {
		writeDomainError(w, r, "list scenarios", err)
		return
	}

	res := dto.ListScenariosResponse{Scenarios: make([]dto.ScenarioSummary, 0, len(infos))}
	for _, info := range infos {
		res.Scenarios = append(res.Scenarios, dto.ScenarioSummary{
			Name:      info.Name,
			Locations: info.Locations,
			Roads:     info.Roads,
		})
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *ScenarioHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s, err := h.Repo.GetScenario(r.Context(), name)
	if err != nil {
		writeDomainError(w, r, "get scenario", err)
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewScenarioResponse(name, s))
}
