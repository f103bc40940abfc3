package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"relief-dispatch-service/internal/adapters/geo"
	"relief-dispatch-service/internal/api/dto"
	"relief-dispatch-service/internal/domain"
	"relief-dispatch-service/internal/ports"
	"relief-dispatch-service/internal/services"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// PlanService is the planning entry point the handlers depend on.
type PlanService interface {
	PlanByName(ctx context.Context, name string) (*domain.PlanRecord, error)
	PlanScenario(ctx context.Context, name string, s *domain.Scenario) (*domain.PlanRecord, error)
}

type PlanHandler struct {
	Planner PlanService
	// Plans is optional; without it stored plans cannot be fetched again.
	Plans ports.PlanRepository
	// FrameInterval paces frames on the animation socket.
	FrameInterval time.Duration
	// AllowedOrigins widens the socket's same-origin check; "*" allows any.
	AllowedOrigins []string
}

const maxPlanBody = 8 << 20

// Create plans a stored scenario by name or an inline scenario document.
// Partial completion is still a 200 carrying complete=false and the unserved list.
func (h *PlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PlanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	name := strings.TrimSpace(req.Scenario)
	if (name == "") == !req.HasData() {
		writeError(w, r, http.StatusBadRequest, "exactly one of scenario or data is required")
		return
	}

	var (
		rec *domain.PlanRecord
		err error
	)
	if req.HasData() {
		var s *domain.Scenario
		if s, err = domain.DecodeScenario(req.Data); err != nil {
			writeDomainError(w, r, "create plan", err)
			return
		}
		rec, err = h.Planner.PlanScenario(r.Context(), "", s)
	} else {
		rec, err = h.Planner.PlanByName(r.Context(), name)
	}

	var partial *domain.PartialCompletionError
	if err != nil && !(errors.As(err, &partial) && rec != nil) {
		writeDomainError(w, r, "create plan", err)
		return
	}
	if partial != nil {
		zerolog.Ctx(r.Context()).Warn().Ints("unserved", partial.Unserved).Str("plan_id", rec.ID).Msg("plan partially completed")
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(rec, services.RenderSummary(rec.Report)))
}

func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(rec, services.RenderSummary(rec.Report)))
}

func (h *PlanHandler) Summary(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, services.RenderSummary(rec.Report)+"\n")
}

func (h *PlanHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	fc := geo.NetworkFeatures(rec.Report, rec.Input.Roads)
	raw, err := fc.MarshalJSON()
	if err != nil {
		writeDomainError(w, r, "plan geojson", err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func (h *PlanHandler) Frames(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"frames": geo.Frames(rec.Report)})
}

func (h *PlanHandler) upgrader() *websocket.Upgrader {
	u := &websocket.Upgrader{}
	if len(h.AllowedOrigins) > 0 {
		u.CheckOrigin = h.originAllowed
	}
	// A nil CheckOrigin keeps gorilla's same-origin check.
	return u
}

// originAllowed accepts requests without an Origin header; only browsers send one.
func (h *PlanHandler) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range h.AllowedOrigins {
		if o == "*" || strings.EqualFold(strings.TrimSpace(o), origin) {
			return true
		}
	}
	return false
}

// StreamFrames replays the plan's animation frames over a websocket, one
// frame per interval, then closes normally.
func (h *PlanHandler) StreamFrames(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader().Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer func() { _ = conn.Close() }()

	log := zerolog.Ctx(r.Context())
	interval := h.FrameInterval
	if interval <= 0 {
		interval = time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for _, f := range geo.Frames(rec.Report) {
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := conn.WriteJSON(f); err != nil {
			log.Debug().Err(err).Msg("frame stream closed by client")
			return
		}
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
		}
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done")
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
}

func (h *PlanHandler) load(w http.ResponseWriter, r *http.Request) (*domain.PlanRecord, bool) {
	id := r.PathValue("id")
	if h.Plans == nil {
		writeError(w, r, http.StatusNotFound, "plan store not configured")
		return nil, false
	}
	rec, err := h.Plans.GetPlan(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "get plan", err)
		return nil, false
	}
	return rec, true
}
