package api

import (
	"net/http"
	"relief-dispatch-service/internal/api/handlers"
	"relief-dispatch-service/internal/ports"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Deps are the collaborators the HTTP surface is built from. Only Planner
// and Scenarios are required.
type Deps struct {
	Planner   handlers.PlanService
	Scenarios ports.ScenarioRepository
	Plans     ports.PlanRepository

	Logger zerolog.Logger
	// Observer and MetricsHandler are set together when metrics are enabled.
	Observer       HTTPObserver
	MetricsHandler http.Handler
	MetricsPath    string

	PlanLimiter   *rate.Limiter
	FrameInterval time.Duration
	// AllowedOrigins is passed to the frame socket's origin check.
	AllowedOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	scenarioHandler := &handlers.ScenarioHandler{Repo: d.Scenarios}
	planHandler := &handlers.PlanHandler{
		Planner:        d.Planner,
		Plans:          d.Plans,
		FrameInterval:  d.FrameInterval,
		AllowedOrigins: d.AllowedOrigins,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("GET /scenarios", scenarioHandler.List)
	mux.HandleFunc("GET /scenarios/{name}", scenarioHandler.Get)
	mux.HandleFunc("POST /plans", rateLimit(d.PlanLimiter, planHandler.Create))
	mux.HandleFunc("GET /plans/{id}", planHandler.Get)
	mux.HandleFunc("GET /plans/{id}/summary", planHandler.Summary)
	mux.HandleFunc("GET /plans/{id}/geojson", planHandler.GeoJSON)
	mux.HandleFunc("GET /plans/{id}/frames", planHandler.Frames)
	mux.HandleFunc("GET /plans/{id}/frames/ws", planHandler.StreamFrames)

	if d.MetricsHandler != nil {
		path := d.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		mux.Handle("GET "+path, d.MetricsHandler)
	}

	return requestMiddleware(d.Logger, d.Observer, mux)
}
