package api

import (
	"net/http"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/ports"
	"trip-planner-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware
// of concrete adapters).
func NewRouter(repo ports.TripRepository, provider ports.RouteProvider, lim services.Limits) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanTripHandler{
		Provider: provider,
		Repo:     repo,
		Limits:   lim,
	}
	logsHandler := &handlers.ELDLogsHandler{
		Repo:   repo,
		Limits: lim,
	}
	tripHandler := &handlers.TripHandler{Repo: repo}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plan_trip", planHandler.Plan)
	mux.HandleFunc("/eld_logs", logsHandler.Logs)
	mux.HandleFunc("/trips", tripHandler.List)

	return loggingMiddleware(mux)
}
