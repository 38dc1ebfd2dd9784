package api

import (
	"net/http"

	"fuel-route-service/internal/api/handlers"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(
	geocoder ports.Geocoder,
	router ports.Router,
	builder *services.PlanBuilder,
	plans ports.PlanRepository,
	stations ports.StationRepository,
) http.Handler {
	mux := http.NewServeMux()

	planHandler := &handlers.PlanHandler{
		Geocoder: geocoder,
		Router:   router,
		Builder:  builder,
		Repo:     plans,
	}
	stationHandler := &handlers.StationHandler{Repo: stations}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/plans", planHandler.Plans)
	mux.HandleFunc("/plans/", planHandler.Get)
	mux.HandleFunc("/stations", stationHandler.List)

	return requestIDMiddleware(loggingMiddleware(mux))
}
