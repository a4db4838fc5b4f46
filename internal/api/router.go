package api

import (
	"net/http"

	"visit-route-service/internal/api/handlers"
	"visit-route-service/internal/ports"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(outlets ports.OutletRepository, plans ports.VisitPlanRepository, maxOutlets int) http.Handler {
	mux := http.NewServeMux()

	outletHandler := &handlers.OutletHandler{Repo: outlets}
	routeHandler := &handlers.RouteHandler{MaxOutlets: maxOutlets}
	planHandler := &handlers.PlanHandler{
		Outlets: outlets,
		Plans:   plans,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/outlets", outletHandler.List)
	mux.HandleFunc("/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/plans", planHandler.Plan)
	mux.HandleFunc("/plans/batch", planHandler.Batch)
	mux.HandleFunc("/plans/{id}", planHandler.Get)

	return loggingMiddleware(mux)
}
