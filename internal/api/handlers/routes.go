package handlers

import (
	"fmt"
	"net/http"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/services"
)

// RouteHandler runs the routing engine on a caller-supplied outlet set.
// Nothing is read from or written to storage.
type RouteHandler struct {
	MaxOutlets int
}

func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.OptimizeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if h.MaxOutlets > 0 && len(req.Outlets) > h.MaxOutlets {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("at most %d outlets per request", h.MaxOutlets))
		return
	}

	outlets := make([]domain.Outlet, 0, len(req.Outlets))
	for i, p := range req.Outlets {
		o, err := toOutlet(p)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("outlets[%d]: %v", i, err))
			return
		}
		outlets = append(outlets, o)
	}

	start, err := toStart(req.Start)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	route := services.Optimize(outlets, start, req.Prioritize)

	writeJSON(w, r, http.StatusOK, dto.OptimizeResponse{
		Customers:     fromOutlets(route.Outlets),
		TotalDistance: route.TotalDistanceKm,
	})
}
