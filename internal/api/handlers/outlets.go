package handlers

import (
	"net/http"
	"strconv"
	"time"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/ports"
)

// OutletHandler exposes read-only access to a representative's assignments.
type OutletHandler struct {
	Repo ports.OutletRepository
}

func (h *OutletHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	repID, err := strconv.ParseInt(q.Get("representative_id"), 10, 64)
	if err != nil || repID <= 0 {
		writeError(w, r, http.StatusBadRequest, "representative_id must be a positive integer")
		return
	}
	day, err := time.Parse(time.DateOnly, q.Get("date"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	outlets, err := h.Repo.ListAssignedOutlets(r.Context(), repID, day)
	if err != nil {
		internalError(w, r, "list outlets failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ListOutletsResponse{Outlets: fromOutlets(outlets)})
}
