package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/services"
)

const maxBatchPlans = 50

type PlanHandler struct {
	Outlets ports.OutletRepository
	Plans   ports.VisitPlanRepository
}

// Plan computes (and optionally stores) the visit plan for one representative and day.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	svcReq, err := toPlanRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	res, err := services.PlanVisits(r.Context(), svcReq, h.Outlets, h.Plans)
	if err != nil {
		internalError(w, r, "plan visits failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, fromPlanned(res))
}

// Batch plans several representative/day pairs in one call.
func (h *PlanHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.BatchPlanRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if len(req.Plans) == 0 || len(req.Plans) > maxBatchPlans {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("plans must contain between 1 and %d entries", maxBatchPlans))
		return
	}

	svcReqs := make([]services.PlanVisitsRequest, 0, len(req.Plans))
	for i, p := range req.Plans {
		svcReq, err := toPlanRequest(p)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("plans[%d]: %v", i, err))
			return
		}
		svcReqs = append(svcReqs, svcReq)
	}

	results, err := services.PlanVisitsBatch(r.Context(), svcReqs, h.Outlets, h.Plans)
	if err != nil {
		internalError(w, r, "plan visits batch failed", err)
		return
	}

	res := dto.ListPlanResponse{Plans: make([]dto.PlanResponse, 0, len(results))}
	for _, p := range results {
		res.Plans = append(res.Plans, fromPlanned(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns a stored plan by id.
func (h *PlanHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid plan id")
		return
	}

	plan, err := h.Plans.GetVisitPlan(r.Context(), id)
	if errors.Is(err, ports.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "plan not found")
		return
	}
	if err != nil {
		internalError(w, r, "get visit plan failed", err)
		return
	}

	writeJSON(w, r, http.StatusOK, fromPlan(plan))
}
