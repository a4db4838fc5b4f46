package dto

import "time"

type PlanRequest struct {
	RepresentativeID int64  `json:"representative_id"`
	VisitDate        string `json:"visit_date"`
	Start            *Point `json:"start"`
	Prioritize       bool   `json:"prioritize"`
	Persist          bool   `json:"persist"`
}

type BatchPlanRequest struct {
	Plans []PlanRequest `json:"plans"`
}

type VisitResponse struct {
	Sequence int   `json:"sequence"`
	OutletID int64 `json:"outlet_id"`
}

type PlanSummaryResponse struct {
	AssignedOutlets         int     `json:"assigned_outlets"`
	MissingCoordinates      int     `json:"missing_coordinates"`
	ExcludedTierD           int     `json:"excluded_tier_d"`
	AssignedOrderDistanceKm float64 `json:"assigned_order_distance_km"`
}

type PlanResponse struct {
	PlanID           string               `json:"plan_id"`
	RepresentativeID int64                `json:"representative_id"`
	VisitDate        string               `json:"visit_date"`
	Prioritized      bool                 `json:"prioritized"`
	TotalDistanceKm  float64              `json:"total_distance_km"`
	CreatedAt        time.Time            `json:"created_at"`
	Visits           []VisitResponse      `json:"visits"`
	Outlets          []Outlet             `json:"outlets,omitempty"`
	Summary          *PlanSummaryResponse `json:"summary,omitempty"`
}

type ListPlanResponse struct {
	Plans []PlanResponse `json:"plans"`
}
