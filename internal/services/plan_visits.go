package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/obs"
	"visit-route-service/internal/ports"
	"visit-route-service/internal/routing"
)

type PlanVisitsRequest struct {
	RepresentativeID int64
	VisitDate        time.Time
	Start            *domain.GeoPoint
	Prioritize       bool
	Persist          bool
}

// PlanSummary explains how the assigned outlet set relates to the route.
type PlanSummary struct {
	AssignedOutlets    int
	MissingCoordinates int
	// Routable D-tier outlets left out of a prioritized route.
	ExcludedTierD int
	// Distance of visiting the outlets in assignment order, for comparison.
	AssignedOrderDistanceKm float64
}

type PlannedVisits struct {
	Plan    *domain.VisitPlan
	Route   domain.Route
	Summary PlanSummary
}

// Optimize runs the tier-priority router when prioritize is set and the
// plain nearest-neighbor router otherwise.
func Optimize(outlets []domain.Outlet, start *domain.GeoPoint, prioritize bool) domain.Route {
	if prioritize {
		return routing.OptimizeRouteWithPriority(outlets, start)
	}
	return routing.OptimizeRoute(outlets, start)
}

// PlanVisits orders a representative's assigned outlets for one day and
// materializes the result as a visit plan, persisting it on request.
func PlanVisits(
	ctx context.Context,
	req PlanVisitsRequest,
	outlets ports.OutletRepository,
	plans ports.VisitPlanRepository,
) (_ *PlannedVisits, err error) {
	defer obs.Time(ctx, "services.PlanVisits")(&err)

	if req.RepresentativeID <= 0 {
		return nil, fmt.Errorf("plan visits: invalid representative id %d", req.RepresentativeID)
	}
	if req.VisitDate.IsZero() {
		return nil, errors.New("plan visits: visit date is required")
	}
	if req.Persist && plans == nil {
		return nil, errors.New("plan visits: persist requested without a visit plan repository")
	}

	assigned, err := outlets.ListAssignedOutlets(ctx, req.RepresentativeID, req.VisitDate)
	if err != nil {
		return nil, fmt.Errorf("plan visits: list assigned outlets: %w", err)
	}

	route := Optimize(assigned, req.Start, req.Prioritize)
	summary := summarize(assigned, req.Start, req.Prioritize)
	plan := domain.NewVisitPlan(req.RepresentativeID, req.VisitDate, route, req.Prioritize)

	if req.Persist {
		if err := plans.SaveVisitPlan(ctx, plan); err != nil {
			return nil, fmt.Errorf("plan visits: save plan: %w", err)
		}
	}

	ev := log.Info()
	if summary.MissingCoordinates > 0 || summary.ExcludedTierD > 0 {
		ev = log.Warn()
	}
	ev.Str("req_id", obs.RequestID(ctx)).
		Int64("representative_id", req.RepresentativeID).
		Str("visit_date", plan.VisitDate.Format(time.DateOnly)).
		Bool("prioritized", req.Prioritize).
		Int("assigned", summary.AssignedOutlets).
		Int("routed", len(route.Outlets)).
		Int("missing_coordinates", summary.MissingCoordinates).
		Int("excluded_tier_d", summary.ExcludedTierD).
		Float64("distance_km", route.TotalDistanceKm).
		Float64("assigned_order_km", summary.AssignedOrderDistanceKm).
		Msg("visit plan computed")

	return &PlannedVisits{Plan: plan, Route: route, Summary: summary}, nil
}

func summarize(outlets []domain.Outlet, start *domain.GeoPoint, prioritize bool) PlanSummary {
	s := PlanSummary{
		AssignedOutlets:         len(outlets),
		AssignedOrderDistanceKm: routing.PathDistance(start, outlets),
	}

	for _, o := range outlets {
		if _, ok := o.Point(); !ok {
			s.MissingCoordinates++
			continue
		}
		if prioritize && o.Tier.Normalize() == domain.TierD {
			s.ExcludedTierD++
		}
	}

	return s
}
