package handlers

import (
	"errors"
	"fmt"
	"time"

	"visit-route-service/internal/api/dto"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/services"
)

// checkCoords rejects present coordinates that are off the globe.
// Missing ones are fine: the router skips such outlets.
func checkCoords(lat, lon *float64) error {
	if lat != nil && !domain.LatitudeInRange(*lat) {
		return fmt.Errorf("lat %g out of range [-90, 90]", *lat)
	}
	if lon != nil && !domain.LongitudeInRange(*lon) {
		return fmt.Errorf("lon %g out of range [-180, 180]", *lon)
	}
	return nil
}

func toOutlet(p dto.Outlet) (domain.Outlet, error) {
	if err := checkCoords(p.Lat, p.Lon); err != nil {
		return domain.Outlet{}, err
	}

	o := domain.Outlet{
		ID:      p.ID,
		Name:    p.Name,
		Address: p.Address,
		Lat:     p.Lat,
		Lon:     p.Lon,
		Tier:    domain.DefaultTier,
	}
	if p.Tier != nil {
		o.Tier = domain.ParseTier(*p.Tier)
	}
	return o, nil
}

func fromOutlet(o domain.Outlet) dto.Outlet {
	tier := string(o.Tier.Normalize())
	return dto.Outlet{
		ID:      o.ID,
		Name:    o.Name,
		Address: o.Address,
		Lat:     o.Lat,
		Lon:     o.Lon,
		Tier:    &tier,
	}
}

func fromOutlets(outlets []domain.Outlet) []dto.Outlet {
	out := make([]dto.Outlet, 0, len(outlets))
	for _, o := range outlets {
		out = append(out, fromOutlet(o))
	}
	return out
}

// toStart returns nil when the point is absent or incomplete.
func toStart(p *dto.Point) (*domain.GeoPoint, error) {
	if p == nil {
		return nil, nil
	}
	if err := checkCoords(p.Lat, p.Lon); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	if p.Lat == nil || p.Lon == nil {
		return nil, nil
	}
	return &domain.GeoPoint{Lat: *p.Lat, Lon: *p.Lon}, nil
}

func toPlanRequest(req dto.PlanRequest) (services.PlanVisitsRequest, error) {
	if req.RepresentativeID <= 0 {
		return services.PlanVisitsRequest{}, errors.New("representative_id must be positive")
	}

	day, err := time.Parse(time.DateOnly, req.VisitDate)
	if err != nil {
		return services.PlanVisitsRequest{}, errors.New("visit_date must be formatted as YYYY-MM-DD")
	}

	start, err := toStart(req.Start)
	if err != nil {
		return services.PlanVisitsRequest{}, err
	}

	return services.PlanVisitsRequest{
		RepresentativeID: req.RepresentativeID,
		VisitDate:        day,
		Start:            start,
		Prioritize:       req.Prioritize,
		Persist:          req.Persist,
	}, nil
}

func fromPlan(p *domain.VisitPlan) dto.PlanResponse {
	visits := make([]dto.VisitResponse, 0, len(p.Visits))
	for _, v := range p.Visits {
		visits = append(visits, dto.VisitResponse{Sequence: v.Sequence, OutletID: v.OutletID})
	}

	return dto.PlanResponse{
		PlanID:           p.ID.String(),
		RepresentativeID: p.RepresentativeID,
		VisitDate:        p.VisitDate.Format(time.DateOnly),
		Prioritized:      p.Prioritized,
		TotalDistanceKm:  p.TotalDistanceKm,
		CreatedAt:        p.CreatedAt,
		Visits:           visits,
	}
}

func fromPlanned(res *services.PlannedVisits) dto.PlanResponse {
	out := fromPlan(res.Plan)
	out.Outlets = fromOutlets(res.Route.Outlets)
	out.Summary = &dto.PlanSummaryResponse{
		AssignedOutlets:         res.Summary.AssignedOutlets,
		MissingCoordinates:      res.Summary.MissingCoordinates,
		ExcludedTierD:           res.Summary.ExcludedTierD,
		AssignedOrderDistanceKm: res.Summary.AssignedOrderDistanceKm,
	}
	return out
}
