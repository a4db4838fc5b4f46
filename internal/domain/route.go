package domain

import (
	"time"

	"github.com/google/uuid"
)

// Route is the ordered visiting sequence produced by the routing engine,
// along with its total great-circle travel distance.
// It is created fresh per call and carries no persistence lifecycle.
type Route struct {
	Outlets         []Outlet
	TotalDistanceKm float64
}

// Represents a single stop in a representative's day.
type Visit struct {
	Sequence int
	OutletID int64
}

// Represents the materialized visit plan for one representative on one day.
type VisitPlan struct {
	ID               uuid.UUID
	RepresentativeID int64
	VisitDate        time.Time
	Prioritized      bool
	TotalDistanceKm  float64
	Visits           []Visit
	CreatedAt        time.Time
}

// NewVisitPlan materializes one Visit per routed outlet, numbered from 1 in route order.
func NewVisitPlan(representativeID int64, visitDate time.Time, route Route, prioritized bool) *VisitPlan {
	visits := make([]Visit, 0, len(route.Outlets))
	for i, o := range route.Outlets {
		visits = append(visits, Visit{Sequence: i + 1, OutletID: o.ID})
	}

	return &VisitPlan{
		ID:               uuid.New(),
		RepresentativeID: representativeID,
		VisitDate:        DateOnly(visitDate),
		Prioritized:      prioritized,
		TotalDistanceKm:  route.TotalDistanceKm,
		Visits:           visits,
		CreatedAt:        time.Now().UTC(),
	}
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
