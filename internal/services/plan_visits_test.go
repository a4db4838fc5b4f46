package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/domain"
)

var planDay = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func newPlanFixture() *fakeOutletRepo {
	return &fakeOutletRepo{
		assigned: map[string][]domain.Outlet{
			assignmentKey(7, planDay): {
				outletAt(1, 0, 2, domain.TierB),
				outletAt(2, 0, 1, domain.TierA),
				{ID: 3, Tier: domain.TierA, Address: "Street 3"},
				outletAt(4, 0, 0.5, domain.TierD),
				outletAt(5, 0, 3, domain.TierC),
				outletAt(6, 0, 1.5, domain.TierA),
			},
		},
	}
}

func TestPlanVisitsPrioritized(t *testing.T) {
	repo := newPlanFixture()
	plans := &fakePlanRepo{}
	start := domain.GeoPoint{Lat: 0, Lon: 0}

	res, err := PlanVisits(context.Background(), PlanVisitsRequest{
		RepresentativeID: 7,
		VisitDate:        planDay.Add(10 * time.Hour),
		Start:            &start,
		Prioritize:       true,
		Persist:          true,
	}, repo, plans)
	require.NoError(t, err)

	routed := make([]int64, 0, len(res.Route.Outlets))
	for _, o := range res.Route.Outlets {
		routed = append(routed, o.ID)
	}
	assert.Equal(t, []int64{2, 6, 1, 5}, routed)
	// Only tier A has more than one routable outlet, so only its legs count.
	assert.InDelta(t, 166.79, res.Route.TotalDistanceKm, 1e-9)

	assert.Equal(t, 6, res.Summary.AssignedOutlets)
	assert.Equal(t, 1, res.Summary.MissingCoordinates)
	assert.Equal(t, 1, res.Summary.ExcludedTierD)

	require.Len(t, res.Plan.Visits, 4)
	assert.Equal(t, domain.Visit{Sequence: 1, OutletID: 2}, res.Plan.Visits[0])
	assert.True(t, res.Plan.VisitDate.Equal(planDay))
	assert.True(t, res.Plan.Prioritized)

	stored, err := plans.GetVisitPlan(context.Background(), res.Plan.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Plan, stored)
}

func TestPlanVisitsNearestNeighbor(t *testing.T) {
	repo := newPlanFixture()
	start := domain.GeoPoint{Lat: 0, Lon: 0}

	res, err := PlanVisits(context.Background(), PlanVisitsRequest{
		RepresentativeID: 7,
		VisitDate:        planDay,
		Start:            &start,
	}, repo, nil)
	require.NoError(t, err)

	routed := make([]int64, 0, len(res.Route.Outlets))
	for _, o := range res.Route.Outlets {
		routed = append(routed, o.ID)
	}
	assert.Equal(t, []int64{4, 2, 6, 1, 5}, routed)
	assert.Equal(t, 0, res.Summary.ExcludedTierD)
	assert.False(t, res.Plan.Prioritized)
	assert.GreaterOrEqual(t, res.Summary.AssignedOrderDistanceKm, res.Route.TotalDistanceKm)
}

func TestPlanVisitsNoAssignments(t *testing.T) {
	res, err := PlanVisits(context.Background(), PlanVisitsRequest{
		RepresentativeID: 99,
		VisitDate:        planDay,
	}, newPlanFixture(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Route.Outlets)
	assert.Empty(t, res.Plan.Visits)
	assert.Equal(t, 0.0, res.Route.TotalDistanceKm)
}

func TestPlanVisitsValidation(t *testing.T) {
	repo := newPlanFixture()
	ctx := context.Background()

	_, err := PlanVisits(ctx, PlanVisitsRequest{VisitDate: planDay}, repo, nil)
	assert.ErrorContains(t, err, "invalid representative id")

	_, err = PlanVisits(ctx, PlanVisitsRequest{RepresentativeID: 7}, repo, nil)
	assert.ErrorContains(t, err, "visit date is required")

	_, err = PlanVisits(ctx, PlanVisitsRequest{RepresentativeID: 7, VisitDate: planDay, Persist: true}, repo, nil)
	assert.ErrorContains(t, err, "persist requested")
}

func TestPlanVisitsPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()

	_, err := PlanVisits(ctx, PlanVisitsRequest{RepresentativeID: 7, VisitDate: planDay},
		&fakeOutletRepo{listErr: boom}, nil)
	assert.ErrorIs(t, err, boom)

	_, err = PlanVisits(ctx, PlanVisitsRequest{RepresentativeID: 7, VisitDate: planDay, Persist: true},
		newPlanFixture(), &fakePlanRepo{saveErr: boom})
	assert.ErrorIs(t, err, boom)
}

func TestPlanVisitsBatch(t *testing.T) {
	repo := newPlanFixture()
	other := planDay.AddDate(0, 0, 1)
	repo.assigned[assignmentKey(8, other)] = []domain.Outlet{
		outletAt(10, 1, 1, domain.TierA),
		outletAt(11, 1, 2, domain.TierA),
	}
	plans := &fakePlanRepo{}

	reqs := []PlanVisitsRequest{
		{RepresentativeID: 7, VisitDate: planDay, Prioritize: true, Persist: true},
		{RepresentativeID: 8, VisitDate: other, Persist: true},
		{RepresentativeID: 9, VisitDate: planDay},
	}

	results, err := PlanVisitsBatch(context.Background(), reqs, repo, plans)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, int64(7), results[0].Plan.RepresentativeID)
	assert.Equal(t, int64(8), results[1].Plan.RepresentativeID)
	assert.Len(t, results[1].Plan.Visits, 2)
	assert.Empty(t, results[2].Plan.Visits)
	assert.Len(t, plans.plans, 2)
}

func TestPlanVisitsBatchFailsFast(t *testing.T) {
	reqs := []PlanVisitsRequest{
		{RepresentativeID: 7, VisitDate: planDay},
		{RepresentativeID: 0, VisitDate: planDay},
	}

	_, err := PlanVisitsBatch(context.Background(), reqs, newPlanFixture(), nil)
	assert.ErrorContains(t, err, "request #2")
}

func TestPlanVisitsBatchEmpty(t *testing.T) {
	results, err := PlanVisitsBatch(context.Background(), nil, newPlanFixture(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}
