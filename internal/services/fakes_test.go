package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"visit-route-service/internal/domain"
)

func outletAt(id int64, lat, lon float64, tier domain.Tier) domain.Outlet {
	return domain.Outlet{ID: id, Tier: tier, Lat: &lat, Lon: &lon, Address: fmt.Sprintf("Street %d", id)}
}

type fakeOutletRepo struct {
	mu       sync.Mutex
	assigned map[string][]domain.Outlet
	all      []domain.Outlet
	updated  map[int64]domain.GeoPoint
	listErr  error
	// updateErr is returned when updating failUpdateID.
	failUpdateID int64
	updateErr    error
}

func assignmentKey(rep int64, day time.Time) string {
	return fmt.Sprintf("%d|%s", rep, day.Format(time.DateOnly))
}

func (f *fakeOutletRepo) ListAssignedOutlets(ctx context.Context, rep int64, day time.Time) ([]domain.Outlet, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Outlet(nil), f.assigned[assignmentKey(rep, day)]...), nil
}

func (f *fakeOutletRepo) ListUngeocodedOutlets(ctx context.Context) ([]domain.Outlet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Outlet
	for _, o := range f.all {
		if _, ok := o.Point(); !ok && o.Address != "" {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOutletRepo) UpdateOutletCoordinates(ctx context.Context, id int64, p domain.GeoPoint) error {
	if f.updateErr != nil && id == f.failUpdateID {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updated == nil {
		f.updated = make(map[int64]domain.GeoPoint)
	}
	f.updated[id] = p
	return nil
}

type fakePlanRepo struct {
	mu      sync.Mutex
	plans   map[uuid.UUID]*domain.VisitPlan
	saveErr error
}

func (f *fakePlanRepo) SaveVisitPlan(ctx context.Context, plan *domain.VisitPlan) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.plans == nil {
		f.plans = make(map[uuid.UUID]*domain.VisitPlan)
	}
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) GetVisitPlan(ctx context.Context, id uuid.UUID) (*domain.VisitPlan, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.plans[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return p, nil
}

type fakeGeocoder struct {
	mu     sync.Mutex
	points map[string]domain.GeoPoint
	calls  []string
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (domain.GeoPoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, address)
	p, ok := f.points[address]
	if !ok {
		return domain.GeoPoint{}, fmt.Errorf("no match for %q", address)
	}
	return p, nil
}

type fakeGeocodeCache struct {
	entries map[string]domain.GeoPoint
	puts    int
}

func (f *fakeGeocodeCache) GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error) {
	out := make(map[string]domain.GeoPoint)
	for _, a := range addresses {
		if p, ok := f.entries[a]; ok {
			out[a] = p
		}
	}
	return out, nil
}

func (f *fakeGeocodeCache) PutMany(ctx context.Context, results map[string]domain.GeoPoint) error {
	if f.entries == nil {
		f.entries = make(map[string]domain.GeoPoint)
	}
	for k, v := range results {
		f.entries[k] = v
	}
	f.puts++
	return nil
}
