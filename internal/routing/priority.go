package routing

import "visit-route-service/internal/domain"

// PriorityOrder is the order in which tiers are routed. TierD is grouped but
// deliberately absent, so D-tier outlets never appear in a prioritized route.
var PriorityOrder = []domain.Tier{domain.TierA, domain.TierB, domain.TierC}

// GroupByTier buckets outlets by normalized tier, preserving input order
// within each bucket.
func GroupByTier(outlets []domain.Outlet) map[domain.Tier][]domain.Outlet {
	buckets := make(map[domain.Tier][]domain.Outlet)
	for _, o := range outlets {
		t := o.Tier.Normalize()
		buckets[t] = append(buckets[t], o)
	}
	return buckets
}

// OptimizeRouteWithPriority routes each tier in PriorityOrder with
// OptimizeRoute, chaining the last outlet of one tier as the start of the
// next. High-value outlets are visited first even when a globally shorter
// path exists.
func OptimizeRouteWithPriority(outlets []domain.Outlet, start *domain.GeoPoint) domain.Route {
	buckets := GroupByTier(outlets)

	ordered := make([]domain.Outlet, 0, len(outlets))
	total := 0.0
	current := start

	for _, tier := range PriorityOrder {
		bucket := buckets[tier]
		if len(bucket) == 0 {
			continue
		}

		r := OptimizeRoute(bucket, current)
		ordered = append(ordered, r.Outlets...)
		total += r.TotalDistanceKm

		if n := len(r.Outlets); n > 0 {
			// Routed outlets always have a point.
			last, _ := r.Outlets[n-1].Point()
			current = &last
		}
	}

	return domain.Route{
		Outlets:         ordered,
		TotalDistanceKm: roundKm(total),
	}
}
