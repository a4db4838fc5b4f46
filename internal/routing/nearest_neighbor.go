package routing

import (
	"math"

	"visit-route-service/internal/domain"
)

// OptimizeRoute orders outlets with a greedy nearest-neighbor heuristic.
//
// Starting from start (or the first routable outlet when start is nil or not
// finite), it repeatedly moves to the closest unvisited outlet. The path is
// open: there is no return leg. Outlets without usable coordinates are
// dropped from the result. It does not attempt global optimization; the
// design prioritizes determinism and simplicity over optimality.
func OptimizeRoute(outlets []domain.Outlet, start *domain.GeoPoint) domain.Route {
	candidates := make([]domain.Outlet, 0, len(outlets))
	points := make([]domain.GeoPoint, 0, len(outlets))
	for _, o := range outlets {
		if p, ok := o.Point(); ok {
			candidates = append(candidates, o)
			points = append(points, p)
		}
	}

	switch len(candidates) {
	case 0:
		return domain.Route{Outlets: []domain.Outlet{}, TotalDistanceKm: 0}
	case 1:
		// A lone outlet is returned as-is, without a leg from start.
		return domain.Route{Outlets: candidates, TotalDistanceKm: 0}
	}

	current := points[0]
	if start != nil && start.Valid() {
		current = *start
	}

	// visited is indexed like candidates so the scan below always walks the
	// remaining outlets in input order.
	visited := make([]bool, len(candidates))
	ordered := make([]domain.Outlet, 0, len(candidates))
	total := 0.0

	for len(ordered) < len(candidates) {
		best := -1
		bestDist := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		for i := range candidates {
			if visited[i] {
				continue
			}
			d := Distance(current, points[i])
			// Strict comparison: the first outlet seen wins a tie.
			if best < 0 || d < bestDist {
				best = i
				bestDist = d
			}
		}

		visited[best] = true
		ordered = append(ordered, candidates[best])
		total += bestDist
		current = points[best]
	}

	return domain.Route{
		Outlets:         ordered,
		TotalDistanceKm: roundKm(total),
	}
}
