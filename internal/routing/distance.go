// Package routing orders a representative's outlets into a visit sequence.
//
// Everything here is pure and allocation-local: no I/O, no shared state, and
// identical inputs (including their order) always produce identical routes.
package routing

import (
	"math"

	"visit-route-service/internal/domain"
)

// EarthRadiusKm is the sphere radius used for great-circle distances.
const EarthRadiusKm = 6371.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Distance returns the haversine great-circle distance between a and b in kilometres.
// Inputs are degrees and are not range-checked.
func Distance(a, b domain.GeoPoint) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			sinLon*sinLon

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// PathDistance sums the legs between consecutive routable outlets, starting
// with the leg from start when one is given. Outlets without usable
// coordinates are skipped. The result is rounded to two decimals.
func PathDistance(start *domain.GeoPoint, outlets []domain.Outlet) float64 {
	var (
		current domain.GeoPoint
		hasPrev bool
		total   float64
	)

	if start != nil && start.Valid() {
		current = *start
		hasPrev = true
	}

	for _, o := range outlets {
		p, ok := o.Point()
		if !ok {
			continue
		}
		if hasPrev {
			total += Distance(current, p)
		}
		current = p
		hasPrev = true
	}

	return roundKm(total)
}

func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}
