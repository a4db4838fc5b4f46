package ports

import (
	"context"

	"visit-route-service/internal/domain"
)

// Contract for resolving a postal address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.GeoPoint, error)
}

// Contract for a persistent address -> coordinates cache.
type GeocodeCache interface {
	// Return cached coordinates for the addresses that are present.
	GetMany(ctx context.Context, addresses []string) (map[string]domain.GeoPoint, error)
	// Store address -> coordinate mappings.
	PutMany(ctx context.Context, results map[string]domain.GeoPoint) error
}
