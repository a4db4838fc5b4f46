package ports

import (
	"context"
	"time"

	"visit-route-service/internal/domain"
)

// Port: the outlet directory, owner of outlet records and their assignments.
type OutletRepository interface {
	// Return the outlets assigned to a representative for a day, in assignment order.
	ListAssignedOutlets(ctx context.Context, representativeID int64, day time.Time) ([]domain.Outlet, error)
	// Return outlets that have an address but no coordinates yet.
	ListUngeocodedOutlets(ctx context.Context) ([]domain.Outlet, error)
	// Store coordinates resolved for an outlet.
	UpdateOutletCoordinates(ctx context.Context, outletID int64, p domain.GeoPoint) error
}
