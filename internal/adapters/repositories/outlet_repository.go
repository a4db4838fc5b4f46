package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/db"
	"visit-route-service/internal/platform/obs"
)

// SQL-backed implementation of the OutletRepository port.
type SQLOutletRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLOutletRepository(conn *sql.DB, dialect db.Dialect) *SQLOutletRepository {
	return &SQLOutletRepository{DB: conn, Dialect: dialect}
}

// Return the outlets assigned to a representative on a day, in assignment order.
func (s *SQLOutletRepository) ListAssignedOutlets(
	ctx context.Context,
	representativeID int64,
	day time.Time,
) (_ []domain.Outlet, err error) {
	defer obs.Time(ctx, "outlets.ListAssigned")(&err)

	if s.DB == nil {
		return nil, errors.New("outlet repository: DB is nil")
	}

	query := `
	SELECT
		o.outlet_id,
		o.name,
		o.address,
		o.lat,
		o.lon,
		o.tier
	FROM assignments a
	JOIN outlets o ON o.outlet_id = a.outlet_id
	WHERE a.representative_id = ?
		AND a.visit_date = ?
	ORDER BY a.seq, o.outlet_id;
	`
	rows, err := s.DB.QueryContext(ctx, db.Rebind(s.Dialect, query), representativeID, day.Format(dateLayout))
	if err != nil {
		return nil, fmt.Errorf("list assigned outlets: query assignments: %w", err)
	}
	defer rows.Close()

	outlets, err := scanOutlets(rows)
	if err != nil {
		return nil, fmt.Errorf("list assigned outlets: %w", err)
	}
	return outlets, nil
}

// Return outlets with an address but missing coordinates.
func (s *SQLOutletRepository) ListUngeocodedOutlets(ctx context.Context) ([]domain.Outlet, error) {
	if s.DB == nil {
		return nil, errors.New("outlet repository: DB is nil")
	}

	query := `
	SELECT outlet_id, name, address, lat, lon, tier
	FROM outlets
	WHERE (lat IS NULL OR lon IS NULL)
		AND address <> ''
	ORDER BY outlet_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list ungeocoded outlets: query outlets: %w", err)
	}
	defer rows.Close()

	outlets, err := scanOutlets(rows)
	if err != nil {
		return nil, fmt.Errorf("list ungeocoded outlets: %w", err)
	}
	return outlets, nil
}

func (s *SQLOutletRepository) UpdateOutletCoordinates(ctx context.Context, outletID int64, p domain.GeoPoint) error {
	if s.DB == nil {
		return errors.New("outlet repository: DB is nil")
	}

	query := `UPDATE outlets SET lat = ?, lon = ? WHERE outlet_id = ?;`
	res, err := s.DB.ExecContext(ctx, db.Rebind(s.Dialect, query), p.Lat, p.Lon, outletID)
	if err != nil {
		return fmt.Errorf("update outlet %d coordinates: %w", outletID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update outlet %d coordinates: rows affected: %w", outletID, err)
	}
	if n == 0 {
		return fmt.Errorf("update outlet %d coordinates: %w", outletID, ErrNotFound)
	}

	return nil
}

func scanOutlets(rows *sql.Rows) ([]domain.Outlet, error) {
	outlets := make([]domain.Outlet, 0, 32)
	for rows.Next() {
		var (
			o        domain.Outlet
			lat, lon sql.NullFloat64
			tier     string
		)
		if err := rows.Scan(&o.ID, &o.Name, &o.Address, &lat, &lon, &tier); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		o.Lat = floatPtr(lat)
		o.Lon = floatPtr(lon)
		o.Tier = domain.ParseTier(tier)
		outlets = append(outlets, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}

	return outlets, nil
}
