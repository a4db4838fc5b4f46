package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"visit-route-service/internal/ports"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = ports.ErrNotFound

// dateLayout is how visit dates are stored: plain calendar days, no zone.
const dateLayout = "2006-01-02"

// Initialize the database schema. The DDL is valid for both SQLite and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createOutletsQuery := `
	CREATE TABLE IF NOT EXISTS outlets (
		outlet_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		tier TEXT NOT NULL DEFAULT 'C'
	);
	`

	createAssignmentsQuery := `
	CREATE TABLE IF NOT EXISTS assignments (
		representative_id BIGINT NOT NULL,
		visit_date TEXT NOT NULL,
		outlet_id BIGINT NOT NULL REFERENCES outlets(outlet_id),
		seq INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (representative_id, visit_date, outlet_id)
	);
	`

	createVisitPlansQuery := `
	CREATE TABLE IF NOT EXISTS visit_plans (
		plan_id TEXT PRIMARY KEY,
		representative_id BIGINT NOT NULL,
		visit_date TEXT NOT NULL,
		prioritized BOOLEAN NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createVisitsQuery := `
	CREATE TABLE IF NOT EXISTS visits (
		plan_id TEXT NOT NULL REFERENCES visit_plans(plan_id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		outlet_id BIGINT NOT NULL,
		PRIMARY KEY (plan_id, seq)
	);
	`

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
		address TEXT PRIMARY KEY,
		lon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_visit_plans_rep_date
	ON visit_plans(representative_id, visit_date);
	`

	statements := []string{
		createOutletsQuery,
		createAssignmentsQuery,
		createVisitPlansQuery,
		createVisitsQuery,
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func floatPtr(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
