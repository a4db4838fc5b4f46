package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/db"
)

// OutletSeed is one outlet directory record with its representative assignments.
type OutletSeed struct {
	OutletID    int64            `json:"outlet_id" yaml:"outlet_id"`
	Name        string           `json:"name" yaml:"name"`
	Address     string           `json:"address" yaml:"address"`
	Lat         *float64         `json:"lat" yaml:"lat"`
	Lon         *float64         `json:"lon" yaml:"lon"`
	Tier        string           `json:"tier" yaml:"tier"`
	Assignments []AssignmentSeed `json:"assignments" yaml:"assignments"`
}

type AssignmentSeed struct {
	RepresentativeID int64  `json:"representative_id" yaml:"representative_id"`
	VisitDate        string `json:"visit_date" yaml:"visit_date"`
}

// LoadSeedFile parses a seed file, choosing the format by extension.
func LoadSeedFile(path string) ([]OutletSeed, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx":
		return loadXLSXSeed(path)
	case ".json", ".yaml", ".yml":
		bytes, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load seed: read %q: %w", path, err)
		}

		var data []OutletSeed
		if ext == ".json" {
			err = json.Unmarshal(bytes, &data)
		} else {
			err = yaml.Unmarshal(bytes, &data)
		}
		if err != nil {
			return nil, fmt.Errorf("load seed: parse %q: %w", path, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("load seed: unsupported file type %q", ext)
	}
}

// Populate the outlet directory from a seed file.
func SeedFromFile(ctx context.Context, conn *sql.DB, dialect db.Dialect, path string) error {
	data, err := LoadSeedFile(path)
	if err != nil {
		return fmt.Errorf("seed outlets: %w", err)
	}
	return SeedOutlets(ctx, conn, dialect, data)
}

type assignmentRow struct {
	representativeID int64
	visitDate        string
	outletID         int64
	seq              int
}

// seedCoordsUsable reports whether the present coordinates are finite and in range.
func seedCoordsUsable(lat, lon *float64) bool {
	if lat != nil && !domain.LatitudeInRange(*lat) {
		return false
	}
	if lon != nil && !domain.LongitudeInRange(*lon) {
		return false
	}
	return true
}

// SeedOutlets validates and upserts outlets and assignments in one transaction.
// Assignment order within a representative's day follows the order of the input.
func SeedOutlets(ctx context.Context, conn *sql.DB, dialect db.Dialect, data []OutletSeed) error {
	if conn == nil {
		return errors.New("seed outlets: DB is nil")
	}

	outlets := make([]OutletSeed, 0, len(data))
	assignments := make([]assignmentRow, 0, len(data))
	nextSeq := make(map[string]int)

	for i, item := range data {
		if item.OutletID <= 0 {
			return fmt.Errorf("seed outlets: invalid outlet_id at index %d: %d", i+1, item.OutletID)
		}

		item.Name = strings.TrimSpace(item.Name)
		if item.Name == "" {
			return fmt.Errorf("seed outlets: item at index %d: name cannot be empty", i+1)
		}
		item.Address = strings.TrimSpace(item.Address)
		item.Tier = string(domain.ParseTier(item.Tier))
		if !seedCoordsUsable(item.Lat, item.Lon) {
			log.Warn().
				Int64("outlet_id", item.OutletID).
				Msg("seed coordinates off the globe, stored as missing")
			item.Lat, item.Lon = nil, nil
		}

		for _, a := range item.Assignments {
			if a.RepresentativeID <= 0 {
				return fmt.Errorf("seed outlets: outlet %d: invalid representative_id %d", item.OutletID, a.RepresentativeID)
			}
			day, err := time.Parse(dateLayout, strings.TrimSpace(a.VisitDate))
			if err != nil {
				return fmt.Errorf("seed outlets: outlet %d: invalid visit_date %q: %w", item.OutletID, a.VisitDate, err)
			}

			date := day.Format(dateLayout)
			key := fmt.Sprintf("%d|%s", a.RepresentativeID, date)
			assignments = append(assignments, assignmentRow{
				representativeID: a.RepresentativeID,
				visitDate:        date,
				outletID:         item.OutletID,
				seq:              nextSeq[key],
			})
			nextSeq[key]++
		}

		outlets = append(outlets, item)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed outlets: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	outletStmt, err := tx.PrepareContext(ctx, db.Rebind(dialect, `
	INSERT INTO outlets (outlet_id, name, address, lat, lon, tier)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT (outlet_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		tier = EXCLUDED.tier;
	`))
	if err != nil {
		return fmt.Errorf("seed outlets: prepare outlet insert: %w", err)
	}
	defer outletStmt.Close()

	for _, o := range outlets {
		if _, err := outletStmt.ExecContext(ctx,
			o.OutletID, o.Name, o.Address, nullFloat(o.Lat), nullFloat(o.Lon), o.Tier,
		); err != nil {
			return fmt.Errorf("seed outlets: insert outlet_id=%d: %w", o.OutletID, err)
		}
	}

	assignStmt, err := tx.PrepareContext(ctx, db.Rebind(dialect, `
	INSERT INTO assignments (representative_id, visit_date, outlet_id, seq)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (representative_id, visit_date, outlet_id) DO UPDATE
	SET seq = EXCLUDED.seq;
	`))
	if err != nil {
		return fmt.Errorf("seed outlets: prepare assignment insert: %w", err)
	}
	defer assignStmt.Close()

	for _, a := range assignments {
		if _, err := assignStmt.ExecContext(ctx, a.representativeID, a.visitDate, a.outletID, a.seq); err != nil {
			return fmt.Errorf("seed outlets: insert assignment rep=%d date=%s outlet=%d: %w",
				a.representativeID, a.visitDate, a.outletID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed outlets: commit tx: %w", err)
	}

	return nil
}
