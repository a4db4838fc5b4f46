package repositories

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"visit-route-service/internal/platform/db"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, InitSchema(conn))
	return conn
}

func f64(v float64) *float64 { return &v }

func sampleSeeds() []OutletSeed {
	return []OutletSeed{
		{
			OutletID: 1, Name: "Merkez Eczanesi", Address: "Istiklal Cd. 1, Istanbul",
			Lat: f64(41.0370), Lon: f64(28.9850), Tier: "A",
			Assignments: []AssignmentSeed{{RepresentativeID: 7, VisitDate: "2026-03-02"}},
		},
		{
			OutletID: 2, Name: "Deniz Eczanesi", Address: "Bagdat Cd. 200, Istanbul",
			Tier: "b",
			Assignments: []AssignmentSeed{{RepresentativeID: 7, VisitDate: "2026-03-02"}},
		},
		{
			OutletID: 3, Name: "Park Eczanesi", Address: "",
			Lat: f64(41.0438), Lon: f64(29.0094), Tier: "",
			Assignments: []AssignmentSeed{
				{RepresentativeID: 7, VisitDate: "2026-03-02"},
				{RepresentativeID: 8, VisitDate: "2026-03-03"},
			},
		},
		{
			OutletID: 4, Name: "Gece Eczanesi", Address: "Moda Cd. 5, Istanbul",
			Lat: f64(40.9909), Lon: f64(29.0303), Tier: "D",
		},
	}
}

func seedSample(t *testing.T, conn *sql.DB) {
	t.Helper()
	require.NoError(t, SeedOutlets(context.Background(), conn, db.DialectSQLite, sampleSeeds()))
}
