package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/adapters/repositories"
	"visit-route-service/internal/domain"
	"visit-route-service/internal/platform/db"
)

func TestSQLGeocodeCacheRoundTrip(t *testing.T) {
	conn, err := db.Open(db.DialectSQLite, ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, repositories.InitSchema(conn))

	c := NewSQLGeocodeCache(conn, db.DialectSQLite)
	ctx := context.Background()

	empty, err := c.GetMany(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, c.PutMany(ctx, map[string]domain.GeoPoint{
		"Istiklal Cd. 1, Istanbul": {Lat: 41.0370, Lon: 28.9850},
		"Moda Cd. 5, Istanbul":     {Lat: 40.9909, Lon: 29.0303},
	}))

	got, err := c.GetMany(ctx, []string{"Istiklal Cd. 1, Istanbul", "unknown", " Istiklal Cd. 1, Istanbul ", ""})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.GeoPoint{
		"Istiklal Cd. 1, Istanbul": {Lat: 41.0370, Lon: 28.9850},
	}, got)

	require.NoError(t, c.PutMany(ctx, map[string]domain.GeoPoint{
		"Moda Cd. 5, Istanbul": {Lat: 40.99, Lon: 29.03},
	}))
	got, err = c.GetMany(ctx, []string{"Moda Cd. 5, Istanbul"})
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPoint{Lat: 40.99, Lon: 29.03}, got["Moda Cd. 5, Istanbul"])

	assert.Error(t, c.PutMany(ctx, map[string]domain.GeoPoint{" ": {}}))
}
