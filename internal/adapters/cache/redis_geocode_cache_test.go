package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"visit-route-service/internal/domain"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisGeocodeCacheRoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, map[string]domain.GeoPoint{
		"Bagdat Cd. 200, Istanbul": {Lat: 40.96, Lon: 29.08},
	}))
	assert.True(t, mr.Exists("geocode:Bagdat Cd. 200, Istanbul"))
	assert.Equal(t, time.Hour, mr.TTL("geocode:Bagdat Cd. 200, Istanbul"))

	got, err := c.GetMany(ctx, []string{"Bagdat Cd. 200, Istanbul", "missing"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.GeoPoint{
		"Bagdat Cd. 200, Istanbul": {Lat: 40.96, Lon: 29.08},
	}, got)
}

func TestRedisGeocodeCacheExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.PutMany(ctx, map[string]domain.GeoPoint{"a": {Lat: 1, Lon: 2}}))
	mr.FastForward(2 * time.Minute)

	got, err := c.GetMany(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisGeocodeCacheCorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	c := NewRedisGeocodeCache(client, 0)

	require.NoError(t, mr.Set("geocode:bad", "not json"))
	_, err := c.GetMany(context.Background(), []string{"bad"})
	assert.Error(t, err)
}
