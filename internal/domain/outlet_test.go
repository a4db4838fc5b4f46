package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func TestOutletPoint(t *testing.T) {
	o := Outlet{ID: 1, Lat: ptr(41.01), Lon: ptr(28.97)}
	p, ok := o.Point()
	require.True(t, ok)
	assert.Equal(t, GeoPoint{Lat: 41.01, Lon: 28.97}, p)

	_, ok = Outlet{ID: 2, Lat: ptr(1)}.Point()
	assert.False(t, ok, "outlet without longitude")

	_, ok = Outlet{ID: 3, Lat: ptr(math.NaN()), Lon: ptr(1)}.Point()
	assert.False(t, ok, "NaN latitude")
}

func TestOutletWithPoint(t *testing.T) {
	o := Outlet{ID: 7, Name: "Central"}
	located := o.WithPoint(GeoPoint{Lat: 1.5, Lon: 2.5})

	assert.Nil(t, o.Lat, "receiver must not change")

	p, ok := located.Point()
	require.True(t, ok)
	assert.Equal(t, GeoPoint{Lat: 1.5, Lon: 2.5}, p)
	assert.Equal(t, "Central", located.Name)
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t, "Bagdat Cd. 200", NormalizeAddress("  Bagdat \t Cd.  200 \n"))
	assert.Equal(t, "", NormalizeAddress("   "))
}

func TestCoordinateRanges(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		latOK    bool
		lonOK    bool
	}{
		{"origin", 0, 0, true, true},
		{"bounds", -90, 180, true, true},
		{"past the poles", 90.0001, -180.5, false, false},
		{"huge finite", 1e308, -1e308, false, false},
		{"NaN", math.NaN(), math.NaN(), false, false},
		{"Inf", math.Inf(-1), math.Inf(1), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.latOK, LatitudeInRange(tt.lat))
			assert.Equal(t, tt.lonOK, LongitudeInRange(tt.lon))
		})
	}

	assert.True(t, GeoPoint{Lat: 1e308}.Valid(), "Valid checks finiteness only")
}
