package domain

import "strings"

// Represents a pharmacy or customer location assigned to a sales representative.
// Coordinates are optional: outlets that have not been geocoded carry nil Lat/Lon.
type Outlet struct {
	ID      int64
	Name    string
	Address string
	Lat     *float64
	Lon     *float64
	Tier    Tier
}

// Point returns the outlet's coordinates and whether they are usable for routing.
func (o Outlet) Point() (GeoPoint, bool) {
	if o.Lat == nil || o.Lon == nil {
		return GeoPoint{}, false
	}

	p := GeoPoint{Lat: *o.Lat, Lon: *o.Lon}
	return p, p.Valid()
}

// WithPoint returns a copy of the outlet located at p.
func (o Outlet) WithPoint(p GeoPoint) Outlet {
	lat, lon := p.Lat, p.Lon
	o.Lat = &lat
	o.Lon = &lon
	return o
}

// NormalizeAddress collapses whitespace so equal addresses share cache keys.
func NormalizeAddress(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
