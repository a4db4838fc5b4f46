package domain

import "math"

// Immutable geographic point in degrees (latitude, longitude).
type GeoPoint struct {
	Lat float64
	Lon float64
}

// Valid reports whether both components are finite numbers.
// Range is not checked.
func (p GeoPoint) Valid() bool {
	return !math.IsNaN(p.Lat) && !math.IsInf(p.Lat, 0) &&
		!math.IsNaN(p.Lon) && !math.IsInf(p.Lon, 0)
}

// LatitudeInRange reports whether lat lies within [-90, 90]. NaN is never in range.
func LatitudeInRange(lat float64) bool { return lat >= -90 && lat <= 90 }

// LongitudeInRange reports whether lon lies within [-180, 180].
func LongitudeInRange(lon float64) bool { return lon >= -180 && lon <= 180 }
