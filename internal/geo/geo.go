// Package geo provides coordinate types and great-circle distance math
// shared by the location, geocoding and context packages.
package geo

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidCoordinate is returned when a coordinate is outside the valid
// latitude/longitude ranges.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate represents a geographic point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate checks that the coordinate is within ±90/±180 degrees.
func (c Coordinate) Validate() error {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return ErrInvalidCoordinate
	}
	return nil
}

// Distance calculates the great-circle distance between two coordinates in
// meters using the Haversine formula.
func Distance(a, b Coordinate) float64 {
	const earthRadius = 6371000 // meters

	lat1Rad := a.Lat * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	deltaLat := (b.Lat - a.Lat) * math.Pi / 180
	deltaLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}

// Elapsed returns the wall-clock time elapsed since t.
func Elapsed(t time.Time) time.Duration {
	return time.Since(t)
}
