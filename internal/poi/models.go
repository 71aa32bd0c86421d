// Package poi defines the points-of-interest contract consumed by the
// context orchestrator.
package poi

import (
	"context"

	"github.com/snapcontext/snapcontext/internal/geo"
)

// Item is one point of interest near the reference location.
type Item struct {
	// Name is the display name of the place.
	Name string

	// Category is the provider's category label (cafe, museum, ...).
	Category string

	// Distance in meters from the reference location. Results are
	// preferably closest-first, but callers must not rely on ordering.
	Distance float64
}

// Provider searches for points of interest around a coordinate. POI lookup
// is never fatal: implementations should return an empty list on any
// problem, and callers treat an error the same as an empty result.
type Provider interface {
	// Search returns points of interest near the coordinate matching the
	// keyword set.
	Search(ctx context.Context, coord geo.Coordinate, keywords []string) ([]Item, error)

	// Name returns the provider name for logging.
	Name() string
}
