// Package geocode defines the reverse-geocoding contract consumed by the
// context orchestrator.
package geocode

import (
	"context"
	"errors"

	"github.com/snapcontext/snapcontext/internal/geo"
)

// Geocoding errors. Both are degraded failures: the orchestrator absorbs
// them and falls back to raw-coordinate formatting.
var (
	ErrNoResult      = errors.New("no address for coordinate")
	ErrProviderError = errors.New("geocoding provider error")
)

// Address is the reverse-geocoded description of a coordinate. Any field may
// be empty; the context builder walks its own fallback chain over them.
type Address struct {
	// Locality is the city or town name.
	Locality string

	// SubLocality is the district or suburb within the locality.
	SubLocality string

	// AdministrativeArea is the state or province.
	AdministrativeArea string

	// Thoroughfare is the street name.
	Thoroughfare string

	// Name is the provider's own label for the place.
	Name string

	// FormattedAddress is the provider's full display string.
	FormattedAddress string

	// AreasOfInterest are named points of interest at or around the
	// coordinate, most relevant first.
	AreasOfInterest []string
}

// Provider resolves a coordinate to an Address.
type Provider interface {
	// ReverseGeocode returns the address for the coordinate. Returns
	// ErrNoResult when the provider has no data for the location.
	ReverseGeocode(ctx context.Context, coord geo.Coordinate) (*Address, error)

	// Name returns the provider name for logging.
	Name() string
}
