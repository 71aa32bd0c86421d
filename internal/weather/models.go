// Package weather defines the weather contract consumed by the context
// orchestrator.
package weather

import (
	"context"
	"errors"

	"github.com/snapcontext/snapcontext/internal/geo"
)

// Weather errors. Both are degraded failures: the orchestrator absorbs them
// and renders the empty-weather placeholder.
var (
	ErrProviderError = errors.New("weather provider error")
	ErrUnauthorized  = errors.New("weather provider rejected credentials")
)

// Snapshot is the current weather at a coordinate.
type Snapshot struct {
	// Condition is a short human-readable condition label.
	Condition string

	// Temperature in degrees Celsius.
	Temperature float64

	// Humidity percentage (0-100).
	Humidity float64

	// Icon is the provider's icon identifier.
	Icon string

	// AttributionURL and AttributionLogoURL are pass-through metadata for
	// downstream display and compliance. No logic reads them.
	AttributionURL     string
	AttributionLogoURL string
}

// Provider fetches the current weather for a coordinate.
type Provider interface {
	// CurrentWeather returns the weather snapshot for the coordinate.
	CurrentWeather(ctx context.Context, coord geo.Coordinate) (*Snapshot, error)

	// Name returns the provider name for logging.
	Name() string
}
