// Package location defines the device-location contract consumed by the
// context orchestrator.
package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/snapcontext/snapcontext/internal/geo"
)

// Location errors. These are the only fatal failures in the whole context
// pipeline: without a position there is nothing to orchestrate.
var (
	ErrUnavailable      = errors.New("location unavailable")
	ErrPermissionDenied = errors.New("location permission denied")
	ErrTimeout          = errors.New("location read timed out")
)

// Mode is the accuracy/speed tradeoff requested by the caller. It governs
// the location-read deadline only; the weather deadline is fixed.
type Mode string

const (
	ModeFast     Mode = "fast"
	ModeAccurate Mode = "accurate"
)

// Location read deadlines per mode.
const (
	FastDeadline     = 5 * time.Second
	AccurateDeadline = 15 * time.Second
)

// ParseMode parses a mode string, defaulting to fast when empty.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFast, ModeAccurate:
		return Mode(s), nil
	case "":
		return ModeFast, nil
	default:
		return "", fmt.Errorf("unknown mode %q", s)
	}
}

// Deadline returns the location-read deadline for the mode.
func (m Mode) Deadline() time.Duration {
	if m == ModeAccurate {
		return AccurateDeadline
	}
	return FastDeadline
}

// Reading is one position fix produced by the location provider. The
// orchestrator never mutates it.
type Reading struct {
	Coordinate         geo.Coordinate
	Altitude           float64 // meters
	HorizontalAccuracy float64 // meters
	VerticalAccuracy   float64 // meters
	CapturedAt         time.Time
}

// Provider produces the device's current position. The deadline belongs to
// the provider: the orchestrator passes it through unchanged and applies no
// timeout of its own at this layer.
type Provider interface {
	// CurrentReading blocks until a fix is available or the deadline elapses.
	CurrentReading(ctx context.Context, deadline time.Duration) (*Reading, error)

	// Name returns the provider name for logging.
	Name() string
}
