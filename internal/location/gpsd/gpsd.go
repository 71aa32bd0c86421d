// Package gpsd implements a location provider backed by a local gpsd daemon.
package gpsd

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/stratoberry/go-gpsd"

	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/location"
)

const (
	// ProviderName identifies this location provider.
	ProviderName = "gpsd"

	// DefaultHost is the default gpsd host.
	DefaultHost = "localhost"

	// DefaultPort is the default gpsd port.
	DefaultPort = "2947"
)

// Config holds configuration for the gpsd location provider.
type Config struct {
	// Host is the gpsd host (optional, defaults to localhost).
	Host string

	// Port is the gpsd port (optional, defaults to 2947).
	Port string

	// Logger for provider operations.
	Logger zerolog.Logger
}

// Provider reads position fixes from gpsd.
type Provider struct {
	addr   string
	logger zerolog.Logger
}

// NewProvider creates a gpsd-backed location provider.
func NewProvider(cfg Config) *Provider {
	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}
	port := cfg.Port
	if port == "" {
		port = DefaultPort
	}

	return &Provider{
		addr:   net.JoinHostPort(host, port),
		logger: cfg.Logger,
	}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return ProviderName
}

// CurrentReading connects to gpsd and waits for the first TPV report with at
// least a 2D fix. The deadline is enforced here, scaled by the caller's mode.
func (p *Provider) CurrentReading(ctx context.Context, deadline time.Duration) (*location.Reading, error) {
	session, err := gpsd.Dial(p.addr)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to gpsd at %s: %v", location.ErrUnavailable, p.addr, err)
	}

	fixes := make(chan *gpsd.TPVReport, 1)
	session.AddFilter("TPV", func(r interface{}) {
		tpv, ok := r.(*gpsd.TPVReport)
		if !ok {
			return
		}
		// Need at least a 2D fix
		if tpv.Mode < gpsd.Mode2D {
			return
		}
		select {
		case fixes <- tpv:
		default:
		}
	})

	// Watch() returns a channel that closes when the watch ends, e.g. on a
	// lost connection. go-gpsd has no Close(); the session is abandoned once
	// this function returns.
	done := session.Watch()

	timer := time.NewTimer(deadline)
	defer timer.Stop()

	select {
	case tpv := <-fixes:
		reading := &location.Reading{
			Coordinate:         geo.Coordinate{Lat: tpv.Lat, Lon: tpv.Lon},
			Altitude:           tpv.Alt,
			HorizontalAccuracy: (tpv.Epx + tpv.Epy) / 2,
			VerticalAccuracy:   tpv.Epv,
			CapturedAt:         time.Now(),
		}
		p.logger.Debug().
			Float64("lat", reading.Coordinate.Lat).
			Float64("lon", reading.Coordinate.Lon).
			Float64("alt", reading.Altitude).
			Msg("gpsd fix acquired")
		return reading, nil
	case <-done:
		return nil, fmt.Errorf("%w: gpsd connection closed before a fix", location.ErrUnavailable)
	case <-timer.C:
		p.logger.Warn().
			Dur("deadline", deadline).
			Msg("gpsd did not produce a fix within the deadline")
		return nil, location.ErrTimeout
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", location.ErrUnavailable, ctx.Err())
	}
}
