package location

import (
	"context"
	"sync"
	"time"

	"github.com/snapcontext/snapcontext/internal/geo"
)

// Mock is a deterministic location provider for tests and local development.
// It returns a fixed reading after an optional fixed delay.
type Mock struct {
	mu        sync.Mutex
	reading   Reading
	delay     time.Duration
	err       error
	callCount int
}

// NewMock creates a mock provider positioned at the given coordinate.
func NewMock(coord geo.Coordinate, altitude float64) *Mock {
	return &Mock{
		reading: Reading{
			Coordinate:         coord,
			Altitude:           altitude,
			HorizontalAccuracy: 5,
			VerticalAccuracy:   8,
		},
	}
}

// Name returns the provider name.
func (m *Mock) Name() string {
	return "mock"
}

// CurrentReading returns the configured reading stamped with the current time.
func (m *Mock) CurrentReading(ctx context.Context, deadline time.Duration) (*Reading, error) {
	m.mu.Lock()
	reading := m.reading
	delay := m.delay
	err := m.err
	m.callCount++
	m.mu.Unlock()

	if delay > 0 {
		if delay > deadline {
			delay = deadline
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}

	reading.CapturedAt = time.Now()
	return &reading, nil
}

// SetReading replaces the reading returned by subsequent calls.
func (m *Mock) SetReading(r Reading) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reading = r
}

// SetDelay sets a fixed delay applied before each reading is returned.
func (m *Mock) SetDelay(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.delay = d
}

// SetError makes subsequent calls fail with err.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// CallCount returns how many times CurrentReading has been invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
