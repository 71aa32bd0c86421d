package weather

import (
	"context"
	"sync"
	"time"

	"github.com/snapcontext/snapcontext/internal/geo"
)

// Mock is a deterministic weather provider with a fixed delay and a fixed
// result. It backs tests and the development configuration; the orchestrator
// exposes its presence through the UsingMockWeather flag.
type Mock struct {
	mu        sync.Mutex
	snapshot  Snapshot
	delay     time.Duration
	err       error
	callCount int
}

// NewMock creates a mock weather provider returning the given snapshot.
func NewMock(snapshot Snapshot) *Mock {
	return &Mock{snapshot: snapshot}
}

// Name returns the provider name.
func (m *Mock) Name() string {
	return "mock"
}

// CurrentWeather returns the configured snapshot after the configured delay.
// The delay honors context cancellation, which is what lets the deadline
// guard cancel a slow mock in tests.
func (m *Mock) CurrentWeather(ctx context.Context, _ geo.Coordinate) (*Snapshot, error) {
	m.mu.Lock()
	snapshot := m.snapshot
	delay := m.delay
	err := m.err
	m.callCount++
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// SetDelay sets a fixed delay applied before each response.
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

// CallCount returns how many times CurrentWeather has been invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
