package geocode

import (
	"context"
	"sync"
	"time"

	"github.com/snapcontext/snapcontext/internal/geo"
)

// Mock is a deterministic geocoding provider for tests and local development.
type Mock struct {
	mu        sync.Mutex
	address   Address
	delay     time.Duration
	err       error
	callCount int
}

// NewMock creates a mock provider returning the given address.
func NewMock(addr Address) *Mock {
	return &Mock{address: addr}
}

// Name returns the provider name.
func (m *Mock) Name() string {
	return "mock"
}

// ReverseGeocode returns the configured address after the configured delay.
func (m *Mock) ReverseGeocode(ctx context.Context, _ geo.Coordinate) (*Address, error) {
	m.mu.Lock()
	addr := m.address
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
	return &addr, nil
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

// CallCount returns how many times ReverseGeocode has been invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}
