package poi

import (
	"context"
	"sync"
	"time"

	"github.com/snapcontext/snapcontext/internal/geo"
)

// Mock is a deterministic POI provider for tests and local development.
type Mock struct {
	mu        sync.Mutex
	items     []Item
	delay     time.Duration
	err       error
	callCount int
	keywords  []string
}

// NewMock creates a mock provider returning the given items.
func NewMock(items []Item) *Mock {
	return &Mock{items: items}
}

// Name returns the provider name.
func (m *Mock) Name() string {
	return "mock"
}

// Search returns the configured items after the configured delay.
func (m *Mock) Search(ctx context.Context, _ geo.Coordinate, keywords []string) ([]Item, error) {
	m.mu.Lock()
	items := make([]Item, len(m.items))
	copy(items, m.items)
	delay := m.delay
	err := m.err
	m.callCount++
	m.keywords = keywords
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
	return items, nil
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

// CallCount returns how many times Search has been invoked.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastKeywords returns the keyword set from the most recent call.
func (m *Mock) LastKeywords() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.keywords
}
