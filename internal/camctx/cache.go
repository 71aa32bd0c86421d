package camctx

import (
	"sync"
	"time"

	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/location"
)

// Cache reuse thresholds. These are the only two externally meaningful
// tuning constants of the subsystem: a cached context is reused only for
// positions closer than 20 meters and results younger than 120 seconds.
const (
	DefaultDistanceThreshold = 20.0 // meters
	DefaultTimeThreshold     = 120 * time.Second
)

// Cache holds at most one entry: the last produced context paired with the
// location it was produced for. It never fails; absence of a usable entry
// is a normal miss. Expiry is enforced at read time, never by background
// eviction.
type Cache struct {
	distanceThreshold float64
	timeThreshold     time.Duration

	mu    sync.Mutex
	entry *cacheEntry
}

type cacheEntry struct {
	reading location.Reading
	context CameraContext
}

// NewCache creates a single-slot context cache. Zero thresholds fall back to
// the defaults.
func NewCache(distanceThreshold float64, timeThreshold time.Duration) *Cache {
	if distanceThreshold == 0 {
		distanceThreshold = DefaultDistanceThreshold
	}
	if timeThreshold == 0 {
		timeThreshold = DefaultTimeThreshold
	}

	return &Cache{
		distanceThreshold: distanceThreshold,
		timeThreshold:     timeThreshold,
	}
}

// Get returns a refreshed copy of the cached context when the current
// position is strictly within the distance threshold and the entry is
// strictly younger than the time threshold. Boundary values are misses.
//
// The returned copy has Timestamp/TimeString set to the instant the cache
// was consulted and FromCache forced true; the stored entry is left
// untouched, so concurrent hits never race on mutation.
func (c *Cache) Get(current geo.Coordinate) *CameraContext {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return nil
	}

	if geo.Distance(current, c.entry.reading.Coordinate) >= c.distanceThreshold {
		return nil
	}

	now := time.Now()
	if now.Sub(c.entry.context.Raw.Timestamp) >= c.timeThreshold {
		return nil
	}

	hit := c.entry.context
	hit.Raw.Timestamp = now
	hit.Display.TimeString = formatTime(now)
	hit.Flags.FromCache = true
	return &hit
}

// Put stores the context as the cache's only entry, overwriting any
// previous one.
func (c *Cache) Put(reading location.Reading, context CameraContext) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &cacheEntry{reading: reading, context: context}
}

// Clear unconditionally invalidates the cache slot.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}

// Status reports whether an entry exists and, if so, its raw timestamp.
// Read-only, no side effects.
func (c *Cache) Status() (bool, *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return false, nil
	}
	ts := c.entry.context.Raw.Timestamp
	return true, &ts
}
