package camctx

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/snapcontext/snapcontext/internal/geocode"
	"github.com/snapcontext/snapcontext/internal/location"
	"github.com/snapcontext/snapcontext/internal/poi"
	"github.com/snapcontext/snapcontext/internal/weather"
)

// DefaultWeatherDeadline bounds the weather branch of the fan-out. It is
// fixed regardless of mode: weather is nice-to-have and is never allowed to
// dominate total latency. Only the location-read deadline scales with mode.
const DefaultWeatherDeadline = 3 * time.Second

// OrchestratorConfig holds the injected collaborators and tuning knobs for
// the orchestrator.
type OrchestratorConfig struct {
	// Location is the device location provider (required).
	Location location.Provider

	// Geocoder resolves coordinates to addresses (required).
	Geocoder geocode.Provider

	// Weather fetches the current weather (required).
	Weather weather.Provider

	// POI searches for nearby points of interest (required).
	POI poi.Provider

	// Logger for orchestrator operations.
	Logger zerolog.Logger

	// Cache is the single-slot context cache (optional, defaults to a cache
	// with the standard 20 m / 120 s thresholds).
	Cache *Cache

	// WeatherDeadline bounds the weather fetch (default: 3 seconds).
	WeatherDeadline time.Duration

	// Units selects altitude formatting (default: metric).
	Units Units

	// UsingMockWeather marks contexts produced with a mock weather
	// provider. Fixed for the lifetime of the orchestrator.
	UsingMockWeather bool
}

// Orchestrator answers, per call, whether a previous context can be reused,
// and otherwise fans out to the address, weather and POI sources in
// parallel, reassembling a fully-populated context even when some of them
// fail.
type Orchestrator struct {
	locationProvider location.Provider
	geocoder         geocode.Provider
	weatherProvider  weather.Provider
	poiProvider      poi.Provider
	logger           zerolog.Logger
	cache            *Cache
	weatherDeadline  time.Duration
	units            Units
	usingMockWeather bool
}

// NewOrchestrator creates an orchestrator with the given collaborators.
func NewOrchestrator(cfg OrchestratorConfig) *Orchestrator {
	cache := cfg.Cache
	if cache == nil {
		cache = NewCache(0, 0)
	}

	weatherDeadline := cfg.WeatherDeadline
	if weatherDeadline == 0 {
		weatherDeadline = DefaultWeatherDeadline
	}

	units := cfg.Units
	if units == "" {
		units = UnitsMetric
	}

	return &Orchestrator{
		locationProvider: cfg.Location,
		geocoder:         cfg.Geocoder,
		weatherProvider:  cfg.Weather,
		poiProvider:      cfg.POI,
		logger:           cfg.Logger,
		cache:            cache,
		weatherDeadline:  weatherDeadline,
		units:            units,
		usingMockWeather: cfg.UsingMockWeather,
	}
}

// FetchContext produces the display-ready geographic context for the
// device's current position. Only a location-read failure is fatal; address,
// weather and POI failures degrade to absent fields and flags.
func (o *Orchestrator) FetchContext(ctx context.Context, scene Scene, mode location.Mode) (*CameraContext, error) {
	reading, err := o.locationProvider.CurrentReading(ctx, mode.Deadline())
	if err != nil {
		return nil, fmt.Errorf("reading location: %w", err)
	}

	if hit := o.cache.Get(reading.Coordinate); hit != nil {
		o.logger.Debug().
			Float64("lat", reading.Coordinate.Lat).
			Float64("lon", reading.Coordinate.Lon).
			Msg("context cache hit")
		return hit, nil
	}

	// Fan out to the three sources. Each branch fails independently: a
	// failure or timeout in one never cancels or degrades the others.
	var (
		address         *geocode.Address
		snapshot        *weather.Snapshot
		weatherTimedOut bool
		pois            []poi.Item
	)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		addr, err := o.geocoder.ReverseGeocode(ctx, reading.Coordinate)
		if err != nil {
			o.logger.Warn().Err(err).
				Str("provider", o.geocoder.Name()).
				Msg("address lookup failed")
			return
		}
		address = addr
	}()

	go func() {
		defer wg.Done()
		snap, err := WithDeadline(ctx, o.weatherDeadline, func(opCtx context.Context) (*weather.Snapshot, error) {
			return o.weatherProvider.CurrentWeather(opCtx, reading.Coordinate)
		})
		if err != nil {
			weatherTimedOut = true
			o.logger.Warn().Err(err).
				Str("provider", o.weatherProvider.Name()).
				Dur("deadline", o.weatherDeadline).
				Msg("weather lookup failed or timed out")
			return
		}
		snapshot = snap
	}()

	go func() {
		defer wg.Done()
		items, err := o.poiProvider.Search(ctx, reading.Coordinate, keywordsForScene(scene))
		if err != nil {
			o.logger.Warn().Err(err).
				Str("provider", o.poiProvider.Name()).
				Msg("poi lookup failed")
			return
		}
		pois = items
	}()

	wg.Wait()

	result := BuildContext(BuilderInput{
		Reading:          *reading,
		Address:          address,
		Weather:          snapshot,
		POIs:             pois,
		CapturedAt:       time.Now(),
		WeatherTimedOut:  weatherTimedOut,
		UsingMockWeather: o.usingMockWeather,
		Scene:            scene,
		Mode:             mode,
		Units:            o.units,
	})

	// A cancelled caller fails every branch at once; that husk must not
	// occupy the cache slot where the next nearby call would reuse it.
	if ctx.Err() == nil {
		// Concurrent misses may both reach this point; the last writer
		// wins. Both results are independently valid fresh fetches, so
		// this is an accepted race, not a correctness bug.
		o.cache.Put(*reading, result)
	}

	o.logger.Debug().
		Bool("has_address", address != nil).
		Bool("has_weather", snapshot != nil).
		Bool("weather_timed_out", weatherTimedOut).
		Int("poi_count", len(pois)).
		Msg("context assembled")

	return &result, nil
}

// ClearCache unconditionally invalidates the cache slot.
func (o *Orchestrator) ClearCache() {
	o.cache.Clear()
}

// CacheStatus reports whether a cached entry exists and its timestamp.
func (o *Orchestrator) CacheStatus() (bool, *time.Time) {
	return o.cache.Status()
}

// keywordsForScene maps the calling scene to the POI keyword set.
func keywordsForScene(scene Scene) []string {
	if scene == SceneTravel {
		return []string{"attraction", "museum", "hotel", "viewpoint"}
	}
	return []string{"office", "cafe", "restaurant", "convenience"}
}
