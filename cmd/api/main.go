// Package main provides the entrypoint for the snapcontext API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/snapcontext/snapcontext/internal/api"
	"github.com/snapcontext/snapcontext/internal/api/middleware"
	"github.com/snapcontext/snapcontext/internal/camctx"
	"github.com/snapcontext/snapcontext/internal/config"
	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/geocode"
	"github.com/snapcontext/snapcontext/internal/geocode/nominatim"
	"github.com/snapcontext/snapcontext/internal/location"
	"github.com/snapcontext/snapcontext/internal/location/gpsd"
	"github.com/snapcontext/snapcontext/internal/poi"
	"github.com/snapcontext/snapcontext/internal/poi/overpass"
	"github.com/snapcontext/snapcontext/internal/provider/resilience"
	"github.com/snapcontext/snapcontext/internal/telemetry"
	"github.com/snapcontext/snapcontext/internal/weather"
	"github.com/snapcontext/snapcontext/internal/weather/openmeteo"
	"github.com/snapcontext/snapcontext/internal/weather/openweathermap"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "snapcontext-api"

	cfg, err := config.New()
	if err != nil {
		errLog := zerolog.New(os.Stderr)
		errLog.Fatal().Err(err).Msg("invalid configuration")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	log := zerolog.New(os.Stdout).
		Level(level).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting snapcontext API")

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    os.Getenv("APP_ENV"),
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	fetchMetrics, err := middleware.NewFetchMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize fetch metrics")
	}

	// All HTTP-backed providers share one registry so the ops status
	// endpoint can report their circuit breaker health.
	registry := resilience.NewRegistry()

	locationProvider := newLocationProvider(cfg, log)
	geocoder := newGeocoder(cfg, log, registry)
	weatherProvider, usingMockWeather := newWeatherProvider(cfg, log, registry)
	poiProvider := newPOIProvider(cfg, log, registry)

	orchestrator := camctx.NewOrchestrator(camctx.OrchestratorConfig{
		Location:         locationProvider,
		Geocoder:         geocoder,
		Weather:          weatherProvider,
		POI:              poiProvider,
		Logger:           log,
		Cache:            camctx.NewCache(cfg.Cache.DistanceThreshold, cfg.Cache.TimeThreshold),
		WeatherDeadline:  cfg.Weather.Deadline,
		Units:            camctx.Units(cfg.Units),
		UsingMockWeather: usingMockWeather,
	})
	log.Info().
		Str("location_provider", locationProvider.Name()).
		Str("weather_provider", weatherProvider.Name()).
		Dur("weather_deadline", cfg.Weather.Deadline).
		Msg("orchestrator initialized")

	router := api.NewRouter(api.RouterConfig{
		Version:      Version,
		BuildTime:    BuildTime,
		Logger:       log,
		ServiceName:  serviceName,
		Metrics:      metrics,
		FetchMetrics: fetchMetrics,
		Orchestrator: orchestrator,
		Registry:     registry,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

func newLocationProvider(cfg *config.Config, log zerolog.Logger) location.Provider {
	if cfg.Location.Provider == config.LocationProviderMock {
		log.Warn().Msg("using mock location provider")
		return location.NewMock(geo.Coordinate{
			Lat: cfg.Location.MockLat,
			Lon: cfg.Location.MockLon,
		}, cfg.Location.MockAltitude)
	}

	return gpsd.NewProvider(gpsd.Config{
		Host:   cfg.Location.GPSDHost,
		Port:   cfg.Location.GPSDPort,
		Logger: log,
	})
}

func newGeocoder(cfg *config.Config, log zerolog.Logger, registry *resilience.Registry) geocode.Provider {
	clientCfg := resilience.DefaultClientConfig("nominatim")
	clientCfg.Registry = registry

	return nominatim.NewClient(nominatim.ClientConfig{
		BaseURL:    cfg.Geocode.Endpoint,
		HTTPClient: resilience.NewClient(clientCfg),
		Logger:     log,
	})
}

func newWeatherProvider(cfg *config.Config, log zerolog.Logger, registry *resilience.Registry) (weather.Provider, bool) {
	switch cfg.Weather.Provider {
	case config.WeatherProviderMock:
		log.Warn().Msg("using mock weather provider")
		return weather.NewMock(weather.Snapshot{
			Condition:   "Clear",
			Temperature: 21,
			Humidity:    40,
		}), true

	case config.WeatherProviderOpenWeatherMap:
		clientCfg := resilience.DefaultClientConfig("openweathermap")
		clientCfg.Registry = registry

		return openweathermap.NewClient(openweathermap.ClientConfig{
			APIKey:     cfg.Weather.APIKey,
			HTTPClient: resilience.NewClient(clientCfg),
			Logger:     log,
		}), false

	default:
		client, err := openmeteo.NewClient(openmeteo.ClientConfig{Logger: log})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create open-meteo client")
		}
		return client, false
	}
}

func newPOIProvider(cfg *config.Config, log zerolog.Logger, registry *resilience.Registry) poi.Provider {
	clientCfg := resilience.DefaultClientConfig("overpass")
	clientCfg.Registry = registry

	return overpass.NewClient(overpass.ClientConfig{
		BaseURL:    cfg.POI.Endpoint,
		Radius:     cfg.POI.Radius,
		Limit:      cfg.POI.Limit,
		HTTPClient: resilience.NewClient(clientCfg),
		Logger:     log,
	})
}
