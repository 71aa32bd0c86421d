package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snapcontext/snapcontext/internal/config"
	"github.com/snapcontext/snapcontext/internal/geocode/nominatim"
)

func TestNew_Defaults(t *testing.T) {
	conf, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, "metric", conf.Units)
	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, ":8080", conf.HTTP.Addr)
	assert.Equal(t, config.LocationProviderGPSD, conf.Location.Provider)
	assert.Equal(t, "localhost", conf.Location.GPSDHost)
	assert.Equal(t, "2947", conf.Location.GPSDPort)
	assert.Equal(t, config.WeatherProviderOpenMeteo, conf.Weather.Provider)
	// The geocode endpoint must be the reverse endpoint itself: the client
	// appends only the query string to it.
	assert.Equal(t, nominatim.DefaultBaseURL, conf.Geocode.Endpoint)
	assert.Equal(t, 3*time.Second, conf.Weather.Deadline)
	assert.Equal(t, 20.0, conf.Cache.DistanceThreshold)
	assert.Equal(t, 120*time.Second, conf.Cache.TimeThreshold)
	assert.Equal(t, 500, conf.POI.Radius)
	assert.Equal(t, 10, conf.POI.Limit)
	assert.False(t, conf.Telemetry.Enabled)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("SNAPCONTEXT_UNITS", "imperial")
	t.Setenv("SNAPCONTEXT_HTTP_ADDR", ":9090")
	t.Setenv("SNAPCONTEXT_WEATHER_PROVIDER", "mock")
	t.Setenv("SNAPCONTEXT_CACHE_TIME_THRESHOLD", "30s")

	conf, err := config.New()
	require.NoError(t, err)

	assert.Equal(t, "imperial", conf.Units)
	assert.Equal(t, ":9090", conf.HTTP.Addr)
	assert.Equal(t, config.WeatherProviderMock, conf.Weather.Provider)
	assert.Equal(t, 30*time.Second, conf.Cache.TimeThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{
			name:    "invalid units",
			mutate:  func(c *config.Config) { c.Units = "nautical" },
			wantErr: "invalid units",
		},
		{
			name:    "invalid location provider",
			mutate:  func(c *config.Config) { c.Location.Provider = "carrier-pigeon" },
			wantErr: "invalid location provider",
		},
		{
			name:    "invalid weather provider",
			mutate:  func(c *config.Config) { c.Weather.Provider = "guesswork" },
			wantErr: "invalid weather provider",
		},
		{
			name:    "openweathermap without api key",
			mutate:  func(c *config.Config) { c.Weather.Provider = config.WeatherProviderOpenWeatherMap },
			wantErr: "requires an api key",
		},
		{
			name:    "zero weather deadline",
			mutate:  func(c *config.Config) { c.Weather.Deadline = 0 },
			wantErr: "invalid weather deadline",
		},
		{
			name:    "negative distance threshold",
			mutate:  func(c *config.Config) { c.Cache.DistanceThreshold = -1 },
			wantErr: "invalid cache distance threshold",
		},
		{
			name:    "zero poi limit",
			mutate:  func(c *config.Config) { c.POI.Limit = 0 },
			wantErr: "invalid poi limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf, err := config.New()
			require.NoError(t, err)

			tt.mutate(conf)
			err = conf.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_OpenWeatherMapWithKey(t *testing.T) {
	conf, err := config.New()
	require.NoError(t, err)

	conf.Weather.Provider = config.WeatherProviderOpenWeatherMap
	conf.Weather.APIKey = "test-key"
	assert.NoError(t, conf.Validate())
}

func TestNewFromFile_Missing(t *testing.T) {
	_, err := config.NewFromFile(t.TempDir(), "nope.yaml")
	assert.Error(t, err)
}
