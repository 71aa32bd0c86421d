package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kkyr/fig"
)

const configEnv = "SNAPCONTEXT"

// Provider selection values accepted by Validate.
const (
	LocationProviderGPSD = "gpsd"
	LocationProviderMock = "mock"

	WeatherProviderOpenMeteo      = "openmeteo"
	WeatherProviderOpenWeatherMap = "openweathermap"
	WeatherProviderMock           = "mock"
)

// Config is the application configuration, loadable from a YAML/TOML file
// and overridable through SNAPCONTEXT_* environment variables.
type Config struct {
	// Allowed values: metric, imperial
	Units    string `fig:"units" default:"metric"`
	LogLevel string `fig:"loglevel" default:"info"`

	HTTP struct {
		Addr            string        `fig:"addr" default:":8080"`
		ReadTimeout     time.Duration `fig:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `fig:"write_timeout" default:"30s"`
		IdleTimeout     time.Duration `fig:"idle_timeout" default:"120s"`
		ShutdownTimeout time.Duration `fig:"shutdown_timeout" default:"15s"`
	} `fig:"http"`

	Location struct {
		// Allowed values: gpsd, mock
		Provider string `fig:"provider" default:"gpsd"`
		GPSDHost string `fig:"gpsd_host" default:"localhost"`
		GPSDPort string `fig:"gpsd_port" default:"2947"`

		// Fixed position used by the mock provider.
		MockLat      float64 `fig:"mock_lat" default:"39.9042"`
		MockLon      float64 `fig:"mock_lon" default:"116.4074"`
		MockAltitude float64 `fig:"mock_altitude" default:"50"`
	} `fig:"location"`

	Geocode struct {
		Endpoint string `fig:"endpoint" default:"https://nominatim.openstreetmap.org/reverse"`
	} `fig:"geocode"`

	Weather struct {
		// Allowed values: openmeteo, openweathermap, mock
		Provider string        `fig:"provider" default:"openmeteo"`
		APIKey   string        `fig:"api_key"`
		Deadline time.Duration `fig:"deadline" default:"3s"`
	} `fig:"weather"`

	POI struct {
		Endpoint string `fig:"endpoint" default:"https://overpass-api.de/api/interpreter"`
		Radius   int    `fig:"radius" default:"500"`
		Limit    int    `fig:"limit" default:"10"`
	} `fig:"poi"`

	Cache struct {
		DistanceThreshold float64       `fig:"distance_threshold" default:"20"`
		TimeThreshold     time.Duration `fig:"time_threshold" default:"120s"`
	} `fig:"cache"`

	Telemetry struct {
		Enabled      bool   `fig:"enabled"`
		OTLPEndpoint string `fig:"otlp_endpoint" default:"localhost:4317"`
	} `fig:"telemetry"`
}

// New loads the configuration from environment variables only, applying
// struct defaults for everything unset.
func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

// NewFromFile loads the configuration from the given file, with environment
// variables taking precedence over file values.
func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	if _, err := os.Stat(filepath.Join(path, file)); err != nil {
		return conf, fmt.Errorf("failed to read config: %w", err)
	}
	if err := fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load config: %w", err)
	}

	return conf, conf.Validate()
}

// Validate rejects values the rest of the application cannot act on.
func (c *Config) Validate() error {
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}

	switch c.Location.Provider {
	case LocationProviderGPSD, LocationProviderMock:
	default:
		return fmt.Errorf("invalid location provider: %s", c.Location.Provider)
	}

	switch c.Weather.Provider {
	case WeatherProviderOpenMeteo, WeatherProviderMock:
	case WeatherProviderOpenWeatherMap:
		if c.Weather.APIKey == "" {
			return fmt.Errorf("weather provider %s requires an api key", c.Weather.Provider)
		}
	default:
		return fmt.Errorf("invalid weather provider: %s", c.Weather.Provider)
	}

	if c.Weather.Deadline <= 0 {
		return fmt.Errorf("invalid weather deadline: %s", c.Weather.Deadline)
	}
	if c.Cache.DistanceThreshold <= 0 {
		return fmt.Errorf("invalid cache distance threshold: %f", c.Cache.DistanceThreshold)
	}
	if c.Cache.TimeThreshold <= 0 {
		return fmt.Errorf("invalid cache time threshold: %s", c.Cache.TimeThreshold)
	}
	if c.POI.Limit <= 0 {
		return fmt.Errorf("invalid poi limit: %d", c.POI.Limit)
	}

	return nil
}
