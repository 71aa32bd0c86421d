// Package openmeteo implements a weather provider backed by the Open-Meteo
// API via the omgo client.
package openmeteo

import (
	"context"
	"fmt"

	"github.com/hectormalot/omgo"
	"github.com/rs/zerolog"

	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "open-meteo"

	attributionURL     = "https://open-meteo.com/en/terms"
	attributionLogoURL = "https://open-meteo.com/images/open-meteo.png"
)

// ClientConfig holds configuration for the Open-Meteo provider.
type ClientConfig struct {
	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo weather provider.
type Client struct {
	client omgo.Client
	logger zerolog.Logger
}

// NewClient creates a new Open-Meteo provider.
func NewClient(cfg ClientConfig) (*Client, error) {
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("creating open-meteo client: %w", err)
	}

	return &Client{
		client: client,
		logger: cfg.Logger,
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// CurrentWeather fetches the current weather for a coordinate.
func (c *Client) CurrentWeather(ctx context.Context, coord geo.Coordinate) (*weather.Snapshot, error) {
	if err := coord.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrProviderError, err)
	}

	loc, err := omgo.NewLocation(coord.Lat, coord.Lon)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrProviderError, err)
	}

	current, err := c.client.CurrentWeather(ctx, loc, nil)
	if err != nil {
		c.logger.Error().Err(err).
			Float64("lat", coord.Lat).
			Float64("lon", coord.Lon).
			Msg("open-meteo request failed")
		return nil, fmt.Errorf("%w: %v", weather.ErrProviderError, err)
	}

	code := int(current.WeatherCode)
	return &weather.Snapshot{
		Condition:   conditionFromWMOCode(code),
		Temperature: current.Temperature,
		// Open-Meteo's current-weather block carries no humidity.
		Humidity:           0,
		Icon:               fmt.Sprintf("wmo-%d", code),
		AttributionURL:     attributionURL,
		AttributionLogoURL: attributionLogoURL,
	}, nil
}

// conditionFromWMOCode maps WMO weather interpretation codes to a short
// condition label.
func conditionFromWMOCode(code int) string {
	switch {
	case code == 0:
		return "Clear"
	case code <= 3:
		return "Cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Showers"
	case code == 85 || code == 86:
		return "Snow"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}
