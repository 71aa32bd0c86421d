// Package openweathermap implements a weather provider backed by the
// OpenWeatherMap API.
package openweathermap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/provider/resilience"
	"github.com/snapcontext/snapcontext/internal/weather"
)

const (
	// ProviderName identifies this weather provider.
	ProviderName = "openweathermap"

	// DefaultBaseURL is the OpenWeatherMap API base URL.
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"

	attributionURL     = "https://openweathermap.org/terms"
	attributionLogoURL = "https://openweathermap.org/themes/openweathermap/assets/img/logo_white_cropped.png"
)

// ClientConfig holds configuration for the OpenWeatherMap client.
type ClientConfig struct {
	// APIKey is the OpenWeatherMap API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to OpenWeatherMap API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OpenWeatherMap API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new OpenWeatherMap client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// currentWeatherResponse is the subset of the OWM current weather payload we
// consume.
type currentWeatherResponse struct {
	Weather []struct {
		Main string `json:"main"`
		Icon string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
}

// CurrentWeather fetches current weather for a coordinate.
func (c *Client) CurrentWeather(ctx context.Context, coord geo.Coordinate) (*weather.Snapshot, error) {
	if err := coord.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrProviderError, err)
	}

	url := fmt.Sprintf("%s/weather?lat=%.6f&lon=%.6f&appid=%s&units=metric",
		c.baseURL, coord.Lat, coord.Lon, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: executing request: %v", weather.ErrProviderError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, weather.ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", weather.ErrProviderError, resp.StatusCode)
	}

	var owmResp currentWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owmResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", weather.ErrProviderError, err)
	}

	snapshot := &weather.Snapshot{
		Temperature:        owmResp.Main.Temp,
		Humidity:           owmResp.Main.Humidity,
		AttributionURL:     attributionURL,
		AttributionLogoURL: attributionLogoURL,
	}
	if len(owmResp.Weather) > 0 {
		snapshot.Condition = owmResp.Weather[0].Main
		snapshot.Icon = owmResp.Weather[0].Icon
	}

	return snapshot, nil
}
