// Package nominatim implements a geocoding provider backed by the OSM
// Nominatim API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/geocode"
	"github.com/snapcontext/snapcontext/internal/provider/resilience"
)

const (
	// ProviderName identifies this geocoding provider.
	ProviderName = "nominatim"

	// DefaultBaseURL is the public Nominatim reverse endpoint.
	DefaultBaseURL = "https://nominatim.openstreetmap.org/reverse"

	// userAgent is required by the Nominatim usage policy.
	userAgent = "snapcontext/1.0"
)

// ClientConfig holds configuration for the Nominatim client.
type ClientConfig struct {
	// BaseURL is the reverse-geocoding endpoint (optional).
	BaseURL string

	// Language is the accept-language value for results (optional).
	Language string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Nominatim reverse-geocoding client.
type Client struct {
	baseURL    string
	language   string
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Nominatim client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	language := cfg.Language
	if language == "" {
		language = "en"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		language:   language,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// reverseResponse is the Nominatim jsonv2 reverse response.
type reverseResponse struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Error       string `json:"error"`
	Address     struct {
		Road         string `json:"road"`
		Suburb       string `json:"suburb"`
		CityDistrict string `json:"city_district"`
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		State        string `json:"state"`
		Tourism      string `json:"tourism"`
		Amenity      string `json:"amenity"`
	} `json:"address"`
}

// ReverseGeocode resolves a coordinate to an address.
func (c *Client) ReverseGeocode(ctx context.Context, coord geo.Coordinate) (*geocode.Address, error) {
	if err := coord.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", geocode.ErrProviderError, err)
	}

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", fmt.Sprintf("%f", coord.Lat))
	query.Set("lon", fmt.Sprintf("%f", coord.Lon))
	query.Set("accept-language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: executing request: %v", geocode.ErrProviderError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, geocode.ErrNoResult
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status code %d", geocode.ErrProviderError, resp.StatusCode)
	}

	var nomResp reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&nomResp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %v", geocode.ErrProviderError, err)
	}

	// Nominatim signals "nothing here" with a 200 and an error field.
	if nomResp.Error != "" {
		return nil, geocode.ErrNoResult
	}

	return c.toAddress(&nomResp), nil
}

// toAddress maps a Nominatim response to the geocode model. City falls back
// to town and village, sublocality to city district.
func (c *Client) toAddress(resp *reverseResponse) *geocode.Address {
	locality := resp.Address.City
	if locality == "" {
		locality = resp.Address.Town
	}
	if locality == "" {
		locality = resp.Address.Village
	}

	subLocality := resp.Address.Suburb
	if subLocality == "" {
		subLocality = resp.Address.CityDistrict
	}

	addr := &geocode.Address{
		Locality:           locality,
		SubLocality:        subLocality,
		AdministrativeArea: resp.Address.State,
		Thoroughfare:       resp.Address.Road,
		Name:               resp.Name,
		FormattedAddress:   resp.DisplayName,
	}

	// A named tourism or amenity feature at the coordinate doubles as an
	// area of interest.
	switch resp.Category {
	case "tourism", "amenity", "leisure", "historic":
		if resp.Name != "" {
			addr.AreasOfInterest = append(addr.AreasOfInterest, resp.Name)
		}
	}

	return addr
}
