// Package overpass implements a POI provider backed by the OSM Overpass API.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/snapcontext/snapcontext/internal/geo"
	"github.com/snapcontext/snapcontext/internal/poi"
	"github.com/snapcontext/snapcontext/internal/provider/resilience"
)

const (
	// ProviderName identifies this POI provider.
	ProviderName = "overpass"

	// DefaultBaseURL is the public Overpass interpreter endpoint.
	DefaultBaseURL = "https://overpass-api.de/api/interpreter"

	// DefaultRadius is the search radius in meters.
	DefaultRadius = 500

	// DefaultLimit caps the number of returned items.
	DefaultLimit = 10
)

// ClientConfig holds configuration for the Overpass client.
type ClientConfig struct {
	// BaseURL is the interpreter endpoint (optional).
	BaseURL string

	// Radius is the search radius in meters (optional, defaults to 500).
	Radius int

	// Limit caps the number of returned items (optional, defaults to 10).
	Limit int

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient *resilience.Client

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Overpass API POI search client.
type Client struct {
	baseURL    string
	radius     int
	limit      int
	httpClient *resilience.Client
	logger     zerolog.Logger
}

// NewClient creates a new Overpass client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	radius := cfg.Radius
	if radius == 0 {
		radius = DefaultRadius
	}

	limit := cfg.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.DefaultClientConfig(ProviderName))
	}

	return &Client{
		baseURL:    baseURL,
		radius:     radius,
		limit:      limit,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// overpassResponse is the Overpass JSON output we consume.
type overpassResponse struct {
	Elements []struct {
		Type string  `json:"type"`
		Lat  float64 `json:"lat"`
		Lon  float64 `json:"lon"`
		Tags struct {
			Name    string `json:"name"`
			Amenity string `json:"amenity"`
			Tourism string `json:"tourism"`
			Leisure string `json:"leisure"`
			Shop    string `json:"shop"`
		} `json:"tags"`
	} `json:"elements"`
}

// Search returns named points of interest around the coordinate whose
// amenity/tourism/leisure/shop tag matches one of the keywords, sorted
// closest-first and capped at the configured limit.
func (c *Client) Search(ctx context.Context, coord geo.Coordinate, keywords []string) ([]poi.Item, error) {
	if err := coord.Validate(); err != nil {
		return nil, err
	}
	if len(keywords) == 0 {
		return nil, nil
	}

	query := c.buildQuery(coord, keywords)

	form := url.Values{}
	form.Set("data", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var opResp overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&opResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return c.toItems(coord, &opResp), nil
}

// buildQuery renders an Overpass QL query matching any of the keywords
// against the common POI tag keys.
func (c *Client) buildQuery(coord geo.Coordinate, keywords []string) string {
	pattern := strings.Join(keywords, "|")

	var b strings.Builder
	b.WriteString("[out:json][timeout:10];(")
	for _, key := range []string{"amenity", "tourism", "leisure", "shop"} {
		fmt.Fprintf(&b, `node["%s"~"^(%s)$"](around:%d,%f,%f);`,
			key, pattern, c.radius, coord.Lat, coord.Lon)
	}
	b.WriteString(");out body;")
	return b.String()
}

func (c *Client) toItems(ref geo.Coordinate, resp *overpassResponse) []poi.Item {
	items := make([]poi.Item, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		if el.Tags.Name == "" {
			continue
		}

		category := el.Tags.Amenity
		if category == "" {
			category = el.Tags.Tourism
		}
		if category == "" {
			category = el.Tags.Leisure
		}
		if category == "" {
			category = el.Tags.Shop
		}

		items = append(items, poi.Item{
			Name:     el.Tags.Name,
			Category: category,
			Distance: geo.Distance(ref, geo.Coordinate{Lat: el.Lat, Lon: el.Lon}),
		})
	}

	sort.Slice(items, func(a, b int) bool {
		return items[a].Distance < items[b].Distance
	})

	if len(items) > c.limit {
		items = items[:c.limit]
	}
	return items
}
