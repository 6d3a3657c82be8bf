// Package maps is a thin client for the Google Maps Platform endpoints the
// service depends on: Places Autocomplete (v1), Geocoding, and Routes.
package maps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tripcanvas/service-travel/internal/domain"
)

const (
	autocompleteURL = "https://places.googleapis.com/v1/places:autocomplete"
	geocodeURL      = "https://maps.googleapis.com/maps/api/geocode/json"
	computeRouteURL = "https://routes.googleapis.com/directions/v2:computeRoutes"
	routeMatrixURL  = "https://routes.googleapis.com/distanceMatrix/v2:computeRouteMatrix"

	autocompleteFieldMask = "suggestions.placePrediction.placeId," +
		"suggestions.placePrediction.text.text," +
		"suggestions.placePrediction.structuredFormat"
	routeFieldMask  = "routes.legs.duration,routes.legs.distanceMeters"
	matrixFieldMask = "originIndex,destinationIndex,duration,distanceMeters,status"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TextValue wraps the Places v1 localized text shape.
type TextValue struct {
	Text string `json:"text"`
}

// StructuredFormat carries the main/secondary split of a place prediction.
type StructuredFormat struct {
	MainText      TextValue `json:"mainText"`
	SecondaryText TextValue `json:"secondaryText"`
}

// PlacePrediction is a single autocomplete candidate.
type PlacePrediction struct {
	PlaceID          string            `json:"placeId"`
	Text             TextValue         `json:"text"`
	StructuredFormat *StructuredFormat `json:"structuredFormat,omitempty"`
}

// Suggestion wraps a prediction as returned by the autocomplete endpoint.
type Suggestion struct {
	PlacePrediction *PlacePrediction `json:"placePrediction"`
}

// AutocompleteResponse is the parsed autocomplete payload. Raw preserves the
// origin body for pass-through to clients.
type AutocompleteResponse struct {
	Suggestions []Suggestion    `json:"suggestions"`
	Raw         json.RawMessage `json:"-"`
}

// AddressComponent is a Geocoding API address component.
type AddressComponent struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}

// GeocodeResult is a single Geocoding API result.
type GeocodeResult struct {
	AddressComponents []AddressComponent `json:"address_components"`
	FormattedAddress  string             `json:"formatted_address"`
	Geometry          struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// GeocodeResponse is the parsed Geocoding payload plus the origin body.
type GeocodeResponse struct {
	Results []GeocodeResult `json:"results"`
	Status  string          `json:"status"`
	Raw     json.RawMessage `json:"-"`
}

// Country returns the long name of the first country-typed address component,
// or "" when absent.
func (r *GeocodeResponse) Country() string {
	for _, result := range r.Results {
		for _, comp := range result.AddressComponents {
			for _, t := range comp.Types {
				if t == "country" {
					return comp.LongName
				}
			}
		}
	}
	return ""
}

// RouteLeg is a single leg of a computed route. Duration is the Routes API
// seconds string, e.g. "1234s".
type RouteLeg struct {
	DistanceMeters float64 `json:"distanceMeters"`
	Duration       string  `json:"duration"`
}

// Route is a single computed route.
type Route struct {
	Legs []RouteLeg `json:"legs"`
}

// RoutesResponse is the parsed computeRoutes payload.
type RoutesResponse struct {
	Routes []Route `json:"routes"`
}

// Client calls the Google Maps Platform with a single API key. The zero
// Client (no key) fails every call, which callers treat as the signal to use
// their local fallbacks.
type Client struct {
	apiKey     string
	language   string
	httpClient *http.Client
}

// NewClient creates a maps Client. An empty apiKey yields a client whose
// calls always fail with a missing-credentials error.
func NewClient(apiKey, language string) *Client {
	return &Client{
		apiKey:     apiKey,
		language:   language,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// HasKey reports whether an API key is configured.
func (c *Client) HasKey() bool { return c.apiKey != "" }

// Autocomplete requests locality-level place predictions for the query.
// Non-2xx responses are returned as *domain.UpstreamError carrying the origin
// status and body.
func (c *Client) Autocomplete(ctx context.Context, query string) (*AutocompleteResponse, error) {
	if !c.HasKey() {
		return nil, fmt.Errorf("google api key not configured")
	}

	body := map[string]interface{}{
		"input":                query,
		"languageCode":         c.language,
		"includedPrimaryTypes": []string{"locality"},
	}

	raw, err := c.postJSON(ctx, autocompleteURL, autocompleteFieldMask, body)
	if err != nil {
		return nil, err
	}

	var resp AutocompleteResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse autocomplete response: %w", err)
	}
	resp.Raw = raw
	return &resp, nil
}

// Geocode resolves a place id to coordinates and address components.
func (c *Client) Geocode(ctx context.Context, placeID string) (*GeocodeResponse, error) {
	if !c.HasKey() {
		return nil, fmt.Errorf("google api key not configured")
	}

	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("language", c.language)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, geocodeURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var resp GeocodeResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse geocode response: %w", err)
	}
	resp.Raw = raw
	return &resp, nil
}

// ComputeRoutes requests a single route between two coordinates. Alternative
// routes are disabled to bound request cost.
func (c *Client) ComputeRoutes(ctx context.Context, origin, dest LatLng, mode string) (*RoutesResponse, error) {
	if !c.HasKey() {
		return nil, fmt.Errorf("google api key not configured")
	}

	body := map[string]interface{}{
		"origin":                   map[string]interface{}{"location": map[string]interface{}{"latLng": origin}},
		"destination":              map[string]interface{}{"location": map[string]interface{}{"latLng": dest}},
		"travelMode":               mode,
		"computeAlternativeRoutes": false,
		"languageCode":             c.language,
		"units":                    "METRIC",
	}

	raw, err := c.postJSON(ctx, computeRouteURL, routeFieldMask, body)
	if err != nil {
		return nil, err
	}

	var resp RoutesResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse routes response: %w", err)
	}
	return &resp, nil
}

// ComputeRouteMatrix forwards a route-matrix request body and returns the
// origin response unchanged.
func (c *Client) ComputeRouteMatrix(ctx context.Context, request json.RawMessage) (json.RawMessage, error) {
	if !c.HasKey() {
		return nil, fmt.Errorf("google api key not configured")
	}

	var body interface{}
	if err := json.Unmarshal(request, &body); err != nil {
		return nil, domain.NewValidationError("invalid route matrix request body")
	}
	return c.postJSON(ctx, routeMatrixURL, matrixFieldMask, body)
}

func (c *Client) postJSON(ctx context.Context, endpoint, fieldMask string, body interface{}) (json.RawMessage, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	req.Header.Set("X-Goog-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", req.URL.Host, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, domain.NewUpstreamError("google api error", resp.StatusCode, string(raw))
	}
	return raw, nil
}
