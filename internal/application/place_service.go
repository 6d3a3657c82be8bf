package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/tripcanvas/service-travel/internal/domain"
	placeDomain "github.com/tripcanvas/service-travel/internal/domain/place"
	"github.com/tripcanvas/service-travel/internal/maps"
	"github.com/tripcanvas/service-travel/internal/metrics"
)

// Administrative suffixes stripped from the last token of a locality name.
// Ordered longest first so "특별시" wins over "시".
var adminSuffixes = []string{
	"특별자치도", "특별자치시", "특별시", "광역시", "자치시", "시", "군", "구", "도",
}

// countryVerifyLimit caps the per-request geocode lookups used to verify
// suggestion countries.
const countryVerifyLimit = 5

// SuggestResponse carries the normalized suggestions alongside the origin
// autocomplete payload for diagnostics.
type SuggestResponse struct {
	NormalizedSuggestions []placeDomain.Suggestion `json:"normalizedSuggestions"`
	RawSuggestions        json.RawMessage          `json:"rawSuggestions"`
}

// PlacesClient is the slice of the maps client the place service depends on.
type PlacesClient interface {
	Autocomplete(ctx context.Context, query string) (*maps.AutocompleteResponse, error)
	Geocode(ctx context.Context, placeID string) (*maps.GeocodeResponse, error)
}

// candidate pairs a suggestion with the main text it was derived from, which
// the query-match steps need after normalization.
type candidate struct {
	suggestion placeDomain.Suggestion
	mainText   string
	verified   bool
}

// PlaceService normalizes autocomplete suggestions into ranked city-level
// place candidates.
type PlaceService struct {
	client  PlacesClient
	repo    placeDomain.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewPlaceService creates a new PlaceService.
func NewPlaceService(client PlacesClient, repo placeDomain.Repository, m *metrics.Metrics, logger *zap.Logger) *PlaceService {
	return &PlaceService{client: client, repo: repo, metrics: m, logger: logger}
}

// Suggest produces city-level place suggestions for a free-text query. The
// autocomplete call is user-facing-critical: its failure propagates with the
// origin status and body. Per-candidate country verification failures are
// swallowed and leave that candidate unverified.
func (s *PlaceService) Suggest(ctx context.Context, query string) (*SuggestResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.NewValidationError("query must not be blank")
	}

	resp, err := s.client.Autocomplete(ctx, query)
	if err != nil {
		if s.metrics != nil {
			s.metrics.PlacesUpstreamErrors.Inc()
		}
		var upstreamErr *domain.UpstreamError
		if !errors.As(err, &upstreamErr) {
			return nil, domain.NewUpstreamError("autocomplete request failed: "+err.Error(), 502, "")
		}
		return nil, err
	}

	candidates := normalizeSuggestions(resp)
	s.verifyCountries(ctx, candidates)

	primary := s.primaryCountry(query, candidates)
	filtered := filterByCountry(candidates, primary)
	filtered = filterByQuery(filtered, query)

	suggestions := make([]placeDomain.Suggestion, len(filtered))
	for i, c := range filtered {
		suggestions[i] = c.suggestion
	}
	return &SuggestResponse{
		NormalizedSuggestions: suggestions,
		RawSuggestions:        resp.Raw,
	}, nil
}

// Geocode resolves a place id and returns the geocoder's response unchanged.
func (s *PlaceService) Geocode(ctx context.Context, placeID string) (json.RawMessage, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, domain.NewValidationError("placeId must not be blank")
	}

	resp, err := s.client.Geocode(ctx, placeID)
	if err != nil {
		var upstreamErr *domain.UpstreamError
		if !errors.As(err, &upstreamErr) {
			return nil, domain.NewUpstreamError("geocode request failed: "+err.Error(), 502, "")
		}
		return nil, err
	}
	return resp.Raw, nil
}

// CachePlace stores the details of a place the user selected.
func (s *PlaceService) CachePlace(ctx context.Context, p *placeDomain.Place) error {
	if strings.TrimSpace(p.PlaceID) == "" {
		return domain.NewValidationError("placeId is required")
	}
	return s.repo.Upsert(ctx, p)
}

// GetCachedPlace retrieves a previously cached place.
func (s *PlaceService) GetCachedPlace(ctx context.Context, placeID string) (*placeDomain.Place, error) {
	return s.repo.FindByPlaceID(ctx, placeID)
}

func normalizeSuggestions(resp *maps.AutocompleteResponse) []*candidate {
	candidates := make([]*candidate, 0, len(resp.Suggestions))
	for _, raw := range resp.Suggestions {
		pred := raw.PlacePrediction
		if pred == nil {
			continue
		}

		mainText := pred.Text.Text
		secondary := ""
		if pred.StructuredFormat != nil {
			if pred.StructuredFormat.MainText.Text != "" {
				mainText = pred.StructuredFormat.MainText.Text
			}
			secondary = pred.StructuredFormat.SecondaryText.Text
		}

		city := stripAdminSuffix(lastToken(mainText))
		country := countryFromSecondary(secondary)

		candidates = append(candidates, &candidate{
			suggestion: placeDomain.Suggestion{
				PlaceID: pred.PlaceID,
				RawText: pred.Text.Text,
				City:    city,
				Country: country,
				Display: composeDisplay(city, country, pred.Text.Text),
			},
			mainText: mainText,
		})
	}
	return candidates
}

// verifyCountries reverse-geocodes the first few candidates and replaces
// their derived country with the geocoder's answer. Failures leave the
// candidate unverified and never abort the request.
func (s *PlaceService) verifyCountries(ctx context.Context, candidates []*candidate) {
	for i, c := range candidates {
		if i >= countryVerifyLimit {
			break
		}
		geo, err := s.client.Geocode(ctx, c.suggestion.PlaceID)
		if err != nil {
			s.logger.Debug("country verification skipped",
				zap.String("place_id", c.suggestion.PlaceID),
				zap.Error(err),
			)
			continue
		}
		country := geo.Country()
		if country == "" {
			continue
		}
		c.suggestion.Country = country
		c.suggestion.Display = composeDisplay(c.suggestion.City, country, c.suggestion.RawText)
		c.verified = true
	}
}

// primaryCountry picks the country used to filter the suggestion list: the
// country of the first verified candidate matching the query, else the first
// verified candidate's country, else the most frequent verified country.
func (s *PlaceService) primaryCountry(query string, candidates []*candidate) string {
	normQuery := normalizeForMatch(query)
	freq := make(map[string]int)
	first := ""

	for _, c := range candidates {
		if !c.verified {
			continue
		}
		if first == "" {
			first = c.suggestion.Country
		}
		freq[c.suggestion.Country]++
		if candidateMatches(c, normQuery) {
			return c.suggestion.Country
		}
	}
	if first != "" {
		return first
	}

	best, bestCount := "", 0
	for country, count := range freq {
		if count > bestCount {
			best, bestCount = country, count
		}
	}
	return best
}

// filterByCountry keeps suggestions in the primary country. An empty result
// keeps the full list instead: over-filtering must never empty the response.
func filterByCountry(candidates []*candidate, primary string) []*candidate {
	if primary == "" {
		return candidates
	}
	kept := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.suggestion.Country == primary {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return candidates
	}
	return kept
}

// filterByQuery keeps suggestions whose main text or display contains the
// normalized query, falling back to the input list when none match.
func filterByQuery(candidates []*candidate, query string) []*candidate {
	normQuery := normalizeForMatch(query)
	kept := make([]*candidate, 0, len(candidates))
	for _, c := range candidates {
		if candidateMatches(c, normQuery) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return candidates
	}
	return kept
}

func candidateMatches(c *candidate, normQuery string) bool {
	return strings.Contains(normalizeForMatch(c.mainText), normQuery) ||
		strings.Contains(normalizeForMatch(c.suggestion.Display), normQuery)
}

// normalizeForMatch lowercases and removes all whitespace.
func normalizeForMatch(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func stripAdminSuffix(city string) string {
	for _, suffix := range adminSuffixes {
		if strings.HasSuffix(city, suffix) && city != suffix {
			return strings.TrimSuffix(city, suffix)
		}
	}
	return city
}

// countryFromSecondary derives a country name from an autocomplete secondary
// text: the text after the last comma when present, else the last whitespace
// token, else "". The empty-country case is deliberately permissive; such
// suggestions are kept, not rejected.
func countryFromSecondary(secondary string) string {
	if secondary == "" {
		return ""
	}
	if idx := strings.LastIndex(secondary, ","); idx >= 0 {
		return strings.TrimSpace(secondary[idx+1:])
	}
	return lastToken(secondary)
}

func composeDisplay(city, country, rawText string) string {
	switch {
	case city != "" && country != "":
		return city + " " + country
	case city != "":
		return city
	case country != "":
		return country
	default:
		return rawText
	}
}
