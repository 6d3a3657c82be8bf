package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripcanvas/service-travel/internal/domain"
	"github.com/tripcanvas/service-travel/internal/maps"
)

// fakePlacesClient scripts autocomplete and geocode behavior per test.
type fakePlacesClient struct {
	acResp    *maps.AutocompleteResponse
	acErr     error
	countries map[string]string // place id -> verified country
	geoErr    error
}

func (f *fakePlacesClient) Autocomplete(context.Context, string) (*maps.AutocompleteResponse, error) {
	return f.acResp, f.acErr
}

func (f *fakePlacesClient) Geocode(_ context.Context, placeID string) (*maps.GeocodeResponse, error) {
	if f.geoErr != nil {
		return nil, f.geoErr
	}
	country, ok := f.countries[placeID]
	if !ok {
		return nil, errors.New("geocode miss")
	}
	return &maps.GeocodeResponse{
		Status: "OK",
		Results: []maps.GeocodeResult{{
			AddressComponents: []maps.AddressComponent{
				{LongName: country, Types: []string{"country", "political"}},
			},
		}},
	}, nil
}

func prediction(placeID, main, secondary string) maps.Suggestion {
	return maps.Suggestion{PlacePrediction: &maps.PlacePrediction{
		PlaceID: placeID,
		Text:    maps.TextValue{Text: main + ", " + secondary},
		StructuredFormat: &maps.StructuredFormat{
			MainText:      maps.TextValue{Text: main},
			SecondaryText: maps.TextValue{Text: secondary},
		},
	}}
}

func newPlaceService(client PlacesClient) *PlaceService {
	return NewPlaceService(client, nil, nil, zap.NewNop())
}

func TestPlaceService_Suggest_BlankQuery(t *testing.T) {
	svc := newPlaceService(&fakePlacesClient{})

	_, err := svc.Suggest(context.Background(), "   ")
	require.Error(t, err)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestPlaceService_Suggest_UpstreamErrorPropagates(t *testing.T) {
	svc := newPlaceService(&fakePlacesClient{
		acErr: domain.NewUpstreamError("google api error", 429, `{"error":"quota"}`),
	})

	_, err := svc.Suggest(context.Background(), "seoul")
	require.Error(t, err)
	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 429, upstreamErr.Status)
	assert.Equal(t, `{"error":"quota"}`, upstreamErr.Body)
}

func TestPlaceService_Suggest_NetworkErrorBecomesUpstream(t *testing.T) {
	svc := newPlaceService(&fakePlacesClient{acErr: errors.New("connection refused")})

	_, err := svc.Suggest(context.Background(), "seoul")
	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 502, upstreamErr.Status)
}

func TestPlaceService_Suggest_AdminSuffixStripping(t *testing.T) {
	svc := newPlaceService(&fakePlacesClient{
		acResp: &maps.AutocompleteResponse{Suggestions: []maps.Suggestion{
			prediction("p1", "서울특별시", "대한민국"),
			prediction("p2", "부산광역시", "대한민국"),
			prediction("p3", "도쿄都", "日本"),
		}},
	})

	resp, err := svc.Suggest(context.Background(), "서울")
	require.NoError(t, err)
	require.NotEmpty(t, resp.NormalizedSuggestions)

	byID := make(map[string]string)
	for _, s := range resp.NormalizedSuggestions {
		byID[s.PlaceID] = s.City
	}
	assert.Equal(t, "서울", byID["p1"])

	// All suggestions stay unverified here so no country filter applies.
	svc = newPlaceService(&fakePlacesClient{
		acResp: &maps.AutocompleteResponse{Suggestions: []maps.Suggestion{
			prediction("p3", "도쿄都", "日本"),
		}},
	})
	resp, err = svc.Suggest(context.Background(), "도쿄都")
	require.NoError(t, err)
	require.Len(t, resp.NormalizedSuggestions, 1)
	assert.Equal(t, "도쿄都", resp.NormalizedSuggestions[0].City)
}

func TestPlaceService_Suggest_GeocodeFailuresSwallowed(t *testing.T) {
	raw := json.RawMessage(`{"suggestions":[]}`)
	svc := newPlaceService(&fakePlacesClient{
		acResp: &maps.AutocompleteResponse{
			Suggestions: []maps.Suggestion{
				prediction("p1", "Seoul", "Seoul, South Korea"),
				prediction("p2", "Seoul Township", "Ohio, USA"),
			},
			Raw: raw,
		},
		geoErr: errors.New("geocode down"),
	})

	resp, err := svc.Suggest(context.Background(), "seoul")
	require.NoError(t, err)
	// Unverified candidates keep their derived countries and the list is intact.
	assert.Len(t, resp.NormalizedSuggestions, 2)
	assert.Equal(t, "South Korea", resp.NormalizedSuggestions[0].Country)
	assert.Equal(t, "USA", resp.NormalizedSuggestions[1].Country)
	assert.Equal(t, raw, resp.RawSuggestions)
}

func TestPlaceService_Suggest_PrimaryCountryFilter(t *testing.T) {
	svc := newPlaceService(&fakePlacesClient{
		acResp: &maps.AutocompleteResponse{Suggestions: []maps.Suggestion{
			prediction("kr", "Seoul", "South Korea"),
			prediction("us", "Seoul Township", "Minnesota, USA"),
			prediction("kr2", "Seoul Plaza", "Seoul, South Korea"),
		}},
		countries: map[string]string{
			"kr":  "South Korea",
			"us":  "United States",
			"kr2": "South Korea",
		},
	})

	resp, err := svc.Suggest(context.Background(), "seoul")
	require.NoError(t, err)
	require.NotEmpty(t, resp.NormalizedSuggestions)

	// Every returned entry carries the primary country.
	for _, s := range resp.NormalizedSuggestions {
		assert.Equal(t, "South Korea", s.Country)
		assert.Contains(t, s.Display, "South Korea")
	}
}

func TestPlaceService_Suggest_FilterNeverEmpties(t *testing.T) {
	// The query matches no candidate, so the secondary filter would empty
	// the list; the prior set must be returned instead.
	svc := newPlaceService(&fakePlacesClient{
		acResp: &maps.AutocompleteResponse{Suggestions: []maps.Suggestion{
			prediction("p1", "Busan", "South Korea"),
			prediction("p2", "Daegu", "South Korea"),
		}},
		countries: map[string]string{
			"p1": "South Korea",
			"p2": "South Korea",
		},
	})

	resp, err := svc.Suggest(context.Background(), "zzz-no-match")
	require.NoError(t, err)
	assert.Len(t, resp.NormalizedSuggestions, 2)
}

func TestPlaceService_Suggest_EmptySecondaryKeepsSuggestion(t *testing.T) {
	svc := newPlaceService(&fakePlacesClient{
		acResp: &maps.AutocompleteResponse{Suggestions: []maps.Suggestion{
			{PlacePrediction: &maps.PlacePrediction{
				PlaceID: "p1",
				Text:    maps.TextValue{Text: "Atlantis"},
				StructuredFormat: &maps.StructuredFormat{
					MainText: maps.TextValue{Text: "Atlantis"},
				},
			}},
		}},
		geoErr: errors.New("no geocode"),
	})

	resp, err := svc.Suggest(context.Background(), "atlantis")
	require.NoError(t, err)
	require.Len(t, resp.NormalizedSuggestions, 1)
	assert.Equal(t, "", resp.NormalizedSuggestions[0].Country)
	assert.Equal(t, "Atlantis", resp.NormalizedSuggestions[0].Display)
}
