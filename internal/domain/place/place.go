// Package place holds the place suggestion value objects produced by the
// autocomplete normalizer and the cached place details entity.
package place

import "context"

// Suggestion is a normalized city-level autocomplete candidate. It lives for
// a single request and is never persisted.
type Suggestion struct {
	PlaceID string `json:"placeId"`
	RawText string `json:"rawText"`
	City    string `json:"city"`
	Country string `json:"country"`
	Display string `json:"display"`
}

// Place is a cached place detail record, written when a user selects a
// suggestion.
type Place struct {
	ID        uint
	PlaceID   string
	Name      string
	Address   string
	Latitude  *float64
	Longitude *float64
	Category  string
}

// Repository defines persistence for cached place details.
type Repository interface {
	FindByPlaceID(ctx context.Context, placeID string) (*Place, error)
	Upsert(ctx context.Context, p *Place) error
}
