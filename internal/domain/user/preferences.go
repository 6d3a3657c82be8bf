package user

import (
	"encoding/json"

	"github.com/tripcanvas/service-travel/internal/domain"
)

// Preferences holds a user's travel planning preferences. One record per
// user, upserted as a whole.
type Preferences struct {
	ID                  uint
	UserID              uint
	TravelStyle         string
	BudgetRangeMin      *int
	BudgetRangeMax      *int
	PreferredCategories json.RawMessage
}

// NewPreferences validates and creates a preferences record.
func NewPreferences(userID uint, travelStyle string, budgetMin, budgetMax *int, categories json.RawMessage) (*Preferences, error) {
	if userID == 0 {
		return nil, domain.NewValidationError("user id is required")
	}
	if budgetMin != nil && budgetMax != nil && *budgetMax < *budgetMin {
		return nil, domain.NewValidationError("budget range max must not be below min")
	}
	if len(categories) > 0 && !json.Valid(categories) {
		return nil, domain.NewValidationError("preferred categories must be valid JSON")
	}
	return &Preferences{
		UserID:              userID,
		TravelStyle:         travelStyle,
		BudgetRangeMin:      budgetMin,
		BudgetRangeMax:      budgetMax,
		PreferredCategories: categories,
	}, nil
}
