package trip

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tripcanvas/service-travel/internal/domain"
)

// Feedback is a post-trip satisfaction record left by a user.
type Feedback struct {
	ID                uint
	TripID            uint
	UserID            uint
	OverallRating     int // 1..5
	FeedbackText      string
	SatisfactionAreas json.RawMessage
	CreatedAt         time.Time
}

// NewFeedback validates and creates a feedback record.
func NewFeedback(tripID, userID uint, rating int, text string, areas json.RawMessage) (*Feedback, error) {
	if tripID == 0 {
		return nil, domain.NewValidationError("trip id is required")
	}
	if userID == 0 {
		return nil, domain.NewValidationError("user id is required")
	}
	if rating < 1 || rating > 5 {
		return nil, domain.NewValidationError("overall rating must be between 1 and 5")
	}
	if len(areas) > 0 && !json.Valid(areas) {
		return nil, domain.NewValidationError("satisfaction areas must be valid JSON")
	}
	return &Feedback{
		TripID:            tripID,
		UserID:            userID,
		OverallRating:     rating,
		FeedbackText:      text,
		SatisfactionAreas: areas,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// FeedbackRepository defines persistence for trip feedback.
type FeedbackRepository interface {
	FindByTripID(ctx context.Context, tripID uint) ([]*Feedback, error)
	Save(ctx context.Context, f *Feedback) error
}
