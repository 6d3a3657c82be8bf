package application

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	tripDomain "github.com/tripcanvas/service-travel/internal/domain/trip"
)

// FeedbackRequest holds a post-trip feedback submission.
type FeedbackRequest struct {
	OverallRating     int             `json:"overallRating" binding:"required"`
	FeedbackText      string          `json:"feedbackText"`
	SatisfactionAreas json.RawMessage `json:"satisfactionAreas"`
}

// FeedbackDTO is the response representation of a feedback record.
type FeedbackDTO struct {
	ID                uint            `json:"id"`
	TripID            uint            `json:"tripId"`
	UserID            uint            `json:"userId"`
	OverallRating     int             `json:"overallRating"`
	FeedbackText      string          `json:"feedbackText,omitempty"`
	SatisfactionAreas json.RawMessage `json:"satisfactionAreas,omitempty"`
	CreatedAt         string          `json:"createdAt"`
}

// FeedbackService handles post-trip feedback.
type FeedbackService struct {
	repo     tripDomain.FeedbackRepository
	tripRepo tripDomain.Repository
	logger   *zap.Logger
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(repo tripDomain.FeedbackRepository, tripRepo tripDomain.Repository, logger *zap.Logger) *FeedbackService {
	return &FeedbackService{repo: repo, tripRepo: tripRepo, logger: logger}
}

// Submit validates and persists feedback for a trip. The trip must exist.
func (s *FeedbackService) Submit(ctx context.Context, tripID, userID uint, req FeedbackRequest) (*FeedbackDTO, error) {
	if _, err := s.tripRepo.FindByID(ctx, tripID); err != nil {
		return nil, err
	}

	f, err := tripDomain.NewFeedback(tripID, userID, req.OverallRating, req.FeedbackText, req.SatisfactionAreas)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}

	dto := toFeedbackDTO(f)
	return &dto, nil
}

// List retrieves the feedback of a trip, newest first.
func (s *FeedbackService) List(ctx context.Context, tripID uint) ([]FeedbackDTO, error) {
	feedbacks, err := s.repo.FindByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	dtos := make([]FeedbackDTO, len(feedbacks))
	for i, f := range feedbacks {
		dtos[i] = toFeedbackDTO(f)
	}
	return dtos, nil
}

func toFeedbackDTO(f *tripDomain.Feedback) FeedbackDTO {
	return FeedbackDTO{
		ID:                f.ID,
		TripID:            f.TripID,
		UserID:            f.UserID,
		OverallRating:     f.OverallRating,
		FeedbackText:      f.FeedbackText,
		SatisfactionAreas: f.SatisfactionAreas,
		CreatedAt:         f.CreatedAt.UTC().Format(time.RFC3339),
	}
}
