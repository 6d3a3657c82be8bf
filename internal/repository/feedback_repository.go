package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	tripDomain "github.com/tripcanvas/service-travel/internal/domain/trip"
)

// FeedbackModel is the GORM model for the trip_feedbacks table.
type FeedbackModel struct {
	ID                uint            `gorm:"primaryKey"`
	TripID            uint            `gorm:"index;not null"`
	UserID            uint            `gorm:"index;not null"`
	OverallRating     int             `gorm:"not null"`
	FeedbackText      string          `gorm:"size:2000"`
	SatisfactionAreas json.RawMessage `gorm:"type:jsonb"`
	CreatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (FeedbackModel) TableName() string {
	return "trip_feedbacks"
}

// GormFeedbackRepository is the GORM-based implementation of
// trip.FeedbackRepository.
type GormFeedbackRepository struct {
	db *gorm.DB
}

// NewGormFeedbackRepository creates a new GormFeedbackRepository.
func NewGormFeedbackRepository(db *gorm.DB) *GormFeedbackRepository {
	return &GormFeedbackRepository{db: db}
}

// FindByTripID retrieves all feedback of a trip, newest first.
func (r *GormFeedbackRepository) FindByTripID(ctx context.Context, tripID uint) ([]*tripDomain.Feedback, error) {
	var models []FeedbackModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find trip feedback: %w", err)
	}

	feedbacks := make([]*tripDomain.Feedback, len(models))
	for i, m := range models {
		feedbacks[i] = &tripDomain.Feedback{
			ID:                m.ID,
			TripID:            m.TripID,
			UserID:            m.UserID,
			OverallRating:     m.OverallRating,
			FeedbackText:      m.FeedbackText,
			SatisfactionAreas: m.SatisfactionAreas,
			CreatedAt:         m.CreatedAt,
		}
	}
	return feedbacks, nil
}

// Save persists a new feedback record.
func (r *GormFeedbackRepository) Save(ctx context.Context, f *tripDomain.Feedback) error {
	model := &FeedbackModel{
		TripID:            f.TripID,
		UserID:            f.UserID,
		OverallRating:     f.OverallRating,
		FeedbackText:      f.FeedbackText,
		SatisfactionAreas: f.SatisfactionAreas,
		CreatedAt:         f.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	f.ID = model.ID
	return nil
}
