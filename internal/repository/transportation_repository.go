package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/tripcanvas/service-travel/internal/domain"
	tripDomain "github.com/tripcanvas/service-travel/internal/domain/trip"
)

// TransportationModel is the GORM model for the transportations table.
type TransportationModel struct {
	ID                uint   `gorm:"primaryKey"`
	TripID            uint   `gorm:"index;not null"`
	Type              string `gorm:"not null;size:20"`
	DepartureLocation string `gorm:"size:200"`
	ArrivalLocation   string `gorm:"size:200"`
	DepartureAt       *time.Time
	ArrivalAt         *time.Time
	BookingReference  string `gorm:"size:100"`
	Cost              *int
}

// TableName returns the table name for the GORM model.
func (TransportationModel) TableName() string {
	return "transportations"
}

// GormTransportationRepository is the GORM-based implementation of
// trip.TransportationRepository.
type GormTransportationRepository struct {
	db *gorm.DB
}

// NewGormTransportationRepository creates a new GormTransportationRepository.
func NewGormTransportationRepository(db *gorm.DB) *GormTransportationRepository {
	return &GormTransportationRepository{db: db}
}

// FindByTripID retrieves all transportation records of a trip ordered by
// departure time.
func (r *GormTransportationRepository) FindByTripID(ctx context.Context, tripID uint) ([]*tripDomain.Transportation, error) {
	var models []TransportationModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("departure_at NULLS LAST, id").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find transportations: %w", err)
	}

	records := make([]*tripDomain.Transportation, len(models))
	for i := range models {
		records[i] = toDomainTransportation(&models[i])
	}
	return records, nil
}

// FindByID retrieves a transportation record by its identifier.
func (r *GormTransportationRepository) FindByID(ctx context.Context, id uint) (*tripDomain.Transportation, error) {
	var model TransportationModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Transportation", strconv.FormatUint(uint64(id), 10))
		}
		return nil, fmt.Errorf("failed to find transportation by ID: %w", err)
	}
	return toDomainTransportation(&model), nil
}

// Save persists a new transportation record.
func (r *GormTransportationRepository) Save(ctx context.Context, t *tripDomain.Transportation) error {
	model := toTransportationModel(t)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save transportation: %w", err)
	}
	t.ID = model.ID
	return nil
}

// Update persists changes to an existing transportation record.
func (r *GormTransportationRepository) Update(ctx context.Context, t *tripDomain.Transportation) error {
	model := toTransportationModel(t)
	result := r.db.WithContext(ctx).
		Model(&TransportationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"type":               model.Type,
			"departure_location": model.DepartureLocation,
			"arrival_location":   model.ArrivalLocation,
			"departure_at":       model.DepartureAt,
			"arrival_at":         model.ArrivalAt,
			"booking_reference":  model.BookingReference,
			"cost":               model.Cost,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update transportation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Transportation", strconv.FormatUint(uint64(model.ID), 10))
	}
	return nil
}

// Delete removes a transportation record.
func (r *GormTransportationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&TransportationModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete transportation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Transportation", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// --- Conversion Helpers ---

func toTransportationModel(t *tripDomain.Transportation) *TransportationModel {
	return &TransportationModel{
		ID:                t.ID,
		TripID:            t.TripID,
		Type:              t.Type,
		DepartureLocation: t.DepartureLocation,
		ArrivalLocation:   t.ArrivalLocation,
		DepartureAt:       t.DepartureAt,
		ArrivalAt:         t.ArrivalAt,
		BookingReference:  t.BookingReference,
		Cost:              t.Cost,
	}
}

func toDomainTransportation(m *TransportationModel) *tripDomain.Transportation {
	return &tripDomain.Transportation{
		ID:                m.ID,
		TripID:            m.TripID,
		Type:              m.Type,
		DepartureLocation: m.DepartureLocation,
		ArrivalLocation:   m.ArrivalLocation,
		DepartureAt:       m.DepartureAt,
		ArrivalAt:         m.ArrivalAt,
		BookingReference:  m.BookingReference,
		Cost:              m.Cost,
	}
}
