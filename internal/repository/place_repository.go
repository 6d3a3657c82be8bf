package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tripcanvas/service-travel/internal/domain"
	placeDomain "github.com/tripcanvas/service-travel/internal/domain/place"
)

// PlaceModel is the GORM model for the places cache table.
type PlaceModel struct {
	ID        uint   `gorm:"primaryKey"`
	PlaceID   string `gorm:"uniqueIndex;not null;size:255"`
	Name      string `gorm:"size:200"`
	Address   string `gorm:"size:500"`
	Latitude  *float64
	Longitude *float64
	Category  string `gorm:"size:50"`
}

// TableName returns the table name for the GORM model.
func (PlaceModel) TableName() string {
	return "places"
}

// GormPlaceRepository is the GORM-based implementation of place.Repository.
type GormPlaceRepository struct {
	db *gorm.DB
}

// NewGormPlaceRepository creates a new GormPlaceRepository.
func NewGormPlaceRepository(db *gorm.DB) *GormPlaceRepository {
	return &GormPlaceRepository{db: db}
}

// FindByPlaceID retrieves a cached place by its upstream place identifier.
func (r *GormPlaceRepository) FindByPlaceID(ctx context.Context, placeID string) (*placeDomain.Place, error) {
	var model PlaceModel
	if err := r.db.WithContext(ctx).Where("place_id = ?", placeID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Place", placeID)
		}
		return nil, fmt.Errorf("failed to find place: %w", err)
	}
	return &placeDomain.Place{
		ID:        model.ID,
		PlaceID:   model.PlaceID,
		Name:      model.Name,
		Address:   model.Address,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		Category:  model.Category,
	}, nil
}

// Upsert inserts or refreshes the cached record for a place.
func (r *GormPlaceRepository) Upsert(ctx context.Context, p *placeDomain.Place) error {
	model := &PlaceModel{
		PlaceID:   p.PlaceID,
		Name:      p.Name,
		Address:   p.Address,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Category:  p.Category,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "place_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "address", "latitude", "longitude", "category",
			}),
		}).
		Create(model).Error; err != nil {
		return fmt.Errorf("failed to upsert place: %w", err)
	}
	p.ID = model.ID
	return nil
}
