package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/tripcanvas/service-travel/internal/domain"
	tripDomain "github.com/tripcanvas/service-travel/internal/domain/trip"
)

// TripModel is the GORM model for the trips table.
type TripModel struct {
	ID                 uint     `gorm:"primaryKey"`
	UserID             uint     `gorm:"index;not null"`
	Title              string   `gorm:"not null;size:200"`
	Destination        string   `gorm:"not null;size:200"`
	DestinationPlaceID string   `gorm:"size:255"`
	DestinationLat     *float64 `gorm:""`
	DestinationLng     *float64 `gorm:""`
	StartDate          time.Time
	EndDate            time.Time
	NumAdults          int       `gorm:"not null;default:1"`
	NumChildren        int       `gorm:"not null;default:0"`
	TotalBudget        *int      `gorm:""`
	Status             string    `gorm:"not null;size:20;index"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (TripModel) TableName() string {
	return "trips"
}

// TripDayModel is the GORM model for the trip_days table.
type TripDayModel struct {
	ID                uint `gorm:"primaryKey"`
	TripID            uint `gorm:"index;not null;constraint:OnDelete:CASCADE"`
	DayNumber         int  `gorm:"not null"`
	Date              time.Time
	DayStartTime      string          `gorm:"size:5"`
	DayEndTime        string          `gorm:"size:5"`
	AccommodationInfo json.RawMessage `gorm:"type:jsonb"`
}

// TableName returns the table name for the GORM model.
func (TripDayModel) TableName() string {
	return "trip_days"
}

// ItineraryItemModel is the GORM model for the itinerary_items table.
type ItineraryItemModel struct {
	ID                       uint   `gorm:"primaryKey"`
	TripDayID                uint   `gorm:"index;not null;constraint:OnDelete:CASCADE"`
	PlaceID                  string `gorm:"size:255"`
	Title                    string `gorm:"not null;size:200"`
	Description              string `gorm:"size:1000"`
	LocationName             string `gorm:"size:200"`
	Address                  string `gorm:"size:500"`
	Latitude                 *float64
	Longitude                *float64
	StartTime                string `gorm:"size:5"`
	EndTime                  string `gorm:"size:5"`
	Category                 string `gorm:"size:50"`
	StayDurationMinutes      int
	TravelToNextDistanceKm   *float64
	TravelToNextDurationMins *int
	TravelToNextMode         string `gorm:"size:20"`
	OrderSequence            int    `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ItineraryItemModel) TableName() string {
	return "itinerary_items"
}

// GormTripRepository is the GORM-based implementation of trip.Repository.
type GormTripRepository struct {
	db *gorm.DB
}

// NewGormTripRepository creates a new GormTripRepository.
func NewGormTripRepository(db *gorm.DB) *GormTripRepository {
	return &GormTripRepository{db: db}
}

// FindByID retrieves a trip with its full owned graph. Days are loaded
// ordered by day number and items by order sequence with id as tie break,
// so the aggregate comes back already in canonical order.
func (r *GormTripRepository) FindByID(ctx context.Context, id uint) (*tripDomain.Trip, error) {
	var model TripModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Trip", strconv.FormatUint(uint64(id), 10))
		}
		return nil, fmt.Errorf("failed to find trip by ID: %w", err)
	}

	days, err := r.loadDays(ctx, model.ID)
	if err != nil {
		return nil, err
	}
	return toDomainTrip(&model, days), nil
}

// FindByUserID retrieves all trips of a user, fully materialized, newest
// first.
func (r *GormTripRepository) FindByUserID(ctx context.Context, userID uint) ([]*tripDomain.Trip, error) {
	var models []TripModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find trips by user: %w", err)
	}

	trips := make([]*tripDomain.Trip, len(models))
	for i := range models {
		days, err := r.loadDays(ctx, models[i].ID)
		if err != nil {
			return nil, err
		}
		trips[i] = toDomainTrip(&models[i], days)
	}
	return trips, nil
}

// FindSummaries retrieves the list-view projection in a single query. The
// day and item counts are computed by the database and trusted as-is.
func (r *GormTripRepository) FindSummaries(ctx context.Context) ([]tripDomain.Summary, error) {
	type summaryRow struct {
		ID                 uint
		UserID             uint
		Title              string
		Destination        string
		DestinationPlaceID string
		StartDate          time.Time
		EndDate            time.Time
		NumAdults          int
		NumChildren        int
		Status             string
		DaysCount          int
		TotalItemsCount    int
	}

	var rows []summaryRow
	if err := r.db.WithContext(ctx).Raw(`
		SELECT t.id, t.user_id, t.title, t.destination, t.destination_place_id,
		       t.start_date, t.end_date, t.num_adults, t.num_children, t.status,
		       COUNT(DISTINCT d.id)  AS days_count,
		       COUNT(i.id)           AS total_items_count
		FROM trips t
		LEFT JOIN trip_days d ON d.trip_id = t.id
		LEFT JOIN itinerary_items i ON i.trip_day_id = d.id
		GROUP BY t.id
		ORDER BY t.created_at DESC`).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query trip summaries: %w", err)
	}

	summaries := make([]tripDomain.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = tripDomain.Summary{
			ID:                 row.ID,
			UserID:             row.UserID,
			Title:              row.Title,
			Destination:        row.Destination,
			DestinationPlaceID: row.DestinationPlaceID,
			StartDate:          row.StartDate,
			EndDate:            row.EndDate,
			NumAdults:          row.NumAdults,
			NumChildren:        row.NumChildren,
			Status:             tripDomain.Status(row.Status),
			DaysCount:          row.DaysCount,
			TotalItemsCount:    row.TotalItemsCount,
		}
	}
	return summaries, nil
}

// Save persists a trip with its full owned graph inside one transaction and
// assigns the generated ids back onto the aggregate.
func (r *GormTripRepository) Save(ctx context.Context, t *tripDomain.Trip) error {
	model := toTripModel(t)
	days := t.Days()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save trip: %w", err)
		}

		for di := range days {
			dayModel := toDayModel(model.ID, &days[di])
			if err := tx.Create(dayModel).Error; err != nil {
				return fmt.Errorf("failed to save trip day %d: %w", days[di].DayNumber, err)
			}
			days[di].ID = dayModel.ID

			for ii := range days[di].Items {
				itemModel := toItemModel(dayModel.ID, &days[di].Items[ii])
				if err := tx.Create(itemModel).Error; err != nil {
					return fmt.Errorf("failed to save itinerary item: %w", err)
				}
				days[di].Items[ii].ID = itemModel.ID
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.SetID(model.ID)
	return nil
}

// UpdateStatus changes the lifecycle status of a trip.
func (r *GormTripRepository) UpdateStatus(ctx context.Context, id uint, status tripDomain.Status) error {
	result := r.db.WithContext(ctx).
		Model(&TripModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update trip status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Trip", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// Delete removes a trip and cascades to its days and items. The explicit
// child deletes keep the cascade working on schemas without FK constraints.
func (r *GormTripRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var dayIDs []uint
		if err := tx.Model(&TripDayModel{}).
			Where("trip_id = ?", id).
			Pluck("id", &dayIDs).Error; err != nil {
			return fmt.Errorf("failed to list trip days: %w", err)
		}

		if len(dayIDs) > 0 {
			if err := tx.Where("trip_day_id IN ?", dayIDs).
				Delete(&ItineraryItemModel{}).Error; err != nil {
				return fmt.Errorf("failed to delete itinerary items: %w", err)
			}
		}
		if err := tx.Where("trip_id = ?", id).
			Delete(&TripDayModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete trip days: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&TripModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete trip: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.NewNotFoundError("Trip", strconv.FormatUint(uint64(id), 10))
		}
		return nil
	})
}

func (r *GormTripRepository) loadDays(ctx context.Context, tripID uint) ([]tripDomain.Day, error) {
	var dayModels []TripDayModel
	if err := r.db.WithContext(ctx).
		Where("trip_id = ?", tripID).
		Order("day_number").
		Find(&dayModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load trip days: %w", err)
	}
	if len(dayModels) == 0 {
		return nil, nil
	}

	dayIDs := make([]uint, len(dayModels))
	for i, d := range dayModels {
		dayIDs[i] = d.ID
	}

	var itemModels []ItineraryItemModel
	if err := r.db.WithContext(ctx).
		Where("trip_day_id IN ?", dayIDs).
		Order("order_sequence, id").
		Find(&itemModels).Error; err != nil {
		return nil, fmt.Errorf("failed to load itinerary items: %w", err)
	}

	itemsByDay := make(map[uint][]tripDomain.ItineraryItem, len(dayModels))
	for _, m := range itemModels {
		itemsByDay[m.TripDayID] = append(itemsByDay[m.TripDayID], toDomainItem(&m))
	}

	days := make([]tripDomain.Day, len(dayModels))
	for i, m := range dayModels {
		days[i] = tripDomain.Day{
			ID:                m.ID,
			DayNumber:         m.DayNumber,
			Date:              m.Date,
			DayStartTime:      m.DayStartTime,
			DayEndTime:        m.DayEndTime,
			AccommodationJSON: m.AccommodationInfo,
			Items:             itemsByDay[m.ID],
		}
	}
	return days, nil
}

// --- Conversion Helpers ---

func toTripModel(t *tripDomain.Trip) *TripModel {
	return &TripModel{
		ID:                 t.ID(),
		UserID:             t.UserID(),
		Title:              t.Title(),
		Destination:        t.Destination(),
		DestinationPlaceID: t.DestinationPlaceID(),
		DestinationLat:     t.DestinationLat(),
		DestinationLng:     t.DestinationLng(),
		StartDate:          t.StartDate(),
		EndDate:            t.EndDate(),
		NumAdults:          t.NumAdults(),
		NumChildren:        t.NumChildren(),
		TotalBudget:        t.TotalBudget(),
		Status:             string(t.Status()),
		CreatedAt:          t.CreatedAt(),
		UpdatedAt:          t.UpdatedAt(),
	}
}

func toDayModel(tripID uint, d *tripDomain.Day) *TripDayModel {
	return &TripDayModel{
		ID:                d.ID,
		TripID:            tripID,
		DayNumber:         d.DayNumber,
		Date:              d.Date,
		DayStartTime:      d.DayStartTime,
		DayEndTime:        d.DayEndTime,
		AccommodationInfo: d.AccommodationJSON,
	}
}

func toItemModel(dayID uint, it *tripDomain.ItineraryItem) *ItineraryItemModel {
	return &ItineraryItemModel{
		ID:                       it.ID,
		TripDayID:                dayID,
		PlaceID:                  it.PlaceID,
		Title:                    it.Title,
		Description:              it.Description,
		LocationName:             it.LocationName,
		Address:                  it.Address,
		Latitude:                 it.Latitude,
		Longitude:                it.Longitude,
		StartTime:                it.StartTime,
		EndTime:                  it.EndTime,
		Category:                 it.Category,
		StayDurationMinutes:      it.StayDurationMinutes,
		TravelToNextDistanceKm:   it.TravelToNextDistanceKm,
		TravelToNextDurationMins: it.TravelToNextDurationMins,
		TravelToNextMode:         it.TravelToNextMode,
		OrderSequence:            it.OrderSequence,
	}
}

func toDomainTrip(m *TripModel, days []tripDomain.Day) *tripDomain.Trip {
	return tripDomain.Reconstruct(
		m.ID,
		m.UserID,
		m.Title,
		m.Destination,
		m.DestinationPlaceID,
		m.DestinationLat,
		m.DestinationLng,
		m.StartDate,
		m.EndDate,
		m.NumAdults,
		m.NumChildren,
		m.TotalBudget,
		tripDomain.Status(m.Status),
		days,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toDomainItem(m *ItineraryItemModel) tripDomain.ItineraryItem {
	return tripDomain.ItineraryItem{
		ID:                       m.ID,
		PlaceID:                  m.PlaceID,
		Title:                    m.Title,
		Description:              m.Description,
		LocationName:             m.LocationName,
		Address:                  m.Address,
		Latitude:                 m.Latitude,
		Longitude:                m.Longitude,
		StartTime:                m.StartTime,
		EndTime:                  m.EndTime,
		Category:                 m.Category,
		StayDurationMinutes:      m.StayDurationMinutes,
		TravelToNextDistanceKm:   m.TravelToNextDistanceKm,
		TravelToNextDurationMins: m.TravelToNextDurationMins,
		TravelToNextMode:         m.TravelToNextMode,
		OrderSequence:            m.OrderSequence,
	}
}
