package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/tripcanvas/service-travel/internal/domain"
	tripDomain "github.com/tripcanvas/service-travel/internal/domain/trip"
	userDomain "github.com/tripcanvas/service-travel/internal/domain/user"
	"github.com/tripcanvas/service-travel/internal/events"
)

const dateLayout = "2006-01-02"

// degradedTitle marks a trip whose detail conversion failed; the persisted
// data is intact, only this response is partial.
const degradedTitle = "(unavailable)"

// CreateItemRequest is one itinerary item in a create-trip request.
type CreateItemRequest struct {
	PlaceID                  string   `json:"placeId"`
	Title                    string   `json:"title" binding:"required"`
	Description              string   `json:"description"`
	LocationName             string   `json:"locationName"`
	Address                  string   `json:"address"`
	Latitude                 *float64 `json:"latitude"`
	Longitude                *float64 `json:"longitude"`
	StartTime                string   `json:"startTime"`
	EndTime                  string   `json:"endTime"`
	Category                 string   `json:"category"`
	StayDurationMinutes      int      `json:"stayDurationMinutes"`
	TravelToNextDistanceKm   *float64 `json:"travelToNextDistanceKm"`
	TravelToNextDurationMins *int     `json:"travelToNextDurationMins"`
	TravelToNextMode         string   `json:"travelToNextMode"`
	OrderSequence            int      `json:"orderSequence" binding:"required"`
}

// CreateDayRequest is one day in a create-trip request.
type CreateDayRequest struct {
	DayNumber     int                 `json:"dayNumber" binding:"required"`
	Date          string              `json:"date" binding:"required"`
	DayStartTime  string              `json:"dayStartTime"`
	DayEndTime    string              `json:"dayEndTime"`
	Accommodation json.RawMessage     `json:"accommodation"`
	Items         []CreateItemRequest `json:"items"`
}

// CreateTripRequest holds the data needed to create a trip with its full
// nested day and item graph.
type CreateTripRequest struct {
	Title              string             `json:"title" binding:"required"`
	Destination        string             `json:"destination" binding:"required"`
	DestinationPlaceID string             `json:"destinationPlaceId"`
	DestinationLat     *float64           `json:"destinationLat"`
	DestinationLng     *float64           `json:"destinationLng"`
	StartDate          string             `json:"startDate" binding:"required"`
	EndDate            string             `json:"endDate" binding:"required"`
	NumAdults          int                `json:"numAdults"`
	NumChildren        int                `json:"numChildren"`
	TotalBudget        *int               `json:"totalBudget"`
	Days               []CreateDayRequest `json:"days"`
}

// ItemDTO is the response representation of an itinerary item.
type ItemDTO struct {
	ID                       uint     `json:"id"`
	PlaceID                  string   `json:"placeId,omitempty"`
	Title                    string   `json:"title"`
	Description              string   `json:"description,omitempty"`
	LocationName             string   `json:"locationName,omitempty"`
	Address                  string   `json:"address,omitempty"`
	Latitude                 *float64 `json:"latitude,omitempty"`
	Longitude                *float64 `json:"longitude,omitempty"`
	StartTime                string   `json:"startTime,omitempty"`
	EndTime                  string   `json:"endTime,omitempty"`
	Category                 string   `json:"category,omitempty"`
	StayDurationMinutes      int      `json:"stayDurationMinutes,omitempty"`
	TravelToNextDistanceKm   *float64 `json:"travelToNextDistanceKm,omitempty"`
	TravelToNextDurationMins *int     `json:"travelToNextDurationMins,omitempty"`
	TravelToNextMode         string   `json:"travelToNextMode,omitempty"`
	OrderSequence            int      `json:"orderSequence"`
}

// DayDTO is the response representation of a trip day.
type DayDTO struct {
	ID            uint                   `json:"id"`
	DayNumber     int                    `json:"dayNumber"`
	Date          string                 `json:"date"`
	DayStartTime  string                 `json:"dayStartTime,omitempty"`
	DayEndTime    string                 `json:"dayEndTime,omitempty"`
	Accommodation map[string]interface{} `json:"accommodation,omitempty"`
	Items         []ItemDTO              `json:"items"`
}

// TripDTO is the full detail representation of a trip aggregate.
type TripDTO struct {
	ID                 uint     `json:"id"`
	UserID             uint     `json:"userId"`
	Title              string   `json:"title"`
	Destination        string   `json:"destination"`
	DestinationPlaceID string   `json:"destinationPlaceId,omitempty"`
	DestinationLat     *float64 `json:"destinationLat,omitempty"`
	DestinationLng     *float64 `json:"destinationLng,omitempty"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	NumAdults          int      `json:"numAdults"`
	NumChildren        int      `json:"numChildren"`
	TotalBudget        *int     `json:"totalBudget,omitempty"`
	Status             string   `json:"status"`
	Days               []DayDTO `json:"days"`
	DaysCount          int      `json:"daysCount"`
	TotalItemsCount    int      `json:"totalItemsCount"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// TripSummaryDTO is the lightweight list-view representation. Its counts
// come from the summary projection and may be stale relative to concurrent
// writes.
type TripSummaryDTO struct {
	ID                 uint   `json:"id"`
	UserID             uint   `json:"userId"`
	Title              string `json:"title"`
	Destination        string `json:"destination"`
	DestinationPlaceID string `json:"destinationPlaceId,omitempty"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	NumAdults          int    `json:"numAdults"`
	NumChildren        int    `json:"numChildren"`
	Status             string `json:"status"`
	DaysCount          int    `json:"daysCount"`
	TotalItemsCount    int    `json:"totalItemsCount"`
}

// TripService is the application service orchestrating trip use cases.
type TripService struct {
	tripRepo tripDomain.Repository
	userRepo userDomain.Repository
	producer *events.Producer
	logger   *zap.Logger
}

// NewTripService creates a new TripService.
func NewTripService(
	tripRepo tripDomain.Repository,
	userRepo userDomain.Repository,
	producer *events.Producer,
	logger *zap.Logger,
) *TripService {
	return &TripService{
		tripRepo: tripRepo,
		userRepo: userRepo,
		producer: producer,
		logger:   logger,
	}
}

// GetTrip retrieves a trip with all days and items materialized. Counts are
// recomputed from the loaded graph. A conversion failure degrades to a
// partial response carrying the trip identity and a sentinel title instead
// of failing the request.
func (s *TripService) GetTrip(ctx context.Context, id uint) (*TripDTO, error) {
	t, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto, err := toTripDTO(t)
	if err != nil {
		s.logger.Error("trip detail conversion failed, returning partial response",
			zap.Uint("trip_id", t.ID()),
			zap.Error(err),
		)
		return &TripDTO{
			ID:     t.ID(),
			UserID: t.UserID(),
			Title:  degradedTitle,
			Status: string(t.Status()),
			Days:   []DayDTO{},
		}, nil
	}
	return dto, nil
}

// ListTrips retrieves all trips of a user, fully materialized.
func (s *TripService) ListTrips(ctx context.Context, userID uint) ([]*TripDTO, error) {
	trips, err := s.tripRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]*TripDTO, 0, len(trips))
	for _, t := range trips {
		dto, err := toTripDTO(t)
		if err != nil {
			s.logger.Error("trip conversion failed in list, returning partial entry",
				zap.Uint("trip_id", t.ID()),
				zap.Error(err),
			)
			dto = &TripDTO{ID: t.ID(), UserID: t.UserID(), Title: degradedTitle, Status: string(t.Status()), Days: []DayDTO{}}
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// ListSummaries retrieves the precomputed list-view projection for all
// trips. The projection's counts are trusted as-is.
func (s *TripService) ListSummaries(ctx context.Context) ([]TripSummaryDTO, error) {
	summaries, err := s.tripRepo.FindSummaries(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]TripSummaryDTO, len(summaries))
	for i, sm := range summaries {
		dtos[i] = TripSummaryDTO{
			ID:                 sm.ID,
			UserID:             sm.UserID,
			Title:              sm.Title,
			Destination:        sm.Destination,
			DestinationPlaceID: sm.DestinationPlaceID,
			StartDate:          sm.StartDate.Format(dateLayout),
			EndDate:            sm.EndDate.Format(dateLayout),
			NumAdults:          sm.NumAdults,
			NumChildren:        sm.NumChildren,
			Status:             string(sm.Status),
			DaysCount:          sm.DaysCount,
			TotalItemsCount:    sm.TotalItemsCount,
		}
	}
	return dtos, nil
}

// CreateTrip validates and persists a trip with its full nested graph as a
// single cascading write. The owning user must exist.
func (s *TripService) CreateTrip(ctx context.Context, userID uint, req CreateTripRequest) (*TripDTO, error) {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return nil, domain.NewValidationError("startDate must be formatted YYYY-MM-DD")
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		return nil, domain.NewValidationError("endDate must be formatted YYYY-MM-DD")
	}

	days := make([]tripDomain.Day, len(req.Days))
	for i, d := range req.Days {
		date, err := time.Parse(dateLayout, d.Date)
		if err != nil {
			return nil, domain.NewValidationError(fmt.Sprintf("day %d date must be formatted YYYY-MM-DD", d.DayNumber))
		}
		items := make([]tripDomain.ItineraryItem, len(d.Items))
		for j, it := range d.Items {
			items[j] = tripDomain.ItineraryItem{
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
		days[i] = tripDomain.Day{
			DayNumber:         d.DayNumber,
			Date:              date,
			DayStartTime:      d.DayStartTime,
			DayEndTime:        d.DayEndTime,
			AccommodationJSON: d.Accommodation,
			Items:             items,
		}
	}

	numAdults := req.NumAdults
	if numAdults == 0 {
		numAdults = 1
	}

	t, err := tripDomain.NewTrip(
		userID,
		req.Title,
		req.Destination,
		req.DestinationPlaceID,
		req.DestinationLat,
		req.DestinationLng,
		startDate,
		endDate,
		numAdults,
		req.NumChildren,
		req.TotalBudget,
		days,
	)
	if err != nil {
		return nil, err
	}
	t.SortDays()

	if err := s.tripRepo.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save trip: %w", err)
	}

	s.publishEvent(ctx, events.TripCreated, t.ID(), events.TripCreatedEvent{
		TripID:      t.ID(),
		UserID:      t.UserID(),
		Title:       t.Title(),
		Destination: t.Destination(),
		StartDate:   t.StartDate(),
		EndDate:     t.EndDate(),
		DaysCount:   t.DaysCount(),
		OccurredAt:  time.Now().UTC(),
	})

	return toTripDTO(t)
}

// UpdateStatus changes the lifecycle status of a trip.
func (s *TripService) UpdateStatus(ctx context.Context, id uint, status string) (*TripDTO, error) {
	newStatus, err := tripDomain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	t, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := t.ChangeStatus(newStatus); err != nil {
		return nil, err
	}
	if err := s.tripRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.TripStatusChanged, id, events.TripStatusChangedEvent{
		TripID:     id,
		UserID:     t.UserID(),
		Status:     string(newStatus),
		OccurredAt: time.Now().UTC(),
	})

	return toTripDTO(t)
}

// DeleteTrip removes a trip and cascades to all owned days and items.
func (s *TripService) DeleteTrip(ctx context.Context, id uint) error {
	t, err := s.tripRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.tripRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, events.TripDeleted, id, events.TripDeletedEvent{
		TripID:     id,
		UserID:     t.UserID(),
		OccurredAt: time.Now().UTC(),
	})
	return nil
}

func (s *TripService) publishEvent(ctx context.Context, eventType string, tripID uint, data interface{}) {
	cloudEvent, err := events.NewCloudEvent("service-travel", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	key := strconv.FormatUint(uint64(tripID), 10)
	if err := s.producer.PublishEvent(ctx, key, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

// --- Conversion Helpers ---

func toTripDTO(t *tripDomain.Trip) (*TripDTO, error) {
	days := make([]DayDTO, len(t.Days()))
	for i, d := range t.Days() {
		day, err := toDayDTO(&d)
		if err != nil {
			return nil, fmt.Errorf("failed to convert day %d: %w", d.DayNumber, err)
		}
		days[i] = day
	}

	return &TripDTO{
		ID:                 t.ID(),
		UserID:             t.UserID(),
		Title:              t.Title(),
		Destination:        t.Destination(),
		DestinationPlaceID: t.DestinationPlaceID(),
		DestinationLat:     t.DestinationLat(),
		DestinationLng:     t.DestinationLng(),
		StartDate:          t.StartDate().Format(dateLayout),
		EndDate:            t.EndDate().Format(dateLayout),
		NumAdults:          t.NumAdults(),
		NumChildren:        t.NumChildren(),
		TotalBudget:        t.TotalBudget(),
		Status:             string(t.Status()),
		Days:               days,
		DaysCount:          t.DaysCount(),
		TotalItemsCount:    t.TotalItemsCount(),
		CreatedAt:          t.CreatedAt().UTC().Format(time.RFC3339),
		UpdatedAt:          t.UpdatedAt().UTC().Format(time.RFC3339),
	}, nil
}

func toDayDTO(d *tripDomain.Day) (DayDTO, error) {
	var accommodation map[string]interface{}
	if len(d.AccommodationJSON) > 0 {
		if err := json.Unmarshal(d.AccommodationJSON, &accommodation); err != nil {
			return DayDTO{}, fmt.Errorf("malformed accommodation data: %w", err)
		}
	}

	items := make([]ItemDTO, len(d.Items))
	for i, it := range d.Items {
		items[i] = ItemDTO{
			ID:                       it.ID,
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

	return DayDTO{
		ID:            d.ID,
		DayNumber:     d.DayNumber,
		Date:          d.Date.Format(dateLayout),
		DayStartTime:  d.DayStartTime,
		DayEndTime:    d.DayEndTime,
		Accommodation: accommodation,
		Items:         items,
	}, nil
}
