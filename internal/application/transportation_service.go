package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	tripDomain "github.com/tripcanvas/service-travel/internal/domain/trip"
)

// TransportationRequest holds the data for creating or updating a transport
// record.
type TransportationRequest struct {
	Type              string     `json:"type" binding:"required"`
	DepartureLocation string     `json:"departureLocation"`
	ArrivalLocation   string     `json:"arrivalLocation"`
	DepartureAt       *time.Time `json:"departureAt"`
	ArrivalAt         *time.Time `json:"arrivalAt"`
	BookingReference  string     `json:"bookingReference"`
	Cost              *int       `json:"cost"`
}

// TransportationDTO is the response representation of a transport record.
type TransportationDTO struct {
	ID                uint       `json:"id"`
	TripID            uint       `json:"tripId"`
	Type              string     `json:"type"`
	DepartureLocation string     `json:"departureLocation,omitempty"`
	ArrivalLocation   string     `json:"arrivalLocation,omitempty"`
	DepartureAt       *time.Time `json:"departureAt,omitempty"`
	ArrivalAt         *time.Time `json:"arrivalAt,omitempty"`
	BookingReference  string     `json:"bookingReference,omitempty"`
	Cost              *int       `json:"cost,omitempty"`
}

// TransportationService handles transport records attached to trips.
type TransportationService struct {
	repo     tripDomain.TransportationRepository
	tripRepo tripDomain.Repository
	logger   *zap.Logger
}

// NewTransportationService creates a new TransportationService.
func NewTransportationService(repo tripDomain.TransportationRepository, tripRepo tripDomain.Repository, logger *zap.Logger) *TransportationService {
	return &TransportationService{repo: repo, tripRepo: tripRepo, logger: logger}
}

// List retrieves the transport records of a trip.
func (s *TransportationService) List(ctx context.Context, tripID uint) ([]TransportationDTO, error) {
	records, err := s.repo.FindByTripID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	dtos := make([]TransportationDTO, len(records))
	for i, rec := range records {
		dtos[i] = toTransportationDTO(rec)
	}
	return dtos, nil
}

// Create validates and persists a transport record. The owning trip must
// exist.
func (s *TransportationService) Create(ctx context.Context, tripID uint, req TransportationRequest) (*TransportationDTO, error) {
	if _, err := s.tripRepo.FindByID(ctx, tripID); err != nil {
		return nil, err
	}

	rec, err := tripDomain.NewTransportation(
		tripID,
		req.Type,
		req.DepartureLocation,
		req.ArrivalLocation,
		req.DepartureAt,
		req.ArrivalAt,
		req.BookingReference,
		req.Cost,
	)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, rec); err != nil {
		return nil, err
	}

	dto := toTransportationDTO(rec)
	return &dto, nil
}

// Update replaces the mutable fields of a transport record.
func (s *TransportationService) Update(ctx context.Context, id uint, req TransportationRequest) (*TransportationDTO, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := tripDomain.NewTransportation(
		existing.TripID,
		req.Type,
		req.DepartureLocation,
		req.ArrivalLocation,
		req.DepartureAt,
		req.ArrivalAt,
		req.BookingReference,
		req.Cost,
	)
	if err != nil {
		return nil, err
	}
	updated.ID = existing.ID

	if err := s.repo.Update(ctx, updated); err != nil {
		return nil, err
	}

	dto := toTransportationDTO(updated)
	return &dto, nil
}

// Delete removes a transport record.
func (s *TransportationService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func toTransportationDTO(t *tripDomain.Transportation) TransportationDTO {
	return TransportationDTO{
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
