package trip

import (
	"context"
	"strings"
	"time"

	"github.com/tripcanvas/service-travel/internal/domain"
)

// Transportation types.
const (
	TransportFlight = "flight"
	TransportTrain  = "train"
	TransportBus    = "bus"
	TransportCar    = "car"
)

var validTransportTypes = map[string]struct{}{
	TransportFlight: {},
	TransportTrain:  {},
	TransportBus:    {},
	TransportCar:    {},
}

// Transportation is a long-haul transport record (flight, train, bus, car)
// attached to a trip.
type Transportation struct {
	ID                uint
	TripID            uint
	Type              string
	DepartureLocation string
	ArrivalLocation   string
	DepartureAt       *time.Time
	ArrivalAt         *time.Time
	BookingReference  string
	Cost              *int
}

// NewTransportation validates and creates a transportation record.
func NewTransportation(
	tripID uint,
	transportType, departureLocation, arrivalLocation string,
	departureAt, arrivalAt *time.Time,
	bookingReference string,
	cost *int,
) (*Transportation, error) {
	if tripID == 0 {
		return nil, domain.NewValidationError("trip id is required")
	}
	t := strings.ToLower(strings.TrimSpace(transportType))
	if _, ok := validTransportTypes[t]; !ok {
		return nil, domain.NewValidationError("transportation type must be one of flight, train, bus, car")
	}
	return &Transportation{
		TripID:            tripID,
		Type:              t,
		DepartureLocation: departureLocation,
		ArrivalLocation:   arrivalLocation,
		DepartureAt:       departureAt,
		ArrivalAt:         arrivalAt,
		BookingReference:  bookingReference,
		Cost:              cost,
	}, nil
}

// TransportationRepository defines persistence for transportation records.
type TransportationRepository interface {
	FindByTripID(ctx context.Context, tripID uint) ([]*Transportation, error)
	FindByID(ctx context.Context, id uint) (*Transportation, error)
	Save(ctx context.Context, t *Transportation) error
	Update(ctx context.Context, t *Transportation) error
	Delete(ctx context.Context, id uint) error
}
