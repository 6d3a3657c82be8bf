package trip

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tripcanvas/service-travel/internal/domain"
)

// ItineraryItem is a single scheduled activity within a day. Items are owned
// exclusively by their Day; the aggregate root is the Trip.
type ItineraryItem struct {
	ID                       uint
	PlaceID                  string
	Title                    string
	Description              string
	LocationName             string
	Address                  string
	Latitude                 *float64
	Longitude                *float64
	StartTime                string // "HH:MM", optional
	EndTime                  string
	Category                 string
	StayDurationMinutes      int
	TravelToNextDistanceKm   *float64
	TravelToNextDurationMins *int
	TravelToNextMode         string
	OrderSequence            int
}

// Day is one calendar day of a trip with its ordered itinerary items.
// AccommodationJSON is an opaque structured blob owned by the client.
type Day struct {
	ID                uint
	DayNumber         int
	Date              time.Time
	DayStartTime      string // "HH:MM", optional
	DayEndTime        string
	AccommodationJSON json.RawMessage
	Items             []ItineraryItem
}

// Trip is the aggregate root owning its Days and their ItineraryItems.
// Deleting a trip deletes all owned days and items.
type Trip struct {
	id                 uint
	userID             uint
	title              string
	destination        string
	destinationPlaceID string
	destinationLat     *float64
	destinationLng     *float64
	startDate          time.Time
	endDate            time.Time
	numAdults          int
	numChildren        int
	totalBudget        *int
	status             Status
	days               []Day
	createdAt          time.Time
	updatedAt          time.Time
}

// NewTrip creates a trip aggregate in the planning state, validating all
// required fields of the trip and its nested days and items.
func NewTrip(
	userID uint,
	title, destination, destinationPlaceID string,
	destinationLat, destinationLng *float64,
	startDate, endDate time.Time,
	numAdults, numChildren int,
	totalBudget *int,
	days []Day,
) (*Trip, error) {
	if userID == 0 {
		return nil, domain.NewValidationError("user id is required")
	}
	if strings.TrimSpace(title) == "" {
		return nil, domain.NewValidationError("trip title is required")
	}
	if strings.TrimSpace(destination) == "" {
		return nil, domain.NewValidationError("trip destination is required")
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, domain.NewValidationError("start and end dates are required")
	}
	if endDate.Before(startDate) {
		return nil, domain.NewValidationError("end date must not precede start date")
	}
	if numAdults < 1 {
		return nil, domain.NewValidationError("at least one adult is required")
	}
	if numChildren < 0 {
		return nil, domain.NewValidationError("number of children must not be negative")
	}
	if err := validateDays(days); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Trip{
		userID:             userID,
		title:              title,
		destination:        destination,
		destinationPlaceID: destinationPlaceID,
		destinationLat:     destinationLat,
		destinationLng:     destinationLng,
		startDate:          startDate,
		endDate:            endDate,
		numAdults:          numAdults,
		numChildren:        numChildren,
		totalBudget:        totalBudget,
		status:             StatusPlanning,
		days:               days,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func validateDays(days []Day) error {
	seen := make(map[int]struct{}, len(days))
	for _, d := range days {
		if d.DayNumber < 1 {
			return domain.NewValidationError("day number must be a positive integer")
		}
		if _, dup := seen[d.DayNumber]; dup {
			return domain.NewValidationError(fmt.Sprintf("duplicate day number: %d", d.DayNumber))
		}
		seen[d.DayNumber] = struct{}{}
		if d.Date.IsZero() {
			return domain.NewValidationError(fmt.Sprintf("day %d is missing a date", d.DayNumber))
		}
		for _, item := range d.Items {
			if strings.TrimSpace(item.Title) == "" {
				return domain.NewValidationError(fmt.Sprintf("day %d has an itinerary item without a title", d.DayNumber))
			}
			if item.OrderSequence < 1 {
				return domain.NewValidationError(fmt.Sprintf("day %d item %q has a non-positive order sequence", d.DayNumber, item.Title))
			}
		}
	}
	return nil
}

// Reconstruct rebuilds a Trip from persistence data (no validation).
func Reconstruct(
	id, userID uint,
	title, destination, destinationPlaceID string,
	destinationLat, destinationLng *float64,
	startDate, endDate time.Time,
	numAdults, numChildren int,
	totalBudget *int,
	status Status,
	days []Day,
	createdAt, updatedAt time.Time,
) *Trip {
	return &Trip{
		id:                 id,
		userID:             userID,
		title:              title,
		destination:        destination,
		destinationPlaceID: destinationPlaceID,
		destinationLat:     destinationLat,
		destinationLng:     destinationLng,
		startDate:          startDate,
		endDate:            endDate,
		numAdults:          numAdults,
		numChildren:        numChildren,
		totalBudget:        totalBudget,
		status:             status,
		days:               days,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// --- Getters ---

func (t *Trip) ID() uint                   { return t.id }
func (t *Trip) UserID() uint               { return t.userID }
func (t *Trip) Title() string              { return t.title }
func (t *Trip) Destination() string        { return t.destination }
func (t *Trip) DestinationPlaceID() string { return t.destinationPlaceID }
func (t *Trip) DestinationLat() *float64   { return t.destinationLat }
func (t *Trip) DestinationLng() *float64   { return t.destinationLng }
func (t *Trip) StartDate() time.Time       { return t.startDate }
func (t *Trip) EndDate() time.Time         { return t.endDate }
func (t *Trip) NumAdults() int             { return t.numAdults }
func (t *Trip) NumChildren() int           { return t.numChildren }
func (t *Trip) TotalBudget() *int          { return t.totalBudget }
func (t *Trip) Status() Status             { return t.status }
func (t *Trip) Days() []Day                { return t.days }
func (t *Trip) CreatedAt() time.Time       { return t.createdAt }
func (t *Trip) UpdatedAt() time.Time       { return t.updatedAt }

// --- Behavior ---

// SetID assigns the persistence-generated identifier after a save.
func (t *Trip) SetID(id uint) { t.id = id }

// ChangeStatus moves the trip to the given lifecycle state.
func (t *Trip) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return domain.NewValidationError(fmt.Sprintf("invalid trip status: %s", status))
	}
	t.status = status
	t.updatedAt = time.Now().UTC()
	return nil
}

// DaysCount returns the number of owned days. Derived, never stored.
func (t *Trip) DaysCount() int { return len(t.days) }

// TotalItemsCount returns the number of itinerary items across all days.
// Derived, never stored.
func (t *Trip) TotalItemsCount() int {
	total := 0
	for _, d := range t.days {
		total += len(d.Items)
	}
	return total
}

// SortDays orders days by day number and each day's items by order sequence.
// Sorting is stable so items sharing a sequence value keep insertion order.
func (t *Trip) SortDays() {
	sort.SliceStable(t.days, func(i, j int) bool {
		return t.days[i].DayNumber < t.days[j].DayNumber
	})
	for i := range t.days {
		items := t.days[i].Items
		sort.SliceStable(items, func(a, b int) bool {
			return items[a].OrderSequence < items[b].OrderSequence
		})
	}
}
