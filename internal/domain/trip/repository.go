package trip

import (
	"context"
	"time"
)

// Summary is a lightweight list-view projection of a trip. DaysCount and
// TotalItemsCount are precomputed by the query that produced the summary and
// are trusted as-is; they may be stale relative to concurrent writes. The
// detail read path recomputes both counts instead.
type Summary struct {
	ID                 uint
	UserID             uint
	Title              string
	Destination        string
	DestinationPlaceID string
	StartDate          time.Time
	EndDate            time.Time
	NumAdults          int
	NumChildren        int
	Status             Status
	DaysCount          int
	TotalItemsCount    int
}

// Repository defines the persistence contract for trip aggregates.
type Repository interface {
	// FindByID retrieves a trip with all owned days and items fully
	// materialized, days ordered by day number and items by order sequence.
	FindByID(ctx context.Context, id uint) (*Trip, error)

	// FindByUserID retrieves all trips of a user, fully materialized.
	FindByUserID(ctx context.Context, userID uint) ([]*Trip, error)

	// FindSummaries retrieves the precomputed list-view projections.
	FindSummaries(ctx context.Context) ([]Summary, error)

	// Save persists a new trip and its full owned graph as one cascading
	// write, assigning generated ids back onto the aggregate.
	Save(ctx context.Context, t *Trip) error

	// UpdateStatus changes the lifecycle status of a trip.
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// Delete removes a trip and cascades to all owned days and items.
	Delete(ctx context.Context, id uint) error
}
