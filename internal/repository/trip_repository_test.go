package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/tripcanvas/service-travel/internal/domain"
	tripDomain "github.com/tripcanvas/service-travel/internal/domain/trip"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormTripRepository_FindByID_MaterializesOrderedGraph(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormTripRepository(db)

	now := time.Now().UTC()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "trips" WHERE id = \$1`).
		WithArgs(uint(42), 1).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "destination", "destination_place_id",
			"destination_lat", "destination_lng", "start_date", "end_date",
			"num_adults", "num_children", "total_budget", "status",
			"created_at", "updated_at",
		}).AddRow(42, 7, "Spring in Seoul", "Seoul", "", nil, nil,
			start, end, 2, 0, nil, "planning", now, now))

	mock.ExpectQuery(`SELECT \* FROM "trip_days" WHERE trip_id = \$1 ORDER BY day_number`).
		WithArgs(uint(42)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trip_id", "day_number", "date",
			"day_start_time", "day_end_time", "accommodation_info",
		}).
			AddRow(10, 42, 1, start, "09:00", "21:00", nil).
			AddRow(11, 42, 2, end, "", "", nil))

	mock.ExpectQuery(`SELECT \* FROM "itinerary_items" WHERE trip_day_id IN \(\$1,\$2\) ORDER BY order_sequence, id`).
		WithArgs(uint(10), uint(11)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "trip_day_id", "place_id", "title", "description",
			"location_name", "address", "latitude", "longitude",
			"start_time", "end_time", "category", "stay_duration_minutes",
			"travel_to_next_distance_km", "travel_to_next_duration_mins",
			"travel_to_next_mode", "order_sequence",
		}).
			AddRow(100, 10, "", "Palace tour", "", "", "", nil, nil, "10:00", "", "sightseeing", 120, nil, nil, "", 1).
			AddRow(101, 10, "", "Lunch", "", "", "", nil, nil, "", "", "food", 60, nil, nil, "", 2).
			AddRow(102, 11, "", "Museum", "", "", "", nil, nil, "", "", "culture", 90, nil, nil, "", 1))

	tr, err := repo.FindByID(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, uint(42), tr.ID())
	assert.Equal(t, 2, tr.DaysCount())
	assert.Equal(t, 3, tr.TotalItemsCount())

	days := tr.Days()
	require.Len(t, days, 2)
	require.Len(t, days[0].Items, 2)
	assert.Equal(t, "Palace tour", days[0].Items[0].Title)
	assert.Equal(t, "Lunch", days[0].Items[1].Title)
	require.Len(t, days[1].Items, 1)
	assert.Equal(t, "Museum", days[1].Items[0].Title)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormTripRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormTripRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "trips" WHERE id = \$1`).
		WithArgs(uint(99), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), 99)
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGormTripRepository_FindSummaries_TrustsProjectedCounts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormTripRepository(db)

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT t\.id, t\.user_id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "user_id", "title", "destination", "destination_place_id",
			"start_date", "end_date", "num_adults", "num_children", "status",
			"days_count", "total_items_count",
		}).AddRow(1, 7, "Spring in Seoul", "Seoul", "", start, end, 2, 1, "confirmed", 5, 17))

	summaries, err := repo.FindSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)

	assert.Equal(t, uint(1), summaries[0].ID)
	assert.Equal(t, tripDomain.StatusConfirmed, summaries[0].Status)
	assert.Equal(t, 5, summaries[0].DaysCount)
	assert.Equal(t, 17, summaries[0].TotalItemsCount)
}

func TestGormTripRepository_UpdateStatus_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormTripRepository(db)

	mock.ExpectExec(`UPDATE "trips" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), 99, tripDomain.StatusCompleted)
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
