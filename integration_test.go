//go:build integration

package main_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcanvas/service-travel/internal/application"
	"github.com/tripcanvas/service-travel/internal/domain"
	"github.com/tripcanvas/service-travel/internal/repository"
)

// TestCreateTrip_RoundTrip persists a trip with 2 days of 3 items each and
// reads it back through the detail path, checking recomputed counts and item
// order.
func TestCreateTrip_RoundTrip(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()
	stack := setupTravelStack(t, infra.DB)

	userID := seedUser(t, infra.DB, "roundtrip@example.com")
	ctx := context.Background()

	days := make([]application.CreateDayRequest, 2)
	for d := 0; d < 2; d++ {
		items := make([]application.CreateItemRequest, 3)
		for i := 0; i < 3; i++ {
			items[i] = application.CreateItemRequest{
				Title:         "Day " + strconv.Itoa(d+1) + " stop " + strconv.Itoa(i+1),
				OrderSequence: i + 1,
			}
		}
		days[d] = application.CreateDayRequest{
			DayNumber: d + 1,
			Date:      "2026-04-0" + strconv.Itoa(d+1),
			Items:     items,
		}
	}

	created, err := stack.Trips.CreateTrip(ctx, userID, application.CreateTripRequest{
		Title:       "Integration Trip",
		Destination: "Seoul",
		StartDate:   "2026-04-01",
		EndDate:     "2026-04-02",
		NumAdults:   2,
		Days:        days,
	})
	require.NoError(t, err)

	got, err := stack.Trips.GetTrip(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, got.DaysCount)
	assert.Equal(t, 6, got.TotalItemsCount)
	require.Len(t, got.Days, 2)
	for d, day := range got.Days {
		assert.Equal(t, d+1, day.DayNumber)
		require.Len(t, day.Items, 3)
		for i, item := range day.Items {
			assert.Equal(t, i+1, item.OrderSequence)
			assert.Equal(t, "Day "+strconv.Itoa(d+1)+" stop "+strconv.Itoa(i+1), item.Title)
		}
	}
}

// TestDeleteTrip_Cascades verifies removing a trip removes its days and
// items as well.
func TestDeleteTrip_Cascades(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()
	stack := setupTravelStack(t, infra.DB)

	userID := seedUser(t, infra.DB, "cascade@example.com")
	ctx := context.Background()

	created, err := stack.Trips.CreateTrip(ctx, userID, application.CreateTripRequest{
		Title:       "Doomed Trip",
		Destination: "Busan",
		StartDate:   "2026-05-01",
		EndDate:     "2026-05-01",
		NumAdults:   1,
		Days: []application.CreateDayRequest{{
			DayNumber: 1,
			Date:      "2026-05-01",
			Items: []application.CreateItemRequest{
				{Title: "Beach", OrderSequence: 1},
			},
		}},
	})
	require.NoError(t, err)

	require.NoError(t, stack.Trips.DeleteTrip(ctx, created.ID))

	_, err = stack.Trips.GetTrip(ctx, created.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)

	var dayCount, itemCount int64
	require.NoError(t, infra.DB.Model(&repository.TripDayModel{}).Count(&dayCount).Error)
	require.NoError(t, infra.DB.Model(&repository.ItineraryItemModel{}).Count(&itemCount).Error)
	assert.Zero(t, dayCount)
	assert.Zero(t, itemCount)
}
