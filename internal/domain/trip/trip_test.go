package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcanvas/service-travel/internal/domain"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func validDays() []Day {
	return []Day{
		{DayNumber: 1, Date: date(2026, 3, 1), Items: []ItineraryItem{
			{Title: "Palace tour", OrderSequence: 1},
			{Title: "Lunch", OrderSequence: 2},
		}},
		{DayNumber: 2, Date: date(2026, 3, 2)},
	}
}

func TestNewTrip_Valid(t *testing.T) {
	tr, err := NewTrip(7, "Spring in Seoul", "Seoul", "", nil, nil,
		date(2026, 3, 1), date(2026, 3, 2), 2, 0, nil, validDays())
	require.NoError(t, err)
	assert.Equal(t, StatusPlanning, tr.Status())
	assert.Equal(t, 2, tr.DaysCount())
	assert.Equal(t, 2, tr.TotalItemsCount())
}

func TestNewTrip_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func() (*Trip, error)
	}{
		{"missing title", func() (*Trip, error) {
			return NewTrip(7, "  ", "Seoul", "", nil, nil, date(2026, 3, 1), date(2026, 3, 2), 1, 0, nil, nil)
		}},
		{"missing destination", func() (*Trip, error) {
			return NewTrip(7, "Trip", "", "", nil, nil, date(2026, 3, 1), date(2026, 3, 2), 1, 0, nil, nil)
		}},
		{"missing user", func() (*Trip, error) {
			return NewTrip(0, "Trip", "Seoul", "", nil, nil, date(2026, 3, 1), date(2026, 3, 2), 1, 0, nil, nil)
		}},
		{"end before start", func() (*Trip, error) {
			return NewTrip(7, "Trip", "Seoul", "", nil, nil, date(2026, 3, 2), date(2026, 3, 1), 1, 0, nil, nil)
		}},
		{"zero adults", func() (*Trip, error) {
			return NewTrip(7, "Trip", "Seoul", "", nil, nil, date(2026, 3, 1), date(2026, 3, 2), 0, 0, nil, nil)
		}},
		{"non-positive day number", func() (*Trip, error) {
			days := []Day{{DayNumber: 0, Date: date(2026, 3, 1)}}
			return NewTrip(7, "Trip", "Seoul", "", nil, nil, date(2026, 3, 1), date(2026, 3, 2), 1, 0, nil, days)
		}},
		{"item without title", func() (*Trip, error) {
			days := []Day{{DayNumber: 1, Date: date(2026, 3, 1), Items: []ItineraryItem{{Title: " ", OrderSequence: 1}}}}
			return NewTrip(7, "Trip", "Seoul", "", nil, nil, date(2026, 3, 1), date(2026, 3, 2), 1, 0, nil, days)
		}},
		{"non-positive order sequence", func() (*Trip, error) {
			days := []Day{{DayNumber: 1, Date: date(2026, 3, 1), Items: []ItineraryItem{{Title: "x", OrderSequence: 0}}}}
			return NewTrip(7, "Trip", "Seoul", "", nil, nil, date(2026, 3, 1), date(2026, 3, 2), 1, 0, nil, days)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.mutate()
			require.Error(t, err)
			var validationErr *domain.ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestTrip_SortDays_StableOnEqualSequence(t *testing.T) {
	days := []Day{
		{DayNumber: 2, Date: date(2026, 3, 2)},
		{DayNumber: 1, Date: date(2026, 3, 1), Items: []ItineraryItem{
			{Title: "third", OrderSequence: 2},
			{Title: "first", OrderSequence: 1},
			{Title: "second", OrderSequence: 1},
		}},
	}
	tr := Reconstruct(1, 7, "Trip", "Seoul", "", nil, nil,
		date(2026, 3, 1), date(2026, 3, 2), 1, 0, nil, StatusPlanning, days,
		time.Now(), time.Now())

	tr.SortDays()

	require.Equal(t, 1, tr.Days()[0].DayNumber)
	items := tr.Days()[0].Items
	require.Len(t, items, 3)
	// Equal sequence values keep their insertion order.
	assert.Equal(t, "first", items[0].Title)
	assert.Equal(t, "second", items[1].Title)
	assert.Equal(t, "third", items[2].Title)
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"planning", "confirmed", "ongoing", "completed"} {
		st, err := ParseStatus(s)
		require.NoError(t, err)
		assert.True(t, st.IsValid())
	}
	_, err := ParseStatus("archived")
	assert.Error(t, err)
}

func TestChangeStatus(t *testing.T) {
	tr, err := NewTrip(7, "Trip", "Seoul", "", nil, nil, date(2026, 3, 1), date(2026, 3, 2), 1, 0, nil, nil)
	require.NoError(t, err)

	require.NoError(t, tr.ChangeStatus(StatusConfirmed))
	assert.Equal(t, StatusConfirmed, tr.Status())

	assert.Error(t, tr.ChangeStatus(Status("bogus")))
}
