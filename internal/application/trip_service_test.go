package application

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tripcanvas/service-travel/internal/domain"
	tripDomain "github.com/tripcanvas/service-travel/internal/domain/trip"
	userDomain "github.com/tripcanvas/service-travel/internal/domain/user"
)

// fakeTripRepo is an in-memory trip.Repository.
type fakeTripRepo struct {
	trips  map[uint]*tripDomain.Trip
	nextID uint
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{trips: make(map[uint]*tripDomain.Trip), nextID: 1}
}

func (r *fakeTripRepo) FindByID(_ context.Context, id uint) (*tripDomain.Trip, error) {
	t, ok := r.trips[id]
	if !ok {
		return nil, domain.NewNotFoundError("Trip", strconv.FormatUint(uint64(id), 10))
	}
	return t, nil
}

func (r *fakeTripRepo) FindByUserID(_ context.Context, userID uint) ([]*tripDomain.Trip, error) {
	var out []*tripDomain.Trip
	for _, t := range r.trips {
		if t.UserID() == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTripRepo) FindSummaries(_ context.Context) ([]tripDomain.Summary, error) {
	var out []tripDomain.Summary
	for _, t := range r.trips {
		out = append(out, tripDomain.Summary{
			ID:              t.ID(),
			UserID:          t.UserID(),
			Title:           t.Title(),
			Destination:     t.Destination(),
			StartDate:       t.StartDate(),
			EndDate:         t.EndDate(),
			NumAdults:       t.NumAdults(),
			NumChildren:     t.NumChildren(),
			Status:          t.Status(),
			DaysCount:       t.DaysCount(),
			TotalItemsCount: t.TotalItemsCount(),
		})
	}
	return out, nil
}

func (r *fakeTripRepo) Save(_ context.Context, t *tripDomain.Trip) error {
	t.SetID(r.nextID)
	r.trips[r.nextID] = t
	r.nextID++
	return nil
}

func (r *fakeTripRepo) UpdateStatus(_ context.Context, id uint, status tripDomain.Status) error {
	t, ok := r.trips[id]
	if !ok {
		return domain.NewNotFoundError("Trip", strconv.FormatUint(uint64(id), 10))
	}
	return t.ChangeStatus(status)
}

func (r *fakeTripRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.trips[id]; !ok {
		return domain.NewNotFoundError("Trip", strconv.FormatUint(uint64(id), 10))
	}
	delete(r.trips, id)
	return nil
}

// fakeUserRepo is an in-memory user.Repository.
type fakeUserRepo struct {
	users map[uint]*userDomain.User
}

func newFakeUserRepo(ids ...uint) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint]*userDomain.User)}
	now := time.Now().UTC()
	for _, id := range ids {
		r.users[id] = userDomain.Reconstruct(id, "u@example.com", "hash", "Test User", "", "", "", now, now)
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*userDomain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("User", strconv.FormatUint(uint64(id), 10))
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*userDomain.User, error) {
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFoundError("User", email)
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) error {
	id := uint(len(r.users) + 1)
	u.SetID(id)
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	r.users[u.ID()] = u
	return nil
}

func newTripService(tripRepo *fakeTripRepo, userRepo *fakeUserRepo) *TripService {
	return NewTripService(tripRepo, userRepo, nil, zap.NewNop())
}

func createTripRequest() CreateTripRequest {
	days := make([]CreateDayRequest, 2)
	for d := 0; d < 2; d++ {
		items := make([]CreateItemRequest, 3)
		for i := 0; i < 3; i++ {
			items[i] = CreateItemRequest{
				Title:         "Stop " + strconv.Itoa(d*3+i+1),
				OrderSequence: i + 1,
			}
		}
		days[d] = CreateDayRequest{
			DayNumber: d + 1,
			Date:      "2026-03-0" + strconv.Itoa(d+1),
			Items:     items,
		}
	}
	return CreateTripRequest{
		Title:       "Spring in Seoul",
		Destination: "Seoul",
		StartDate:   "2026-03-01",
		EndDate:     "2026-03-02",
		NumAdults:   2,
		Days:        days,
	}
}

func TestTripService_CreateAndGet_RoundTrip(t *testing.T) {
	tripRepo := newFakeTripRepo()
	svc := newTripService(tripRepo, newFakeUserRepo(7))

	created, err := svc.CreateTrip(context.Background(), 7, createTripRequest())
	require.NoError(t, err)
	assert.Equal(t, 2, created.DaysCount)
	assert.Equal(t, 6, created.TotalItemsCount)

	got, err := svc.GetTrip(context.Background(), created.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, got.DaysCount)
	assert.Equal(t, 6, got.TotalItemsCount)
	assert.Len(t, got.Days, got.DaysCount)

	total := 0
	for _, d := range got.Days {
		total += len(d.Items)
		for i, item := range d.Items {
			assert.Equal(t, i+1, item.OrderSequence)
		}
	}
	assert.Equal(t, got.TotalItemsCount, total)
}

func TestTripService_Create_UnknownUser(t *testing.T) {
	svc := newTripService(newFakeTripRepo(), newFakeUserRepo())

	_, err := svc.CreateTrip(context.Background(), 99, createTripRequest())
	require.Error(t, err)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTripService_Create_InvalidDate(t *testing.T) {
	svc := newTripService(newFakeTripRepo(), newFakeUserRepo(7))

	req := createTripRequest()
	req.StartDate = "03/01/2026"
	_, err := svc.CreateTrip(context.Background(), 7, req)
	require.Error(t, err)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestTripService_GetTrip_DegradesOnMalformedAccommodation(t *testing.T) {
	tripRepo := newFakeTripRepo()
	svc := newTripService(tripRepo, newFakeUserRepo(7))

	days := []tripDomain.Day{{
		DayNumber:         1,
		Date:              time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		AccommodationJSON: json.RawMessage(`{not json`),
	}}
	tr := tripDomain.Reconstruct(0, 7, "Broken", "Seoul", "", nil, nil,
		time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		1, 0, nil, tripDomain.StatusPlanning, days, time.Now(), time.Now())
	require.NoError(t, tripRepo.Save(context.Background(), tr))

	got, err := svc.GetTrip(context.Background(), tr.ID())
	require.NoError(t, err)

	assert.Equal(t, tr.ID(), got.ID)
	assert.Equal(t, degradedTitle, got.Title)
	assert.Zero(t, got.DaysCount)
	assert.Zero(t, got.TotalItemsCount)
	assert.Empty(t, got.Days)
}

func TestTripService_UpdateStatus(t *testing.T) {
	tripRepo := newFakeTripRepo()
	svc := newTripService(tripRepo, newFakeUserRepo(7))

	created, err := svc.CreateTrip(context.Background(), 7, createTripRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, "confirmed")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", updated.Status)

	_, err = svc.UpdateStatus(context.Background(), created.ID, "archived")
	require.Error(t, err)
	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}

func TestTripService_Delete(t *testing.T) {
	tripRepo := newFakeTripRepo()
	svc := newTripService(tripRepo, newFakeUserRepo(7))

	created, err := svc.CreateTrip(context.Background(), 7, createTripRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTrip(context.Background(), created.ID))

	_, err = svc.GetTrip(context.Background(), created.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTripService_ListSummaries_TrustsProjection(t *testing.T) {
	tripRepo := newFakeTripRepo()
	svc := newTripService(tripRepo, newFakeUserRepo(7))

	_, err := svc.CreateTrip(context.Background(), 7, createTripRequest())
	require.NoError(t, err)

	summaries, err := svc.ListSummaries(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].DaysCount)
	assert.Equal(t, 6, summaries[0].TotalItemsCount)
}
