package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentadmin/internal/api"
	"rentadmin/internal/events"
	"rentadmin/internal/media"
	"rentadmin/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users   []models.User
	listErr error

	listStarted chan struct{}
	listGate    chan struct{}

	created models.User
	updated models.User
	delErr  error
}

func (f *fakeUserRepo) List(context.Context) ([]models.User, error) {
	if f.listStarted != nil {
		close(f.listStarted)
		f.listStarted = nil
	}
	if f.listGate != nil {
		<-f.listGate
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeUserRepo) Get(_ context.Context, id int64) (models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, &api.NotFoundError{Resource: "user", ID: id}
}

func (f *fakeUserRepo) Create(context.Context, *api.Form) (models.User, error) {
	return f.created, nil
}

func (f *fakeUserRepo) Update(context.Context, int64, *api.Form) (models.User, error) {
	return f.updated, nil
}

func (f *fakeUserRepo) Delete(context.Context, int64) error {
	return f.delErr
}

func newTestUserStore(repo UserRepository) *UserStore {
	logger := zerolog.Nop()
	return NewUserStore(repo, media.NewResolver("https://cdn.test/"), events.NewEventBus(), &logger)
}

func TestUserStoreFetchAll(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{
		{ID: 1, Name: "Alice", ProfileImage: "a.png"},
		{ID: 2, Name: "Bob"},
	}}
	s := newTestUserStore(repo)

	require.NoError(t, s.FetchAll(context.Background()))

	snapshot := s.Snapshot()
	assert.False(t, snapshot.Loading)
	assert.Empty(t, snapshot.Err)
	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, "https://cdn.test/a.png", snapshot.Items[0].ProfileImage)

	// A second fetch is idempotent.
	require.NoError(t, s.FetchAll(context.Background()))
	assert.Len(t, s.Snapshot().Items, 2)
}

func TestUserStoreFetchAllErrorKeepsStaleItems(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{{ID: 1, Name: "Alice"}}}
	s := newTestUserStore(repo)
	require.NoError(t, s.FetchAll(context.Background()))

	repo.listErr = errors.New("network down")
	require.Error(t, s.FetchAll(context.Background()))

	snapshot := s.Snapshot()
	assert.Equal(t, "Failed to fetch users", snapshot.Err)
	assert.Len(t, snapshot.Items, 1)
	assert.False(t, snapshot.Loading)
}

func TestUserStoreCreateAppends(t *testing.T) {
	repo := &fakeUserRepo{
		users:   []models.User{{ID: 1, Name: "Alice"}},
		created: models.User{ID: 2, Name: "Bob", ProfileImage: "b.png"},
	}
	s := newTestUserStore(repo)
	require.NoError(t, s.FetchAll(context.Background()))

	user, err := s.Create(context.Background(), api.NewForm())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/b.png", user.ProfileImage)

	items := s.Snapshot().Items
	require.Len(t, items, 2)
	assert.EqualValues(t, 2, items[1].ID)
}

func TestUserStoreUpdateReplacesInPlace(t *testing.T) {
	repo := &fakeUserRepo{
		users:   []models.User{{ID: 1, Name: "Alice"}, {ID: 2, Name: "Bob"}, {ID: 3, Name: "Carol"}},
		updated: models.User{ID: 2, Name: "Robert"},
	}
	s := newTestUserStore(repo)
	require.NoError(t, s.FetchAll(context.Background()))

	_, err := s.Update(context.Background(), 2, api.NewForm())
	require.NoError(t, err)

	items := s.Snapshot().Items
	require.Len(t, items, 3)
	assert.Equal(t, "Robert", items[1].Name)
	assert.Equal(t, "Alice", items[0].Name)
	assert.Equal(t, "Carol", items[2].Name)
}

func TestUserStoreRemoveFilters(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{{ID: 1}, {ID: 2}, {ID: 3}}}
	s := newTestUserStore(repo)
	require.NoError(t, s.FetchAll(context.Background()))

	require.NoError(t, s.Remove(context.Background(), 2))

	items := s.Snapshot().Items
	require.Len(t, items, 2)
	assert.EqualValues(t, 1, items[0].ID)
	assert.EqualValues(t, 3, items[1].ID)
}

func TestUserStoreRemoveTolerates404(t *testing.T) {
	repo := &fakeUserRepo{
		users:  []models.User{{ID: 1}},
		delErr: &api.NotFoundError{Resource: "user", ID: 1},
	}
	s := newTestUserStore(repo)
	require.NoError(t, s.FetchAll(context.Background()))

	require.NoError(t, s.Remove(context.Background(), 1))
	assert.Empty(t, s.Snapshot().Items)
}

func TestUserStoreFetchOneClearsSelected(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{{ID: 1, Name: "Alice"}}}
	s := newTestUserStore(repo)

	user, err := s.FetchOne(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)

	selected, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, "Alice", selected.Name)

	_, err = s.FetchOne(context.Background(), 99)
	require.Error(t, err)
	_, ok = s.Selected()
	assert.False(t, ok)
}

// A fetch that was already in flight when a delete settled must not
// resurrect the deleted item when it finally lands.
func TestUserStoreStaleFetchDiscardedAfterDelete(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{{ID: 1}, {ID: 2}}}
	s := newTestUserStore(repo)
	require.NoError(t, s.FetchAll(context.Background()))

	repo.listStarted = make(chan struct{})
	repo.listGate = make(chan struct{})

	started := repo.listStarted
	done := make(chan error, 1)
	go func() { done <- s.FetchAll(context.Background()) }()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("fetch never started")
	}

	require.NoError(t, s.Remove(context.Background(), 2))

	close(repo.listGate)
	require.NoError(t, <-done)

	items := s.Snapshot().Items
	require.Len(t, items, 1)
	assert.EqualValues(t, 1, items[0].ID)
}

type fakeBookingRepo struct {
	bookings []models.Booking
	created  models.Booking
	updated  models.Booking
}

func (f *fakeBookingRepo) List(context.Context) ([]models.Booking, error) {
	return append([]models.Booking(nil), f.bookings...), nil
}

func (f *fakeBookingRepo) Create(context.Context, models.BookingRequest) (models.Booking, error) {
	return f.created, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, _ int64, status string) (models.Booking, error) {
	b := f.updated
	b.Status = status
	return b, nil
}

func (f *fakeBookingRepo) Delete(context.Context, int64) error { return nil }

func TestBookingStoreUpdateStatus(t *testing.T) {
	repo := &fakeBookingRepo{
		bookings: []models.Booking{
			{ID: 1, Status: models.StatusPending},
			{ID: 2, Status: models.StatusPending},
		},
		updated: models.Booking{ID: 2},
	}
	logger := zerolog.Nop()
	s := NewBookingStore(repo, media.NewResolver("https://cdn.test/"), events.NewEventBus(), &logger)
	require.NoError(t, s.FetchAll(context.Background()))

	booking, err := s.UpdateStatus(context.Background(), 2, models.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, booking.Status)

	items := s.Snapshot().Items
	require.Len(t, items, 2)
	assert.Equal(t, models.StatusPending, items[0].Status)
	assert.Equal(t, models.StatusConfirmed, items[1].Status)
}

func TestBookingStoreCreatePublishesEvent(t *testing.T) {
	repo := &fakeBookingRepo{created: models.Booking{
		ID:       7,
		Status:   models.StatusPending,
		Property: models.BookingProperty{Name: "Villa"},
	}}
	bus := events.NewEventBus()

	var got events.Event
	bus.Subscribe(events.EventBookingCreated, func(event *events.Event) error {
		got = *event
		return nil
	})

	logger := zerolog.Nop()
	s := NewBookingStore(repo, media.NewResolver("https://cdn.test/"), bus, &logger)

	_, err := s.Create(context.Background(), models.BookingRequest{PropertyName: "Villa"})
	require.NoError(t, err)
	assert.Equal(t, events.EventBookingCreated, got.Type)
	assert.Contains(t, string(got.Payload), "Villa")
}
