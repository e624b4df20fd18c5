package impl

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"trekmate/internal/domain/entity"
	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/repository"
	"trekmate/internal/domain/service"
	mockRepo "trekmate/internal/mocks/repository"
	mockService "trekmate/internal/mocks/service"
	"trekmate/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// destinationStoreFixtures holds the store under test and its collaborators.
type destinationStoreFixtures struct {
	store     *DestinationStore
	docs      *mockRepo.MockDocumentStore
	publisher *mockService.MockEventPublisher
}

func createMockedDestinationStore(t *testing.T, uid string) destinationStoreFixtures {
	docs := mockRepo.NewMockDocumentStore(t)
	publisher := mockService.NewMockEventPublisher(t)

	return destinationStoreFixtures{
		store:     NewDestinationStore(docs, staticIdentity(uid), publisher, NewTrekLibrary(), testLogger()),
		docs:      docs,
		publisher: publisher,
	}
}

func createMemoryDestinationStore(t *testing.T, uid string) (*DestinationStore, repository.DocumentStore) {
	t.Helper()

	docs := newMemoryStore()
	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().PublishTrekPlanned(mock.Anything, mock.Anything).Return(nil).Maybe()

	store := NewDestinationStore(docs, staticIdentity(uid), publisher, NewTrekLibrary(), testLogger())
	t.Cleanup(store.Close)

	return store, docs
}

func names(items []entity.Destination) []string {
	out := make([]string, 0, len(items))
	for _, d := range items {
		out = append(out, d.Name)
	}

	return out
}

func TestDestinationStore_PlannedTrips_Anonymous(t *testing.T) {
	fx := createMockedDestinationStore(t, "")

	rec := &recorder[entity.Destination]{}
	unsubscribe, err := fx.store.SubscribeToPlannedTrips(context.Background(), rec.fn)
	require.NoError(t, err)

	require.Equal(t, 1, rec.count())
	assert.Len(t, rec.last(), 4)
	assert.Equal(t, names(upcomingTreks()), names(rec.last()))

	assert.NotPanics(t, func() {
		unsubscribe()
		unsubscribe()
	})
}

func TestDestinationStore_MyTrips_Anonymous(t *testing.T) {
	fx := createMockedDestinationStore(t, "")

	rec := &recorder[entity.Destination]{}
	unsubscribe, err := fx.store.SubscribeToMyTrips(context.Background(), rec.fn)
	require.NoError(t, err)

	require.Equal(t, 1, rec.count())
	assert.NotNil(t, rec.last())
	assert.Empty(t, rec.last())
	assert.NotPanics(t, func() { unsubscribe() })
}

func TestDestinationStore_Destinations_SortedWithSeedsLast(t *testing.T) {
	store, docs := createMemoryDestinationStore(t, "u1")
	ctx := context.Background()

	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.Add(time.Hour)

	_, err := docs.Insert(ctx, repository.CollectionDestinations, repository.Fields{"name": "NO TIMESTAMP"})
	require.NoError(t, err)
	_, err = docs.Insert(ctx, repository.CollectionDestinations, repository.Fields{"name": "OLDER", "createdAt": older})
	require.NoError(t, err)
	_, err = docs.Insert(ctx, repository.CollectionDestinations, repository.Fields{"name": "NEWER", "createdAt": newer})
	require.NoError(t, err)

	rec := &recorder[entity.Destination]{}
	_, err = store.SubscribeToDestinations(ctx, rec.fn)
	require.NoError(t, err)

	want := append([]string{"NEWER", "OLDER", "NO TIMESTAMP"}, names(featuredDestinations())...)
	assert.Equal(t, want, names(rec.last()))
}

func TestDestinationStore_Destinations_LiveUpdates(t *testing.T) {
	store, _ := createMemoryDestinationStore(t, "u1")
	ctx := context.Background()

	rec := &recorder[entity.Destination]{}
	unsubscribe, err := store.SubscribeToDestinations(ctx, rec.fn)
	require.NoError(t, err)

	require.Equal(t, 1, rec.count())
	assert.Equal(t, names(featuredDestinations()), names(rec.last()))

	_, err = store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Gokyo Lakes"})
	require.NoError(t, err)
	_, err = store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Mardi Himal"})
	require.NoError(t, err)

	got := rec.last()
	require.Len(t, got, 5)
	assert.Equal(t, []string{"MARDI HIMAL", "GOKYO LAKES"}, names(got[:2]))
	assert.Equal(t, names(featuredDestinations()), names(got[2:]))

	seen := rec.count()
	unsubscribe()
	_, err = store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Upper Mustang"})
	require.NoError(t, err)
	assert.Equal(t, seen, rec.count())
}

func TestDestinationStore_DeliveriesAreIndependentSlices(t *testing.T) {
	store, _ := createMemoryDestinationStore(t, "u1")
	ctx := context.Background()

	a := &recorder[entity.Destination]{}
	b := &recorder[entity.Destination]{}
	_, err := store.SubscribeToDestinations(ctx, a.fn)
	require.NoError(t, err)
	_, err = store.SubscribeToDestinations(ctx, b.fn)
	require.NoError(t, err)

	a.last()[0].Name = "MUTATED"

	assert.Equal(t, "TILICHO LAKE", b.last()[0].Name)
	assert.Equal(t, "TILICHO LAKE", featuredDestinations()[0].Name)
}

func TestDestinationStore_PlannedAndMyTrips_Authenticated(t *testing.T) {
	store, docs := createMemoryDestinationStore(t, "u1")
	ctx := context.Background()

	_, err := docs.Insert(ctx, repository.CollectionPlannedTrips, repository.Fields{
		"name": "SOMEONE ELSE", "createdBy": "u2", "createdAt": repository.ServerTimestamp,
	})
	require.NoError(t, err)

	planned := &recorder[entity.Destination]{}
	mine := &recorder[entity.Destination]{}
	_, err = store.SubscribeToPlannedTrips(ctx, planned.fn)
	require.NoError(t, err)
	_, err = store.SubscribeToMyTrips(ctx, mine.fn)
	require.NoError(t, err)

	assert.Equal(t, names(upcomingTreks()), names(planned.last()))
	assert.Empty(t, mine.last())

	_, err = store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Langtang"})
	require.NoError(t, err)

	assert.Equal(t, append([]string{"LANGTANG"}, names(upcomingTreks())...), names(planned.last()))
	require.Len(t, mine.last(), 1)
	trip := mine.last()[0]
	assert.Equal(t, "LANGTANG", trip.Name)
	assert.Equal(t, "u1", trip.CreatedBy)
	assert.True(t, trip.IsPlanned)
	assert.False(t, trip.IsPublic)
	assert.NotNil(t, trip.CreatedAt)
}

func TestDestinationStore_PlanNewTrek_LibraryMetadata(t *testing.T) {
	store, docs := createMemoryDestinationStore(t, "u1")
	ctx := context.Background()

	planned, err := store.PlanNewTrek(ctx, &usecase.PlanTrekInput{
		Name:      "Annapurna Base Camp",
		StartDate: "2026-10-01",
		EndDate:   "2026-10-10",
	})
	require.NoError(t, err)

	meta, ok := NewTrekLibrary().Lookup("ANNAPURNA BASE CAMP")
	require.True(t, ok)

	assert.Equal(t, "ANNAPURNA BASE CAMP", planned.Trip.Name)
	assert.Equal(t, DefaultTrekLocation, planned.Trip.Location)
	assert.Equal(t, meta.Distance, planned.Trip.Distance)
	assert.Equal(t, meta.Duration, planned.Trip.Duration)
	assert.Equal(t, meta.Elevation, planned.Trip.Elevation)
	assert.Equal(t, meta.Description, planned.Trip.Description)
	assert.Equal(t, meta.Image, planned.Trip.Image)

	public, err := docs.Get(ctx, repository.CollectionDestinations, planned.DestinationID)
	require.NoError(t, err)
	assert.Equal(t, "ANNAPURNA BASE CAMP", public.Fields["name"])
	assert.Equal(t, true, public.Fields["isPublic"])
	assert.Equal(t, false, public.Fields["isPlanned"])
	assert.Equal(t, meta.Elevation, public.Fields["elevation"])

	trip, err := docs.Get(ctx, repository.CollectionPlannedTrips, planned.TripID)
	require.NoError(t, err)
	assert.Equal(t, false, trip.Fields["isPublic"])
	assert.Equal(t, true, trip.Fields["isPlanned"])
	assert.Equal(t, "u1", trip.Fields["createdBy"])
	assert.Equal(t, "2026-10-01", trip.Fields["startDate"])
	assert.IsType(t, time.Time{}, trip.Fields["createdAt"])
}

func TestDestinationStore_PlanNewTrek_UnknownNameGetsPlaceholder(t *testing.T) {
	store, _ := createMemoryDestinationStore(t, "u1")

	planned, err := store.PlanNewTrek(context.Background(), &usecase.PlanTrekInput{
		Name:     "Totally Unknown Trek",
		Location: "Dolpa",
		Image:    "https://example.com/dolpa.jpg",
	})
	require.NoError(t, err)

	assert.Equal(t, "TOTALLY UNKNOWN TREK", planned.Trip.Name)
	assert.Equal(t, "Dolpa", planned.Trip.Location)
	assert.Equal(t, "https://example.com/dolpa.jpg", planned.Trip.Image)
	assert.Contains(t, planned.Trip.Description, "Totally Unknown Trek")
	assert.Equal(t, "Unknown", planned.Trip.Elevation)
}

func TestDestinationStore_PlanNewTrek_Validation(t *testing.T) {
	tests := []struct {
		name    string
		uid     string
		input   *usecase.PlanTrekInput
		wantErr error
	}{
		{name: "nil input", uid: "u1", input: nil, wantErr: domainerrors.ErrTrekNameRequired},
		{name: "blank name", uid: "u1", input: &usecase.PlanTrekInput{Name: "   "}, wantErr: domainerrors.ErrTrekNameRequired},
		{name: "anonymous", uid: "", input: &usecase.PlanTrekInput{Name: "Langtang"}, wantErr: domainerrors.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No document store expectations: nothing may be written.
			fx := createMockedDestinationStore(t, tt.uid)

			_, err := fx.store.PlanNewTrek(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDestinationStore_PlanNewTrek_FirstWriteFails(t *testing.T) {
	fx := createMockedDestinationStore(t, "u1")
	ctx := context.Background()

	fx.docs.EXPECT().
		Insert(ctx, repository.CollectionDestinations, mock.Anything).
		Return("", errors.New("unavailable"))

	_, err := fx.store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Langtang"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domainerrors.ErrPartialWrite)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestDestinationStore_PlanNewTrek_SecondWriteFailsRollsBack(t *testing.T) {
	fx := createMockedDestinationStore(t, "u1")
	ctx := context.Background()

	fx.docs.EXPECT().
		Insert(ctx, repository.CollectionDestinations, mock.Anything).
		Return("dest-1", nil)
	fx.docs.EXPECT().
		Insert(ctx, repository.CollectionPlannedTrips, mock.Anything).
		Return("", errors.New("quota exceeded"))
	fx.docs.EXPECT().
		Delete(mock.Anything, repository.CollectionDestinations, "dest-1").
		Return(nil)

	_, err := fx.store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Langtang"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrPartialWrite)

	var partial *domainerrors.PartialWriteError
	require.ErrorAs(t, err, &partial)
	assert.True(t, partial.RolledBack)
	assert.Equal(t, "dest-1", partial.DocumentID)
	assert.Contains(t, partial.Cause.Error(), "quota exceeded")
}

func TestDestinationStore_PlanNewTrek_RollbackFails(t *testing.T) {
	fx := createMockedDestinationStore(t, "u1")
	ctx := context.Background()

	fx.docs.EXPECT().
		Insert(ctx, repository.CollectionDestinations, mock.Anything).
		Return("dest-1", nil)
	fx.docs.EXPECT().
		Insert(ctx, repository.CollectionPlannedTrips, mock.Anything).
		Return("", errors.New("quota exceeded"))
	fx.docs.EXPECT().
		Delete(mock.Anything, repository.CollectionDestinations, "dest-1").
		Return(errors.New("still unavailable"))

	_, err := fx.store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Langtang"})

	var partial *domainerrors.PartialWriteError
	require.ErrorAs(t, err, &partial)
	assert.False(t, partial.RolledBack)
	assert.Error(t, partial.Rollback)
}

func TestDestinationStore_PlanNewTrek_RollbackSurvivesCancelledContext(t *testing.T) {
	fx := createMockedDestinationStore(t, "u1")
	ctx, cancel := context.WithCancel(context.Background())

	fx.docs.EXPECT().
		Insert(ctx, repository.CollectionDestinations, mock.Anything).
		Return("dest-1", nil)
	fx.docs.EXPECT().
		Insert(ctx, repository.CollectionPlannedTrips, mock.Anything).
		RunAndReturn(func(context.Context, string, repository.Fields) (string, error) {
			cancel()

			return "", context.Canceled
		})
	fx.docs.EXPECT().
		Delete(mock.Anything, repository.CollectionDestinations, "dest-1").
		RunAndReturn(func(ctx context.Context, _, _ string) error {
			return ctx.Err()
		})

	_, err := fx.store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Langtang"})

	var partial *domainerrors.PartialWriteError
	require.ErrorAs(t, err, &partial)
	assert.True(t, partial.RolledBack)
}

func TestDestinationStore_PlanNewTrek_PublishesEvent(t *testing.T) {
	fx := createMockedDestinationStore(t, "u1")
	ctx := context.Background()

	fx.docs.EXPECT().
		Insert(ctx, repository.CollectionDestinations, mock.Anything).
		Return("dest-1", nil)
	fx.docs.EXPECT().
		Insert(ctx, repository.CollectionPlannedTrips, mock.Anything).
		Return("trip-1", nil)
	fx.publisher.EXPECT().
		PublishTrekPlanned(ctx, mock.MatchedBy(func(e *service.TrekPlannedEvent) bool {
			return e.DestinationID == "dest-1" && e.TripID == "trip-1" && e.Name == "LANGTANG" && e.CreatedBy == "u1"
		})).
		Return(errors.New("broker down"))

	planned, err := fx.store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Langtang"})
	require.NoError(t, err)
	assert.Equal(t, "trip-1", planned.TripID)
	assert.Equal(t, "trip-1", planned.Trip.ID)
}

func TestDestinationStore_FindDestination(t *testing.T) {
	store, _ := createMemoryDestinationStore(t, "u1")
	ctx := context.Background()

	seed, err := store.FindDestination(ctx, "seed-everest-base-camp")
	require.NoError(t, err)
	assert.Equal(t, "EVEREST BASE CAMP", seed.Name)

	planned, err := store.PlanNewTrek(ctx, &usecase.PlanTrekInput{Name: "Gokyo Lakes"})
	require.NoError(t, err)

	found, err := store.FindDestination(ctx, planned.DestinationID)
	require.NoError(t, err)
	assert.Equal(t, "GOKYO LAKES", found.Name)
	assert.True(t, found.IsPublic)

	_, err = store.FindDestination(ctx, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrDestinationNotFound)
}

func TestDestinationStore_Destinations_ConcurrentWritesEndCurrent(t *testing.T) {
	const writers = 64

	for round := 0; round < 50; round++ {
		store, docs := createMemoryDestinationStore(t, "u1")
		ctx := context.Background()

		rec := &recorder[entity.Destination]{}
		unsubscribe, err := store.SubscribeToDestinations(ctx, rec.fn)
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, err := docs.Insert(ctx, repository.CollectionDestinations, repository.Fields{"name": fmt.Sprintf("TREK %d", i)})
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()

		require.Len(t, rec.last(), writers+len(featuredDestinations()), "round %d", round)
		unsubscribe()
	}
}

func TestDestinationStore_CloseDetachesLiveQueries(t *testing.T) {
	docs := newMemoryStore()
	publisher := mockService.NewMockEventPublisher(t)
	publisher.EXPECT().PublishTrekPlanned(mock.Anything, mock.Anything).Return(nil).Maybe()
	store := NewDestinationStore(docs, staticIdentity("u1"), publisher, NewTrekLibrary(), testLogger())
	ctx := context.Background()

	rec := &recorder[entity.Destination]{}
	unsubscribe, err := store.SubscribeToDestinations(ctx, rec.fn)
	require.NoError(t, err)

	store.Close()

	_, err = docs.Insert(ctx, repository.CollectionDestinations, repository.Fields{"name": "AFTER CLOSE"})
	require.NoError(t, err)
	assert.Equal(t, 1, rec.count())
	assert.NotPanics(t, func() { unsubscribe() })

	_, err = store.SubscribeToDestinations(ctx, rec.fn)
	assert.ErrorIs(t, err, ErrStoreClosed)
}
