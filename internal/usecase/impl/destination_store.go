package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "trekmate/internal/delivery/context"
	"trekmate/internal/domain/entity"
	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/lifecycle"
	"trekmate/internal/domain/repository"
	"trekmate/internal/domain/service"
	"trekmate/internal/usecase"

	"github.com/pkg/errors"
)

// ErrStoreClosed is returned by subscriptions opened after Close. It matches
// domainerrors.ErrReadModelUnavailable.
var ErrStoreClosed = domainerrors.ErrReadModelUnavailable.WithDetails("destination store is closed")

var _ usecase.DestinationUsecase = (*DestinationStore)(nil)

// DestinationStore keeps the destination and trip read models live over the
// document store. Every subscription opens its own live query.
type DestinationStore struct {
	store     repository.DocumentStore
	identity  service.IdentityProvider
	publisher service.EventPublisher
	library   *TrekLibrary
	logger    *slog.Logger

	queries *liveQueries
}

// NewDestinationStore creates the store.
func NewDestinationStore(
	store repository.DocumentStore,
	identity service.IdentityProvider,
	publisher service.EventPublisher,
	library *TrekLibrary,
	logger *slog.Logger,
) *DestinationStore {
	return &DestinationStore{
		store:     store,
		identity:  identity,
		publisher: publisher,
		library:   library,
		logger:    logger,
		queries:   newLiveQueries(ErrStoreClosed),
	}
}

func (s *DestinationStore) SubscribeToDestinations(ctx context.Context, fn func([]entity.Destination)) (usecase.Unsubscribe, error) {
	q := repository.Query{Collection: repository.CollectionDestinations}

	return s.watch(ctx, q, featuredDestinations(), fn)
}

func (s *DestinationStore) SubscribeToPlannedTrips(ctx context.Context, fn func([]entity.Destination)) (usecase.Unsubscribe, error) {
	uid, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		fn(upcomingTreks())

		return usecase.NoopUnsubscribe(), nil
	}

	return s.watch(ctx, plannedTripsOf(uid), upcomingTreks(), fn)
}

func (s *DestinationStore) SubscribeToMyTrips(ctx context.Context, fn func([]entity.Destination)) (usecase.Unsubscribe, error) {
	uid, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		fn([]entity.Destination{})

		return usecase.NoopUnsubscribe(), nil
	}

	return s.watch(ctx, plannedTripsOf(uid), nil, fn)
}

func plannedTripsOf(uid string) repository.Query {
	return repository.Query{Collection: repository.CollectionPlannedTrips}.Where(fieldCreatedBy, uid)
}

// watch opens a live query whose deliveries are converted, sorted newest
// first and followed by a copy of seeds.
func (s *DestinationStore) watch(ctx context.Context, q repository.Query, seeds []entity.Destination, fn func([]entity.Destination)) (usecase.Unsubscribe, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	return s.queries.attach(func() (repository.CancelFunc, error) {
		cancel, err := s.store.Watch(ctx, q, func(docs []repository.Document, err error) {
			if err != nil {
				logger.Error("Live query failed",
					slog.String("collection", q.Collection),
					slog.Any("error", err),
				)

				return
			}

			items := make([]entity.Destination, 0, len(docs)+len(seeds))
			for _, doc := range docs {
				items = append(items, destinationFromDocument(doc))
			}
			sortNewestFirst(items)
			items = append(items, seeds...)

			fn(items)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "watch %s", q.Collection)
		}

		return cancel, nil
	})
}

// PlanNewTrek writes the trek to the public destinations and to the caller's
// planned trips. When the second write fails the first is deleted again and
// a *domainerrors.PartialWriteError is returned.
func (s *DestinationStore) PlanNewTrek(ctx context.Context, input *usecase.PlanTrekInput) (*usecase.PlannedTrek, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	if input == nil || strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.ErrTrekNameRequired
	}
	uid, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, domainerrors.ErrUnauthenticated
	}

	trek := s.buildTrek(input, uid)

	public := trek
	public.IsPublic = true
	public.IsPlanned = false

	destinationID, err := s.store.Insert(ctx, repository.CollectionDestinations, destinationFields(&public))
	if err != nil {
		logger.Error("Failed to save destination",
			slog.String("name", trek.Name),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "save destination")
	}

	trip := trek
	trip.IsPublic = false
	trip.IsPlanned = true

	tripID, err := s.store.Insert(ctx, repository.CollectionPlannedTrips, destinationFields(&trip))
	if err != nil {
		logger.Error("Failed to save planned trip, rolling back destination",
			slog.String("destination_id", destinationID),
			slog.Any("error", err),
		)

		return nil, s.rollbackDestination(ctx, destinationID, err)
	}

	trip.ID = tripID
	s.announce(ctx, logger, destinationID, &trip)

	logger.Info("Trek planned",
		slog.String("destination_id", destinationID),
		slog.String("trip_id", tripID),
		slog.String("name", trip.Name),
	)

	return &usecase.PlannedTrek{
		DestinationID: destinationID,
		TripID:        tripID,
		Trip:          trip,
	}, nil
}

func (s *DestinationStore) buildTrek(input *usecase.PlanTrekInput, uid string) entity.Destination {
	name := strings.TrimSpace(input.Name)
	meta, _ := s.library.Lookup(name)

	return entity.Destination{
		Name:        strings.ToUpper(name),
		Location:    firstNonEmpty(input.Location, DefaultTrekLocation),
		Image:       firstNonEmpty(input.Image, meta.Image, DefaultTrekImage),
		Description: firstNonEmpty(input.Description, meta.Description),
		Distance:    meta.Distance,
		Duration:    meta.Duration,
		Elevation:   meta.Elevation,
		StartDate:   strings.TrimSpace(input.StartDate),
		EndDate:     strings.TrimSpace(input.EndDate),
		CreatedBy:   uid,
	}
}

// rollbackDestination deletes the orphaned destination. It runs even when
// ctx is already cancelled.
func (s *DestinationStore) rollbackDestination(ctx context.Context, destinationID string, cause error) error {
	rbCtx, cancel := context.WithTimeout(deliverycontext.Detach(ctx), lifecycle.DefaultTimeout)
	defer cancel()

	rbErr := s.store.Delete(rbCtx, repository.CollectionDestinations, destinationID)
	if rbErr != nil {
		deliverycontext.GetLoggerOrDefault(ctx, s.logger).Error("Rollback failed, destination left behind",
			slog.String("destination_id", destinationID),
			slog.Any("error", rbErr),
		)
	}

	return &domainerrors.PartialWriteError{
		Collection: repository.CollectionDestinations,
		DocumentID: destinationID,
		RolledBack: rbErr == nil,
		Cause:      errors.Wrap(cause, "save planned trip"),
		Rollback:   rbErr,
	}
}

// announce publishes the trek event; failures are only logged.
func (s *DestinationStore) announce(ctx context.Context, logger *slog.Logger, destinationID string, trip *entity.Destination) {
	event := &service.TrekPlannedEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		DestinationID: destinationID,
		TripID:        trip.ID,
		Name:          trip.Name,
		Location:      trip.Location,
		CreatedBy:     trip.CreatedBy,
		StartDate:     trip.StartDate,
	}
	if err := s.publisher.PublishTrekPlanned(ctx, event); err != nil {
		logger.Warn("Failed to publish trek event",
			slog.String("trip_id", trip.ID),
			slog.Any("error", err),
		)
	}
}

// FindDestination returns a featured or upcoming seed, or the stored destination.
func (s *DestinationStore) FindDestination(ctx context.Context, id string) (*entity.Destination, error) {
	if seed, ok := findSeed(id); ok {
		return &seed, nil
	}

	doc, err := s.store.Get(ctx, repository.CollectionDestinations, id)
	if err != nil {
		if errors.Is(err, repository.ErrDocumentNotFound) {
			return nil, domainerrors.ErrDestinationNotFound
		}

		return nil, errors.Wrapf(err, "find destination %s", id)
	}

	d := destinationFromDocument(*doc)

	return &d, nil
}

// Close detaches every open live query. Later subscriptions fail with ErrStoreClosed.
func (s *DestinationStore) Close() {
	s.queries.close()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return ""
}
