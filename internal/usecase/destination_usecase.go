package usecase

import (
	"context"

	"trekmate/internal/domain/entity"
)

// PlanTrekInput is the user's request to plan a trek
type PlanTrekInput struct {
	Name        string `json:"name" validate:"required,max=120"`
	Location    string `json:"location" validate:"max=120"`
	Description string `json:"description" validate:"max=2000"`
	Image       string `json:"image" validate:"omitempty,url"`
	StartDate   string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// PlannedTrek is the outcome of a successful PlanNewTrek
type PlannedTrek struct {
	DestinationID string             `json:"destination_id"`
	TripID        string             `json:"trip_id"`
	Trip          entity.Destination `json:"trip"`
}

// DestinationUsecase provides the destination and trip read models and the
// "plan a trek" write
type DestinationUsecase interface {
	// SubscribeToDestinations delivers every public destination, newest first,
	// followed by the static featured destinations
	SubscribeToDestinations(ctx context.Context, fn func([]entity.Destination)) (Unsubscribe, error)

	// SubscribeToPlannedTrips delivers the caller's planned trips followed by
	// the static upcoming treks; anonymous callers get the static list once
	SubscribeToPlannedTrips(ctx context.Context, fn func([]entity.Destination)) (Unsubscribe, error)

	// SubscribeToMyTrips delivers strictly the caller's planned trips;
	// anonymous callers get an empty list once
	SubscribeToMyTrips(ctx context.Context, fn func([]entity.Destination)) (Unsubscribe, error)

	// PlanNewTrek stores the trek as a public destination and as the caller's planned trip
	PlanNewTrek(ctx context.Context, input *PlanTrekInput) (*PlannedTrek, error)

	// FindDestination returns a stored or featured destination by ID
	FindDestination(ctx context.Context, id string) (*entity.Destination, error)

	// Close detaches every live query still open
	Close()
}
