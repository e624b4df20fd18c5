package service

import (
	"context"
)

// EventTypeTrekPlanned is the event_type attribute of messages carrying a TrekPlannedEvent
const EventTypeTrekPlanned = "trek.planned"

// TrekPlannedEvent announces a newly planned trek to asynchronous consumers
type TrekPlannedEvent struct {
	RequestID     string `json:"request_id,omitempty"` // For distributed tracing
	DestinationID string `json:"destination_id"`
	TripID        string `json:"trip_id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	CreatedBy     string `json:"created_by"`
	StartDate     string `json:"start_date,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishTrekPlanned publishes a trek-planned event for async processing
	PublishTrekPlanned(ctx context.Context, event *TrekPlannedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
