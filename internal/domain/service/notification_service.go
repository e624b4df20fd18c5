package service

import (
	"context"
)

// NotificationService defines the interface for push notification services
type NotificationService interface {
	// SendSingleNotification sends a push notification to a single device token
	SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error

	// SendTopicNotification sends a push notification to every device subscribed to topic
	SendTopicNotification(ctx context.Context, topic, title, body string, data map[string]string) error
}
