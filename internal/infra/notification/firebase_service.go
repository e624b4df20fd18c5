// Package notification delivers push notifications through Firebase Cloud Messaging.
package notification

import (
	"context"
	"log/slog"

	"trekmate/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// messenger is the part of *messaging.Client used here
type messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type firebaseService struct {
	client messenger
	logger *slog.Logger
}

// Params holds dependencies for the NotificationService, injected by Fx
type Params struct {
	fx.In

	Ctx    context.Context
	Logger *slog.Logger
	App    *firebase.App `optional:"true"`
}

// NewNotificationService returns an FCM-backed service, or a logging no-op
// when no Firebase app is configured.
func NewNotificationService(params Params) (service.NotificationService, error) {
	if params.App == nil {
		params.Logger.Info("Firebase not configured, push notifications disabled")

		return &noopService{logger: params.Logger}, nil
	}

	client, err := params.App.Messaging(params.Ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseService{client: client, logger: params.Logger}, nil
}

// SendSingleNotification sends a push notification to one device token
func (s *firebaseService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	if token == "" {
		return errors.New("device token is required")
	}

	return s.send(ctx, &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
	})
}

// SendTopicNotification sends a push notification to every subscriber of topic
func (s *firebaseService) SendTopicNotification(ctx context.Context, topic, title, body string, data map[string]string) error {
	if topic == "" {
		return errors.New("topic is required")
	}

	return s.send(ctx, &messaging.Message{
		Topic:        topic,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
	})
}

func (s *firebaseService) send(ctx context.Context, message *messaging.Message) error {
	id, err := s.client.Send(ctx, message)
	if err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return errors.Wrap(ErrInvalidTarget, err.Error())
		}

		return errors.Wrap(err, "failed to send notification")
	}

	s.logger.Debug("Push notification sent", slog.String("message_id", id))

	return nil
}

// ErrInvalidTarget reports a token or topic FCM will never accept; retrying is pointless.
var ErrInvalidTarget = errors.New("invalid notification target")

type noopService struct {
	logger *slog.Logger
}

func (s *noopService) SendSingleNotification(_ context.Context, _, title, _ string, _ map[string]string) error {
	s.logger.Debug("Push disabled, dropping notification", slog.String("title", title))

	return nil
}

func (s *noopService) SendTopicNotification(_ context.Context, topic, title, _ string, _ map[string]string) error {
	s.logger.Debug("Push disabled, dropping topic notification",
		slog.String("topic", topic),
		slog.String("title", title),
	)

	return nil
}
