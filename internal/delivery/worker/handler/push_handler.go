// Package handler contains the Pub/Sub push handlers of the worker.
package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"trekmate/config"
	deliverycontext "trekmate/internal/delivery/context"
	"trekmate/internal/domain/constants"
	"trekmate/internal/domain/service"
	"trekmate/internal/infra/notification"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError wraps an error to indicate it should trigger a Pub/Sub retry
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// newRetryableError wraps an error as retryable
func newRetryableError(err error) error {
	return &retryableError{err: err}
}

// isRetryableError checks if an error is retryable
func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// PushHandler announces newly planned treks to the new-trek FCM topic
type PushHandler struct {
	verifyPushAuth  bool
	verify          func(*http.Request) error
	topic           string
	logger          *slog.Logger
	notificationSvc service.NotificationService
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config          *config.Config
	Logger          *slog.Logger
	NotificationSvc service.NotificationService
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	// Only Google push subscriptions sign their requests
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth:  verifyPushAuth,
		verify:          verifyPubSubToken,
		topic:           params.Config.Notification.NewTrekTopic,
		logger:          params.Logger,
		notificationSvc: params.NotificationSvc,
	}
}

// HandlePush handles incoming Pub/Sub push messages. Malformed messages are
// acknowledged so Pub/Sub stops redelivering them; transient failures are not.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verify(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusOK)
	}

	if eventType := pushMsg.Message.Attributes["event_type"]; eventType != "" && eventType != service.EventTypeTrekPlanned {
		h.logger.Info("[Worker] Skipping unsupported event",
			slog.String("event_type", eventType),
			slog.String("message_id", pushMsg.Message.MessageID),
		)

		return c.NoContent(http.StatusOK)
	}

	event, err := decodeEvent(&pushMsg)
	if err != nil {
		h.logger.Error("[Worker] Dropping malformed trek event",
			slog.String("message_id", pushMsg.Message.MessageID),
			slog.Any("error", err),
		)

		return c.NoContent(http.StatusOK)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing trek event",
		slog.String("trip_id", event.TripID),
		slog.String("destination_id", event.DestinationID),
	)

	if err := h.announceTrek(ctx, event); err != nil {
		reqLogger.Error("[Worker] Failed to announce trek",
			slog.String("trip_id", event.TripID),
			slog.Any("error", err),
			slog.Bool("retryable", isRetryableError(err)),
		)
		// 503 triggers a Pub/Sub retry, 200 stops it
		if isRetryableError(err) {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	}

	reqLogger.Info("[Worker] Trek announced", slog.String("trip_id", event.TripID))

	return c.NoContent(http.StatusOK)
}

// decodeEvent unpacks and checks the TrekPlannedEvent carried by pushMsg
func decodeEvent(pushMsg *PubSubMessage) (*service.TrekPlannedEvent, error) {
	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode message data")
	}

	var event service.TrekPlannedEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "parse trek event")
	}
	if event.TripID == "" || strings.TrimSpace(event.Name) == "" {
		return nil, errors.New("trek event without trip id or name")
	}

	return &event, nil
}

// extractRequestID extracts request_id from message attributes, event, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.TrekPlannedEvent) string {
	if requestID := pushMsg.Message.Attributes["request_id"]; requestID != "" {
		return requestID
	}
	if event.RequestID != "" {
		return event.RequestID
	}
	// Set by the request-id middleware from X-Request-Id
	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.NewString()
}

// announceTrek sends the topic notification for event
func (h *PushHandler) announceTrek(ctx context.Context, event *service.TrekPlannedEvent) error {
	title, body, data := prepareNotificationContent(event)

	err := h.notificationSvc.SendTopicNotification(ctx, h.topic, title, body, data)
	if err == nil {
		return nil
	}
	if errors.Is(err, notification.ErrInvalidTarget) {
		return err
	}

	return newRetryableError(err)
}

// prepareNotificationContent creates the notification title, body, and data
func prepareNotificationContent(event *service.TrekPlannedEvent) (title, body string, data map[string]string) {
	title = "New trek planned"
	body = event.Name
	if event.Location != "" {
		body = fmt.Sprintf("%s in %s", body, event.Location)
	}
	if event.StartDate != "" {
		body = fmt.Sprintf("%s, starting %s", body, event.StartDate)
	}

	data = map[string]string{
		"type":           "trek_planned",
		"destination_id": event.DestinationID,
		"trip_id":        event.TripID,
		"created_by":     event.CreatedBy,
	}

	return title, body, data
}

// verifyPubSubToken verifies the JWT token from Google Pub/Sub push requests
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the URL of this endpoint
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
