package handler

import (
	"context"
	"log/slog"
	"net/http"

	"trekmate/internal/delivery/http/response"
	"trekmate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const eventUnread = "unread"

// UnreadCount is the body of the unread counter endpoints.
type UnreadCount struct {
	Count int `json:"count"`
}

// SetUnreadRequest represents the request body for replacing the unread counter
type SetUnreadRequest struct {
	Count *int `json:"count" validate:"required"`
}

// NotificationHandlerParams holds dependencies for NotificationHandler, injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	UnreadUC usecase.UnreadUsecase
	Streamer *Streamer
	Logger   *slog.Logger
}

// NotificationHandler serves the caller's unread notification counter.
type NotificationHandler struct {
	unreadUC usecase.UnreadUsecase
	streamer *Streamer
	logger   *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		unreadUC: params.UnreadUC,
		streamer: params.Streamer,
		logger:   params.Logger,
	}
}

// GetUnread returns the caller's unread count.
func (h *NotificationHandler) GetUnread(c echo.Context) error {
	count, err := h.unreadUC.UnreadCount(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, UnreadCount{Count: count}, "")
}

// StreamUnread streams the caller's unread count, starting with its current value.
func (h *NotificationHandler) StreamUnread(c echo.Context) error {
	return serveStream[UnreadCount](h.streamer, c, eventUnread, h.subscribeUnread)
}

// subscribeUnread delivers the current count and then every change.
func (h *NotificationHandler) subscribeUnread(ctx context.Context, fn func(UnreadCount)) (usecase.Unsubscribe, error) {
	unsubscribe, err := h.unreadUC.SubscribeToUnread(ctx, func(n int) {
		fn(UnreadCount{Count: n})
	})
	if err != nil {
		return nil, err
	}

	count, err := h.unreadUC.UnreadCount(ctx)
	if err != nil {
		unsubscribe()

		return nil, err
	}
	fn(UnreadCount{Count: count})

	return unsubscribe, nil
}

// SetUnread replaces the caller's unread count; 0 marks everything read.
func (h *NotificationHandler) SetUnread(c echo.Context) error {
	var req SetUnreadRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid unread count")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.unreadUC.SetUnreadCount(c.Request().Context(), *req.Count); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, UnreadCount{Count: *req.Count}, "")
}
