package handler

import (
	"context"
	"log/slog"
	"net/http"

	"trekmate/internal/delivery/http/response"
	"trekmate/internal/domain/entity"
	"trekmate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const eventMessages = "messages"

// ChatHandlerParams holds dependencies for ChatHandler, injected by Fx.
type ChatHandlerParams struct {
	fx.In

	ChatUC   usecase.ChatUsecase
	Streamer *Streamer
	Logger   *slog.Logger
}

// ChatHandler serves one-to-one conversations.
type ChatHandler struct {
	chatUC   usecase.ChatUsecase
	streamer *Streamer
	logger   *slog.Logger
}

// NewChatHandler is the constructor for ChatHandler
func NewChatHandler(params ChatHandlerParams) *ChatHandler {
	return &ChatHandler{
		chatUC:   params.ChatUC,
		streamer: params.Streamer,
		logger:   params.Logger,
	}
}

func (h *ChatHandler) conversation(peerID string) subscribeFunc[[]entity.Message] {
	return func(ctx context.Context, fn func([]entity.Message)) (usecase.Unsubscribe, error) {
		return h.chatUC.SubscribeToConversation(ctx, peerID, fn)
	}
}

// ListMessages returns the conversation with :peerID, oldest first.
func (h *ChatHandler) ListMessages(c echo.Context) error {
	messages, err := firstSnapshot(c.Request().Context(), h.streamer, h.conversation(c.Param("peerID")))
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, messages, "")
}

// StreamMessages streams the conversation with :peerID.
func (h *ChatHandler) StreamMessages(c echo.Context) error {
	return serveStream(h.streamer, c, eventMessages, h.conversation(c.Param("peerID")))
}

// SendMessage sends a message to :peerID.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req usecase.SendMessageInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid message input")
	}
	req.PeerID = c.Param("peerID")
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.chatUC.SendMessage(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, msg, "Message sent")
}
