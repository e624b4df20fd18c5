package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "trekmate/internal/delivery/context"
	"trekmate/internal/domain/entity"
	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/repository"
	"trekmate/internal/domain/service"
	"trekmate/internal/usecase"

	"github.com/pkg/errors"
)

const defaultSenderName = "TrekMate"

// ErrChatClosed is returned by conversation subscriptions opened after Close.
var ErrChatClosed = domainerrors.ErrReadModelUnavailable.WithDetails("chat service is closed")

type chatService struct {
	store    repository.DocumentStore
	identity service.IdentityProvider
	counters *UnreadCounters
	push     service.NotificationService
	logger   *slog.Logger
	queries  *liveQueries
}

// NewChatService creates the one-to-one chat use case.
func NewChatService(
	store repository.DocumentStore,
	identity service.IdentityProvider,
	counters *UnreadCounters,
	push service.NotificationService,
	logger *slog.Logger,
) usecase.ChatUsecase {
	return &chatService{
		store:    store,
		identity: identity,
		counters: counters,
		push:     push,
		logger:   logger,
		queries:  newLiveQueries(ErrChatClosed),
	}
}

// conversation resolves the caller and the conversation shared with peerID.
func (s *chatService) conversation(ctx context.Context, peerID string) (uid, chatID string, err error) {
	uid, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return "", "", domainerrors.ErrUnauthenticated
	}
	chatID, ok = entity.ConversationID(uid, strings.TrimSpace(peerID))
	if !ok {
		return "", "", domainerrors.ErrConversationUnavailable
	}

	return uid, chatID, nil
}

func (s *chatService) SubscribeToConversation(ctx context.Context, peerID string, fn func([]entity.Message)) (usecase.Unsubscribe, error) {
	_, chatID, err := s.conversation(ctx, peerID)
	if err != nil {
		return nil, err
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	q := repository.Query{Collection: repository.CollectionMessages}.Where(fieldChatID, chatID)

	return s.queries.attach(func() (repository.CancelFunc, error) {
		cancel, err := s.store.Watch(ctx, q, func(docs []repository.Document, err error) {
			if err != nil {
				logger.Error("Conversation live query failed",
					slog.String("chat_id", chatID),
					slog.Any("error", err),
				)

				return
			}

			messages := make([]entity.Message, 0, len(docs))
			for _, doc := range docs {
				messages = append(messages, messageFromDocument(doc))
			}
			sortOldestFirst(messages)

			fn(messages)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "watch conversation %s", chatID)
		}

		return cancel, nil
	})
}

// Close detaches every open conversation. Later subscriptions fail with ErrChatClosed.
func (s *chatService) Close() {
	s.queries.close()
}

// SendMessage stores the message, bumps the receiver's unread count and
// pushes a notification to the receiver's device when one is registered.
func (s *chatService) SendMessage(ctx context.Context, input *usecase.SendMessageInput) (*entity.Message, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	uid, chatID, err := s.conversation(ctx, input.PeerID)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, domainerrors.ErrEmptyMessage
	}

	msg := &entity.Message{
		ChatID:     chatID,
		Text:       text,
		SenderID:   uid,
		ReceiverID: strings.TrimSpace(input.PeerID),
		SenderName: firstNonEmpty(input.SenderName, defaultSenderName),
	}

	id, err := s.store.Insert(ctx, repository.CollectionMessages, messageFields(msg))
	if err != nil {
		logger.Error("Failed to send message",
			slog.String("chat_id", chatID),
			slog.Any("error", err),
		)

		return nil, errors.Wrap(err, "send message")
	}
	msg.ID = id

	s.counters.For(msg.ReceiverID).Increment()
	s.pushToReceiver(ctx, logger, msg)

	return msg, nil
}

func (s *chatService) pushToReceiver(ctx context.Context, logger *slog.Logger, msg *entity.Message) {
	doc, err := s.store.Get(ctx, repository.CollectionUsers, msg.ReceiverID)
	if err != nil {
		if !errors.Is(err, repository.ErrDocumentNotFound) {
			logger.Warn("Failed to load receiver profile", slog.Any("error", err))
		}

		return
	}

	token := stringField(doc.Fields, fieldFCMToken)
	if token == "" {
		return
	}

	data := map[string]string{
		"type":     "chat_message",
		"chatId":   msg.ChatID,
		"senderId": msg.SenderID,
	}
	if err := s.push.SendSingleNotification(ctx, token, msg.SenderName, msg.Text, data); err != nil {
		logger.Warn("Failed to push chat notification",
			slog.String("receiver_id", msg.ReceiverID),
			slog.Any("error", err),
		)
	}
}
