package usecase

import (
	"context"

	"trekmate/internal/domain/entity"
)

// SendMessageInput is a chat message written by the caller
type SendMessageInput struct {
	PeerID     string `json:"-"`
	Text       string `json:"text" validate:"required,max=4000"`
	SenderName string `json:"sender_name" validate:"max=120"`
}

// ChatUsecase provides one-to-one conversations
type ChatUsecase interface {
	// SubscribeToConversation delivers the messages exchanged with peerID, oldest first
	SubscribeToConversation(ctx context.Context, peerID string, fn func([]entity.Message)) (Unsubscribe, error)

	// SendMessage stores the message and notifies the receiver
	SendMessage(ctx context.Context, input *SendMessageInput) (*entity.Message, error)

	// Close detaches every conversation still open
	Close()
}
