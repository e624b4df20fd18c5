package usecase

import (
	"context"
)

// UnreadUsecase exposes the caller's unread notification counter
type UnreadUsecase interface {
	// UnreadCount returns the caller's current count
	UnreadCount(ctx context.Context) (int, error)

	// SetUnreadCount replaces the caller's count and notifies subscribers
	SetUnreadCount(ctx context.Context, count int) error

	// SubscribeToUnread registers fn for every future change of the caller's count
	SubscribeToUnread(ctx context.Context, fn func(int)) (Unsubscribe, error)
}
