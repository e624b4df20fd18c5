package service

import (
	"context"
	"time"
)

// IdentityProvider exposes the currently authenticated user, if any.
type IdentityProvider interface {
	// CurrentUserID returns the signed-in user's ID and true, or "" and false
	// when the caller is anonymous.
	CurrentUserID(ctx context.Context) (string, bool)
}

// Claims are the verified facts carried by a bearer token.
type Claims struct {
	UserID      string
	DisplayName string
	ExpiresAt   time.Time
}

// TokenVerifier validates bearer tokens presented by clients.
type TokenVerifier interface {
	// VerifyToken checks the token and returns the claims it carries.
	VerifyToken(ctx context.Context, token string) (*Claims, error)
}
