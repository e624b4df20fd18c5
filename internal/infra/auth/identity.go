package auth

import (
	"context"

	"trekmate/internal/domain/service"
)

type claimsKey struct{}

// WithClaims stores the verified caller in ctx.
func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// ClaimsFromContext returns the verified caller, if any.
func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*service.Claims)
	if !ok || claims == nil || claims.UserID == "" {
		return nil, false
	}

	return claims, true
}

// contextIdentity reads the signed-in user placed in the context by the auth middleware.
type contextIdentity struct{}

// NewContextIdentity returns the request-scoped IdentityProvider.
func NewContextIdentity() service.IdentityProvider {
	return contextIdentity{}
}

func (contextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	claims, ok := ClaimsFromContext(ctx)
	if !ok {
		return "", false
	}

	return claims.UserID, true
}
