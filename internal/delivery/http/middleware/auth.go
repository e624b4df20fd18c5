// Package middleware contains echo middleware specific to the TrekMate API.
package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "trekmate/internal/delivery/context"
	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/service"
	"trekmate/internal/infra/auth"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware verifies bearer tokens and puts the caller on the request context.
type AuthMiddleware struct {
	verifier service.TokenVerifier
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(verifier service.TokenVerifier, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier, logger: logger}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		if err := m.attach(c, token); err != nil {
			return err
		}

		return next(c)
	}
}

// Optional attaches the caller when a valid token is present. Requests
// without a token continue anonymously; an invalid token is still rejected.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return next(c)
		}

		if err := m.attach(c, token); err != nil {
			return err
		}

		return next(c)
	}
}

func (m *AuthMiddleware) attach(c echo.Context, token string) error {
	ctx := c.Request().Context()

	claims, err := m.verifier.VerifyToken(ctx, token)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, m.logger).Debug("Rejected bearer token", slog.Any("error", err))

		return domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	ctx = auth.WithClaims(ctx, claims)
	if reqLogger := deliverycontext.GetLogger(ctx); reqLogger != nil {
		ctx = deliverycontext.WithLogger(ctx, reqLogger.With(slog.String("user_id", claims.UserID)))
	}
	c.SetRequest(c.Request().WithContext(ctx))

	return nil
}

// bearerToken reads the Authorization header. Browsers cannot set headers on
// EventSource requests, so stream endpoints may pass the token as access_token.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		if !strings.HasPrefix(header, bearerPrefix) {
			return "", false
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))

		return token, token != ""
	}

	if strings.HasSuffix(c.Path(), "/stream") {
		if token := c.QueryParam("access_token"); token != "" {
			return token, true
		}
	}

	return "", false
}
