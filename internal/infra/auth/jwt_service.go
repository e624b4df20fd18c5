// Package auth resolves who is calling: bearer token verification and the
// request-scoped current user.
package auth

import (
	"context"
	"strings"
	"time"

	"trekmate/config"
	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const devIssuer = "trekmate-dev"

// tokenClaims are the claims carried by development tokens.
type tokenClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies HS256 tokens for local development, where
// no Firebase project is available.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService builds the service from auth.jwtSecret and auth.tokenTtl.
func NewJWTService(cfg *config.Config) (*JWTService, error) {
	if cfg.Auth == nil || strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	ttl := cfg.Auth.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &JWTService{
		secret: []byte(cfg.Auth.JWTSecret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// IssueToken signs a token for userID. The display name travels in the "name" claim.
func (s *JWTService) IssueToken(userID, displayName string) (string, time.Time, error) {
	if userID == "" {
		return "", time.Time{}, errors.New("user id is required")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := tokenClaims{
		Name: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    devIssuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}

	return signed, expiresAt, nil
}

// VerifyToken checks signature, algorithm, issuer and expiry.
func (s *JWTService) VerifyToken(_ context.Context, tokenString string) (*service.Claims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(devIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}
	if claims.Subject == "" {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token has no subject")
	}

	return &service.Claims{
		UserID:      claims.Subject,
		DisplayName: claims.Name,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}
