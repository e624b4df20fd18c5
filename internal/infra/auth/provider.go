package auth

import (
	"context"
	"log/slog"

	"trekmate/config"
	"trekmate/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// VerifierParams holds dependencies for the TokenVerifier, injected by Fx
type VerifierParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	App    *firebase.App `optional:"true"`
}

// NewTokenVerifier selects the verifier named by auth.provider
func NewTokenVerifier(params VerifierParams) (service.TokenVerifier, error) {
	provider := config.AuthProviderJWT
	if params.Config.Auth != nil && params.Config.Auth.Provider != "" {
		provider = params.Config.Auth.Provider
	}

	switch provider {
	case config.AuthProviderJWT:
		params.Logger.Warn("Verifying HS256 development tokens; do not use in production")

		svc, err := NewJWTService(params.Config)
		if err != nil {
			return nil, err
		}

		return svc, nil
	case config.AuthProviderFirebase:
		params.Logger.Info("Verifying Firebase ID tokens")

		return NewFirebaseVerifier(params.Ctx, params.App)
	default:
		return nil, errors.Errorf("unknown auth provider: %s", provider)
	}
}
