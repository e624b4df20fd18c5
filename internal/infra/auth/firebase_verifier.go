package auth

import (
	"context"
	"time"

	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/service"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
)

// firebaseVerifier checks Firebase Authentication ID tokens.
type firebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates a verifier backed by the Firebase Auth client.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (service.TokenVerifier, error) {
	if app == nil {
		return nil, errors.New("firebase auth provider requires firebase configuration")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get auth client")
	}

	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyToken(ctx context.Context, token string) (*service.Claims, error) {
	tok, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	name, _ := tok.Claims["name"].(string)

	return &service.Claims{
		UserID:      tok.UID,
		DisplayName: name,
		ExpiresAt:   time.Unix(tok.Expires, 0),
	}, nil
}
