package impl

import (
	"context"
	"strings"
	"time"

	"trekmate/internal/domain/entity"
	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/repository"
	"trekmate/internal/domain/service"
	"trekmate/internal/usecase"

	"github.com/pkg/errors"
)

type deviceService struct {
	store    repository.DocumentStore
	identity service.IdentityProvider
	now      func() time.Time
}

// NewDeviceService creates a new device service instance
func NewDeviceService(store repository.DocumentStore, identity service.IdentityProvider) usecase.DeviceUsecase {
	return &deviceService{
		store:    store,
		identity: identity,
		now:      time.Now,
	}
}

// RegisterDevice merges the caller's push token into users/{uid}
func (s *deviceService) RegisterDevice(ctx context.Context, deviceInfo *usecase.DeviceInfo) (*entity.UserProfile, error) {
	uid, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, domainerrors.ErrUnauthenticated
	}
	if deviceInfo == nil || strings.TrimSpace(deviceInfo.FCMToken) == "" {
		return nil, domainerrors.ErrFCMTokenRequired
	}

	profile := &entity.UserProfile{
		UserID:    uid,
		FCMToken:  strings.TrimSpace(deviceInfo.FCMToken),
		Platform:  deviceInfo.Platform,
		UpdatedAt: s.now().UTC(),
	}

	err := s.store.Set(ctx, repository.CollectionUsers, uid, repository.Fields{
		fieldFCMToken:  profile.FCMToken,
		fieldPlatform:  profile.Platform,
		fieldUpdatedAt: profile.UpdatedAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to register device")
	}

	return profile, nil
}
