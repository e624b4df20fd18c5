package usecase

import (
	"context"

	"trekmate/internal/domain/entity"
)

// DeviceInfo represents device information for registration
type DeviceInfo struct {
	FCMToken string `json:"fcm_token" validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=ios android web"`
}

// DeviceUsecase defines the interface for device management use cases
type DeviceUsecase interface {
	// RegisterDevice stores the caller's push token, replacing any previous one
	RegisterDevice(ctx context.Context, deviceInfo *DeviceInfo) (*entity.UserProfile, error)
}
