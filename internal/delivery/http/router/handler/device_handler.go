package handler

import (
	"log/slog"
	"net/http"

	"trekmate/internal/delivery/http/response"
	"trekmate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DeviceHandlerParams holds dependencies for DeviceHandler, injected by Fx.
type DeviceHandlerParams struct {
	fx.In

	DeviceUC usecase.DeviceUsecase
	Logger   *slog.Logger
}

// DeviceHandler holds dependencies for device-related handlers
type DeviceHandler struct {
	deviceUC usecase.DeviceUsecase
	logger   *slog.Logger
}

// NewDeviceHandler is the constructor for DeviceHandler
func NewDeviceHandler(params DeviceHandlerParams) *DeviceHandler {
	return &DeviceHandler{
		deviceUC: params.DeviceUC,
		logger:   params.Logger,
	}
}

// RegisterDevice stores the caller's push token.
func (h *DeviceHandler) RegisterDevice(c echo.Context) error {
	var req usecase.DeviceInfo
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid device input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.deviceUC.RegisterDevice(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, profile, "Device registered")
}
