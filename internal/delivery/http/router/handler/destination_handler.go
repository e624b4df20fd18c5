package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "trekmate/internal/delivery/context"
	"trekmate/internal/delivery/http/response"
	"trekmate/internal/domain/entity"
	"trekmate/internal/domain/service"
	"trekmate/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	eventDestinations = "destinations"
	eventPlannedTrips = "planned_trips"
	eventMyTrips      = "my_trips"
)

// DestinationHandlerParams holds dependencies for DestinationHandler, injected by Fx.
type DestinationHandlerParams struct {
	fx.In

	DestinationUC usecase.DestinationUsecase
	QRCodeSvc     service.QRCodeService
	Streamer      *Streamer
	Logger        *slog.Logger
}

// DestinationHandler serves the destination and trip read models and trek planning.
type DestinationHandler struct {
	destinationUC usecase.DestinationUsecase
	qrCodeSvc     service.QRCodeService
	streamer      *Streamer
	logger        *slog.Logger
}

// NewDestinationHandler is the constructor for DestinationHandler
func NewDestinationHandler(params DestinationHandlerParams) *DestinationHandler {
	return &DestinationHandler{
		destinationUC: params.DestinationUC,
		qrCodeSvc:     params.QRCodeSvc,
		streamer:      params.Streamer,
		logger:        params.Logger,
	}
}

// ListDestinations returns the current destination list.
func (h *DestinationHandler) ListDestinations(c echo.Context) error {
	return h.list(c, h.destinationUC.SubscribeToDestinations)
}

// StreamDestinations streams the destination list.
func (h *DestinationHandler) StreamDestinations(c echo.Context) error {
	return serveStream[[]entity.Destination](h.streamer, c, eventDestinations, h.destinationUC.SubscribeToDestinations)
}

// ListPlannedTrips returns the caller's planned trips followed by the upcoming treks.
func (h *DestinationHandler) ListPlannedTrips(c echo.Context) error {
	return h.list(c, h.destinationUC.SubscribeToPlannedTrips)
}

// StreamPlannedTrips streams the planned trips list.
func (h *DestinationHandler) StreamPlannedTrips(c echo.Context) error {
	return serveStream[[]entity.Destination](h.streamer, c, eventPlannedTrips, h.destinationUC.SubscribeToPlannedTrips)
}

// ListMyTrips returns only the caller's own planned trips.
func (h *DestinationHandler) ListMyTrips(c echo.Context) error {
	return h.list(c, h.destinationUC.SubscribeToMyTrips)
}

// StreamMyTrips streams the caller's own planned trips.
func (h *DestinationHandler) StreamMyTrips(c echo.Context) error {
	return serveStream[[]entity.Destination](h.streamer, c, eventMyTrips, h.destinationUC.SubscribeToMyTrips)
}

func (h *DestinationHandler) list(c echo.Context, subscribe subscribeFunc[[]entity.Destination]) error {
	items, err := firstSnapshot(c.Request().Context(), h.streamer, subscribe)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, items, "")
}

// PlanTrek stores a new trek for the caller.
func (h *DestinationHandler) PlanTrek(c echo.Context) error {
	var req usecase.PlanTrekInput
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid trek input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	planned, err := h.destinationUC.PlanNewTrek(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, planned, "Trek planned")
}

// DestinationQRCode renders the share QR code of a destination as PNG.
func (h *DestinationHandler) DestinationQRCode(c echo.Context) error {
	ctx := c.Request().Context()

	destination, err := h.destinationUC.FindDestination(ctx, c.Param("id"))
	if err != nil {
		return err
	}

	png, err := h.qrCodeSvc.GenerateDestinationQR(destination)
	if err != nil {
		deliverycontext.GetLoggerOrDefault(ctx, h.logger).Error("Failed to render QR code",
			slog.String("destination_id", destination.ID),
			slog.Any("error", err),
		)

		return err
	}

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=3600")

	return c.Blob(http.StatusOK, "image/png", png)
}
