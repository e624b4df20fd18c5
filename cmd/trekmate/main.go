package main

import (
	"context"
	"log/slog"
	"os"

	"trekmate/config"
	"trekmate/internal/delivery"
	"trekmate/internal/delivery/http"
	"trekmate/internal/delivery/http/middleware"
	"trekmate/internal/delivery/http/router/handler"
	"trekmate/internal/domain/repository"
	"trekmate/internal/domain/service"
	"trekmate/internal/infra/auth"
	"trekmate/internal/infra/firebase"
	logs "trekmate/internal/infra/log"
	"trekmate/internal/infra/notification"
	"trekmate/internal/infra/persistence"
	"trekmate/internal/infra/pubsub"
	"trekmate/internal/infra/qrcode"
	"trekmate/internal/usecase"
	"trekmate/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectMiddleware(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		firebase.NewApp,
		persistence.NewDocumentStore,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewTokenVerifier,
			auth.NewContextIdentity,
			notification.NewNotificationService,
			pubsub.NewEventPublisher,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewTrekLibrary,
			impl.NewUnreadCounters,
			impl.NewUnreadService,
			newChatService,
			impl.NewDeviceService,
			newDestinationStore,
		),
	)
}

// newDestinationStore detaches every live query when the app stops
func newDestinationStore(
	lc fx.Lifecycle,
	store repository.DocumentStore,
	identity service.IdentityProvider,
	publisher service.EventPublisher,
	library *impl.TrekLibrary,
	logger *slog.Logger,
) usecase.DestinationUsecase {
	destinations := impl.NewDestinationStore(store, identity, publisher, library, logger)
	lc.Append(fx.StopHook(destinations.Close))

	return destinations
}

// newChatService detaches every open conversation when the app stops
func newChatService(
	lc fx.Lifecycle,
	store repository.DocumentStore,
	identity service.IdentityProvider,
	counters *impl.UnreadCounters,
	push service.NotificationService,
	logger *slog.Logger,
) usecase.ChatUsecase {
	chats := impl.NewChatService(store, identity, counters, push, logger)
	lc.Append(fx.StopHook(chats.Close))

	return chats
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewStreamer,
			handler.NewDestinationHandler,
			handler.NewChatHandler,
			handler.NewNotificationHandler,
			handler.NewDeviceHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
