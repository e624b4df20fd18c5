// Package router contains routing for the HTTP delivery.
package router

import (
	"trekmate/internal/delivery/http/middleware"
	"trekmate/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	DestinationHandler  *handler.DestinationHandler
	ChatHandler         *handler.ChatHandler
	NotificationHandler *handler.NotificationHandler
	DeviceHandler       *handler.DeviceHandler
	AuthMiddleware      *middleware.AuthMiddleware
	Streamer            *handler.Streamer
}

// router holds all the handlers that need to be registered.
type router struct {
	destinationHandler  *handler.DestinationHandler
	chatHandler         *handler.ChatHandler
	notificationHandler *handler.NotificationHandler
	deviceHandler       *handler.DeviceHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		destinationHandler:  params.DestinationHandler,
		chatHandler:         params.ChatHandler,
		notificationHandler: params.NotificationHandler,
		deviceHandler:       params.DeviceHandler,
		authMiddleware:      params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Read models work for anonymous callers too
	destinations := e.Group("/destinations", r.authMiddleware.Optional)
	{
		destinations.GET("", r.destinationHandler.ListDestinations)
		destinations.GET("/stream", r.destinationHandler.StreamDestinations)
		destinations.GET("/:id/qrcode", r.destinationHandler.DestinationQRCode)
	}

	trips := e.Group("/trips")
	{
		trips.GET("/planned", r.destinationHandler.ListPlannedTrips, r.authMiddleware.Optional)
		trips.GET("/planned/stream", r.destinationHandler.StreamPlannedTrips, r.authMiddleware.Optional)
		trips.GET("/mine", r.destinationHandler.ListMyTrips, r.authMiddleware.Optional)
		trips.GET("/mine/stream", r.destinationHandler.StreamMyTrips, r.authMiddleware.Optional)
		trips.POST("", r.destinationHandler.PlanTrek, r.authMiddleware.Authenticate)
	}

	chats := e.Group("/chats/:peerID/messages", r.authMiddleware.Authenticate)
	{
		chats.GET("", r.chatHandler.ListMessages)
		chats.GET("/stream", r.chatHandler.StreamMessages)
		chats.POST("", r.chatHandler.SendMessage)
	}

	notifications := e.Group("/notifications", r.authMiddleware.Authenticate)
	{
		notifications.GET("/unread", r.notificationHandler.GetUnread)
		notifications.GET("/unread/stream", r.notificationHandler.StreamUnread)
		notifications.PUT("/unread", r.notificationHandler.SetUnread)
	}

	me := e.Group("/me", r.authMiddleware.Authenticate)
	{
		me.PUT("/device", r.deviceHandler.RegisterDevice)
	}
}
