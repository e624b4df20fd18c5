package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"trekmate/config"
	deliverycontext "trekmate/internal/delivery/context"
	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// LoggerMiddleware controllable logging middleware
type LoggerMiddleware struct {
	logger   *slog.Logger
	identity service.IdentityProvider
	debug    bool
	now      func() time.Time
}

// NewLoggerMiddleware creates a new logger middleware. identity may be nil
// for servers without signed-in callers.
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config, identity service.IdentityProvider) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger:   logger,
		identity: identity,
		debug:    config.Env.Debug,
		now:      time.Now,
	}
}

// Handle logs every request in debug mode, and failed requests always.
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := m.now()
		err := next(c)

		if m.debug || err != nil || c.Response().Status >= 500 {
			m.logRequest(c, start, err)
		}

		return err
	}
}

// logRequest logs request details
func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, err error) {
	req := c.Request()
	res := c.Response()

	status := res.Status
	if err != nil && !res.Committed {
		status = statusOf(err)
	}

	fields := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", m.now().Sub(start)),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}

	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}
	if m.identity != nil {
		if uid, ok := m.identity.CurrentUserID(req.Context()); ok {
			fields = append(fields, slog.String("user_id", uid))
		}
	}
	if strings.HasPrefix(res.Header().Get(echo.HeaderContentType), "text/event-stream") {
		fields = append(fields, slog.Bool("stream", true))
	}
	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	logLevel := slog.LevelInfo
	if status >= 400 {
		logLevel = slog.LevelWarn
	}
	if status >= 500 {
		logLevel = slog.LevelError
	}

	m.logger.LogAttrs(context.Background(), logLevel, "HTTP Request", fields...)
}

// statusOf predicts the status the error handler will write for err.
func statusOf(err error) int {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPCode()
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
