package handler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"trekmate/config"
	deliverycontext "trekmate/internal/delivery/context"
	"trekmate/internal/delivery/http/response"
	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/lifecycle"
	"trekmate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultHeartbeat = 25 * time.Second

// subscribeFunc opens a live read model delivering full snapshots.
type subscribeFunc[T any] func(ctx context.Context, fn func(T)) (usecase.Unsubscribe, error)

// latest holds the newest undelivered snapshot. Older ones are replaced.
type latest[T any] struct {
	mu sync.Mutex
	ch chan T
}

func newLatest[T any]() *latest[T] {
	return &latest[T]{ch: make(chan T, 1)}
}

func (l *latest[T]) put(v T) {
	l.mu.Lock()
	defer l.mu.Unlock()

	select {
	case <-l.ch:
	default:
	}
	l.ch <- v
}

// Streamer serves live read models as server-sent events and ends every
// open stream when the server shuts down.
type Streamer struct {
	heartbeat   time.Duration
	firstWithin time.Duration
	logger      *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// StreamerParams holds dependencies for Streamer, injected by Fx.
type StreamerParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewStreamer is the constructor for Streamer
func NewStreamer(params StreamerParams) *Streamer {
	heartbeat := params.Config.HTTP.StreamHeartbeat
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}

	return &Streamer{
		heartbeat:   heartbeat,
		firstWithin: lifecycle.DefaultTimeout,
		logger:      params.Logger,
		done:        make(chan struct{}),
	}
}

// Close ends every open stream. Safe to call more than once.
func (s *Streamer) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// serveStream forwards every snapshot of subscribe to the client as an event
// named event until the client leaves or the server shuts down.
func serveStream[T any](s *Streamer, c echo.Context, event string, subscribe subscribeFunc[T]) error {
	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	box := newLatest[T]()
	unsubscribe, err := subscribe(ctx, box.put)
	if err != nil {
		return subscriptionError(err)
	}
	defer unsubscribe()

	stream := response.OpenEventStream(c)

	ticker := time.NewTicker(s.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.done:
			return nil
		case snapshot := <-box.ch:
			if err := stream.Send(event, snapshot); err != nil {
				logger.Debug("Stream closed by client", slog.String("event", event), slog.Any("error", err))

				return nil
			}
		case <-ticker.C:
			if err := stream.Heartbeat(); err != nil {
				logger.Debug("Stream closed by client", slog.String("event", event), slog.Any("error", err))

				return nil
			}
		}
	}
}

// firstSnapshot subscribes, waits for the first delivery and detaches again.
func firstSnapshot[T any](ctx context.Context, s *Streamer, subscribe subscribeFunc[T]) (T, error) {
	var zero T

	ctx, cancel := context.WithTimeout(ctx, s.firstWithin)
	defer cancel()

	box := newLatest[T]()
	unsubscribe, err := subscribe(ctx, box.put)
	if err != nil {
		return zero, subscriptionError(err)
	}
	defer unsubscribe()

	select {
	case snapshot := <-box.ch:
		return snapshot, nil
	case <-s.done:
		return zero, domainerrors.ErrReadModelUnavailable
	case <-ctx.Done():
		return zero, domainerrors.ErrReadModelUnavailable.WrapMessage(ctx.Err().Error())
	}
}

func subscriptionError(err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	return domainerrors.ErrReadModelUnavailable.WrapMessage(err.Error())
}
