package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"trekmate/internal/infra/persistence/memory"
)

// staticIdentity signs every request in as the same user; "" is anonymous.
type staticIdentity string

func (s staticIdentity) CurrentUserID(context.Context) (string, bool) {
	return string(s), s != ""
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// tickingClock returns a later instant on every call.
func tickingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC)

	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Minute)

		return t
	}
}

func newMemoryStore() *memory.DocumentStore {
	return memory.NewDocumentStore(memory.WithClock(tickingClock()))
}

// recorder keeps every delivery of a subscription.
type recorder[T any] struct {
	mu    sync.Mutex
	calls [][]T
}

func (r *recorder[T]) fn(items []T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, items)
}

func (r *recorder[T]) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.calls)
}

func (r *recorder[T]) last() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return nil
	}

	return r.calls[len(r.calls)-1]
}
