package impl

import (
	"sync"

	"trekmate/internal/domain/repository"
	"trekmate/internal/usecase"
)

// liveQueries tracks the live queries a service has opened so they can all
// be detached on shutdown.
type liveQueries struct {
	closedErr error

	mu     sync.Mutex
	nextID uint64
	open   map[uint64]repository.CancelFunc
	closed bool
}

func newLiveQueries(closedErr error) *liveQueries {
	return &liveQueries{
		closedErr: closedErr,
		open:      make(map[uint64]repository.CancelFunc),
	}
}

// attach runs watch and tracks the live query it opens. It fails with
// closedErr once close has been called, before or during watch.
func (l *liveQueries) attach(watch func() (repository.CancelFunc, error)) (usecase.Unsubscribe, error) {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()

		return nil, l.closedErr
	}
	l.nextID++
	id := l.nextID
	l.mu.Unlock()

	cancel, err := watch()
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		cancel()

		return nil, l.closedErr
	}
	l.open[id] = cancel
	l.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.open, id)
			l.mu.Unlock()
			cancel()
		})
	}, nil
}

func (l *liveQueries) close() {
	l.mu.Lock()
	l.closed = true
	open := l.open
	l.open = make(map[uint64]repository.CancelFunc)
	l.mu.Unlock()

	for _, cancel := range open {
		cancel()
	}
}
