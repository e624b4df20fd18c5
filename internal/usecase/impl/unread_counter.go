package impl

import (
	"container/list"
	"context"
	"sync"

	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/service"
	"trekmate/internal/usecase"
)

// UnreadCounter holds an unread notification count and notifies subscribers
// of every change. Subscribers run synchronously on the goroutine calling
// Set, in registration order, after the lock is released.
type UnreadCounter struct {
	mu    sync.Mutex
	value int
	subs  *list.List // of func(int)
}

// NewUnreadCounter creates a counter starting at zero.
func NewUnreadCounter() *UnreadCounter {
	return &UnreadCounter{subs: list.New()}
}

// Get returns the current count.
func (c *UnreadCounter) Get() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.value
}

// Set replaces the count and notifies every subscriber with n. Negative
// values are stored as given.
func (c *UnreadCounter) Set(n int) {
	c.mu.Lock()
	c.value = n
	subs := c.snapshotLocked()
	c.mu.Unlock()

	notify(subs, n)
}

// Increment adds one to the count, notifies subscribers and returns the new value.
func (c *UnreadCounter) Increment() int {
	c.mu.Lock()
	c.value++
	n := c.value
	subs := c.snapshotLocked()
	c.mu.Unlock()

	notify(subs, n)

	return n
}

// Subscribe registers fn. Registering the same function twice yields two
// independent registrations. The returned Unsubscribe removes exactly this one.
func (c *UnreadCounter) Subscribe(fn func(int)) usecase.Unsubscribe {
	c.mu.Lock()
	el := c.subs.PushBack(fn)
	c.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			c.mu.Lock()
			c.subs.Remove(el)
			c.mu.Unlock()
		})
	}
}

// snapshotLocked copies the registrations so subscribers may unsubscribe
// while being notified.
func (c *UnreadCounter) snapshotLocked() []func(int) {
	subs := make([]func(int), 0, c.subs.Len())
	for el := c.subs.Front(); el != nil; el = el.Next() {
		subs = append(subs, el.Value.(func(int)))
	}

	return subs
}

func notify(subs []func(int), n int) {
	for _, fn := range subs {
		fn(n)
	}
}

// UnreadCounters keeps one UnreadCounter per user.
type UnreadCounters struct {
	mu       sync.Mutex
	counters map[string]*UnreadCounter
}

// NewUnreadCounters creates an empty registry.
func NewUnreadCounters() *UnreadCounters {
	return &UnreadCounters{counters: make(map[string]*UnreadCounter)}
}

// For returns the user's counter, creating it on first use.
func (r *UnreadCounters) For(userID string) *UnreadCounter {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.counters[userID]
	if !ok {
		c = NewUnreadCounter()
		r.counters[userID] = c
	}

	return c
}

type unreadService struct {
	counters *UnreadCounters
	identity service.IdentityProvider
}

// NewUnreadService exposes the signed-in caller's counter.
func NewUnreadService(counters *UnreadCounters, identity service.IdentityProvider) usecase.UnreadUsecase {
	return &unreadService{
		counters: counters,
		identity: identity,
	}
}

func (s *unreadService) counter(ctx context.Context) (*UnreadCounter, error) {
	uid, ok := s.identity.CurrentUserID(ctx)
	if !ok {
		return nil, domainerrors.ErrUnauthenticated
	}

	return s.counters.For(uid), nil
}

func (s *unreadService) UnreadCount(ctx context.Context) (int, error) {
	c, err := s.counter(ctx)
	if err != nil {
		return 0, err
	}

	return c.Get(), nil
}

func (s *unreadService) SetUnreadCount(ctx context.Context, count int) error {
	c, err := s.counter(ctx)
	if err != nil {
		return err
	}
	c.Set(count)

	return nil
}

func (s *unreadService) SubscribeToUnread(ctx context.Context, fn func(int)) (usecase.Unsubscribe, error) {
	c, err := s.counter(ctx)
	if err != nil {
		return nil, err
	}

	return c.Subscribe(fn), nil
}
