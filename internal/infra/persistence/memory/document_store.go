// Package memory provides an in-process DocumentStore with live queries.
package memory

import (
	"context"
	"reflect"
	"sync"
	"time"

	"trekmate/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type collection struct {
	order []string // insertion order of document IDs
	docs  map[string]repository.Fields
}

type watcher struct {
	query repository.Query
	fn    repository.SnapshotFunc

	mu        sync.Mutex
	accepted  bool
	lastSeen  uint64 // newest version accepted for delivery
	pending   []repository.Document
	queued    bool
	draining  bool
	cancelled bool
}

// delivery is one snapshot computed under the store lock.
type delivery struct {
	w       *watcher
	version uint64
	docs    []repository.Document
}

// DocumentStore keeps collections in memory and pushes result sets to live
// queries synchronously on the writer's goroutine.
type DocumentStore struct {
	mu          sync.Mutex
	now         func() time.Time
	collections map[string]*collection
	watchers    map[uint64]*watcher
	nextWatchID uint64
	version     uint64
}

// Option configures a DocumentStore.
type Option func(*DocumentStore)

// WithClock overrides the clock used to resolve repository.ServerTimestamp.
func WithClock(now func() time.Time) Option {
	return func(s *DocumentStore) {
		s.now = now
	}
}

// NewDocumentStore creates an empty in-memory DocumentStore.
func NewDocumentStore(opts ...Option) *DocumentStore {
	s := &DocumentStore{
		now:         time.Now,
		collections: make(map[string]*collection),
		watchers:    make(map[uint64]*watcher),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Watch registers a live query and delivers the initial result set before returning.
func (s *DocumentStore) Watch(ctx context.Context, q repository.Query, fn repository.SnapshotFunc) (repository.CancelFunc, error) {
	if q.Collection == "" {
		return nil, errors.New("collection is required")
	}
	if fn == nil {
		return nil, errors.New("snapshot callback is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	w := &watcher{query: q, fn: fn}

	s.mu.Lock()
	s.nextWatchID++
	id := s.nextWatchID
	s.watchers[id] = w
	initial := delivery{w: w, version: s.version, docs: s.queryLocked(q)}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()

			w.mu.Lock()
			w.cancelled = true
			w.mu.Unlock()
		})
	}
	stop := context.AfterFunc(ctx, cancel)

	initial.deliver()

	return func() {
		stop()
		cancel()
	}, nil
}

// Get returns a copy of the stored document.
func (s *DocumentStore) Get(ctx context.Context, collectionName, id string) (*repository.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}
	fields, ok := c.docs[id]
	if !ok {
		return nil, repository.ErrDocumentNotFound
	}

	return &repository.Document{ID: id, Fields: copyFields(fields)}, nil
}

// Insert stores fields under a new random ID.
func (s *DocumentStore) Insert(ctx context.Context, collectionName string, fields repository.Fields) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WithStack(err)
	}

	id := uuid.NewString()

	s.mu.Lock()
	c := s.collectionLocked(collectionName)
	c.order = append(c.order, id)
	c.docs[id] = s.resolveLocked(fields)
	pending := s.changedLocked(collectionName)
	s.mu.Unlock()

	deliverAll(pending)

	return id, nil
}

// Set merges fields into an existing document or creates it.
func (s *DocumentStore) Set(ctx context.Context, collectionName, id string, fields repository.Fields) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if id == "" {
		return errors.New("document id is required")
	}

	s.mu.Lock()
	c := s.collectionLocked(collectionName)
	existing, ok := c.docs[id]
	if !ok {
		existing = repository.Fields{}
		c.order = append(c.order, id)
	}
	for k, v := range s.resolveLocked(fields) {
		existing[k] = v
	}
	c.docs[id] = existing
	pending := s.changedLocked(collectionName)
	s.mu.Unlock()

	deliverAll(pending)

	return nil
}

// Delete removes a document if present.
func (s *DocumentStore) Delete(ctx context.Context, collectionName, id string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	s.mu.Lock()
	c, ok := s.collections[collectionName]
	if !ok {
		s.mu.Unlock()

		return nil
	}
	if _, ok := c.docs[id]; !ok {
		s.mu.Unlock()

		return nil
	}
	delete(c.docs, id)
	for i, docID := range c.order {
		if docID == id {
			c.order = append(c.order[:i], c.order[i+1:]...)

			break
		}
	}
	pending := s.changedLocked(collectionName)
	s.mu.Unlock()

	deliverAll(pending)

	return nil
}

func (s *DocumentStore) collectionLocked(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = &collection{docs: make(map[string]repository.Fields)}
		s.collections[name] = c
	}

	return c
}

func (s *DocumentStore) resolveLocked(fields repository.Fields) repository.Fields {
	out := make(repository.Fields, len(fields))
	for k, v := range fields {
		if v == repository.ServerTimestamp {
			out[k] = s.now().UTC()

			continue
		}
		out[k] = v
	}

	return out
}

// changedLocked bumps the store version and computes a snapshot for every
// live query on the collection.
func (s *DocumentStore) changedLocked(collectionName string) []delivery {
	s.version++

	var pending []delivery
	for _, w := range s.watchers {
		if w.query.Collection != collectionName {
			continue
		}
		pending = append(pending, delivery{w: w, version: s.version, docs: s.queryLocked(w.query)})
	}

	return pending
}

func (s *DocumentStore) queryLocked(q repository.Query) []repository.Document {
	docs := make([]repository.Document, 0)

	c, ok := s.collections[q.Collection]
	if !ok {
		return docs
	}

	for _, id := range c.order {
		fields := c.docs[id]
		if !matches(fields, q.Filters) {
			continue
		}
		docs = append(docs, repository.Document{ID: id, Fields: copyFields(fields)})
	}

	return docs
}

func deliverAll(pending []delivery) {
	for _, d := range pending {
		d.deliver()
	}
}

// deliver hands the snapshot to the watcher unless a newer one was already
// accepted. Only one goroutine runs a watcher's callback at a time; snapshots
// arriving meanwhile are queued and the draining goroutine delivers the newest
// before it returns, so the last callback always sees the latest version.
func (d delivery) deliver() {
	w := d.w

	w.mu.Lock()
	if w.cancelled || (w.accepted && d.version <= w.lastSeen) {
		w.mu.Unlock()

		return
	}
	w.accepted = true
	w.lastSeen = d.version
	w.pending, w.queued = d.docs, true
	if w.draining {
		w.mu.Unlock()

		return
	}
	w.draining = true
	defer func() {
		w.draining = false
		w.pending, w.queued = nil, false
		w.mu.Unlock()
	}()

	for w.queued && !w.cancelled {
		docs := w.pending
		w.pending, w.queued = nil, false
		w.callUnlocked(docs)
	}
}

// callUnlocked runs the callback with w.mu released. Must be called with w.mu held.
func (w *watcher) callUnlocked(docs []repository.Document) {
	w.mu.Unlock()
	defer w.mu.Lock()

	w.fn(docs, nil)
}

func matches(fields repository.Fields, filters []repository.Filter) bool {
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok || !reflect.DeepEqual(v, f.Value) {
			return false
		}
	}

	return true
}

func copyFields(fields repository.Fields) repository.Fields {
	out := make(repository.Fields, len(fields))
	for k, v := range fields {
		out[k] = v
	}

	return out
}
