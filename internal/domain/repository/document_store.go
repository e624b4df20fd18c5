// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"github.com/pkg/errors"
)

// Collection names used by the reactive stores.
const (
	CollectionDestinations = "destinations"
	CollectionPlannedTrips = "planned_trips"
	CollectionMessages     = "messages"
	CollectionUsers        = "users"
)

// Domain-specific errors for document persistence.
var (
	// ErrDocumentNotFound is returned when a document does not exist.
	ErrDocumentNotFound = errors.New("document not found")
)

type serverTimestamp struct{}

// ServerTimestamp is a field value replaced by the store's own clock when
// the document is written.
var ServerTimestamp = serverTimestamp{} //nolint:gochecknoglobals

// Fields is the schema-flexible content of a document.
type Fields map[string]any

// Document is a single record of a collection.
type Document struct {
	ID     string
	Fields Fields
}

// Filter is an equality constraint on a document field.
type Filter struct {
	Field string
	Value any
}

// Query selects the documents of one collection matching every filter.
type Query struct {
	Collection string
	Filters    []Filter
}

// Where returns a copy of q with an additional equality filter.
func (q Query) Where(field string, value any) Query {
	filters := make([]Filter, 0, len(q.Filters)+1)
	filters = append(filters, q.Filters...)
	filters = append(filters, Filter{Field: field, Value: value})
	q.Filters = filters

	return q
}

// SnapshotFunc receives the complete result set of a live query after every
// change. err is non-nil when the live query has failed; no further calls
// follow an error.
type SnapshotFunc func(docs []Document, err error)

// CancelFunc detaches a live query. It is safe to call more than once.
type CancelFunc func()

// DocumentStore is a document database with live queries.
type DocumentStore interface {
	// Watch starts a live query. fn is called with the initial result set and
	// again after every change until the returned CancelFunc is called or ctx
	// is done.
	Watch(ctx context.Context, q Query, fn SnapshotFunc) (CancelFunc, error)

	// Get retrieves a single document. Returns ErrDocumentNotFound if absent.
	Get(ctx context.Context, collection, id string) (*Document, error)

	// Insert stores a new document under a generated ID and returns that ID.
	Insert(ctx context.Context, collection string, fields Fields) (string, error)

	// Set merges fields into the document with the given ID, creating it if needed.
	Set(ctx context.Context, collection, id string, fields Fields) error

	// Delete removes a document. Deleting a missing document is not an error.
	Delete(ctx context.Context, collection, id string) error
}
