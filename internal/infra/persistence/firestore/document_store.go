// Package firestore implements the DocumentStore on Cloud Firestore.
package firestore

import (
	"context"
	"log/slog"
	"sync"

	"trekmate/internal/domain/repository"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const opEqual = "=="

// DocumentStore adapts a Firestore client to repository.DocumentStore.
// Live queries run on Firestore query snapshot listeners, one goroutine each.
type DocumentStore struct {
	client *firestore.Client
	logger *slog.Logger
}

// NewDocumentStore opens a Firestore client from the Firebase app.
func NewDocumentStore(ctx context.Context, app *firebase.App, logger *slog.Logger) (*DocumentStore, error) {
	if app == nil {
		return nil, errors.New("firestore backend requires firebase configuration")
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get firestore client")
	}

	return NewDocumentStoreWithClient(client, logger), nil
}

// NewDocumentStoreWithClient wraps an existing client, e.g. one pointed at the emulator.
func NewDocumentStoreWithClient(client *firestore.Client, logger *slog.Logger) *DocumentStore {
	return &DocumentStore{
		client: client,
		logger: logger,
	}
}

// Watch listens to query snapshots until cancelled.
func (s *DocumentStore) Watch(ctx context.Context, q repository.Query, fn repository.SnapshotFunc) (repository.CancelFunc, error) {
	if q.Collection == "" {
		return nil, errors.New("collection is required")
	}
	if fn == nil {
		return nil, errors.New("snapshot callback is required")
	}

	query := s.client.Collection(q.Collection).Query
	for _, f := range q.Filters {
		query = query.Where(f.Field, opEqual, f.Value)
	}

	watchCtx, cancel := context.WithCancel(ctx)
	it := query.Snapshots(watchCtx)

	go func() {
		defer it.Stop()

		for {
			snap, err := it.Next()
			if err != nil {
				if watchCtx.Err() != nil || errors.Is(err, iterator.Done) || status.Code(err) == codes.Canceled {
					return
				}
				s.logger.Error("Live query failed",
					slog.String("collection", q.Collection),
					slog.Any("error", err),
				)
				fn(nil, errors.Wrapf(err, "live query on %s", q.Collection))

				return
			}

			docs, err := readAll(snap.Documents)
			if err != nil {
				fn(nil, err)

				return
			}
			if watchCtx.Err() != nil {
				return
			}
			fn(docs, nil)
		}
	}()

	var once sync.Once

	return func() { once.Do(cancel) }, nil
}

// Get reads a single document.
func (s *DocumentStore) Get(ctx context.Context, collection, id string) (*repository.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrDocumentNotFound
		}

		return nil, errors.Wrapf(err, "get %s/%s", collection, id)
	}

	return &repository.Document{ID: snap.Ref.ID, Fields: snap.Data()}, nil
}

// Insert adds a document with an auto-generated ID.
func (s *DocumentStore) Insert(ctx context.Context, collection string, fields repository.Fields) (string, error) {
	ref, _, err := s.client.Collection(collection).Add(ctx, toFirestore(fields))
	if err != nil {
		return "", errors.Wrapf(err, "insert into %s", collection)
	}

	return ref.ID, nil
}

// Set merges fields into the document.
func (s *DocumentStore) Set(ctx context.Context, collection, id string, fields repository.Fields) error {
	if id == "" {
		return errors.New("document id is required")
	}

	_, err := s.client.Collection(collection).Doc(id).Set(ctx, toFirestore(fields), firestore.MergeAll)
	if err != nil {
		return errors.Wrapf(err, "set %s/%s", collection, id)
	}

	return nil
}

// Delete removes the document; Firestore treats missing documents as deleted.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return errors.Wrapf(err, "delete %s/%s", collection, id)
	}

	return nil
}

// Close releases the Firestore client.
func (s *DocumentStore) Close() error {
	return errors.WithStack(s.client.Close())
}

func readAll(it *firestore.DocumentIterator) ([]repository.Document, error) {
	snaps, err := it.GetAll()
	if err != nil {
		return nil, errors.Wrap(err, "read snapshot documents")
	}

	docs := make([]repository.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, repository.Document{ID: snap.Ref.ID, Fields: snap.Data()})
	}

	return docs, nil
}

func toFirestore(fields repository.Fields) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == repository.ServerTimestamp {
			out[k] = firestore.ServerTimestamp

			continue
		}
		out[k] = v
	}

	return out
}
