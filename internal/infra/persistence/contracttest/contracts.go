// Package contracttest holds behavior shared by every DocumentStore implementation.
package contracttest

import (
	"context"
	"testing"
	"time"

	"trekmate/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CleanupFunc = func()

type DocumentStoreFactory func(t *testing.T) (repository.DocumentStore, CleanupFunc)

const waitTimeout = 5 * time.Second

// snapshots collects live query deliveries on a channel.
type snapshots chan []repository.Document

func (s snapshots) fn(docs []repository.Document, err error) {
	if err != nil {
		return
	}
	s <- docs
}

// next waits for a snapshot satisfying cond, skipping intermediate ones.
func (s snapshots) next(t *testing.T, cond func([]repository.Document) bool) []repository.Document {
	t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case docs := <-s:
			if cond(docs) {
				return docs
			}
		case <-deadline:
			t.Fatalf("timed out waiting for snapshot")

			return nil
		}
	}
}

func hasLen(n int) func([]repository.Document) bool {
	return func(docs []repository.Document) bool { return len(docs) == n }
}

// RunDocumentStore exercises the DocumentStore contract. Collections are
// namespaced per run so a shared emulator can be reused.
func RunDocumentStore(t *testing.T, newStore DocumentStoreFactory) {
	t.Helper()

	store, cleanup := newStore(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	t.Run("insert get delete", func(t *testing.T) {
		ctx := context.Background()
		coll := "contract_" + uuid.NewString()

		id, err := store.Insert(ctx, coll, repository.Fields{
			"name":      "TILICHO LAKE",
			"createdAt": repository.ServerTimestamp,
		})
		require.NoError(t, err)
		require.NotEmpty(t, id)

		doc, err := store.Get(ctx, coll, id)
		require.NoError(t, err)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, "TILICHO LAKE", doc.Fields["name"])
		_, isTime := doc.Fields["createdAt"].(time.Time)
		assert.True(t, isTime, "server timestamp must resolve to time.Time, got %T", doc.Fields["createdAt"])

		require.NoError(t, store.Delete(ctx, coll, id))
		_, err = store.Get(ctx, coll, id)
		assert.True(t, errors.Is(err, repository.ErrDocumentNotFound))

		require.NoError(t, store.Delete(ctx, coll, id), "deleting a missing document is not an error")
	})

	t.Run("set merges fields", func(t *testing.T) {
		ctx := context.Background()
		coll := "contract_" + uuid.NewString()

		require.NoError(t, store.Set(ctx, coll, "u1", repository.Fields{"fcmToken": "a", "platform": "ios"}))
		require.NoError(t, store.Set(ctx, coll, "u1", repository.Fields{"fcmToken": "b"}))

		doc, err := store.Get(ctx, coll, "u1")
		require.NoError(t, err)
		assert.Equal(t, "b", doc.Fields["fcmToken"])
		assert.Equal(t, "ios", doc.Fields["platform"])
	})

	t.Run("watch follows filtered changes", func(t *testing.T) {
		ctx := context.Background()
		coll := "contract_" + uuid.NewString()

		_, err := store.Insert(ctx, coll, repository.Fields{"createdBy": "bob"})
		require.NoError(t, err)

		got := make(snapshots, 16)
		q := repository.Query{Collection: coll}.Where("createdBy", "alice")
		cancel, err := store.Watch(ctx, q, got.fn)
		require.NoError(t, err)
		defer cancel()

		got.next(t, hasLen(0))

		id, err := store.Insert(ctx, coll, repository.Fields{"createdBy": "alice"})
		require.NoError(t, err)
		docs := got.next(t, hasLen(1))
		assert.Equal(t, id, docs[0].ID)

		require.NoError(t, store.Delete(ctx, coll, id))
		got.next(t, hasLen(0))
	})

	t.Run("cancel stops deliveries", func(t *testing.T) {
		ctx := context.Background()
		coll := "contract_" + uuid.NewString()

		got := make(snapshots, 16)
		cancel, err := store.Watch(ctx, repository.Query{Collection: coll}, got.fn)
		require.NoError(t, err)
		got.next(t, hasLen(0))

		cancel()
		cancel()

		_, err = store.Insert(ctx, coll, repository.Fields{"name": "late"})
		require.NoError(t, err)

		select {
		case docs := <-got:
			t.Fatalf("unexpected snapshot after cancel: %v", docs)
		case <-time.After(200 * time.Millisecond):
		}
	})
}
