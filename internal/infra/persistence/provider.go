// Package persistence selects the DocumentStore backend.
package persistence

import (
	"context"
	"log/slog"

	"trekmate/config"
	"trekmate/internal/domain/repository"
	"trekmate/internal/infra/persistence/firestore"
	"trekmate/internal/infra/persistence/memory"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// StoreParams holds dependencies for the DocumentStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	App    *firebase.App `optional:"true"`
}

// NewDocumentStore returns the backend named by store.backend
func NewDocumentStore(params StoreParams) (repository.DocumentStore, error) {
	backend := config.StoreBackendMemory
	if params.Config.Store != nil && params.Config.Store.Backend != "" {
		backend = params.Config.Store.Backend
	}

	switch backend {
	case config.StoreBackendMemory:
		params.Logger.Info("Using in-memory document store; data is lost on restart")

		return memory.NewDocumentStore(), nil

	case config.StoreBackendFirestore:
		store, err := firestore.NewDocumentStore(params.Ctx, params.App, params.Logger)
		if err != nil {
			return nil, err
		}

		params.Lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				params.Logger.Info("Closing Firestore client")

				return store.Close()
			},
		})

		params.Logger.Info("Using Firestore document store")

		return store, nil

	default:
		return nil, errors.Errorf("unknown store backend: %s", backend)
	}
}
