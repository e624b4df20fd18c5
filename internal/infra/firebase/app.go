// Package firebase initializes the shared Firebase app.
package firebase

import (
	"context"
	"log/slog"

	"trekmate/config"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// NewApp creates the Firebase app from config. It returns nil when Firebase
// is not configured; consumers that require it report their own error.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*firebase.App, error) {
	if cfg.Firebase == nil || (cfg.Firebase.ProjectID == "" && cfg.Firebase.CredentialsPath == "") {
		logger.Info("Firebase not configured")

		return nil, nil //nolint:nilnil // Firebase is optional in memory/jwt mode
	}

	var opts []option.ClientOption
	if cfg.Firebase.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	}

	var fbConfig *firebase.Config
	if cfg.Firebase.ProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.Firebase.ProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	logger.Info("Firebase app initialized", slog.String("project_id", cfg.Firebase.ProjectID))

	return app, nil
}
