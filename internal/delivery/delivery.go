// Package delivery groups the process entrypoints served by cmd binaries.
package delivery

import "context"

// Delivery is a long-running server started by an entrypoint.
type Delivery interface {
	// Serve blocks until the server stops. A graceful shutdown is not an error.
	Serve(ctx context.Context) error
}
