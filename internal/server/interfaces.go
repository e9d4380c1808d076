package server

import "context"

// Server defines the lifecycle contract of the transport server managed by
// this package.
type Server interface {
	// RunServer starts serving requests and blocks until ctx is cancelled
	// and the server has shut down, or until the listener fails.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server, waiting at most for the
	// configured shutdown timeout.
	Shutdown() error
}
