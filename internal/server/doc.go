// Package server wires and runs the application's HTTP server.
//
// It owns the server lifecycle: startup, waiting for cancellation of the run
// context (usually bound to SIGINT, SIGTERM and SIGQUIT) and graceful
// shutdown bounded by the configured timeout.
package server
