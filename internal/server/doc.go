// Package server wires and runs the application's transport server.
//
// It owns the HTTP server lifecycle: binding the listener, flipping the
// readiness probe, signal handling and graceful shutdown.
package server
