package server

// Server runs the blog's HTTP transport until the process is told to stop.
type Server interface {
	// RunServer binds the listener and serves until SIGINT, SIGTERM or
	// SIGQUIT arrives, then shuts down gracefully. It blocks until done.
	RunServer()

	// Shutdown marks the server not ready and drains open connections.
	Shutdown()
}
