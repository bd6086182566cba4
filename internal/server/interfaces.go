package server

// Server is the lifecycle of the remote endpoint process.
type Server interface {
	// RunServer serves requests and blocks until a stop signal arrives.
	RunServer()

	// Shutdown gracefully stops the HTTP server.
	Shutdown()
}
