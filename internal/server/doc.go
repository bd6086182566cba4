// Package server runs the remote endpoint: the HTTP server and the
// background workers, with signal handling and graceful shutdown.
package server
