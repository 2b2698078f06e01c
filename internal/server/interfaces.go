package server

// Server is the lifecycle contract of a transport server run by this
// package.
//
// RunServer blocks for the lifetime of the server: it returns only after
// shutdown has been requested and completed. Shutdown stops accepting new
// requests, waits for in-flight ones within the configured timeout, and
// releases the listener.
type Server interface {
	RunServer()
	Shutdown()
}
