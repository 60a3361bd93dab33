package server

// Server serves the devnet collaborators.
//
// RunServer blocks until SIGINT, SIGTERM or SIGQUIT and then drains
// in-flight requests. Shutdown may be called from another goroutine.
type Server interface {
	RunServer()
	Shutdown()
}
