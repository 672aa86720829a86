package health

import "sync/atomic"

// State is the readiness of the service.
type State int32

const (
	// Connecting is the state until the store answers its first ping.
	Connecting State = iota
	// Ready means the store connection is established.
	Ready
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Status holds the readiness shared by the bootstrap and the HTTP layer.
// The zero value is Connecting.
type Status struct {
	state atomic.Int32
}

// New creates a new Status in the Connecting state.
func New() *Status {
	return &Status{}
}

// MarkReady moves the status to Ready. It never goes back.
func (s *Status) MarkReady() {
	s.state.Store(int32(Ready))
}

// State returns the current state.
func (s *Status) State() State {
	return State(s.state.Load())
}

// Ready reports whether the store connection is established.
func (s *Status) Ready() bool {
	return s.State() == Ready
}
