package core

// SessionState represents the playback session lifecycle state.
type SessionState int

const (
	StateIdle SessionState = iota
	StateLoading
	StatePlaying
	StateBuffering
	StatePaused
	StateError
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StatePlaying:
		return "playing"
	case StateBuffering:
		return "buffering"
	case StatePaused:
		return "paused"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Active reports whether the session is driving a live transport.
func (s SessionState) Active() bool {
	switch s {
	case StateLoading, StatePlaying, StateBuffering, StatePaused:
		return true
	default:
		return false
	}
}
