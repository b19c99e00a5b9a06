package core

import "context"

// ErrorClass classifies a fatal transport error for recovery purposes.
type ErrorClass int

const (
	ErrorClassNetwork ErrorClass = iota
	ErrorClassMedia
	ErrorClassOther
)

func (c ErrorClass) String() string {
	switch c {
	case ErrorClassNetwork:
		return "network"
	case ErrorClassMedia:
		return "media"
	default:
		return "other"
	}
}

// TransportError is an error reported by the streaming transport.
// Non-fatal errors are informational only; fatal errors interrupt playback
// and are recovered according to their class.
type TransportError struct {
	Class ErrorClass
	Fatal bool
	Err   error
}

func (e TransportError) Error() string {
	if e.Err == nil {
		return "transport error (" + e.Class.String() + ")"
	}
	return e.Err.Error()
}

func (e TransportError) Unwrap() error {
	return e.Err
}

// TagSample is one timed metadata sample parsed out of the stream.
// Data maps tag keys (e.g. TIT2, StreamTitle) to values; a value may be
// wrapped in a {data: value} envelope.
type TagSample struct {
	Type string
	Data map[string]any
}

// Transport is the streaming transport collaborator. It segments the network
// stream, classifies its own errors, and reports parsed tags and quality
// levels to the TransportEvents sink it was constructed with.
type Transport interface {
	// StartLoad restarts loading after a fatal network error.
	StartLoad()

	// RecoverMediaError attempts in-place recovery from a fatal media error.
	RecoverMediaError()

	// Destroy tears the transport down. No events are delivered afterwards.
	Destroy()

	// Levels returns the known quality levels.
	Levels() []QualityLevel

	// CurrentLevel returns the index of the active level, or -1 if unknown.
	CurrentLevel() int
}

// TransportEvents receives transport signals. The playback session
// implements this interface.
type TransportEvents interface {
	ManifestReady()
	LevelSwitched(level int)
	TagsParsed(samples []TagSample)
	TransportError(err TransportError)
}

// TransportFactory allocates a fresh transport wired to the given event sink.
type TransportFactory func(events TransportEvents) (Transport, error)

// MediaElement is the playback output collaborator.
type MediaElement interface {
	// Play begins playback. An error here is a playback failure, not a
	// transport failure.
	Play(ctx context.Context) error

	// Pause pauses playback without resetting position.
	Pause()

	// Stop pauses playback and resets position to the start.
	Stop()

	// SetVolume sets the output volume in the 0.0-1.0 range.
	SetVolume(v float64)

	// Ended reports whether the media reached its natural end.
	Ended() bool
}

// MediaEvents receives media element signals. The playback session
// implements this interface.
type MediaEvents interface {
	Waiting()
	Playing()
	Paused()
	Ended()
}
