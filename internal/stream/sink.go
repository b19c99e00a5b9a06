package stream

import (
	"context"
	"sync"

	"github.com/playground-x/neoradio/internal/core"
)

// Sink is a silent media element. It tracks play/pause state and volume and
// emits media signals, but produces no audio output. Signals are delivered
// asynchronously, the way a real media element fires events after the call
// that caused them returns.
type Sink struct {
	mu      sync.Mutex
	events  core.MediaEvents
	playing bool
	volume  float64
}

// NewSink creates a detached sink. Attach an event sink before playback.
func NewSink() *Sink {
	return &Sink{volume: 1.0}
}

// Attach wires the sink's signals to an event sink. The session and the
// sink reference each other, so this happens after both are constructed.
func (s *Sink) Attach(events core.MediaEvents) {
	s.mu.Lock()
	s.events = events
	s.mu.Unlock()
}

// Play begins (silent) playback.
func (s *Sink) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.playing = true
	events := s.events
	s.mu.Unlock()

	if events != nil {
		go events.Playing()
	}
	return nil
}

// Pause pauses playback.
func (s *Sink) Pause() {
	s.mu.Lock()
	wasPlaying := s.playing
	s.playing = false
	events := s.events
	s.mu.Unlock()

	if wasPlaying && events != nil {
		go events.Paused()
	}
}

// Stop pauses playback and resets position. A live stream has no seekable
// position, so this only clears the playing flag.
func (s *Sink) Stop() {
	s.mu.Lock()
	s.playing = false
	s.mu.Unlock()
}

// SetVolume sets the output volume in the 0.0-1.0 range.
func (s *Sink) SetVolume(v float64) {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	s.mu.Lock()
	s.volume = v
	s.mu.Unlock()
}

// Volume returns the current volume.
func (s *Sink) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Ended reports whether the media reached its natural end. A live stream
// never does.
func (s *Sink) Ended() bool {
	return false
}

var _ core.MediaElement = (*Sink)(nil)
