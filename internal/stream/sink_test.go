package stream

import (
	"context"
	"sync"
	"testing"
	"time"
)

type mediaRecorder struct {
	mu      sync.Mutex
	playing int
	paused  int
}

func (m *mediaRecorder) Waiting() {}

func (m *mediaRecorder) Playing() {
	m.mu.Lock()
	m.playing++
	m.mu.Unlock()
}

func (m *mediaRecorder) Paused() {
	m.mu.Lock()
	m.paused++
	m.mu.Unlock()
}

func (m *mediaRecorder) Ended() {}

func (m *mediaRecorder) counts() (playing, paused int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing, m.paused
}

func TestSinkPlayPauseSignals(t *testing.T) {
	rec := &mediaRecorder{}
	sink := NewSink()
	sink.Attach(rec)

	if err := sink.Play(context.Background()); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	waitFor(t, "playing signal", func() bool {
		playing, _ := rec.counts()
		return playing == 1
	})

	sink.Pause()
	waitFor(t, "paused signal", func() bool {
		_, paused := rec.counts()
		return paused == 1
	})

	// Pause while already paused fires nothing.
	sink.Pause()
	time.Sleep(20 * time.Millisecond)
	if _, paused := rec.counts(); paused != 1 {
		t.Errorf("paused signals = %d, want 1", paused)
	}
}

func TestSinkPlayCanceledContext(t *testing.T) {
	sink := NewSink()
	sink.Attach(&mediaRecorder{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sink.Play(ctx); err == nil {
		t.Error("Play() error = nil, want context error")
	}
}

func TestSinkDetachedPlayIsSafe(t *testing.T) {
	sink := NewSink()

	if err := sink.Play(context.Background()); err != nil {
		t.Errorf("Play() error = %v", err)
	}
	sink.Pause()
	sink.Stop()
}

func TestSinkVolumeClamps(t *testing.T) {
	sink := NewSink()

	if got := sink.Volume(); got != 1.0 {
		t.Errorf("initial Volume() = %v, want 1.0", got)
	}

	sink.SetVolume(0.5)
	if got := sink.Volume(); got != 0.5 {
		t.Errorf("Volume() = %v, want 0.5", got)
	}

	sink.SetVolume(-0.1)
	if got := sink.Volume(); got != 0 {
		t.Errorf("Volume() = %v, want 0", got)
	}

	sink.SetVolume(1.5)
	if got := sink.Volume(); got != 1 {
		t.Errorf("Volume() = %v, want 1", got)
	}
}

func TestSinkNeverEnds(t *testing.T) {
	sink := NewSink()
	_ = sink.Play(context.Background())
	if sink.Ended() {
		t.Error("Ended() = true, want false")
	}
}
