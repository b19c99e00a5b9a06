// Package session orchestrates the stream transport lifecycle and drives the
// metadata pipeline: transport tags and polled metadata are normalized,
// reconciled into the current track, and pushed to the renderer, with rating
// state kept in sync on every track change.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/playground-x/neoradio/internal/core"
	errs "github.com/playground-x/neoradio/internal/errors"
	"github.com/playground-x/neoradio/internal/metadata"
	"github.com/playground-x/neoradio/internal/quality"
	"github.com/playground-x/neoradio/internal/rating"
	"github.com/playground-x/neoradio/internal/track"
)

// Status messages shown to the listener.
const (
	statusLoading       = "Loading stream..."
	statusNowPlaying    = "▶ Now Playing - Live Stream"
	statusBuffering     = "Buffering..."
	statusPaused        = "Paused"
	statusStopped       = "Stream stopped"
	statusNetworkError  = "Network error - trying to recover..."
	statusMediaError    = "Media error - trying to recover..."
	statusFatalError    = "Fatal error - cannot recover"
	statusPlaybackError = "Error: Could not play stream"
	statusNoTransport   = "Error: stream transport unavailable"
)

// Options configures a Session.
type Options struct {
	Transport    core.TransportFactory
	Media        core.MediaElement
	Renderer     core.Renderer
	Metadata     *metadata.Client
	Ratings      *rating.Coordinator
	PollInterval time.Duration
	Logger       zerolog.Logger
}

// Session is the playback state machine. All event application is
// serialized under its lock, so results are applied in arrival order and a
// reconciliation (track update, history push, rating claim) completes
// atomically before anything else runs.
type Session struct {
	newTransport core.TransportFactory
	media        core.MediaElement
	renderer     core.Renderer
	meta         *metadata.Client
	ratings      *rating.Coordinator
	pollInterval time.Duration
	log          zerolog.Logger

	mu         sync.Mutex
	ctx        context.Context
	state      core.SessionState
	transport  core.Transport
	reconciler *track.Reconciler
	pollCancel context.CancelFunc

	// epoch invalidates in-flight poll and rating responses on stop. A
	// result captured under an older epoch is discarded, never applied.
	epoch uint64
}

// New creates an idle session.
func New(opts Options) *Session {
	if opts.PollInterval == 0 {
		opts.PollInterval = 10 * time.Second
	}
	return &Session{
		newTransport: opts.Transport,
		media:        opts.Media,
		renderer:     opts.Renderer,
		meta:         opts.Metadata,
		ratings:      opts.Ratings,
		pollInterval: opts.PollInterval,
		log:          opts.Logger,
		state:        core.StateIdle,
		reconciler:   track.NewReconciler(),
	}
}

// State returns the current session state.
func (s *Session) State() core.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentTrack returns the current track, or nil if none has been identified.
func (s *Session) CurrentTrack() *core.TrackIdentity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconciler.Current()
}

// History returns the play history, newest first.
func (s *Session) History() []core.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reconciler.History()
}

// Start allocates a fresh transport and begins loading the stream. Any prior
// transport is destroyed first; at most one is ever live.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Active() {
		return nil
	}

	s.ctx = ctx
	s.state = core.StateLoading
	s.setStatusLocked(statusLoading, core.StatusLoading)

	if s.transport != nil {
		s.transport.Destroy()
		s.transport = nil
	}

	t, err := s.newTransport(s)
	if err != nil {
		s.state = core.StateError
		s.setStatusLocked(statusNoTransport, core.StatusError)
		return fmt.Errorf("%w: %w", errs.ErrStreamUnavailable, err)
	}
	s.transport = t

	s.log.Info().Str("state", s.state.String()).Msg("session started")
	return nil
}

// Stop tears the session down: playback position is reset, the transport is
// destroyed, the poll timer is stopped, and any in-flight metadata or rating
// response becomes a no-op.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.media.Stop()
	if s.transport != nil {
		s.transport.Destroy()
		s.transport = nil
	}
	s.stopPollingLocked()
	s.epoch++
	s.ratings.Reset()

	s.state = core.StateIdle
	s.setStatusLocked(statusStopped, core.StatusNeutral)
	s.log.Info().Msg("session stopped")
}

// SetVolume maps a 0-100 UI volume onto the media element's 0.0-1.0 scale.
func (s *Session) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	s.media.SetVolume(float64(percent) / 100)
}

// Rate submits the listener's vote for the current track. Submission is
// refused without a network call when no real track is identified yet. A
// failed submission is returned as an error so the caller never displays a
// vote that was not accepted.
func (s *Session) Rate(ctx context.Context, r core.Rating) error {
	s.mu.Lock()
	cur := s.reconciler.Current()
	epoch := s.epoch
	s.mu.Unlock()

	state, err := s.ratings.Submit(ctx, cur, r)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, errs.ErrNoTrack) || errors.Is(err, errs.ErrPlaceholderTrack) {
			s.setStatusLocked("Please wait for track information to load before rating.", core.StatusError)
		} else {
			s.setStatusLocked("Rating not submitted", core.StatusError)
		}
		return err
	}

	if s.epoch == epoch {
		s.renderer.RenderRating(state)
	}
	return nil
}

// ManifestReady handles the transport's manifest-ready signal: media start,
// quality report, initial placeholder render, and the poll timer.
func (s *Session) ManifestReady() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != core.StateLoading {
		return
	}

	if err := s.media.Play(s.ctx); err != nil {
		s.state = core.StateError
		s.setStatusLocked(statusPlaybackError, core.StatusError)
		s.stopPollingLocked()
		s.log.Error().Err(err).Msg("playback failed")
		return
	}

	s.state = core.StatePlaying
	s.setStatusLocked(statusNowPlaying, core.StatusPlaying)
	s.renderQualityLocked(s.transport.CurrentLevel())

	// Initial render with placeholder defaults; never a history entry.
	s.applyLocked(metadata.Fragment{})

	s.startPollingLocked()
}

// LevelSwitched handles a transport quality-level switch. Display only;
// never a state change.
func (s *Session) LevelSwitched(level int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.transport == nil {
		return
	}
	s.renderQualityLocked(level)
}

// TagsParsed feeds embedded-tag samples through the metadata pipeline.
func (s *Session) TagsParsed(samples []core.TagSample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Active() {
		return
	}

	for _, sample := range samples {
		if sample.Data == nil {
			continue
		}
		frag := metadata.FromStream(sample.Data)
		if frag.Empty() {
			// Nothing to reconcile; a normal empty result.
			continue
		}
		s.applyLocked(frag)
	}
}

// TransportError handles transport error signals. Non-fatal errors are
// logged and ignored. Fatal errors recover per class: network restarts the
// load, media recovers in place, anything else tears the transport down.
func (s *Session) TransportError(terr core.TransportError) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !terr.Fatal {
		s.log.Debug().Err(terr.Err).Str("class", terr.Class.String()).Msg("non-fatal transport error")
		return
	}

	// A destroyed transport delivers no more events; anything that still
	// arrives after stop is stale.
	if !s.state.Active() {
		return
	}

	s.log.Warn().Err(terr.Err).Str("class", terr.Class.String()).Msg("fatal transport error")

	switch terr.Class {
	case core.ErrorClassNetwork:
		s.setStatusLocked(statusNetworkError, core.StatusError)
		if s.transport != nil {
			s.transport.StartLoad()
		}
		s.state = core.StateLoading
	case core.ErrorClassMedia:
		s.setStatusLocked(statusMediaError, core.StatusError)
		if s.transport != nil {
			s.transport.RecoverMediaError()
		}
	default:
		s.setStatusLocked(statusFatalError, core.StatusError)
		if s.transport != nil {
			s.transport.Destroy()
			s.transport = nil
		}
		s.stopPollingLocked()
		s.state = core.StateError
	}
}

// Waiting handles the media element's buffering signal.
func (s *Session) Waiting() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != core.StatePlaying {
		return
	}
	s.state = core.StateBuffering
	s.setStatusLocked(statusBuffering, core.StatusLoading)
}

// Playing handles the media element's playing signal, including resume
// after buffering or recovery.
func (s *Session) Playing() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Active() {
		return
	}
	s.state = core.StatePlaying
	s.setStatusLocked(statusNowPlaying, core.StatusPlaying)
}

// Paused handles the media element's pause signal. Pause at natural
// end-of-stream is handled by Ended instead.
func (s *Session) Paused() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.media.Ended() {
		return
	}
	if !s.state.Active() {
		return
	}
	s.state = core.StatePaused
	s.setStatusLocked(statusPaused, core.StatusNeutral)
}

// Ended handles natural end-of-stream by stopping the session.
func (s *Session) Ended() {
	s.Stop()
}

// applyLocked runs one fragment through the reconciler and updates the
// display. Track update, history push, and rating claim happen atomically
// under the session lock; only the rating fetch itself runs async.
func (s *Session) applyLocked(frag metadata.Fragment) {
	res := s.reconciler.Reconcile(frag)
	s.renderer.RenderTrack(res.Track)

	if res.Changed {
		s.log.Info().
			Str("title", res.Track.Title).
			Str("artist", res.Track.Artist).
			Msg("track changed")
		s.renderer.RenderHistory(s.reconciler.History())
	}

	if frag.HasIdentity() {
		s.loadRatingLocked(res.Track)
	}
}

// loadRatingLocked claims and asynchronously loads the rating for a track.
// The response is discarded if the session was stopped or the track was
// superseded while the fetch was in flight.
func (s *Session) loadRatingLocked(t core.TrackIdentity) {
	if !s.ratings.Claim(t) {
		return
	}

	epoch := s.epoch
	ctx := s.ctx
	go func() {
		state := s.ratings.Load(ctx, t.Title, t.Artist)

		s.mu.Lock()
		defer s.mu.Unlock()

		// A torn-down session keeps its epoch, so state is checked too.
		if s.epoch != epoch || !s.state.Active() {
			return
		}
		if cur := s.reconciler.Current(); cur != nil && !cur.SameTrack(t) {
			return
		}
		s.renderer.RenderRating(state)
	}()
}

func (s *Session) renderQualityLocked(level int) {
	info := quality.FromLevels(s.transport.Levels(), level)
	s.renderer.RenderQuality(info)
}

func (s *Session) setStatusLocked(message string, kind core.StatusKind) {
	s.renderer.RenderStatus(message, kind)
}

// The session is the event sink for both collaborators.
var (
	_ core.TransportEvents = (*Session)(nil)
	_ core.MediaEvents     = (*Session)(nil)
)
