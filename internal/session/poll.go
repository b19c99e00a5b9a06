package session

import (
	"context"
	"time"
)

// startPollingLocked starts the metadata poll timer: one immediate poll,
// then a fixed interval. At most one timer is ever active.
func (s *Session) startPollingLocked() {
	if s.pollCancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.pollCancel = cancel

	go s.pollLoop(ctx, s.epoch)
}

// stopPollingLocked cancels the poll timer if one is running.
func (s *Session) stopPollingLocked() {
	if s.pollCancel != nil {
		s.pollCancel()
		s.pollCancel = nil
	}
}

func (s *Session) pollLoop(ctx context.Context, epoch uint64) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	// Fetch immediately, then on every tick.
	s.pollOnce(ctx, epoch)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.pollOnce(ctx, epoch)
		}
	}
}

// pollOnce fetches metadata from the API and feeds it through the
// reconciliation pipeline. Responses that arrive after the session stopped,
// or that carry no identity, are discarded.
func (s *Session) pollOnce(ctx context.Context, epoch uint64) {
	frag, ok, err := s.meta.Fetch(ctx)
	if err != nil {
		// No metadata API available - this is expected.
		s.log.Debug().Err(err).Msg("metadata poll failed")
		return
	}
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epoch != epoch || !s.state.Active() {
		s.log.Debug().Msg("discarding stale metadata poll result")
		return
	}

	if frag.HasIdentity() {
		s.applyLocked(frag)
	}
}
