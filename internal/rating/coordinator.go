package rating

import (
	"context"
	"fmt"
	"sync"

	"github.com/playground-x/neoradio/internal/core"
	errs "github.com/playground-x/neoradio/internal/errors"
)

// Coordinator mediates between the session and the rating service. It
// deduplicates redundant loads (one per distinct current track) and keeps
// load failures soft while leaving submit failures visible.
type Coordinator struct {
	client *Client

	mu        sync.Mutex
	loadedKey string
}

// NewCoordinator creates a coordinator on top of the given client.
func NewCoordinator(client *Client) *Coordinator {
	return &Coordinator{client: client}
}

// Claim records intent to load the rating for the given track. It returns
// false when this track's rating has already been claimed, so each distinct
// current track triggers exactly one load.
func (c *Coordinator) Claim(track core.TrackIdentity) bool {
	key := ratingKey(track)

	c.mu.Lock()
	defer c.mu.Unlock()

	if key == c.loadedKey {
		return false
	}
	c.loadedKey = key
	return true
}

// Reset forgets the claimed track so the next session start reloads it.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	c.loadedKey = ""
	c.mu.Unlock()
}

// Load fetches the rating state for a track. Any failure degrades to the
// neutral state: a track with no rating data yet and a failed load are
// deliberately indistinguishable.
func (c *Coordinator) Load(ctx context.Context, title, artist string) core.RatingState {
	state, err := c.client.Get(ctx, title, artist)
	if err != nil {
		return core.NeutralRating()
	}
	return state
}

// Submit posts a vote for the given track. Unlike Load, failures are
// returned to the caller: the display must not show a rating that was never
// accepted. Submission is refused outright, with no network call, when no
// track is held or the track is still the stream placeholder.
func (c *Coordinator) Submit(ctx context.Context, track *core.TrackIdentity, rating core.Rating) (core.RatingState, error) {
	if track == nil {
		return core.RatingState{}, errs.ErrNoTrack
	}
	if track.IsPlaceholder() {
		return core.RatingState{}, errs.ErrPlaceholderTrack
	}

	state, err := c.client.Submit(ctx, *track, rating)
	if err != nil {
		return core.RatingState{}, fmt.Errorf("%w: %w", errs.ErrRatingRejected, err)
	}

	// The caller's own vote is what the display shows, regardless of what
	// the service echoes back.
	state.UserRating = rating
	return state, nil
}

// ratingKey is the identity key ratings are cached under.
func ratingKey(track core.TrackIdentity) string {
	return track.Title + "\x00" + track.Artist
}
