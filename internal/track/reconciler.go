// Package track decides what the current track is. The Reconciler owns the
// current-track identity and the bounded play history, and is the only code
// that mutates either.
package track

import (
	"time"

	"github.com/playground-x/neoradio/internal/core"
	"github.com/playground-x/neoradio/internal/metadata"
)

// HistoryLimit caps the play history; the oldest entry is evicted first.
const HistoryLimit = 10

// Result is the outcome of one reconciliation.
type Result struct {
	// Changed reports whether the fragment identified a genuinely new track.
	Changed bool

	// Track is what the display should show: the new track on a change,
	// otherwise the unchanged current track (or placeholder defaults).
	Track core.TrackIdentity
}

// Reconciler merges metadata fragments into the current track and maintains
// the play history. It is owned by a single session and is not safe for
// unsynchronized concurrent use.
type Reconciler struct {
	current *core.TrackIdentity
	history []core.HistoryEntry
	now     func() time.Time
}

// NewReconciler creates an empty reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{now: time.Now}
}

// Reconcile applies one normalized fragment and reports whether it
// identified a new track.
//
// Reconcile is idempotent under repeated identical input: the same fragment
// applied twice produces exactly one history entry. Fragments without a
// title or artist never change the current track and never touch history;
// they only yield something to display.
func (r *Reconciler) Reconcile(frag metadata.Fragment) Result {
	// Nothing that could identify a track: keep showing what we have, or
	// the placeholder defaults before anything has played.
	if !frag.HasIdentity() {
		if r.current != nil {
			return Result{Changed: false, Track: *r.current}
		}
		return Result{Changed: false, Track: applyDefaults(metadata.Fragment{})}
	}

	candidate := applyDefaults(frag)

	if r.current != nil && r.current.SameTrack(candidate) {
		// Same track; album/year differences do not constitute a change.
		return Result{Changed: false, Track: *r.current}
	}

	r.current = &candidate
	r.push(candidate)

	return Result{Changed: true, Track: candidate}
}

// Current returns the current track, or nil if none has been identified.
func (r *Reconciler) Current() *core.TrackIdentity {
	if r.current == nil {
		return nil
	}
	c := *r.current
	return &c
}

// History returns the play history, newest first.
func (r *Reconciler) History() []core.HistoryEntry {
	out := make([]core.HistoryEntry, len(r.history))
	copy(out, r.history)
	return out
}

// push prepends a history entry, trimming to HistoryLimit.
func (r *Reconciler) push(t core.TrackIdentity) {
	entry := core.HistoryEntry{Track: t, PlayedAt: r.now()}
	r.history = append([]core.HistoryEntry{entry}, r.history...)
	if len(r.history) > HistoryLimit {
		r.history = r.history[:HistoryLimit]
	}
}

// applyDefaults merges a fragment over the placeholder defaults. Fields
// present in the fragment win.
func applyDefaults(frag metadata.Fragment) core.TrackIdentity {
	t := core.TrackIdentity{
		Title:  core.DefaultTitle,
		Artist: core.DefaultArtist,
		Album:  core.DefaultAlbum,
		Year:   core.DefaultYear(),
	}

	if frag.HasTitle {
		t.Title = frag.Title
	}
	if frag.HasArtist {
		t.Artist = frag.Artist
	}
	if frag.HasAlbum {
		t.Album = frag.Album
	}
	if frag.HasYear {
		t.Year = frag.Year
	}

	return t
}
