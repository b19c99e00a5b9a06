package core

import (
	"strconv"
	"time"
)

// Placeholder values shown while the stream has not reported a track yet.
const (
	DefaultTitle  = "Live Stream"
	DefaultArtist = "NeoRadio"
	DefaultAlbum  = "Live Broadcast"
)

// DefaultYear returns the placeholder year for unknown tracks.
func DefaultYear() string {
	return strconv.Itoa(time.Now().Year())
}

// TrackIdentity identifies a track as reported by stream metadata.
type TrackIdentity struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Year   string `json:"year"`
}

// SameTrack reports whether two identities refer to the same track.
// Only title and artist participate; album and year differences do not
// constitute a track change.
func (t TrackIdentity) SameTrack(other TrackIdentity) bool {
	return t.Title == other.Title && t.Artist == other.Artist
}

// IsPlaceholder reports whether the identity is still the stream placeholder.
func (t TrackIdentity) IsPlaceholder() bool {
	return t.Title == DefaultTitle
}

// HistoryEntry represents a track captured in the play history.
type HistoryEntry struct {
	Track    TrackIdentity `json:"track"`
	PlayedAt time.Time     `json:"played_at"`
}
