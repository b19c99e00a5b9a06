// Package metadata turns heterogeneous raw metadata payloads into a single
// canonical partial track identity.
package metadata

import (
	"fmt"
	"strings"
)

// Fragment is a partial track identity extracted from one raw metadata
// payload. Presence bits distinguish "field absent" from "field empty".
type Fragment struct {
	Title  string
	Artist string
	Album  string
	Year   string

	HasTitle  bool
	HasArtist bool
	HasAlbum  bool
	HasYear   bool
}

// Empty reports whether no fields at all were extracted. An empty fragment
// is the explicit "no data" signal and must never be treated as a track
// switch to defaults.
func (f Fragment) Empty() bool {
	return !f.HasTitle && !f.HasArtist && !f.HasAlbum && !f.HasYear
}

// HasIdentity reports whether the fragment contributes a title or artist,
// the fields that gate track-change detection and history capture.
func (f Fragment) HasIdentity() bool {
	return f.HasTitle || f.HasArtist
}

// Setters ignore empty values: a blank tag contributes nothing, so presence
// bits always mean "present and non-empty".

func (f *Fragment) setTitle(v string) {
	if v == "" {
		return
	}
	f.Title = v
	f.HasTitle = true
}

func (f *Fragment) setArtist(v string) {
	if v == "" {
		return
	}
	f.Artist = v
	f.HasArtist = true
}

func (f *Fragment) setAlbum(v string) {
	if v == "" {
		return
	}
	f.Album = v
	f.HasAlbum = true
}

func (f *Fragment) setYear(v string) {
	if v == "" {
		return
	}
	f.Year = v
	f.HasYear = true
}

// FromStream normalizes an embedded-tag payload: a mapping of tag keys to
// values, where a value may be wrapped in a {data: value} envelope. Key
// matching is case-insensitive; unrecognized keys are ignored.
func FromStream(tags map[string]any) Fragment {
	var f Fragment

	for key, raw := range tags {
		value := tagText(raw)

		switch strings.ToUpper(key) {
		case "TIT2", "TITLE":
			f.setTitle(value)
		case "TPE1", "ARTIST":
			f.setArtist(value)
		case "TALB", "ALBUM":
			f.setAlbum(value)
		case "TDRC", "TYER", "YEAR":
			f.setYear(value)
		case "STREAMTITLE":
			// Icecast/Shoutcast composite "Artist - Title" string.
			artist, title, ok := splitStreamTitle(value)
			if ok {
				f.setArtist(artist)
				f.setTitle(title)
			} else {
				f.setTitle(title)
			}
		}
	}

	return f
}

// PollData is the current-track shape returned by the metadata service.
type PollData struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Date   string `json:"date"`
}

// FromPoll normalizes a polled API response. Absent keys are omitted from
// the fragment; the service's "date" maps to year.
func FromPoll(data PollData) Fragment {
	var f Fragment

	f.setTitle(data.Title)
	f.setArtist(data.Artist)
	f.setAlbum(data.Album)
	f.setYear(data.Date)

	return f
}

// splitStreamTitle splits "Artist - Title" on the first " - " separator.
// Without a separator the whole string is the title and ok is false.
func splitStreamTitle(s string) (artist, title string, ok bool) {
	parts := strings.SplitN(s, " - ", 2)
	if len(parts) == 2 {
		return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
	}
	return "", s, false
}

// tagText extracts the textual value of a tag, unwrapping a {data: value}
// envelope when present.
func tagText(v any) string {
	if m, isMap := v.(map[string]any); isMap {
		if inner, found := m["data"]; found {
			return tagText(inner)
		}
	}

	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	case float64:
		// JSON numbers decode as float64; years arrive this way.
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
