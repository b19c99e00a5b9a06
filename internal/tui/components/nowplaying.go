package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/playground-x/neoradio/internal/core"
	"github.com/playground-x/neoradio/internal/tui/styles"
)

// NowPlaying displays the currently playing track
type NowPlaying struct{}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying() *NowPlaying {
	return &NowPlaying{}
}

// Render renders the now playing panel
func (n *NowPlaying) Render(track *core.TrackIdentity, state core.SessionState, width int) string {
	title := styles.PanelTitle("Now Playing")

	var content string
	if track == nil {
		content = styles.Muted.Render("No track information yet")
	} else {
		content = n.renderTrack(track, state, width-4)
	}

	panel := styles.Panel().Width(width)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (n *NowPlaying) renderTrack(track *core.TrackIdentity, state core.SessionState, width int) string {
	icon := styles.Dim.Render("⏸")
	if state == core.StatePlaying {
		icon = styles.Playing.Render("▶")
	}

	titleStyle := styles.Title.Width(width - 4)
	title := titleStyle.Render(track.Title)

	artist := styles.Subtitle.Render(track.Artist)
	album := styles.Dim.Render(track.Album + " • " + track.Year)

	return lipgloss.JoinVertical(lipgloss.Left,
		icon+" "+title,
		"  "+artist,
		"  "+album,
	)
}
