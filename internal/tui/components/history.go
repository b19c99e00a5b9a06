package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/playground-x/neoradio/internal/core"
	"github.com/playground-x/neoradio/internal/tui/styles"
)

// History displays recently played tracks
type History struct{}

// NewHistory creates a new History component
func NewHistory() *History {
	return &History{}
}

// Render renders the history panel
func (h *History) Render(entries []core.HistoryEntry, width, maxLines int) string {
	title := styles.PanelTitle("History")

	var content string
	if len(entries) == 0 {
		content = styles.Muted.Render("No track history yet")
	} else {
		content = h.renderHistory(entries, width-4, maxLines)
	}

	panel := styles.Panel().Width(width)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (h *History) renderHistory(entries []core.HistoryEntry, width, maxLines int) string {
	lines := make([]string, 0, len(entries))

	for i, entry := range entries {
		if maxLines > 0 && i >= maxLines {
			break
		}

		track := entry.Track
		line := fmt.Sprintf("%s %s",
			styles.Title.Render(truncate(track.Title, width/2)),
			styles.Subtitle.Render(truncate(track.Artist, width/3)),
		)
		detail := styles.Dim.Render(fmt.Sprintf("  %s • %s • %s",
			track.Album, track.Year, humanize.Time(entry.PlayedAt)))

		lines = append(lines, line, detail)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func truncate(s string, max int) string {
	if max <= 1 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
