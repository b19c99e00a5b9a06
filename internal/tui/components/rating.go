package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/playground-x/neoradio/internal/core"
	"github.com/playground-x/neoradio/internal/tui/styles"
)

// Rating displays the thumbs up/down state for the current track
type Rating struct{}

// NewRating creates a new Rating component
func NewRating() *Rating {
	return &Rating{}
}

// Render renders the rating panel
func (r *Rating) Render(state core.RatingState, width int) string {
	title := styles.PanelTitle("Rating")

	up := fmt.Sprintf("👍 %d", state.ThumbsUp)
	down := fmt.Sprintf("👎 %d", state.ThumbsDown)

	upStyle := styles.Muted
	downStyle := styles.Muted
	switch state.UserRating {
	case core.RatingUp:
		upStyle = styles.Highlight
	case core.RatingDown:
		downStyle = styles.Highlight
	}

	content := upStyle.Render(up) + "   " + downStyle.Render(down)
	hint := styles.Dim.Render("press u / d to vote")

	panel := styles.Panel().Width(width)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
		hint,
	))
}
