package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/playground-x/neoradio/internal/core"
	"github.com/playground-x/neoradio/internal/tui/styles"
)

// Quality displays the stream's codec and bitrate facts
type Quality struct{}

// NewQuality creates a new Quality component
func NewQuality() *Quality {
	return &Quality{}
}

// Render renders the quality panel
func (q *Quality) Render(info core.QualityInfo, width int) string {
	title := styles.PanelTitle("Audio Quality")

	rows := []string{
		styles.Label.Render("Codec      ") + styles.Subtitle.Render(info.Codec),
		styles.Label.Render("Bitrate    ") + styles.Subtitle.Render(info.Bitrate),
		styles.Label.Render("Sample     ") + styles.Subtitle.Render(info.SampleRate),
		styles.Label.Render("Channels   ") + styles.Subtitle.Render(info.Channels),
	}

	panel := styles.Panel().Width(width)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{title, ""}, rows...)...,
	))
}
