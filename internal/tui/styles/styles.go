package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
)

// Colors, populated from the active catppuccin flavour.
var (
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	ErrorCol  lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	TextDim   lipgloss.Color
	Border    lipgloss.Color
)

// Text styles
var (
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Highlight lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Playing   lipgloss.Style
	Errored   lipgloss.Style
)

// Border styles
var (
	BorderStyle lipgloss.Style
)

func init() {
	SetTheme("mocha")
}

// SetTheme switches the palette to the named catppuccin flavour.
// Unknown names fall back to mocha.
func SetTheme(name string) {
	f := catppuccin.Mocha
	switch strings.ToLower(name) {
	case "latte":
		f = catppuccin.Latte
	case "frappe":
		f = catppuccin.Frappe
	case "macchiato":
		f = catppuccin.Macchiato
	}

	Primary = lipgloss.Color(f.Mauve().Hex)
	Success = lipgloss.Color(f.Green().Hex)
	Warning = lipgloss.Color(f.Yellow().Hex)
	ErrorCol = lipgloss.Color(f.Red().Hex)
	Text = lipgloss.Color(f.Text().Hex)
	TextMuted = lipgloss.Color(f.Subtext0().Hex)
	TextDim = lipgloss.Color(f.Overlay0().Hex)
	Border = lipgloss.Color(f.Surface1().Hex)

	Title = lipgloss.NewStyle().Bold(true).Foreground(Text)
	Subtitle = lipgloss.NewStyle().Foreground(TextMuted)
	Label = lipgloss.NewStyle().Foreground(TextDim)
	Highlight = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Dim = lipgloss.NewStyle().Foreground(TextDim)
	Playing = lipgloss.NewStyle().Foreground(Success)
	Errored = lipgloss.NewStyle().Foreground(ErrorCol)

	BorderStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border)
}

// Panel creates a styled panel.
func Panel() lipgloss.Style {
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title.
func PanelTitle(title string) string {
	return Label.Render(" " + title + " ")
}

// StatusStyle returns the style for a status kind.
func StatusStyle(kind string) lipgloss.Style {
	switch kind {
	case "playing":
		return Playing
	case "error":
		return Errored
	case "loading":
		return lipgloss.NewStyle().Foreground(Warning)
	default:
		return Muted
	}
}
