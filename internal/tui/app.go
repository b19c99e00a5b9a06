package tui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/playground-x/neoradio/internal/core"
	"github.com/playground-x/neoradio/internal/session"
	"github.com/playground-x/neoradio/internal/tui/components"
	"github.com/playground-x/neoradio/internal/tui/styles"
)

const volumeStep = 5

// Model is the live player view.
type Model struct {
	sess   *session.Session
	ctx    context.Context
	width  int
	height int
	volume int

	// Display state, pushed by the session renderer
	track   *core.TrackIdentity
	history []core.HistoryEntry
	rating  core.RatingState
	quality core.QualityInfo
	status  string
	kind    core.StatusKind

	// Components
	spinner     spinner.Model
	nowPlaying  *components.NowPlaying
	historyView *components.History
	ratingView  *components.Rating
	qualityView *components.Quality
}

// NewModel creates the player view for a session.
func NewModel(ctx context.Context, sess *session.Session, volume int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Warning)

	return Model{
		sess:        sess,
		ctx:         ctx,
		volume:      volume,
		quality:     core.QualityInfo{},
		spinner:     sp,
		nowPlaying:  components.NewNowPlaying(),
		historyView: components.NewHistory(),
		ratingView:  components.NewRating(),
		qualityView: components.NewQuality(),
	}
}

// Init starts the session once the program is running.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startSession())
}

func (m Model) startSession() tea.Cmd {
	return func() tea.Msg {
		m.sess.SetVolume(m.volume)
		if err := m.sess.Start(m.ctx); err != nil {
			return statusMsg{Message: err.Error(), Kind: core.StatusError}
		}
		return nil
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case trackMsg:
		t := core.TrackIdentity(msg)
		m.track = &t
		return m, nil

	case historyMsg:
		m.history = msg
		return m, nil

	case ratingMsg:
		m.rating = core.RatingState(msg)
		return m, nil

	case qualityMsg:
		m.quality = core.QualityInfo(msg)
		return m, nil

	case statusMsg:
		m.status = msg.Message
		m.kind = msg.Kind
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.sess.Stop()
		return m, tea.Quit

	case "s":
		if m.sess.State().Active() {
			m.sess.Stop()
			return m, nil
		}
		return m, m.startSession()

	case "u":
		return m, m.rate(core.RatingUp)

	case "d":
		return m, m.rate(core.RatingDown)

	case "+", "=":
		m.volume = min(m.volume+volumeStep, 100)
		m.sess.SetVolume(m.volume)
		return m, nil

	case "-":
		m.volume = max(m.volume-volumeStep, 0)
		m.sess.SetVolume(m.volume)
		return m, nil
	}

	return m, nil
}

func (m Model) rate(r core.Rating) tea.Cmd {
	return func() tea.Msg {
		// Errors surface through the session's status rendering.
		_ = m.sess.Rate(m.ctx, r)
		return nil
	}
}

// View renders the player.
func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	header := m.renderHeader()

	leftWidth := m.width * 2 / 5
	rightWidth := m.width - leftWidth - 2

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.nowPlaying.Render(m.track, m.sess.State(), leftWidth),
		m.ratingView.Render(m.rating, leftWidth),
		m.qualityView.Render(m.quality, leftWidth),
	)

	right := m.historyView.Render(m.history, rightWidth, (m.height-6)/2)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	footer := styles.Dim.Render("  s start/stop • u/d rate • +/- volume • q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) renderHeader() string {
	status := m.status
	if status == "" {
		status = "Ready"
	}

	line := styles.StatusStyle(m.kind.String()).Render(status)
	if m.kind == core.StatusLoading {
		line = m.spinner.View() + " " + line
	}

	vol := styles.Dim.Render("vol " + strconv.Itoa(m.volume) + "%")

	gap := m.width - lipgloss.Width(line) - lipgloss.Width(vol) - 4
	if gap < 1 {
		gap = 1
	}

	return "  " + line + lipgloss.NewStyle().Width(gap).Render("") + vol
}
