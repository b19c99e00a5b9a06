package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/playground-x/neoradio/internal/core"
)

// Messages delivered by the session renderer.
type (
	trackMsg   core.TrackIdentity
	historyMsg []core.HistoryEntry
	ratingMsg  core.RatingState
	qualityMsg core.QualityInfo
	statusMsg  struct {
		Message string
		Kind    core.StatusKind
	}
)

// Renderer implements core.Renderer by forwarding every display update to
// the bubbletea program as a message. Updates arriving before the program
// is attached are dropped; the session only starts after attachment.
type Renderer struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewRenderer creates a detached renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Attach wires the renderer to a running program.
func (r *Renderer) Attach(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

func (r *Renderer) send(msg tea.Msg) {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()

	if p != nil {
		p.Send(msg)
	}
}

func (r *Renderer) RenderTrack(track core.TrackIdentity) {
	r.send(trackMsg(track))
}

func (r *Renderer) RenderHistory(entries []core.HistoryEntry) {
	r.send(historyMsg(entries))
}

func (r *Renderer) RenderRating(state core.RatingState) {
	r.send(ratingMsg(state))
}

func (r *Renderer) RenderQuality(info core.QualityInfo) {
	r.send(qualityMsg(info))
}

func (r *Renderer) RenderStatus(message string, kind core.StatusKind) {
	r.send(statusMsg{Message: message, Kind: kind})
}

var _ core.Renderer = (*Renderer)(nil)
