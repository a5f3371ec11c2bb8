package model

import (
	"time"

	"github.com/soocke/frame-tracker-go/domain/interaction"
)

// DefaultHoverDebounce is how long a hover change must persist before it is shown.
const DefaultHoverDebounce = 40 * time.Millisecond

// HoverModel is the visual projection of what lies under the pointer. It
// only drives cursor and highlight feedback; editing logic never reads it.
// Updates occur on the UI thread.
type HoverModel struct {
	debounce   time.Duration
	shown      interaction.Hover
	pending    interaction.Hover
	pendingAt  time.Time
	hasPending bool
}

func NewHoverModel(debounce time.Duration) *HoverModel {
	if debounce < 0 {
		debounce = 0
	}
	return &HoverModel{debounce: debounce}
}

// Set records the latest hover report.
func (m *HoverModel) Set(h interaction.Hover, now time.Time) {
	if m == nil {
		return
	}
	if sameFeedback(h, m.shown) {
		m.shown.Pos = h.Pos
		m.hasPending = false
		return
	}
	if m.hasPending && sameFeedback(h, m.pending) {
		m.pending.Pos = h.Pos
		return
	}
	m.pending = h
	m.pendingAt = now
	m.hasPending = true
}

// Clear drops hover feedback immediately, e.g. when the pointer leaves the surface.
func (m *HoverModel) Clear() {
	if m == nil {
		return
	}
	m.shown = interaction.Hover{}
	m.hasPending = false
}

// Flush promotes a pending report once it has settled and reports whether
// the shown feedback changed.
func (m *HoverModel) Flush(now time.Time) (interaction.Hover, bool) {
	if m == nil {
		return interaction.Hover{}, false
	}
	if !m.hasPending || now.Sub(m.pendingAt) < m.debounce {
		return m.shown, false
	}
	m.shown = m.pending
	m.hasPending = false
	return m.shown, true
}

// Current returns the feedback currently shown.
func (m *HoverModel) Current() interaction.Hover {
	if m == nil {
		return interaction.Hover{}
	}
	return m.shown
}

// sameFeedback compares the fields that change what the user sees.
func sameFeedback(a, b interaction.Hover) bool {
	return a.Over == b.Over && a.Draggable == b.Draggable && a.ObjectID == b.ObjectID
}
