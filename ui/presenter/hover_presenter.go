package presenter

import (
	"time"

	"github.com/soocke/frame-tracker-go/domain/interaction"
	"github.com/soocke/frame-tracker-go/ui/model"
)

// Tk cursor names used on the tracking surface.
const (
	CursorDefault   = "crosshair"
	CursorSelect    = "hand1"
	CursorDraggable = "hand2"
	CursorGrab      = "fleur"
)

// CursorView changes the pointer shape over the surface.
type CursorView interface{ SetCursor(name string) }

// HoverPresenter turns debounced hover reports and gesture state into
// cursor feedback.
type HoverPresenter struct {
	model   *model.HoverModel
	gesture GestureSource
	view    CursorView
	shown   string
}

func NewHoverPresenter(m *model.HoverModel, gesture GestureSource, view CursorView) *HoverPresenter {
	return &HoverPresenter{model: m, gesture: gesture, view: view}
}

// OnHover receives hover reports from the interaction machine.
func (p *HoverPresenter) OnHover(h interaction.Hover) {
	if p == nil {
		return
	}
	p.model.Set(h, time.Now())
}

// OnLeave clears feedback when the pointer leaves the surface.
func (p *HoverPresenter) OnLeave() {
	if p == nil {
		return
	}
	p.model.Clear()
}

// Tick flushes settled hover state to the cursor.
func (p *HoverPresenter) Tick(now time.Time) {
	if p == nil || p.view == nil {
		return
	}
	h, _ := p.model.Flush(now)
	name := CursorDefault
	state := interaction.StateIdle
	if p.gesture != nil {
		state = p.gesture.State()
	}
	switch {
	case state == interaction.StateDragging || state == interaction.StatePanning:
		name = CursorGrab
	case h.Draggable:
		name = CursorDraggable
	case h.Over:
		name = CursorSelect
	}
	if name != p.shown {
		p.shown = name
		p.view.SetCursor(name)
	}
}
