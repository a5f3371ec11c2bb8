// Package interaction turns a raw pointer stream into selection, logging,
// point dragging and view panning.
//
// The machine is driven synchronously from the UI event thread. Each state
// is a distinct gesture variant carrying only the data valid in it, and
// transitions are looked up in a table keyed by (state, event).
package interaction

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/frame-tracker-go/domain/overlay"
	"github.com/soocke/frame-tracker-go/domain/points"
	"github.com/soocke/frame-tracker-go/domain/viewport"
)

type gesture interface{ state() State }

type idle struct{}

type preDrag struct {
	start     r2.Vec
	candidate int // 0 when the press hit no marker
	draggable *points.TrackPoint
}

type dragging struct {
	live points.TrackPoint
}

type panning struct {
	last r2.Vec
}

func (idle) state() State     { return StateIdle }
func (preDrag) state() State  { return StatePreDrag }
func (dragging) state() State { return StateDragging }
func (panning) state() State  { return StatePanning }

type transitionKey struct {
	from State
	on   eventKind
}

type transition func(m *Machine, g gesture, ev Event) gesture

var transitions = map[transitionKey]transition{
	{StateIdle, kindDown}: (*Machine).press,
	{StateIdle, kindMove}: (*Machine).hover,

	{StatePreDrag, kindMove}:        (*Machine).resolve,
	{StatePreDrag, kindUp}:          (*Machine).click,
	{StatePreDrag, kindCancel}:      (*Machine).abort,
	{StatePreDrag, kindLostCapture}: (*Machine).abort,

	{StateDragging, kindMove}:        (*Machine).drag,
	{StateDragging, kindUp}:          (*Machine).drop,
	{StateDragging, kindCancel}:      (*Machine).abort,
	{StateDragging, kindLostCapture}: (*Machine).abort,

	{StatePanning, kindMove}:        (*Machine).pan,
	{StatePanning, kindUp}:          (*Machine).finish,
	{StatePanning, kindCancel}:      (*Machine).abort,
	{StatePanning, kindLostCapture}: (*Machine).abort,
}

// Machine is the pointer gesture state machine.
type Machine struct {
	logger    *slog.Logger
	surface   Surface
	actions   ActionCallbacks
	current   gesture
	listeners []StateListener
}

// NewMachine returns an idle machine.
func NewMachine(logger *slog.Logger, surface Surface, actions ActionCallbacks) *Machine {
	return &Machine{logger: logger, surface: surface, actions: actions, current: idle{}}
}

// AddListener registers l for state changes.
func (m *Machine) AddListener(l StateListener) { m.listeners = append(m.listeners, l) }

// State returns the current state.
func (m *Machine) State() State { return m.current.state() }

// Dragged returns the uncommitted dragged point, or nil outside a drag.
func (m *Machine) Dragged() *points.TrackPoint {
	if d, ok := m.current.(dragging); ok {
		p := d.live
		return &p
	}
	return nil
}

// Dispatch feeds one event through the transition table. Events with no
// entry for the current state are ignored.
func (m *Machine) Dispatch(ev Event) {
	if ev == nil {
		return
	}
	t, ok := transitions[transitionKey{from: m.current.state(), on: ev.kind()}]
	if !ok {
		return
	}
	m.set(t(m, m.current, ev))
}

// Reset discards any gesture in progress.
func (m *Machine) Reset() {
	if m.State() == StateIdle {
		return
	}
	m.set(m.abort(m.current, PointerCancel{}))
}

func (m *Machine) set(next gesture) {
	prev := m.current.state()
	m.current = next
	if prev == next.state() {
		return
	}
	if m.logger != nil {
		m.logger.Debug("interaction state transition", "from", prev.String(), "to", next.state().String())
	}
	for _, l := range m.listeners {
		l(prev, next.state())
	}
}

func (m *Machine) press(_ gesture, ev Event) gesture {
	e := ev.(PointerDown)
	if e.LogModifier {
		if m.actions.LogAt != nil {
			m.actions.LogAt(e.Pos)
		}
		return idle{}
	}
	if m.actions.Capture != nil {
		m.actions.Capture()
	}
	pd := preDrag{start: e.Pos}
	if hit, ok := m.hitTest(e.Pos); ok {
		pd.candidate = hit.ObjectID
		if hit.Kind == overlay.KindCurrent {
			p := hit.Point
			pd.draggable = &p
		}
	}
	return pd
}

func (m *Machine) hover(_ gesture, ev Event) gesture {
	e := ev.(PointerMove)
	if m.actions.Hover != nil {
		h := Hover{Pos: e.Pos}
		if hit, ok := m.hitTest(e.Pos); ok {
			h.Over = true
			h.ObjectID = hit.ObjectID
			h.Draggable = hit.Kind == overlay.KindCurrent
		}
		m.actions.Hover(h)
	}
	return idle{}
}

func (m *Machine) resolve(g gesture, ev Event) gesture {
	pd := g.(preDrag)
	e := ev.(PointerMove)
	if !e.ButtonDown {
		return m.abort(g, ev)
	}
	if r2.Norm(r2.Sub(e.Pos, pd.start)) <= DragThreshold {
		return pd
	}
	switch {
	case pd.draggable != nil:
		d := dragging{live: *pd.draggable}
		return m.drag(d, ev)
	case m.surface != nil && m.surface.CanPan():
		return m.pan(panning{last: pd.start}, ev)
	default:
		return m.abort(g, ev)
	}
}

func (m *Machine) click(g gesture, _ Event) gesture {
	pd := g.(preDrag)
	m.release()
	if pd.candidate > 0 && m.actions.Select != nil {
		m.actions.Select(pd.candidate)
	}
	return idle{}
}

func (m *Machine) drag(g gesture, ev Event) gesture {
	d := g.(dragging)
	e := ev.(PointerMove)
	if !e.ButtonDown {
		return m.abort(g, ev)
	}
	if m.surface != nil {
		v := viewport.ClampToVideo(m.surface.Transform().ToVideo(e.Pos), m.surface.VideoSize())
		d.live.X, d.live.Y = v.X, v.Y
	}
	if m.actions.DragPreview != nil {
		p := d.live
		m.actions.DragPreview(&p)
	}
	return d
}

func (m *Machine) drop(g gesture, _ Event) gesture {
	d := g.(dragging)
	m.release()
	if m.actions.DragPreview != nil {
		m.actions.DragPreview(nil)
	}
	if m.actions.CommitDrag != nil {
		m.actions.CommitDrag(d.live)
	}
	return idle{}
}

func (m *Machine) pan(g gesture, ev Event) gesture {
	p := g.(panning)
	e := ev.(PointerMove)
	if !e.ButtonDown {
		return m.abort(g, ev)
	}
	if m.actions.Pan != nil {
		m.actions.Pan(r2.Sub(e.Pos, p.last))
	}
	return panning{last: e.Pos}
}

func (m *Machine) finish(_ gesture, _ Event) gesture {
	m.release()
	return idle{}
}

// abort is the single hard-reset path: nothing uncommitted survives it.
func (m *Machine) abort(g gesture, _ Event) gesture {
	m.release()
	if _, ok := g.(dragging); ok && m.actions.DragPreview != nil {
		m.actions.DragPreview(nil)
	}
	return idle{}
}

func (m *Machine) release() {
	if m.actions.Release != nil {
		m.actions.Release()
	}
}

func (m *Machine) hitTest(pos r2.Vec) (overlay.Marker, bool) {
	if m.surface == nil {
		return overlay.Marker{}, false
	}
	return overlay.HitTest(m.surface.Markers(), pos, m.surface.Transform())
}

var _ Contract = (*Machine)(nil)
