package presenter

import (
	"time"

	"github.com/soocke/frame-tracker-go/domain/interaction"
)

// GestureSource provides the interaction machine state.
type GestureSource interface {
	State() interaction.State
}

// StateView sets the state label in the view.
type StateView interface{ SetStateLabel(string) }

// FSMPresenter mirrors interaction state changes into the state label.
type FSMPresenter struct {
	eng     GestureSource
	view    StateView
	latest  interaction.State
	shown   bool
	pending []interaction.State
}

func NewFSMPresenter(eng GestureSource, view StateView) *FSMPresenter {
	return &FSMPresenter{eng: eng, view: view}
}

// OnState queues a transitioned state from the machine listener.
//
// The latest queued state will be reflected on the next Tick.
func (p *FSMPresenter) OnState(prev, next interaction.State) {
	if p == nil {
		return
	}
	p.pending = append(p.pending, next)
}

// Tick flushes queued states to the view.
func (p *FSMPresenter) Tick(now time.Time) {
	if p == nil || p.eng == nil || p.view == nil {
		return
	}
	if !p.shown {
		p.pending = append(p.pending, p.eng.State())
		p.shown = true
		p.latest = -1
	}
	if len(p.pending) == 0 {
		return
	}
	last := p.pending[len(p.pending)-1]
	p.pending = p.pending[:0]
	if last != p.latest {
		p.latest = last
		p.view.SetStateLabel("Mode: " + last.String())
	}
}
