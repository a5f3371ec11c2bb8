package presenter

import (
	"testing"
	"time"

	"github.com/soocke/frame-tracker-go/domain/interaction"
)

type mockGestureSource struct{ state interaction.State }

func (m *mockGestureSource) State() interaction.State { return m.state }

type mockStateView struct {
	labels []string
}

func (v *mockStateView) SetStateLabel(s string) { v.labels = append(v.labels, s) }

func TestFSMPresenter_CoalescesPending(t *testing.T) {
	src := &mockGestureSource{}
	view := &mockStateView{}
	p := NewFSMPresenter(src, view)

	p.Tick(time.Now())
	if len(view.labels) != 1 || view.labels[0] != "Mode: idle" {
		t.Fatalf("initial label: %v", view.labels)
	}

	p.OnState(interaction.StateIdle, interaction.StatePreDrag)
	p.OnState(interaction.StatePreDrag, interaction.StateDragging)
	p.Tick(time.Now())
	if len(view.labels) != 2 || view.labels[1] != "Mode: dragging" {
		t.Fatalf("expected only the latest state, got %v", view.labels)
	}

	p.Tick(time.Now())
	if len(view.labels) != 2 {
		t.Fatalf("idle tick changed label: %v", view.labels)
	}

	p.OnState(interaction.StateDragging, interaction.StateIdle)
	p.OnState(interaction.StateIdle, interaction.StatePreDrag)
	p.OnState(interaction.StatePreDrag, interaction.StateDragging)
	p.Tick(time.Now())
	if len(view.labels) != 2 {
		t.Fatalf("unchanged net state must not relabel: %v", view.labels)
	}
}
