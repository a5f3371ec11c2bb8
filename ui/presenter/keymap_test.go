package presenter

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/frame-tracker-go/domain/viewport"
)

func TestLookupKey(t *testing.T) {
	cases := []struct {
		keysym string
		cmd    KeyCommand
		arg    int
	}{
		{"space", KeyTogglePlay, 0},
		{"Left", KeyJumpPrev, 0},
		{"End", KeyJumpFinal, 0},
		{"BackSpace", KeyDelete, 0},
		{"3", KeySelectObject, 3},
		{"0", KeyResetView, 0},
		{"KP_Add", KeyZoomIn, 0},
		{"Shift_L", KeyNone, 0},
		{"10", KeyNone, 0},
	}
	for _, c := range cases {
		cmd, arg := LookupKey(c.keysym)
		if cmd != c.cmd || arg != c.arg {
			t.Fatalf("LookupKey(%q) = %v,%d want %v,%d", c.keysym, cmd, arg, c.cmd, c.arg)
		}
	}
}

func TestZoomKeysMoveScaleTheRightWay(t *testing.T) {
	cases := []struct {
		keysym string
		grows  bool
	}{
		{"plus", true},
		{"KP_Add", true},
		{"minus", false},
		{"KP_Subtract", false},
	}
	for _, c := range cases {
		ctl := viewport.NewController(viewport.Size{W: 800, H: 600})
		ctl.SetVideo(viewport.Size{W: 400, H: 300})
		before := ctl.Transform().Scale
		cmd, _ := LookupKey(c.keysym)
		ctl.Zoom(ZoomDelta(cmd), r2.Vec{X: 400, Y: 300})
		after := ctl.Transform().Scale
		if c.grows && after <= before {
			t.Fatalf("%s: scale %v -> %v, want zoom in", c.keysym, before, after)
		}
		if !c.grows && after >= before {
			t.Fatalf("%s: scale %v -> %v, want zoom out", c.keysym, before, after)
		}
	}
	if d := ZoomDelta(KeyTogglePlay); d != 0 {
		t.Fatalf("non-zoom command delta = %v", d)
	}
}
