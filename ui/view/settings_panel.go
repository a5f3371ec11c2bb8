package view

import (
	"strconv"

	"github.com/soocke/frame-tracker-go/domain/tracking"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SettingsHandlers receive the bounded +/- adjustments.
type SettingsHandlers struct {
	IncNum, DecNum     func()
	IncDen, DecDen     func()
	IncTrail, DecTrail func()
	AddObject          func()
	PrevObject         func()
	NextObject         func()
}

// SettingsPanel shows sampling and trail settings with +/- controls.
type SettingsPanel interface {
	SetSettings(s tracking.Settings)
}

type settingsPanel struct {
	num, den, trail *TLabelWidget
}

// NewSettingsPanel builds the panel inside parent.
func NewSettingsPanel(parent *FrameWidget, h SettingsHandlers) SettingsPanel {
	p := &settingsPanel{}
	row := 0
	makeRow := func(label string, dec, inc func()) *TLabelWidget {
		lbl := TLabel(Txt(label), Anchor("w"))
		Grid(lbl, In(parent), Row(row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
		minus := TButton(Txt("-"), Width(2), Command(orNoop(dec)))
		Grid(minus, In(parent), Row(row), Column(1), Padx("0.2m"), Pady("0.15m"))
		value := TLabel(Width(4), Anchor("center"))
		Grid(value, In(parent), Row(row), Column(2), Padx("0.2m"), Pady("0.15m"))
		plus := TButton(Txt("+"), Width(2), Command(orNoop(inc)))
		Grid(plus, In(parent), Row(row), Column(3), Padx("0.2m"), Pady("0.15m"))
		row++
		return value
	}
	p.num = makeRow("Samples", h.DecNum, h.IncNum)
	p.den = makeRow("per seconds", h.DecDen, h.IncDen)
	p.trail = makeRow("Trail length", h.DecTrail, h.IncTrail)

	objects := Frame()
	Grid(objects, In(parent), Row(row), Column(0), Columnspan(4), Sticky("we"), Pady("0.4m"))
	Grid(TButton(Txt("< Object"), Command(orNoop(h.PrevObject))), In(objects), Row(0), Column(0), Sticky("we"), Padx("0.2m"))
	Grid(TButton(Txt("Object >"), Command(orNoop(h.NextObject))), In(objects), Row(0), Column(1), Sticky("we"), Padx("0.2m"))
	Grid(TButton(Txt("Add object [N]"), Command(orNoop(h.AddObject))), In(objects), Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	return p
}

func (p *settingsPanel) SetSettings(s tracking.Settings) {
	if p == nil || p.num == nil {
		return
	}
	p.num.Configure(Txt(strconv.Itoa(s.SamplingNum)))
	p.den.Configure(Txt(strconv.Itoa(s.SamplingDen)))
	p.trail.Configure(Txt(strconv.Itoa(s.TrailLength)))
}

func orNoop(fn func()) func() {
	if fn == nil {
		return func() {}
	}
	return fn
}
