package view

import (
	"image"
	"log/slog"
	"time"

	"github.com/soocke/frame-tracker-go/domain/tracking"
	"github.com/soocke/frame-tracker-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Space taken by everything around the tracking surface.
const (
	ChromeWidth  = 240
	ChromeHeight = 120
)

// Handlers are the user actions the root view forwards.
type Handlers struct {
	OpenVideo     func()
	ImportCSV     func()
	ExportCSV     func()
	TogglePlay    func()
	JumpFirst     func()
	JumpPrev      func()
	JumpNext      func()
	JumpFinal     func()
	DeleteCurrent func()
	ZoomIn        func()
	ZoomOut       func()
	ResetView     func()
	Exit          func()

	KeyDown   func(keysym string)
	KeyUp     func(keysym string)
	FocusLost func()
	Resize    func(width, height int)

	Pointer  PointerHandlers
	Settings SettingsHandlers
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns the subviews and exposes them to presenters through small methods.
type RootView struct {
	logger *slog.Logger

	// Subviews
	Session  SessionStats
	Settings SettingsPanel
	Surface  TrackingSurface

	// Widgets
	StateLabel  *TLabelWidget
	StatusLabel *TLabelWidget
	playBtn     *TButtonWidget
	deleteBtn   *TButtonWidget
}

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// Build constructs the layout with a surface of the given size.
func (rv *RootView) Build(surface image.Point, h Handlers) {
	if rv == nil {
		return
	}
	// Row 0: toolbar
	toolbar := Frame()
	Grid(toolbar, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	col := 0
	add := func(w Widget) {
		Grid(w, In(toolbar), Row(0), Column(col), Sticky("we"), Padx("0.2m"))
		col++
	}
	add(TButton(Txt("Open video"), Command(orNoop(h.OpenVideo))))
	add(TButton(Txt("Import CSV"), Command(orNoop(h.ImportCSV))))
	add(TButton(Txt("Export CSV"), Command(orNoop(h.ExportCSV))))
	add(TButton(Txt("|<"), Width(3), Command(orNoop(h.JumpFirst))))
	add(TButton(Txt("<"), Width(3), Command(orNoop(h.JumpPrev))))
	rv.playBtn = TButton(Txt("Play"), Width(6), Style(theme.StylePrimaryButton), Command(orNoop(h.TogglePlay)))
	add(rv.playBtn)
	add(TButton(Txt(">"), Width(3), Command(orNoop(h.JumpNext))))
	add(TButton(Txt(">|"), Width(3), Command(orNoop(h.JumpFinal))))
	rv.deleteBtn = TButton(Txt("Delete point"), Style(theme.StyleDangerButton), Command(orNoop(h.DeleteCurrent)))
	add(rv.deleteBtn)
	add(TButton(Txt("Zoom +"), Command(orNoop(h.ZoomIn))))
	add(TButton(Txt("Zoom -"), Command(orNoop(h.ZoomOut))))
	add(TButton(Txt("Fit"), Command(orNoop(h.ResetView))))
	add(TButton(Txt("Exit"), Command(orNoop(h.Exit))))

	// Row 1: status line
	status := Frame()
	Grid(status, Row(1), Column(0), Columnspan(2), Sticky("we"), Padx("0.3m"))
	rv.StateLabel = TLabel(Txt("Mode: idle"), Style(theme.StyleStateLabel))
	Grid(rv.StateLabel, In(status), Row(0), Column(0), Sticky("w"), Padx("0.2m"))
	rv.Session = NewSessionStats(status, 0, 1)

	// Row 2: surface and settings
	body := Frame()
	Grid(body, Row(2), Column(0), Sticky("nw"))
	rv.Surface = NewTrackingSurface(body, 0, 0, surface, h.Pointer)
	panel := Frame()
	Grid(panel, Row(2), Column(1), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	rv.Settings = NewSettingsPanel(panel, h.Settings)

	// Row 3: messages
	rv.StatusLabel = TLabel(Txt("Open a video to start tracking."), Style(theme.StyleMutedLabel), Anchor("w"))
	Grid(rv.StatusLabel, Row(3), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.2m"))

	rv.bindKeys(h)
}

func (rv *RootView) bindKeys(h Handlers) {
	if h.KeyDown != nil {
		Bind(App, "<KeyPress>", Command(func(e *Event) { h.KeyDown(e.Keysym) }))
	}
	if h.KeyUp != nil {
		Bind(App, "<KeyRelease>", Command(func(e *Event) { h.KeyUp(e.Keysym) }))
	}
	if h.FocusLost != nil {
		Bind(App, "<FocusOut>", Command(func() { h.FocusLost() }))
	}
	if h.Resize != nil {
		// Bindings on the toplevel also fire for its children; only the
		// toplevel's own size matters.
		Bind(App, "<Configure>", Command(func(e *Event) {
			if e.W != nil && e.W != App.Window {
				return
			}
			h.Resize(e.Width, e.Height)
		}))
	}
}

// SetStateLabel updates the interaction mode label.
func (rv *RootView) SetStateLabel(text string) {
	if rv != nil && rv.StateLabel != nil {
		rv.StateLabel.Configure(Txt(text))
	}
}

// ShowStatus shows a one-line message below the surface.
func (rv *RootView) ShowStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
	if rv != nil && rv.logger != nil {
		rv.logger.Debug("status", "text", text)
	}
}

// SetPlaying switches the play button caption.
func (rv *RootView) SetPlaying(playing bool) {
	if rv == nil || rv.playBtn == nil {
		return
	}
	if playing {
		rv.playBtn.Configure(Txt("Pause"))
		return
	}
	rv.playBtn.Configure(Txt("Play"))
}

// SetEditable enables the editing controls; they are locked while playing.
func (rv *RootView) SetEditable(enabled bool) {
	if rv == nil || rv.deleteBtn == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	rv.deleteBtn.Configure(State(state))
}

// SetSession updates the run and total playing durations.
func (rv *RootView) SetSession(run, total time.Duration) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetDurations(run, total)
	}
}

// SetPosition updates the time and frame label.
func (rv *RootView) SetPosition(text string) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetPosition(text)
	}
}

// SetPoints updates the point summary label.
func (rv *RootView) SetPoints(text string) {
	if rv != nil && rv.Session != nil {
		rv.Session.SetPoints(text)
	}
}

// SetSettings shows the current settings values.
func (rv *RootView) SetSettings(s tracking.Settings) {
	if rv != nil && rv.Settings != nil {
		rv.Settings.SetSettings(s)
	}
}

// UpdateSurface proxies to the tracking surface.
func (rv *RootView) UpdateSurface(png []byte) {
	if rv != nil && rv.Surface != nil {
		rv.Surface.UpdateSurface(png)
	}
}

// SetCursor proxies to the tracking surface.
func (rv *RootView) SetCursor(name string) {
	if rv != nil && rv.Surface != nil {
		rv.Surface.SetCursor(name)
	}
}

// SetTitle sets the window title.
func (rv *RootView) SetTitle(title string) {
	App.WmTitle(title)
}
