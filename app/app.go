package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/frame-tracker-go/debug"
	"github.com/soocke/frame-tracker-go/domain/interaction"
	"github.com/soocke/frame-tracker-go/domain/navigation"
	"github.com/soocke/frame-tracker-go/domain/playback"
	"github.com/soocke/frame-tracker-go/domain/tracking"
	"github.com/soocke/frame-tracker-go/domain/viewport"
	"github.com/soocke/frame-tracker-go/media"
	"github.com/soocke/frame-tracker-go/storage/sqlite"
	"github.com/soocke/frame-tracker-go/ui/presenter"
	"github.com/soocke/frame-tracker-go/ui/theme"
	"github.com/soocke/frame-tracker-go/ui/view"
)

const (
	tick         = 15 * time.Millisecond
	probeTimeout = 10 * time.Second
	debugEvery   = 5 * time.Second
)

// App runs the Tk window around an AppContainer.
type App struct {
	c           *AppContainer
	logger      *slog.Logger
	afterID     string
	player      atomic.Pointer[media.Player]
	videoPath   string
	unsubscribe []func()
	status      atomic.Pointer[tracking.Status]
}

// New returns an app for c.
func New(c *AppContainer) *App {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{c: c, logger: logger}
}

// Run builds the window, optionally opens a video and imports a CSV, and
// blocks until the window is closed.
func (a *App) Run(videoPath, csvPath string) {
	c := a.c
	theme.SetDark(c.Config.DarkMode)
	App.WmTitle("Frame Tracker")
	WmProtocol(App, "WM_DELETE_WINDOW", a.exit)
	surface := image.Pt(c.Config.SurfaceWidth, c.Config.SurfaceHeight)
	WmGeometry(App, fmt.Sprintf("%dx%d+80+60", surface.X+view.ChromeWidth, surface.Y+view.ChromeHeight))

	c.RootView = view.NewRootView(a.logger)
	c.RootView.Build(surface, a.handlers())
	a.wirePresenters(surface)

	if c.Config.Debug {
		debug.StartGoroutineLogger(debugEvery, a.logger, a.debugStats)
		debug.StartMemLogger(debugEvery, a.logger)
	}
	if videoPath != "" {
		a.openVideo(videoPath)
	}
	if csvPath != "" {
		a.importCSV(csvPath)
	}
	a.scheduleUpdate()
	App.Wait()
}

func (a *App) wirePresenters(surface image.Point) {
	c := a.c
	rv := c.RootView
	c.PlaybackPresenter = presenter.NewPlaybackPresenter(c.Playback, c.Clock, c.Machine, rv, a.logger)
	c.TrackingPresenter = presenter.NewTrackingPresenter(c.Session, c.Clock, rv, surface, a.logger)
	c.FSMPresenter = presenter.NewFSMPresenter(c.Machine, rv)
	c.SessionPresenter = presenter.NewSessionPresenter(c.SessionModel, c.Session, rv)
	c.HoverPresenter = presenter.NewHoverPresenter(c.Hover, c.Machine, rv)
	if c.SessionDB != nil {
		c.Autosaver = presenter.NewAutosaver(c.SessionDB, c.Store, c.autosaveInterval(), a.logger)
	}
	c.Loop = presenter.NewLoop(c.SessionPresenter, c.FSMPresenter, c.TrackingPresenter, c.HoverPresenter, c.Autosaver, a.scheduleUpdate)

	c.Machine.AddListener(c.FSMPresenter.OnState)
	c.Clock.AddListener(func(s playback.Status) {
		c.PlaybackPresenter.OnStatus(s)
		c.TrackingPresenter.Invalidate()
	})
	c.Store.AddListener(func(uint64) { c.TrackingPresenter.Invalidate() })
	c.Session.AddSettingsListener(func(s tracking.Settings) {
		rv.SetSettings(s)
		c.TrackingPresenter.Invalidate()
		a.saveSettings(s)
	})
	rv.SetSettings(c.Session.Settings())

	a.unsubscribe = append(a.unsubscribe,
		c.Modifiers.Subscribe(presenter.ConcernHold, func(m presenter.Modifiers) {
			c.Clock.SetHold(m.Hold)
		}),
		c.Modifiers.Subscribe(presenter.ConcernResize, func(m presenter.Modifiers) {
			a.resizeSurface(m.Width-view.ChromeWidth, m.Height-view.ChromeHeight)
		}),
	)
}

func (a *App) handlers() view.Handlers {
	c := a.c
	return view.Handlers{
		OpenVideo: func() {
			if p := view.AskVideo(c.Config.LastVideo); p != "" {
				a.openVideo(p)
			}
		},
		ImportCSV: func() {
			if p := view.AskImportCSV(c.Config.LastCSV); p != "" {
				a.importCSV(p)
			}
		},
		ExportCSV: a.exportCSV,
		TogglePlay: func() {
			c.PlaybackPresenter.Toggle()
		},
		JumpFirst:     func() { a.jump(navigation.First) },
		JumpPrev:      func() { a.jump(navigation.Prev) },
		JumpNext:      func() { a.jump(navigation.Next) },
		JumpFinal:     func() { a.jump(navigation.Final) },
		DeleteCurrent: a.deleteCurrent,
		ZoomIn:        func() { a.zoomAtCenter(presenter.ZoomDelta(presenter.KeyZoomIn)) },
		ZoomOut:       func() { a.zoomAtCenter(presenter.ZoomDelta(presenter.KeyZoomOut)) },
		ResetView:     a.resetView,
		Exit:          a.exit,
		KeyDown:       a.keyDown,
		KeyUp:         c.Modifiers.KeyUp,
		FocusLost: func() {
			c.Modifiers.FocusLost()
			c.Machine.Dispatch(interaction.LostCapture{})
		},
		Resize: c.Modifiers.Resize,
		Pointer: view.PointerHandlers{
			Press: func(x, y float64, logModifier bool) {
				c.Machine.Dispatch(interaction.PointerDown{
					Pos:         r2.Vec{X: x, Y: y},
					LogModifier: logModifier || c.Modifiers.State().Log,
				})
			},
			Move: func(x, y float64, buttonDown bool) {
				c.Machine.Dispatch(interaction.PointerMove{Pos: r2.Vec{X: x, Y: y}, ButtonDown: buttonDown})
			},
			Release: func(x, y float64) {
				c.Machine.Dispatch(interaction.PointerUp{Pos: r2.Vec{X: x, Y: y}})
			},
			Leave: func() {
				c.HoverPresenter.OnLeave()
			},
			Wheel: func(x, y, delta float64) {
				c.Viewport.Zoom(delta, r2.Vec{X: x, Y: y})
				c.TrackingPresenter.Invalidate()
			},
		},
		Settings: view.SettingsHandlers{
			IncNum:     c.Session.IncNum,
			DecNum:     c.Session.DecNum,
			IncDen:     c.Session.IncDen,
			DecDen:     c.Session.DecDen,
			IncTrail:   c.Session.IncTrail,
			DecTrail:   c.Session.DecTrail,
			AddObject:  a.addObject,
			PrevObject: func() { a.selected(c.Session.PrevObject()) },
			NextObject: func() { a.selected(c.Session.NextObject()) },
		},
	}
}

func (a *App) keyDown(keysym string) {
	c := a.c
	c.Modifiers.KeyDown(keysym)
	cmd, arg := presenter.LookupKey(keysym)
	switch cmd {
	case presenter.KeyTogglePlay:
		c.PlaybackPresenter.Toggle()
	case presenter.KeyJumpPrev:
		a.jump(navigation.Prev)
	case presenter.KeyJumpNext:
		a.jump(navigation.Next)
	case presenter.KeyJumpFirst:
		a.jump(navigation.First)
	case presenter.KeyJumpFinal:
		a.jump(navigation.Final)
	case presenter.KeyStepBack:
		c.Session.StepFrames(-1)
	case presenter.KeyStepForward:
		c.Session.StepFrames(1)
	case presenter.KeyDelete:
		a.deleteCurrent()
	case presenter.KeyNextObject:
		a.selected(c.Session.NextObject())
	case presenter.KeyPrevObject:
		a.selected(c.Session.PrevObject())
	case presenter.KeyAddObject:
		a.addObject()
	case presenter.KeySelectObject:
		if c.Session.SelectObject(arg) {
			a.selected(arg)
		}
	case presenter.KeyZoomIn, presenter.KeyZoomOut:
		a.zoomAtCenter(presenter.ZoomDelta(cmd))
	case presenter.KeyResetView:
		a.resetView()
	case presenter.KeyCancel:
		c.Machine.Dispatch(interaction.PointerCancel{})
	}
}

func (a *App) jump(dir navigation.Direction) {
	if a.c.Session.Jump(dir) {
		return
	}
	if a.c.Clock.Playing() {
		a.c.status("Pause playback to navigate")
	}
}

func (a *App) deleteCurrent() {
	if a.c.Session.DeleteCurrent() {
		a.c.status("Point deleted")
		return
	}
	a.c.status("Nothing to delete on this frame")
}

func (a *App) addObject() {
	id := a.c.Session.AddObject()
	a.c.status("Object %d added", id)
	a.c.TrackingPresenter.Invalidate()
}

func (a *App) selected(id int) {
	a.c.status("Object %d selected", id)
	a.c.TrackingPresenter.Invalidate()
}

func (a *App) zoomAtCenter(delta float64) {
	size := a.c.Viewport.Container()
	a.c.Viewport.Zoom(delta, r2.Vec{X: size.W / 2, Y: size.H / 2})
	a.c.TrackingPresenter.Invalidate()
}

func (a *App) resetView() {
	a.c.Viewport.Reset()
	a.c.TrackingPresenter.Invalidate()
}

func (a *App) resizeSurface(w, h int) {
	c := a.c
	c.RootView.Surface.Resize(image.Pt(w, h))
	size := c.RootView.Surface.Size()
	c.Viewport.Resize(viewport.Size{W: float64(size.X), H: float64(size.Y)})
	c.TrackingPresenter.Resize(size)
}

// openVideo probes and opens path, restoring points saved for it earlier.
func (a *App) openVideo(path string) {
	c := a.c
	if c.Store.Dirty() && !view.ConfirmDiscard("open another video") {
		return
	}
	a.flushAutosave()

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	info, err := media.Probe(ctx, path)
	cancel()
	if err != nil {
		a.logger.Error("probe video", "path", path, "error", err)
		view.ShowError("Cannot open video", err.Error())
		return
	}
	fps := info.FPSOrDefault(c.Config.DefaultFPS)
	if info.FPS <= 0 {
		a.logger.Warn("frame rate unknown, using default", "path", path, "fps", fps)
	}
	player, err := media.NewPlayer(a.logger, info)
	if err != nil {
		a.logger.Error("start decoder", "path", path, "error", err)
		view.ShowError("Cannot decode video", err.Error())
		return
	}
	if prev := a.player.Swap(player); prev != nil {
		prev.Close()
	}
	a.videoPath = path

	c.Machine.Reset()
	c.Session.LoadVideo(player, fps, viewport.Size{W: float64(info.Width), H: float64(info.Height)})
	c.SessionModel.Reset()
	c.TrackingPresenter.SetSource(player)
	restored := a.restore(path)

	c.Config.LastVideo = path
	a.saveConfig()
	c.RootView.SetTitle("Frame Tracker - " + filepath.Base(path))
	msg := fmt.Sprintf("Opened %s: %dx%d at %.3f fps", filepath.Base(path), info.Width, info.Height, fps)
	if info.FPS <= 0 {
		msg += " (frame rate unknown, assumed)"
	}
	if restored > 0 {
		msg += fmt.Sprintf("; restored %d unsaved points", restored)
	}
	c.status("%s", msg)
}

func (a *App) restore(path string) int {
	c := a.c
	key := sqlite.VideoKey(path)
	if c.Autosaver != nil {
		defer c.Autosaver.SetVideo(key, time.Now())
	}
	if c.SessionDB == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	pts, err := c.SessionDB.LoadAll(ctx, key)
	if err != nil {
		a.logger.Error("restore session", "video", key, "error", err)
		return 0
	}
	if n, err := c.SessionDB.NumObjects(ctx, key); err == nil {
		for c.Store.NumObjects() < n {
			c.Store.AddObject()
		}
		c.Store.SetActiveObject(1)
	}
	c.Session.Restore(pts)
	return len(pts)
}

func (a *App) importCSV(path string) {
	c := a.c
	if c.Store.Dirty() && !view.ConfirmDiscard("import "+filepath.Base(path)) {
		return
	}
	n, err := c.Session.ImportCSV(path)
	if err != nil {
		a.logger.Error("import csv", "path", path, "error", err)
		view.ShowError("Import failed", err.Error())
		return
	}
	c.Config.LastCSV = path
	a.saveConfig()
	c.status("Imported %d points from %s", n, filepath.Base(path))
}

func (a *App) exportCSV() {
	c := a.c
	path := view.AskExportCSV(c.Config.LastCSV, a.defaultExportName())
	if path == "" {
		return
	}
	written, err := c.Session.ExportCSV(path)
	if err != nil {
		a.logger.Error("export csv", "path", path, "error", err)
		view.ShowError("Export failed", err.Error())
		return
	}
	if written != path {
		view.ShowInfo("Exported to fallback location", fmt.Sprintf("%s could not be written.\nPoints were saved to %s", path, written))
	} else {
		c.Config.LastCSV = path
		a.saveConfig()
	}
	c.status("Exported %d points to %s", c.Store.Len(), written)
}

func (a *App) defaultExportName() string {
	if a.videoPath == "" {
		return tracking.DefaultExportName
	}
	base := filepath.Base(a.videoPath)
	return base[:len(base)-len(filepath.Ext(base))] + ".csv"
}

func (a *App) saveSettings(s tracking.Settings) {
	cfg := a.c.Config
	cfg.SamplingNum, cfg.SamplingDen, cfg.TrailLength = s.SamplingNum, s.SamplingDen, s.TrailLength
	a.saveConfig()
}

func (a *App) saveConfig() {
	if a.c.ConfigPath == "" {
		return
	}
	if err := a.c.Config.Save(a.c.ConfigPath); err != nil {
		a.logger.Error("config save failed", "path", a.c.ConfigPath, "error", err)
	}
}

func (a *App) flushAutosave() {
	if a.c.Autosaver == nil {
		return
	}
	if err := a.c.Autosaver.Flush(time.Now()); err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Warn("final autosave failed", "error", err)
	}
}

func (a *App) update() {
	st := a.c.Session.Status()
	a.status.Store(&st)
	a.c.Loop.Tick()
}

func (a *App) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, a.update)
}

func (a *App) exit() {
	c := a.c
	if c.Store.Dirty() && !view.ConfirmDiscard("exit") {
		return
	}
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	for _, unsub := range a.unsubscribe {
		unsub()
	}
	a.flushAutosave()
	if p := a.player.Swap(nil); p != nil {
		p.Close()
	}
	if c.SessionDB != nil {
		if err := c.SessionDB.Close(); err != nil {
			a.logger.Warn("close session db", "error", err)
		}
	}
	Destroy(App)
}

// debugStats reports session counters to the debug logger from its goroutine.
func (a *App) debugStats() []slog.Attr {
	attrs := []slog.Attr{slog.Bool("playing", a.c.Playback.Playing())}
	if st := a.status.Load(); st != nil {
		attrs = append(attrs,
			slog.Int("points", st.Points),
			slog.Int("objects", st.Objects),
			slog.Bool("dirty", st.Dirty),
			slog.Int("frame", st.Frame),
		)
	}
	if p := a.player.Load(); p != nil {
		s := p.Stats()
		attrs = append(attrs, slog.Uint64("decoded", s.Decoded), slog.Uint64("restarts", s.Restarts))
	}
	return attrs
}
