package app

import (
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/frame-tracker-go/config"
	"github.com/soocke/frame-tracker-go/domain/interaction"
	"github.com/soocke/frame-tracker-go/domain/playback"
	"github.com/soocke/frame-tracker-go/domain/points"
	"github.com/soocke/frame-tracker-go/domain/tracking"
	"github.com/soocke/frame-tracker-go/domain/viewport"
	"github.com/soocke/frame-tracker-go/storage/sqlite"
	"github.com/soocke/frame-tracker-go/ui/model"
	"github.com/soocke/frame-tracker-go/ui/presenter"
	"github.com/soocke/frame-tracker-go/ui/view"
)

// AppContainer assembles the domain services, models, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Store     *points.Store
	Clock     *playback.Clock
	Viewport  *viewport.Controller
	Session   *tracking.Session
	Machine   *interaction.Machine
	SessionDB *sqlite.SessionStore // nil when the database could not be opened

	Playback     *model.PlaybackModel
	SessionModel *model.SessionModel
	Hover        *model.HoverModel
	Modifiers    *presenter.ModifierWatcher

	RootView *view.RootView

	// Presenters
	PlaybackPresenter *presenter.PlaybackPresenter
	TrackingPresenter *presenter.TrackingPresenter
	FSMPresenter      *presenter.FSMPresenter
	SessionPresenter  *presenter.SessionPresenter
	HoverPresenter    *presenter.HoverPresenter
	Autosaver         *presenter.Autosaver
	Loop              *presenter.Loop
}

// BuildContainer constructs the components that do not need Tk. Presenters
// and views are attached by the app once the window exists.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Store = points.NewStore(cfg.DefaultFPS, logger)
	c.Clock = playback.NewClock(logger, cfg.DefaultFPS, cfg.SamplingNum, cfg.SamplingDen)
	c.Viewport = viewport.NewController(viewport.Size{W: float64(cfg.SurfaceWidth), H: float64(cfg.SurfaceHeight)})
	c.Session = tracking.NewSession(logger, c.Store, c.Clock, c.Viewport, settingsFromConfig(cfg))
	c.Playback = &model.PlaybackModel{}
	c.SessionModel = model.NewSessionModel()
	c.Hover = model.NewHoverModel(model.DefaultHoverDebounce)
	c.Modifiers = presenter.NewModifierWatcher(cfg.HoldKey, logger)

	if db, err := sqlite.Open(cfg.SessionDB, logger); err != nil {
		if logger != nil {
			logger.Error("session db unavailable, autosave disabled", "path", cfg.SessionDB, "error", err)
		}
	} else {
		c.SessionDB = db
	}

	c.Machine = interaction.NewMachine(logger, c.Session, interaction.ActionCallbacks{
		LogAt: c.logAt,
		Select: func(id int) {
			if c.Session.SelectObject(id) {
				c.status("Object %d selected", id)
				c.TrackingPresenter.Invalidate()
			}
		},
		DragPreview: func(p *points.TrackPoint) {
			c.Session.SetDragged(p)
			c.TrackingPresenter.Invalidate()
		},
		CommitDrag: func(p points.TrackPoint) {
			c.Session.CommitDrag(p)
		},
		Pan: func(delta r2.Vec) {
			c.Viewport.Pan(delta)
			c.TrackingPresenter.Invalidate()
		},
		Hover: func(h interaction.Hover) {
			c.HoverPresenter.OnHover(h)
		},
	})
	return c
}

func settingsFromConfig(cfg *config.Config) tracking.Settings {
	return tracking.Settings{
		SamplingNum:  cfg.SamplingNum,
		SamplingDen:  cfg.SamplingDen,
		TrailLength:  cfg.TrailLength,
		MarkerRadius: cfg.MarkerRadius,
	}.Clamped()
}

// autosaveInterval converts the configured seconds.
func (c *AppContainer) autosaveInterval() time.Duration {
	return time.Duration(c.Config.AutosaveSeconds) * time.Second
}

// logAt logs at a surface position and explains a rejection in the status line.
func (c *AppContainer) logAt(pos r2.Vec) bool {
	if c.Session.LogAtScreen(pos) {
		return true
	}
	switch {
	case c.Clock.Playing():
		c.status("Pause playback to log points")
	case !c.Session.OnTrackingFrame():
		c.status("Not a tracking frame; use the arrow keys to reach one")
	default:
		c.status("Position is outside the video")
	}
	return false
}

func (c *AppContainer) status(format string, args ...any) {
	if c.RootView == nil {
		return
	}
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	c.RootView.ShowStatus(format)
}
