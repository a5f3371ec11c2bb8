// Package tracking ties the point store, playback clock and viewport into
// the editing operations offered to the user, enforcing their guards.
//
// Logging and deletion are only valid while paused on a sampling grid
// frame. Rejected operations are silent no-ops reported as false.
package tracking

import (
	"log/slog"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/frame-tracker-go/domain/frames"
	"github.com/soocke/frame-tracker-go/domain/navigation"
	"github.com/soocke/frame-tracker-go/domain/overlay"
	"github.com/soocke/frame-tracker-go/domain/playback"
	"github.com/soocke/frame-tracker-go/domain/points"
	"github.com/soocke/frame-tracker-go/domain/viewport"
)

// Session is the editing state of one open video.
type Session struct {
	logger    *slog.Logger
	store     *points.Store
	clock     *playback.Clock
	view      *viewport.Controller
	settings  Settings
	dragged   *points.TrackPoint
	listeners []SettingsListener
}

// NewSession wires the collaborators together.
func NewSession(logger *slog.Logger, store *points.Store, clock *playback.Clock, view *viewport.Controller, settings Settings) *Session {
	s := &Session{logger: logger, store: store, clock: clock, view: view, settings: settings.Clamped()}
	clock.SetSampling(s.settings.SamplingNum, s.settings.SamplingDen)
	return s
}

// Store returns the point store.
func (s *Session) Store() *points.Store { return s.store }

// Clock returns the playback clock.
func (s *Session) Clock() *playback.Clock { return s.clock }

// View returns the viewport controller.
func (s *Session) View() *viewport.Controller { return s.view }

// Settings returns the current settings.
func (s *Session) Settings() Settings { return s.settings }

// AddSettingsListener registers l for settings changes.
func (s *Session) AddSettingsListener(l SettingsListener) {
	s.listeners = append(s.listeners, l)
}

// SetSettings applies next after clamping it.
func (s *Session) SetSettings(next Settings) {
	next = next.Clamped()
	if next == s.settings {
		return
	}
	s.settings = next
	s.clock.SetSampling(next.SamplingNum, next.SamplingDen)
	if s.logger != nil {
		s.logger.Info("settings changed", "num", next.SamplingNum, "den", next.SamplingDen, "trail", next.TrailLength)
	}
	for _, l := range s.listeners {
		l(next)
	}
}

// LoadVideo resets the session for newly opened media.
func (s *Session) LoadVideo(src playback.MediaSource, fps float64, size viewport.Size) {
	if fps <= 0 {
		fps = frames.DefaultFPS
	}
	s.dragged = nil
	s.store.Reset()
	s.store.SetFPS(fps)
	s.clock.Attach(src, fps)
	s.view.SetVideo(size)
	if s.logger != nil {
		s.logger.Info("video loaded", "fps", fps, "width", size.W, "height", size.H)
	}
}

// Restore loads a recovered point set. The result counts as unsaved work.
func (s *Session) Restore(pts []points.TrackPoint) {
	if len(pts) == 0 {
		return
	}
	s.store.BulkReplace(pts)
	s.store.MarkDirty()
}

// OnTrackingFrame reports whether the current time lies on the sampling grid.
func (s *Session) OnTrackingFrame() bool {
	return frames.IsTrackingFrame(s.clock.CurrentTime(), s.clock.FPS(), s.settings.SamplingNum, s.settings.SamplingDen)
}

// CanEdit reports whether logging and deletion are currently allowed.
func (s *Session) CanEdit() bool {
	return !s.clock.Playing() && s.OnTrackingFrame()
}

// CurrentFrame returns the frame index at the current time.
func (s *Session) CurrentFrame() int {
	return frames.Index(s.clock.CurrentTime(), s.clock.FPS())
}

// LogAtScreen logs the active object at a tracking surface position.
func (s *Session) LogAtScreen(screen r2.Vec) bool {
	return s.LogAtVideo(s.view.ToVideo(screen))
}

// LogAtVideo logs the active object at a video-space position, stamped with
// the exact grid time of the current frame.
func (s *Session) LogAtVideo(v r2.Vec) bool {
	if !s.CanEdit() {
		return false
	}
	if s.view.Video().Empty() || !viewport.InBounds(v, s.view.Video()) {
		return false
	}
	ts := int64(math.Round(frames.GridTime(s.clock.CurrentTime(), s.clock.FPS())))
	obj := s.store.ActiveObject()
	s.store.AddOrReplace(points.NewPoint(ts, obj, v.X, v.Y))
	if s.logger != nil {
		s.logger.Info("point logged", "frame", s.CurrentFrame(), "object", obj, "x", v.X, "y", v.Y)
	}
	return true
}

// DeleteCurrent removes the active object's point on the current frame.
func (s *Session) DeleteCurrent() bool {
	if !s.CanEdit() {
		return false
	}
	return s.store.Delete(s.clock.CurrentTime(), s.store.ActiveObject())
}

// SetDragged sets the uncommitted drag preview; nil clears it.
func (s *Session) SetDragged(p *points.TrackPoint) { s.dragged = p }

// Dragged returns the drag preview.
func (s *Session) Dragged() *points.TrackPoint { return s.dragged }

// CommitDrag stores a dragged point at its new position.
func (s *Session) CommitDrag(p points.TrackPoint) {
	s.dragged = nil
	s.store.AddOrReplace(p)
}

// SelectObject makes id the active object.
func (s *Session) SelectObject(id int) bool {
	return s.store.SetActiveObject(id)
}

// AddObject creates and selects a new object.
func (s *Session) AddObject() int {
	id := s.store.AddObject()
	if s.logger != nil {
		s.logger.Info("object added", "object", id)
	}
	return id
}

// NextObject cycles the active object forward.
func (s *Session) NextObject() int {
	n := s.store.NumObjects()
	id := s.store.ActiveObject()%n + 1
	s.store.SetActiveObject(id)
	return id
}

// PrevObject cycles the active object backward.
func (s *Session) PrevObject() int {
	n := s.store.NumObjects()
	id := (s.store.ActiveObject()+n-2)%n + 1
	s.store.SetActiveObject(id)
	return id
}

// Jump seeks along the active object's points. It is a no-op while playing.
func (s *Session) Jump(dir navigation.Direction) bool {
	if s.clock.Playing() {
		return false
	}
	ms, ok := navigation.Target(navigation.Query{
		Points:       s.store.Points(),
		ActiveObject: s.store.ActiveObject(),
		CurrentMs:    s.clock.CurrentTime(),
		FPS:          s.clock.FPS(),
		SamplingNum:  s.settings.SamplingNum,
		SamplingDen:  s.settings.SamplingDen,
	}, dir)
	if !ok {
		return false
	}
	s.clock.Seek(ms)
	return true
}

// StepFrames seeks by n frames while paused.
func (s *Session) StepFrames(n int) bool {
	if s.clock.Playing() {
		return false
	}
	s.clock.Seek(frames.Time(max(s.CurrentFrame()+n, 0), s.clock.FPS()))
	return true
}

// Overlay builds the markers for the current instant.
func (s *Session) Overlay() []overlay.Marker {
	return overlay.Build(overlay.Params{
		Points:       s.store.Points(),
		CurrentMs:    s.clock.CurrentTime(),
		FPS:          s.clock.FPS(),
		ActiveObject: s.store.ActiveObject(),
		SamplingNum:  s.settings.SamplingNum,
		SamplingDen:  s.settings.SamplingDen,
		TrailLength:  s.settings.TrailLength,
		Dragged:      s.dragged,
		Transient:    s.clock.Playing(),
		Radius:       s.settings.MarkerRadius,
	})
}

// Markers implements interaction.Surface.
func (s *Session) Markers() []overlay.Marker { return s.Overlay() }

// Transform implements interaction.Surface.
func (s *Session) Transform() viewport.Transform { return s.view.Transform() }

// VideoSize implements interaction.Surface.
func (s *Session) VideoSize() viewport.Size { return s.view.Video() }

// CanPan implements interaction.Surface.
func (s *Session) CanPan() bool { return s.view.CanPan() }

// Status is a read-only snapshot of the session for display.
type Status struct {
	CurrentMs     float64
	DurationMs    float64
	Frame         int
	TrackingFrame bool
	Playing       bool
	Hold          bool
	Points        int
	Objects       int
	ActiveObject  int
	Dirty         bool
	Settings      Settings
}

// Status returns the current snapshot.
func (s *Session) Status() Status {
	return Status{
		CurrentMs:     s.clock.CurrentTime(),
		DurationMs:    s.clock.Duration(),
		Frame:         s.CurrentFrame(),
		TrackingFrame: s.OnTrackingFrame(),
		Playing:       s.clock.Playing(),
		Hold:          s.clock.Hold(),
		Points:        s.store.Len(),
		Objects:       s.store.NumObjects(),
		ActiveObject:  s.store.ActiveObject(),
		Dirty:         s.store.Dirty(),
		Settings:      s.settings,
	}
}
