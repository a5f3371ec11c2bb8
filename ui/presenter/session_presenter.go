package presenter

import (
	"fmt"
	"math"
	"time"

	"github.com/soocke/frame-tracker-go/domain/tracking"
	"github.com/soocke/frame-tracker-go/ui/model"
)

// StatusSource provides the tracking session snapshot.
type StatusSource interface {
	Status() tracking.Status
}

// SessionView displays playback position, point summary and durations.
type SessionView interface {
	SetSession(run, total time.Duration)
	SetPosition(text string)
	SetPoints(text string)
}

// SessionPresenter formats the session snapshot and playing durations into the view.
type SessionPresenter struct {
	sess *model.SessionModel
	src  StatusSource
	view SessionView

	lastPosition string
	lastPoints   string
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, src StatusSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, src: src, view: view}
}

// Tick advances the durations and pushes changed labels to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.src == nil || p.view == nil {
		return
	}
	st := p.src.Status()
	p.sess.OnTick(st.Playing, now)
	run, total := p.sess.Values()
	p.view.SetSession(run, total)

	if pos := FormatPosition(st); pos != p.lastPosition {
		p.lastPosition = pos
		p.view.SetPosition(pos)
	}
	if pts := FormatPoints(st); pts != p.lastPoints {
		p.lastPoints = pts
		p.view.SetPoints(pts)
	}
}

// FormatPosition renders time, frame and grid state.
func FormatPosition(st tracking.Status) string {
	grid := "off grid"
	if st.TrackingFrame {
		grid = "tracking frame"
	}
	s := fmt.Sprintf("%s / %s  frame %d  %s", FormatClock(st.CurrentMs), FormatClock(st.DurationMs), st.Frame, grid)
	if st.Hold {
		s += "  [hold]"
	}
	return s
}

// FormatPoints renders the active object and point summary.
func FormatPoints(st tracking.Status) string {
	saved := "exported"
	if st.Dirty {
		saved = "unsaved"
	}
	return fmt.Sprintf("Object %d/%d  %d points  %s  rate %d/%ds  trail %d",
		st.ActiveObject, st.Objects, st.Points, saved,
		st.Settings.SamplingNum, st.Settings.SamplingDen, st.Settings.TrailLength)
}

// FormatClock renders milliseconds as mm:ss.mmm.
func FormatClock(ms float64) string {
	if ms < 0 || math.IsNaN(ms) {
		ms = 0
	}
	total := int64(math.Round(ms))
	minutes := total / 60000
	seconds := (total / 1000) % 60
	millis := total % 1000
	return fmt.Sprintf("%02d:%02d.%03d", minutes, seconds, millis)
}
