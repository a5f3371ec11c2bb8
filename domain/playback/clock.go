// Package playback keeps the current media time and pauses playback exactly
// on sampling grid frames.
package playback

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/soocke/frame-tracker-go/domain/frames"
)

// snapRatio is the fraction of one frame duration within which the clock
// snaps to the pending grid target.
const snapRatio = 0.85

// ErrNoSource is returned by Play when no media is loaded.
var ErrNoSource = errors.New("playback: no media source")

// MediaSource is the external decoder/player the clock drives.
type MediaSource interface {
	CurrentTime() float64
	Play() error
	Pause()
	Seek(ms float64)
	Duration() float64
}

// Status is published to listeners after every change.
type Status struct {
	CurrentMs float64
	Playing   bool
	Ended     bool
}

// Listener observes clock status changes.
type Listener func(Status)

// Clock owns currentTime and the auto-pause target. All methods run on the
// UI thread.
type Clock struct {
	logger    *slog.Logger
	src       MediaSource
	fps       float64
	num, den  int
	current   float64
	playing   bool
	hold      bool
	ended     bool
	target    int
	hasTarget bool
	listeners []Listener
}

// NewClock returns a paused clock at time zero with the given sampling rate.
func NewClock(logger *slog.Logger, fps float64, num, den int) *Clock {
	if fps <= 0 {
		fps = frames.DefaultFPS
	}
	return &Clock{logger: logger, fps: fps, num: num, den: den}
}

// AddListener registers l for status changes.
func (c *Clock) AddListener(l Listener) { c.listeners = append(c.listeners, l) }

// Attach replaces the media source and rewinds to zero.
func (c *Clock) Attach(src MediaSource, fps float64) {
	if c.src != nil && c.playing {
		c.src.Pause()
	}
	c.src = src
	if fps <= 0 {
		fps = frames.DefaultFPS
	}
	c.fps = fps
	c.current = 0
	c.playing = false
	c.ended = false
	c.hasTarget = false
	c.notify()
}

// SetSampling updates the sampling rate used for auto-pause. A pending
// target computed for the old grid is dropped.
func (c *Clock) SetSampling(num, den int) {
	c.num, c.den = num, den
	c.hasTarget = false
}

// SetHold engages or releases the continuous-play modifier.
func (c *Clock) SetHold(hold bool) {
	if c.hold == hold {
		return
	}
	c.hold = hold
	c.hasTarget = false
	if c.logger != nil {
		c.logger.Debug("continuous hold", "engaged", hold)
	}
}

// Hold reports whether the continuous-play modifier is engaged.
func (c *Clock) Hold() bool { return c.hold }

// FPS returns the frame rate of the attached media.
func (c *Clock) FPS() float64 { return c.fps }

// CurrentTime returns the best-known current time in milliseconds.
func (c *Clock) CurrentTime() float64 { return c.current }

// Playing reports whether playback is running.
func (c *Clock) Playing() bool { return c.playing }

// Duration returns the media duration, or zero with no media.
func (c *Clock) Duration() float64 {
	if c.src == nil {
		return 0
	}
	return c.src.Duration()
}

// Play starts playback.
func (c *Clock) Play() error {
	if c.src == nil {
		return ErrNoSource
	}
	if c.playing {
		return nil
	}
	if err := c.src.Play(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	c.playing = true
	c.ended = false
	c.hasTarget = false
	c.notify()
	return nil
}

// Pause stops playback at the current time.
func (c *Clock) Pause() {
	if !c.playing {
		return
	}
	if c.src != nil {
		c.src.Pause()
	}
	c.playing = false
	c.hasTarget = false
	c.notify()
}

// Toggle flips between playing and paused.
func (c *Clock) Toggle() error {
	if c.playing {
		c.Pause()
		return nil
	}
	return c.Play()
}

// Seek moves the media to ms, clamped to [0, duration]. The new time is
// visible immediately.
func (c *Clock) Seek(ms float64) {
	if ms < 0 {
		ms = 0
	}
	if d := c.Duration(); d > 0 && ms > d {
		ms = d
	}
	if c.src != nil {
		c.src.Seek(ms)
	}
	c.current = ms
	c.ended = false
	c.hasTarget = false
	c.notify()
}

// OnFrame is called once per displayed frame with its presentation time.
func (c *Clock) OnFrame(ms float64) {
	c.current = ms
	if c.playing && !c.hold && c.num > 0 && c.den > 0 && c.src != nil {
		c.autoPause()
	}
	c.notify()
}

func (c *Clock) autoPause() {
	cur := frames.Index(c.current, c.fps)
	if !c.hasTarget {
		c.target = frames.NextGridFrame(cur, frames.IntervalFrames(c.num, c.den, c.fps))
		c.hasTarget = true
	}
	targetMs := frames.Time(c.target, c.fps)
	if targetMs-c.current > snapRatio*frames.Duration(c.fps) {
		return
	}
	c.src.Seek(targetMs)
	c.src.Pause()
	c.current = targetMs
	c.playing = false
	c.hasTarget = false
	if c.logger != nil {
		c.logger.Debug("auto-paused on grid frame", "frame", c.target, "time_ms", targetMs)
	}
}

// OnEnded reports the end of the media stream. Listeners see the stop once.
func (c *Clock) OnEnded() {
	if c.ended {
		return
	}
	c.ended = true
	c.playing = false
	c.hasTarget = false
	if c.logger != nil {
		c.logger.Info("playback ended", "time_ms", c.current)
	}
	c.notify()
}

// Ended reports whether the stream reached its end since the last seek or play.
func (c *Clock) Ended() bool { return c.ended }

func (c *Clock) notify() {
	s := Status{CurrentMs: c.current, Playing: c.playing, Ended: c.ended}
	for _, l := range c.listeners {
		l(s)
	}
}
