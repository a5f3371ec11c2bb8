// Package frames converts between media time and discrete frame indices and
// decides which frames lie on the sampling grid.
//
// IsTrackingFrame is the single predicate used for logging, deletion, trail
// visibility and auto-pause targeting.
package frames

import "math"

// DefaultFPS is used whenever the frame rate could not be probed.
const DefaultFPS = 30.0

// Index returns the frame index displayed at timeMs. Rounding absorbs the
// drift between successive decoder timestamps for one logical frame.
func Index(timeMs, fps float64) int {
	return int(math.Round(timeMs * fps / 1000))
}

// Time returns the presentation time of frame index at fps in milliseconds.
func Time(index int, fps float64) float64 {
	if fps <= 0 {
		return 0
	}
	return float64(index) * 1000 / fps
}

// Duration returns the length of one frame in milliseconds.
func Duration(fps float64) float64 {
	if fps <= 0 {
		return 1000 / DefaultFPS
	}
	return 1000 / fps
}

// IntervalFrames returns the sampling interval den/num seconds expressed in
// frames, never less than 1.
func IntervalFrames(num, den int, fps float64) int {
	if num < 1 || den < 1 {
		return 1
	}
	n := int(math.Round(float64(den) / float64(num) * fps))
	if n < 1 {
		return 1
	}
	return n
}

// IntervalMs returns the sampling interval in milliseconds of media time.
func IntervalMs(num, den int) float64 {
	if num < 1 || den < 1 {
		return 0
	}
	return float64(den) / float64(num) * 1000
}

// IsTrackingFrame reports whether timeMs lands on a sampling grid frame.
func IsTrackingFrame(timeMs, fps float64, num, den int) bool {
	interval := IntervalFrames(num, den, fps)
	if interval <= 1 {
		return true
	}
	return mod(Index(timeMs, fps), interval) == 0
}

// GridTime returns the exact grid timestamp of the frame shown at timeMs.
func GridTime(timeMs, fps float64) float64 {
	return Time(Index(timeMs, fps), fps)
}

// NextGridFrame returns the first grid frame strictly after current.
func NextGridFrame(current, interval int) int {
	if interval < 1 {
		interval = 1
	}
	const eps = 1e-3
	next := int(math.Ceil((float64(current)+eps)/float64(interval))) * interval
	if next <= current {
		next += interval
	}
	return next
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
