// Package navigation computes jump targets along the active object's
// logged points.
package navigation

import (
	"math"

	"github.com/soocke/frame-tracker-go/domain/frames"
	"github.com/soocke/frame-tracker-go/domain/points"
)

// Direction selects a jump.
type Direction int

const (
	Prev Direction = iota
	Next
	First
	Final
)

func (d Direction) String() string {
	switch d {
	case Prev:
		return "prev"
	case Next:
		return "next"
	case First:
		return "first"
	case Final:
		return "final"
	default:
		return "unknown"
	}
}

// Query is the navigation input.
type Query struct {
	Points       []points.TrackPoint
	ActiveObject int
	CurrentMs    float64
	FPS          float64
	SamplingNum  int
	SamplingDen  int
}

// Target returns the time to seek to. ok is false when the jump is a no-op.
func Target(q Query, dir Direction) (ms float64, ok bool) {
	fps := q.FPS
	if fps <= 0 {
		fps = frames.DefaultFPS
	}
	cur := frames.Index(q.CurrentMs, fps)
	visible := q.visible(fps)
	switch dir {
	case Prev:
		best, found := math.Inf(-1), false
		for _, p := range visible {
			if frames.Index(float64(p.TimestampMs), fps) < cur && float64(p.TimestampMs) > best {
				best, found = float64(p.TimestampMs), true
			}
		}
		if found {
			return best, true
		}
		return frames.Time(max(cur-q.interval(fps), 0), fps), true
	case Next:
		best, found := math.Inf(1), false
		for _, p := range visible {
			if frames.Index(float64(p.TimestampMs), fps) > cur && float64(p.TimestampMs) < best {
				best, found = float64(p.TimestampMs), true
			}
		}
		if found {
			return best, true
		}
		return frames.Time(cur+q.interval(fps), fps), true
	case First:
		if len(visible) == 0 {
			return 0, true
		}
		first := visible[0]
		for _, p := range visible[1:] {
			if p.TimestampMs < first.TimestampMs {
				first = p
			}
		}
		if frames.Index(float64(first.TimestampMs), fps) < cur {
			return float64(first.TimestampMs), true
		}
		return 0, true
	case Final:
		if len(visible) == 0 {
			return 0, false
		}
		last := visible[0]
		for _, p := range visible[1:] {
			if p.TimestampMs > last.TimestampMs {
				last = p
			}
		}
		return float64(last.TimestampMs), true
	}
	return 0, false
}

func (q Query) interval(fps float64) int {
	return frames.IntervalFrames(q.SamplingNum, q.SamplingDen, fps)
}

func (q Query) visible(fps float64) []points.TrackPoint {
	var out []points.TrackPoint
	for _, p := range q.Points {
		if p.ObjectID != q.ActiveObject {
			continue
		}
		if !frames.IsTrackingFrame(float64(p.TimestampMs), fps, q.SamplingNum, q.SamplingDen) {
			continue
		}
		out = append(out, p)
	}
	return out
}
