// Package viewport maps between container screen space and video pixel space
// through a uniform scale plus translation, and keeps pan/zoom within limits.
package viewport

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const (
	// MaxScale is the largest zoom factor.
	MaxScale = 10.0
	// ZoomStep is the relative scale change of one wheel notch.
	ZoomStep   = 0.1
	panEpsilon = 1.0
)

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Empty reports whether either dimension is not positive.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// Transform is screen = video*Scale + (X, Y).
type Transform struct {
	X, Y  float64
	Scale float64
}

// Offset returns the translation as a vector.
func (t Transform) Offset() r2.Vec { return r2.Vec{X: t.X, Y: t.Y} }

// ToVideo maps a screen point into video space.
func (t Transform) ToVideo(screen r2.Vec) r2.Vec {
	if t.Scale == 0 {
		return r2.Vec{}
	}
	return r2.Scale(1/t.Scale, r2.Sub(screen, t.Offset()))
}

// ToScreen maps a video point into screen space.
func (t Transform) ToScreen(video r2.Vec) r2.Vec {
	return r2.Add(r2.Scale(t.Scale, video), t.Offset())
}

// InBounds reports whether v lies within [0,W]x[0,H].
func InBounds(v r2.Vec, video Size) bool {
	return v.X >= 0 && v.Y >= 0 && v.X <= video.W && v.Y <= video.H
}

// ClampToVideo limits v to the video rectangle.
func ClampToVideo(v r2.Vec, video Size) r2.Vec {
	return r2.Vec{X: clamp(v.X, 0, video.W), Y: clamp(v.Y, 0, video.H)}
}

// FitScale is the largest scale showing the whole video in the container.
func FitScale(container, video Size) float64 {
	if container.Empty() || video.Empty() {
		return 1
	}
	return math.Min(container.W/video.W, container.H/video.H)
}

// MinScale is the smallest allowed zoom: the fit scale, but never above 1.
func MinScale(container, video Size) float64 {
	return math.Min(FitScale(container, video), 1)
}

// Fit centres the whole video in the container.
func Fit(container, video Size) Transform {
	s := FitScale(container, video)
	return Transform{
		X:     (container.W - video.W*s) / 2,
		Y:     (container.H - video.H*s) / 2,
		Scale: s,
	}
}

// Constrain clamps the scale to [MinScale, MaxScale]. On an axis where the
// scaled video is smaller than the container it is centred; otherwise the
// offset is clamped so the video keeps covering the container on that axis.
func Constrain(t Transform, container, video Size) Transform {
	if container.Empty() || video.Empty() {
		return t
	}
	t.Scale = clamp(t.Scale, MinScale(container, video), MaxScale)
	t.X = constrainAxis(t.X, container.W, video.W*t.Scale)
	t.Y = constrainAxis(t.Y, container.H, video.H*t.Scale)
	return t
}

func constrainAxis(offset, container, content float64) float64 {
	if content <= container {
		return (container - content) / 2
	}
	return clamp(offset, container-content, 0)
}

// Zoom scales by one step about cursor (screen space). A negative delta
// zooms in, matching wheel-up. The video point under the cursor stays put
// unless the result has to be constrained.
func Zoom(t Transform, delta float64, cursor r2.Vec, container, video Size) Transform {
	if delta == 0 || t.Scale <= 0 {
		return t
	}
	factor := 1 + ZoomStep
	if delta > 0 {
		factor = 1 - ZoomStep
	}
	next := clamp(t.Scale*factor, MinScale(container, video), MaxScale)
	ratio := next / t.Scale
	off := r2.Sub(cursor, r2.Scale(ratio, r2.Sub(cursor, t.Offset())))
	return Constrain(Transform{X: off.X, Y: off.Y, Scale: next}, container, video)
}

// Pan moves the view by a screen-space delta.
func Pan(t Transform, delta r2.Vec, container, video Size) Transform {
	t.X += delta.X
	t.Y += delta.Y
	return Constrain(t, container, video)
}

// CanPan reports whether the scaled video exceeds the container on an axis.
func CanPan(container, video Size, scale float64) bool {
	return video.W*scale > container.W+panEpsilon || video.H*scale > container.H+panEpsilon
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
