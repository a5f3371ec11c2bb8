// Package overlay derives the markers drawn over the video for one instant.
// Build is a pure projection of points, time and settings; callers may
// rebuild it on every frame.
package overlay

import (
	"image/color"
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/frame-tracker-go/domain/frames"
	"github.com/soocke/frame-tracker-go/domain/points"
	"github.com/soocke/frame-tracker-go/domain/viewport"
)

// Shape of a marker.
type Shape int

const (
	Circle Shape = iota
	Square
)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Square:
		return "square"
	default:
		return "unknown"
	}
}

// Kind tells why a marker is shown.
type Kind int

const (
	KindTrail Kind = iota
	KindLastKnown
	KindCurrent
)

// Marker colours: the active object and everything else.
var (
	ActiveColor   = color.RGBA{R: 0xf5, G: 0x9e, B: 0x0b, A: 0xff}
	InactiveColor = color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff}
)

// DefaultRadius is the screen-space radius of a current marker.
const DefaultRadius = 7.0

const (
	minTrailRatio = 0.4
	hitSlop       = 4.0
)

// Marker is one drawable element. Pos is in video space; Radius is in
// screen pixels so markers keep their size while zooming.
type Marker struct {
	Kind      Kind
	Shape     Shape
	Pos       r2.Vec
	ObjectID  int
	Radius    float64
	Color     color.RGBA
	IsCurrent bool
	Bordered  bool
	Label     string
	SortKey   float64
	Point     points.TrackPoint
}

// Params is everything the projection depends on.
type Params struct {
	Points       []points.TrackPoint
	CurrentMs    float64
	FPS          float64
	ActiveObject int
	SamplingNum  int
	SamplingDen  int
	TrailLength  int
	// Dragged replaces the coordinates of its current-frame point while a drag is in progress.
	Dragged *points.TrackPoint
	// Transient is set during continuous playback; active borders are suppressed.
	Transient bool
	Radius    float64
}

// Build returns the markers in paint order: later entries are drawn on top
// and hit-tested first.
func Build(p Params) []Marker {
	fps := p.FPS
	if fps <= 0 {
		fps = frames.DefaultFPS
	}
	radius := p.Radius
	if radius <= 0 {
		radius = DefaultRadius
	}
	cur := frames.Index(p.CurrentMs, fps)
	window := float64(p.TrailLength) * frames.IntervalMs(p.SamplingNum, p.SamplingDen)

	var out []Marker
	shown := make(map[int]bool)
	labelAt := make(map[int]int) // object -> index into out
	labelRank := make(map[int]float64)
	claim := func(i int, rank float64) {
		obj := out[i].ObjectID
		if prev, ok := labelRank[obj]; !ok || rank > prev {
			labelRank[obj] = rank
			labelAt[obj] = i
		}
	}

	for _, pt := range p.Points {
		f := frames.Index(float64(pt.TimestampMs), fps)
		switch {
		case f == cur:
			pos := r2.Vec{X: pt.X, Y: pt.Y}
			if d := p.Dragged; d != nil && d.ObjectID == pt.ObjectID && frames.Index(float64(d.TimestampMs), fps) == cur {
				pos = r2.Vec{X: d.X, Y: d.Y}
			}
			key := 3.0
			if pt.ObjectID == p.ActiveObject {
				key = 3.5
			}
			out = append(out, Marker{
				Kind:      KindCurrent,
				Shape:     Circle,
				Pos:       pos,
				ObjectID:  pt.ObjectID,
				Radius:    radius,
				Color:     colorFor(pt.ObjectID, p.ActiveObject),
				IsCurrent: true,
				Bordered:  !p.Transient && pt.ObjectID == p.ActiveObject,
				SortKey:   key,
				Point:     pt,
			})
			shown[pt.ObjectID] = true
			claim(len(out)-1, 3)
		case f < cur && window > 0:
			age := p.CurrentMs - float64(pt.TimestampMs)
			if age > window || !frames.IsTrackingFrame(float64(pt.TimestampMs), fps, p.SamplingNum, p.SamplingDen) {
				continue
			}
			ratio := math.Max(0, age) / window
			out = append(out, Marker{
				Kind:     KindTrail,
				Shape:    Circle,
				Pos:      r2.Vec{X: pt.X, Y: pt.Y},
				ObjectID: pt.ObjectID,
				Radius:   radius * (1 - (1-minTrailRatio)*ratio),
				Color:    colorFor(pt.ObjectID, p.ActiveObject),
				SortKey:  1 - ratio,
				Point:    pt,
			})
			shown[pt.ObjectID] = true
			claim(len(out)-1, 1+(1-ratio))
		}
	}

	latest := make(map[int]points.TrackPoint)
	for _, pt := range p.Points {
		if shown[pt.ObjectID] || frames.Index(float64(pt.TimestampMs), fps) >= cur {
			continue
		}
		if prev, ok := latest[pt.ObjectID]; !ok || pt.TimestampMs > prev.TimestampMs {
			latest[pt.ObjectID] = pt
		}
	}
	for obj, pt := range latest {
		out = append(out, Marker{
			Kind:     KindLastKnown,
			Shape:    Square,
			Pos:      r2.Vec{X: pt.X, Y: pt.Y},
			ObjectID: obj,
			Radius:   radius * 0.8,
			Color:    colorFor(obj, p.ActiveObject),
			SortKey:  2,
			Point:    pt,
		})
		claim(len(out)-1, 0)
	}
	for obj, i := range labelAt {
		out[i].Label = strconv.Itoa(obj)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortKey != out[j].SortKey {
			return out[i].SortKey < out[j].SortKey
		}
		return out[i].ObjectID > out[j].ObjectID
	})
	return out
}

// HitTest returns the top-most marker under screen position pos.
func HitTest(markers []Marker, pos r2.Vec, t viewport.Transform) (Marker, bool) {
	for i := len(markers) - 1; i >= 0; i-- {
		m := markers[i]
		c := t.ToScreen(m.Pos)
		d := r2.Sub(pos, c)
		reach := m.Radius + hitSlop
		switch m.Shape {
		case Square:
			if math.Abs(d.X) <= reach && math.Abs(d.Y) <= reach {
				return m, true
			}
		default:
			if r2.Norm(d) <= reach {
				return m, true
			}
		}
	}
	return Marker{}, false
}

func colorFor(obj, active int) color.RGBA {
	if obj == active {
		return ActiveColor
	}
	return InactiveColor
}
