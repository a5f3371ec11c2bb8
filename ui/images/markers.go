package images

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/frame-tracker-go/domain/overlay"
	"github.com/soocke/frame-tracker-go/domain/viewport"
)

var (
	borderColor = color.RGBA{0xff, 0xff, 0xff, 0xff}
	labelColor  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	shadowColor = color.RGBA{0x00, 0x00, 0x00, 0xc0}
)

const borderWidth = 2.0

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// DrawMarkers paints markers onto dst in slice order.
func DrawMarkers(dst *image.RGBA, markers []overlay.Marker, t viewport.Transform) {
	if dst == nil {
		return
	}
	for _, m := range markers {
		c := t.ToScreen(m.Pos)
		if m.Bordered {
			fillShape(dst, m.Shape, c, m.Radius+borderWidth, borderColor)
		}
		fillShape(dst, m.Shape, c, m.Radius, m.Color)
		if m.Label != "" {
			drawLabel(dst, m.Label, c, m.Radius)
		}
	}
}

// Render composes frame and markers into a new image of the given size.
func Render(frame image.Image, markers []overlay.Marker, t viewport.Transform, size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	Compose(dst, frame, t)
	DrawMarkers(dst, markers, t)
	return dst
}

func fillShape(dst *image.RGBA, shape overlay.Shape, c r2.Vec, radius float64, col color.RGBA) {
	if radius <= 0 {
		return
	}
	box := image.Rect(floor(c.X-radius)-1, floor(c.Y-radius)-1, ceil(c.X+radius)+1, ceil(c.Y+radius)+1)
	if !box.Overlaps(dst.Bounds()) {
		return
	}
	w, h := box.Dx(), box.Dy()
	z := vector.NewRasterizer(w, h)
	cx, cy := float32(c.X-float64(box.Min.X)), float32(c.Y-float64(box.Min.Y))
	r := float32(radius)
	switch shape {
	case overlay.Square:
		z.MoveTo(cx-r, cy-r)
		z.LineTo(cx+r, cy-r)
		z.LineTo(cx+r, cy+r)
		z.LineTo(cx-r, cy+r)
		z.ClosePath()
	default:
		k := r * kappa
		z.MoveTo(cx+r, cy)
		z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
		z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
		z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
		z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
		z.ClosePath()
	}
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	xdraw.DrawMask(dst, box, image.NewUniform(col), image.Point{}, mask, image.Point{}, xdraw.Over)
}

func drawLabel(dst *image.RGBA, label string, c r2.Vec, radius float64) {
	x := int(math.Round(c.X + radius + 2))
	y := int(math.Round(c.Y - radius - 2))
	for _, pass := range []struct {
		dx, dy int
		col    color.RGBA
	}{{1, 1, shadowColor}, {0, 0, labelColor}} {
		d := font.Drawer{
			Dst:  dst,
			Src:  image.NewUniform(pass.col),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(x+pass.dx, y+pass.dy),
		}
		d.DrawString(label)
	}
}

func rVec(x, y float64) r2.Vec { return r2.Vec{X: x, Y: y} }

func floor(v float64) int { return int(math.Floor(v)) }

func ceil(v float64) int { return int(math.Ceil(v)) }
