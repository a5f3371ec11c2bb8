package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/soocke/frame-tracker-go/domain/viewport"
)

// Background fills the parts of the surface not covered by video.
var Background = color.RGBA{0x10, 0x10, 0x12, 0xff}

// nearestFrom is the scale from which frames are drawn with nearest
// neighbour sampling so individual pixels stay sharp when zoomed in.
const nearestFrom = 2.0

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	_ = enc.Encode(&buf, img)
	return buf.Bytes()
}

// Blank returns an image of the given size filled with Background.
func Blank(size image.Point) *image.RGBA {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	Compose(dst, nil, viewport.Transform{})
	return dst
}

// Compose draws frame into dst through transform t. Pixels outside the
// transformed frame are set to Background.
func Compose(dst *image.RGBA, frame image.Image, t viewport.Transform) {
	if dst == nil {
		return
	}
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(Background), image.Point{}, xdraw.Src)
	if frame == nil || t.Scale <= 0 {
		return
	}
	m := f64.Aff3{
		t.Scale, 0, t.X,
		0, t.Scale, t.Y,
	}
	var interp xdraw.Transformer = xdraw.ApproxBiLinear
	if t.Scale >= nearestFrom {
		interp = xdraw.NearestNeighbor
	}
	interp.Transform(dst, m, frame, frame.Bounds(), xdraw.Src, nil)
}

// VisibleRect returns the video-space rectangle shown in a container of the
// given size, clipped to the video.
func VisibleRect(t viewport.Transform, container, video viewport.Size) image.Rectangle {
	if t.Scale <= 0 || container.Empty() || video.Empty() {
		return image.Rectangle{}
	}
	tl := t.ToVideo(rVec(0, 0))
	br := t.ToVideo(rVec(container.W, container.H))
	r := image.Rect(floor(tl.X), floor(tl.Y), ceil(br.X), ceil(br.Y))
	return r.Intersect(image.Rect(0, 0, ceil(video.W), ceil(video.H)))
}
