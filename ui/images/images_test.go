package images

import (
	"image"
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/frame-tracker-go/domain/overlay"
	"github.com/soocke/frame-tracker-go/domain/viewport"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestCompose_PlacesFrameThroughTransform(t *testing.T) {
	red := color.RGBA{0xff, 0, 0, 0xff}
	frame := solid(4, 4, red)
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	Compose(dst, frame, viewport.Transform{X: 10, Y: 10, Scale: 5})

	if got := dst.RGBAAt(20, 20); got != red {
		t.Fatalf("expected frame pixel inside transformed area, got %v", got)
	}
	if got := dst.RGBAAt(5, 5); got != Background {
		t.Fatalf("expected background outside frame, got %v", got)
	}
	if got := dst.RGBAAt(35, 35); got != Background {
		t.Fatalf("expected background past frame end, got %v", got)
	}
}

func TestCompose_NilFrameClearsSurface(t *testing.T) {
	dst := solid(8, 8, color.RGBA{1, 2, 3, 255})
	Compose(dst, nil, viewport.Transform{Scale: 1})
	if got := dst.RGBAAt(4, 4); got != Background {
		t.Fatalf("expected background, got %v", got)
	}
}

func TestDrawMarkers_FillsCentreOnly(t *testing.T) {
	dst := solid(50, 50, color.RGBA{0, 0, 0, 255})
	green := color.RGBA{0, 0xff, 0, 0xff}
	DrawMarkers(dst, []overlay.Marker{{Shape: overlay.Circle, Pos: r2.Vec{X: 10, Y: 10}, Radius: 5, Color: green}}, viewport.Transform{X: 5, Y: 5, Scale: 2})

	if got := dst.RGBAAt(25, 25); got != green {
		t.Fatalf("expected marker colour at centre, got %v", got)
	}
	if got := dst.RGBAAt(45, 45); got != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("pixel far from marker changed: %v", got)
	}
}

func TestDrawMarkers_BorderAndClipping(t *testing.T) {
	dst := solid(20, 20, color.RGBA{0, 0, 0, 255})
	blue := color.RGBA{0, 0, 0xff, 0xff}
	markers := []overlay.Marker{
		{Shape: overlay.Square, Pos: r2.Vec{X: 10, Y: 10}, Radius: 4, Color: blue, Bordered: true, Label: "1"},
		{Shape: overlay.Circle, Pos: r2.Vec{X: -3, Y: 19}, Radius: 6, Color: blue},
		{Shape: overlay.Circle, Pos: r2.Vec{X: 500, Y: 500}, Radius: 6, Color: blue},
	}
	DrawMarkers(dst, markers, viewport.Transform{Scale: 1})

	if got := dst.RGBAAt(10, 10); got != blue {
		t.Fatalf("expected fill at centre, got %v", got)
	}
	if got := dst.RGBAAt(15, 10); got != borderColor {
		t.Fatalf("expected border ring right of the square, got %v", got)
	}
}

func TestVisibleRect_ClampsToVideo(t *testing.T) {
	video := viewport.Size{W: 100, H: 50}
	r := VisibleRect(viewport.Transform{X: 0, Y: 0, Scale: 1}, viewport.Size{W: 200, H: 200}, video)
	if r != image.Rect(0, 0, 100, 50) {
		t.Fatalf("expected whole video, got %v", r)
	}
}

func TestVisibleRect_ZoomedWindow(t *testing.T) {
	video := viewport.Size{W: 100, H: 100}
	r := VisibleRect(viewport.Transform{X: -50, Y: -20, Scale: 2}, viewport.Size{W: 100, H: 100}, video)
	if r != image.Rect(25, 10, 75, 60) {
		t.Fatalf("unexpected visible window %v", r)
	}
}

func TestVisibleRect_Empty(t *testing.T) {
	if r := VisibleRect(viewport.Transform{}, viewport.Size{W: 10, H: 10}, viewport.Size{W: 10, H: 10}); !r.Empty() {
		t.Fatalf("expected empty rect for zero scale, got %v", r)
	}
}

func TestEncodePNG(t *testing.T) {
	if EncodePNG(nil) != nil {
		t.Fatalf("expected nil for nil image")
	}
	data := EncodePNG(solid(2, 2, color.RGBA{1, 2, 3, 255}))
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatalf("expected png signature, got %x", data)
	}
}
