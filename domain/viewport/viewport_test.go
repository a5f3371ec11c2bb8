package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-9

func TestFitCentresVideo(t *testing.T) {
	tr := Fit(Size{W: 800, H: 600}, Size{W: 1920, H: 1080})
	assert.InDelta(t, 800.0/1920.0, tr.Scale, tol)
	assert.InDelta(t, 0, tr.X, tol)
	assert.InDelta(t, (600-1080*tr.Scale)/2, tr.Y, tol)
}

func TestScreenVideoMappingInverse(t *testing.T) {
	tr := Transform{X: 12, Y: -40, Scale: 2.5}
	v := r2.Vec{X: 100, Y: 50}
	back := tr.ToVideo(tr.ToScreen(v))
	assert.InDelta(t, v.X, back.X, tol)
	assert.InDelta(t, v.Y, back.Y, tol)
}

func TestZoomKeepsCursorPointFixed(t *testing.T) {
	container := Size{W: 800, H: 600}
	video := Size{W: 800, H: 600}
	tr := Fit(container, video)
	cursor := r2.Vec{X: 400, Y: 300}
	before := tr.ToVideo(cursor)
	zoomed := Zoom(tr, -1, cursor, container, video)
	assert.InDelta(t, 1.1, zoomed.Scale, tol)
	after := zoomed.ToVideo(cursor)
	assert.InDelta(t, before.X, after.X, 1e-6)
	assert.InDelta(t, before.Y, after.Y, 1e-6)

	cursor = r2.Vec{X: 500, Y: 320}
	before = zoomed.ToVideo(cursor)
	again := Zoom(zoomed, -1, cursor, container, video)
	after = again.ToVideo(cursor)
	assert.InDelta(t, before.X, after.X, 1e-6)
	assert.InDelta(t, before.Y, after.Y, 1e-6)
}

func TestZoomOutStopsAtMinScale(t *testing.T) {
	container := Size{W: 800, H: 600}
	video := Size{W: 400, H: 300}
	tr := Fit(container, video)
	assert.InDelta(t, 2.0, tr.Scale, tol)
	for i := 0; i < 50; i++ {
		tr = Zoom(tr, 1, r2.Vec{X: 10, Y: 10}, container, video)
	}
	assert.InDelta(t, 1.0, tr.Scale, tol, "small videos may not shrink below natural size")
	assert.InDelta(t, 200, tr.X, tol)
	assert.InDelta(t, 150, tr.Y, tol)
}

func TestConstrainBounds(t *testing.T) {
	container := Size{W: 640, H: 480}
	video := Size{W: 1280, H: 720}
	fit := FitScale(container, video)
	for _, s := range []float64{0.01, fit, 0.9, 1, 3, 10, 50} {
		for _, off := range []float64{-1e5, -300, 0, 300, 1e5} {
			got := Constrain(Transform{X: off, Y: off, Scale: s}, container, video)
			assert.GreaterOrEqual(t, got.Scale, MinScale(container, video)-tol)
			assert.LessOrEqual(t, got.Scale, MaxScale+tol)
			w, h := video.W*got.Scale, video.H*got.Scale
			// Content must overlap the container on both axes.
			assert.Less(t, got.X, container.W)
			assert.Greater(t, got.X+w, 0.0)
			assert.Less(t, got.Y, container.H)
			assert.Greater(t, got.Y+h, 0.0)
		}
	}
}

func TestConstrainCentresSmallAxis(t *testing.T) {
	container := Size{W: 800, H: 600}
	video := Size{W: 1600, H: 400}
	got := Constrain(Transform{X: -50, Y: 90, Scale: 1}, container, video)
	assert.InDelta(t, -50, got.X, tol)
	assert.InDelta(t, 100, got.Y, tol)
}

func TestCanPan(t *testing.T) {
	container := Size{W: 800, H: 600}
	video := Size{W: 800, H: 600}
	assert.False(t, CanPan(container, video, 1))
	assert.False(t, CanPan(container, video, 1.001))
	assert.True(t, CanPan(container, video, 1.1))
}

func TestInBounds(t *testing.T) {
	video := Size{W: 100, H: 50}
	assert.True(t, InBounds(r2.Vec{X: 0, Y: 0}, video))
	assert.True(t, InBounds(r2.Vec{X: 100, Y: 50}, video))
	assert.False(t, InBounds(r2.Vec{X: -0.1, Y: 10}, video))
	assert.False(t, InBounds(r2.Vec{X: 10, Y: 50.1}, video))
}

func TestControllerResizeRefitsUntilMoved(t *testing.T) {
	c := NewController(Size{W: 800, H: 600})
	c.SetVideo(Size{W: 1600, H: 1200})
	assert.InDelta(t, 0.5, c.Transform().Scale, tol)

	c.Resize(Size{W: 400, H: 300})
	assert.InDelta(t, 0.25, c.Transform().Scale, tol)

	c.Zoom(-1, r2.Vec{X: 200, Y: 150})
	zoomed := c.Transform().Scale
	c.Resize(Size{W: 420, H: 315})
	assert.InDelta(t, zoomed, c.Transform().Scale, tol, "manual zoom survives resize")

	c.Reset()
	assert.InDelta(t, FitScale(Size{W: 420, H: 315}, Size{W: 1600, H: 1200}), c.Transform().Scale, tol)
}

func TestControllerPan(t *testing.T) {
	c := NewController(Size{W: 800, H: 600})
	c.SetVideo(Size{W: 800, H: 600})
	assert.False(t, c.CanPan())
	c.Zoom(-1, r2.Vec{X: 400, Y: 300})
	c.Zoom(-1, r2.Vec{X: 400, Y: 300})
	assert.True(t, c.CanPan())
	before := c.Transform()
	c.Pan(r2.Vec{X: 10, Y: 5})
	after := c.Transform()
	assert.InDelta(t, before.X+10, after.X, tol)
	assert.InDelta(t, before.Y+5, after.Y, tol)

	_, ok := c.VideoPoint(r2.Vec{X: 400, Y: 300})
	assert.True(t, ok)
}
