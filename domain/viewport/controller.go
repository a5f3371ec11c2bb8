package viewport

import "gonum.org/v1/gonum/spatial/r2"

// Controller owns the live transform. Other components read it through
// Transform and never modify it.
type Controller struct {
	container Size
	video     Size
	t         Transform
	moved     bool
}

// NewController returns a controller for a container of the given size.
func NewController(container Size) *Controller {
	return &Controller{container: container, t: Transform{Scale: 1}}
}

// Transform returns the current transform.
func (c *Controller) Transform() Transform { return c.t }

// Container returns the container size.
func (c *Controller) Container() Size { return c.container }

// Video returns the video size.
func (c *Controller) Video() Size { return c.video }

// SetVideo fits a newly loaded video.
func (c *Controller) SetVideo(video Size) {
	c.video = video
	c.moved = false
	c.t = Fit(c.container, video)
}

// Resize updates the container. The view refits unless the user has panned
// or zoomed, in which case the transform is only re-constrained.
func (c *Controller) Resize(container Size) {
	c.container = container
	if c.video.Empty() {
		return
	}
	if !c.moved {
		c.t = Fit(container, c.video)
		return
	}
	c.t = Constrain(c.t, container, c.video)
}

// Zoom applies one wheel step about the cursor.
func (c *Controller) Zoom(delta float64, cursor r2.Vec) {
	if c.video.Empty() {
		return
	}
	c.t = Zoom(c.t, delta, cursor, c.container, c.video)
	c.moved = true
}

// Pan shifts the view by a screen delta.
func (c *Controller) Pan(delta r2.Vec) {
	if c.video.Empty() {
		return
	}
	c.t = Pan(c.t, delta, c.container, c.video)
	c.moved = true
}

// CanPan reports whether dragging the background would move the view.
func (c *Controller) CanPan() bool {
	return !c.video.Empty() && CanPan(c.container, c.video, c.t.Scale)
}

// Reset refits the video and forgets manual moves.
func (c *Controller) Reset() {
	c.moved = false
	if !c.video.Empty() {
		c.t = Fit(c.container, c.video)
	}
}

// ToVideo maps a screen point through the current transform.
func (c *Controller) ToVideo(screen r2.Vec) r2.Vec { return c.t.ToVideo(screen) }

// ToScreen maps a video point through the current transform.
func (c *Controller) ToScreen(video r2.Vec) r2.Vec { return c.t.ToScreen(video) }

// VideoPoint maps screen into video space and reports whether it lies on the video.
func (c *Controller) VideoPoint(screen r2.Vec) (r2.Vec, bool) {
	v := c.t.ToVideo(screen)
	return v, !c.video.Empty() && InBounds(v, c.video)
}
