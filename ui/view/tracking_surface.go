package view

import (
	"image"

	"github.com/soocke/frame-tracker-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PointerHandlers receive raw pointer input in surface pixel coordinates.
type PointerHandlers struct {
	Press   func(x, y float64, logModifier bool)
	Move    func(x, y float64, buttonDown bool)
	Release func(x, y float64)
	Leave   func()
	Wheel   func(x, y, delta float64) // delta < 0 is wheel-up
}

// TrackingSurface shows the composed video frame and overlay and reports
// pointer input on it.
type TrackingSurface interface {
	UpdateSurface(png []byte)
	SetCursor(name string)
	Size() image.Point
	Resize(size image.Point)
	Reset()
}

type trackingSurface struct {
	label     *LabelWidget
	size      image.Point
	prevPhoto *Img // last Tk photo, deleted before replacement
	cursor    string
}

// NewTrackingSurface creates the surface label inside parent and binds pointer events.
func NewTrackingSurface(parent *FrameWidget, row, col int, size image.Point, h PointerHandlers) TrackingSurface {
	s := &trackingSurface{size: size, cursor: "crosshair"}
	s.prevPhoto = NewPhoto(Data(placeholderPNG(size)))
	s.label = Label(Image(s.prevPhoto), Borderwidth(0), Highlightthickness(0), Padx(0), Pady(0), Cursor(s.cursor))
	Grid(s.label, In(parent), Row(row), Column(col), Sticky("nw"))

	pos := func(e *Event) (float64, float64) { return float64(e.X), float64(e.Y) }
	if h.Press != nil {
		Bind(s.label, "<ButtonPress-1>", Command(func(e *Event) {
			x, y := pos(e)
			h.Press(x, y, false)
		}))
		Bind(s.label, "<Control-ButtonPress-1>", Command(func(e *Event) {
			x, y := pos(e)
			h.Press(x, y, true)
		}))
	}
	if h.Move != nil {
		Bind(s.label, "<Motion>", Command(func(e *Event) {
			x, y := pos(e)
			h.Move(x, y, false)
		}))
		Bind(s.label, "<B1-Motion>", Command(func(e *Event) {
			x, y := pos(e)
			h.Move(x, y, true)
		}))
	}
	if h.Release != nil {
		Bind(s.label, "<ButtonRelease-1>", Command(func(e *Event) {
			x, y := pos(e)
			h.Release(x, y)
		}))
	}
	if h.Leave != nil {
		Bind(s.label, "<Leave>", Command(func() { h.Leave() }))
	}
	if h.Wheel != nil {
		// X11 reports wheel-up as button 4 and wheel-down as button 5.
		Bind(s.label, "<Button-4>", Command(func(e *Event) {
			x, y := pos(e)
			h.Wheel(x, y, -1)
		}))
		Bind(s.label, "<Button-5>", Command(func(e *Event) {
			x, y := pos(e)
			h.Wheel(x, y, 1)
		}))
	}
	return s
}

func (s *trackingSurface) UpdateSurface(png []byte) {
	if s.label == nil || len(png) == 0 {
		return
	}
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if s.prevPhoto != nil {
		s.prevPhoto.Delete()
	}
	s.prevPhoto = NewPhoto(Data(png))
	s.label.Configure(Image(s.prevPhoto))
}

func (s *trackingSurface) SetCursor(name string) {
	if s.label == nil || name == "" || name == s.cursor {
		return
	}
	s.cursor = name
	s.label.Configure(Cursor(name))
}

func (s *trackingSurface) Size() image.Point { return s.size }

// Resize records the new render size. The label follows with the next frame.
func (s *trackingSurface) Resize(size image.Point) {
	if size.X < minSurfaceW {
		size.X = minSurfaceW
	}
	if size.Y < minSurfaceH {
		size.Y = minSurfaceH
	}
	s.size = size
}

func (s *trackingSurface) Reset() {
	s.UpdateSurface(placeholderPNG(s.size))
}

const (
	minSurfaceW = 200
	minSurfaceH = 150
)

func placeholderPNG(size image.Point) []byte {
	if size.X < minSurfaceW {
		size.X = minSurfaceW
	}
	if size.Y < minSurfaceH {
		size.Y = minSurfaceH
	}
	return images.EncodePNG(images.Blank(size))
}
