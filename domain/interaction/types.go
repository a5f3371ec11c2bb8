package interaction

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/soocke/frame-tracker-go/domain/overlay"
	"github.com/soocke/frame-tracker-go/domain/points"
	"github.com/soocke/frame-tracker-go/domain/viewport"
)

// State enumerates the phases of one pointer gesture.
type State int

const (
	StateIdle State = iota
	StatePreDrag
	StateDragging
	StatePanning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePreDrag:
		return "pre-drag"
	case StateDragging:
		return "dragging"
	case StatePanning:
		return "panning"
	default:
		return "unknown"
	}
}

// DragThreshold is the pointer travel in screen pixels that turns a press
// into a drag or pan.
const DragThreshold = 5.0

// Hover describes what lies under an idle pointer. It only drives cursor feedback.
type Hover struct {
	Pos       r2.Vec
	ObjectID  int
	Over      bool
	Draggable bool
}

// ActionCallbacks carry the side effects of transitions. Nil callbacks are skipped.
type ActionCallbacks struct {
	// LogAt logs a point for the active object at a screen position.
	// Guards (paused, tracking frame, in bounds) live behind it.
	LogAt       func(screen r2.Vec) bool
	Select      func(objectID int)
	DragPreview func(p *points.TrackPoint)
	CommitDrag  func(p points.TrackPoint)
	Pan         func(delta r2.Vec)
	Capture     func()
	Release     func()
	Hover       func(h Hover)
}

// Surface is the read-only view of the tracking surface used for hit tests.
type Surface interface {
	Markers() []overlay.Marker
	Transform() viewport.Transform
	VideoSize() viewport.Size
	CanPan() bool
}

// StateListener is called on each state change.
type StateListener func(prev, next State)

// Event is a pointer input delivered to the machine.
type Event interface{ kind() eventKind }

type eventKind int

const (
	kindDown eventKind = iota
	kindMove
	kindUp
	kindCancel
	kindLostCapture
)

// PointerDown is a primary button press. LogModifier is set when the
// logging modifier was held.
type PointerDown struct {
	Pos         r2.Vec
	LogModifier bool
}

// PointerMove reports the pointer position; ButtonDown reflects the
// tracked button state so a release missed outside the surface cancels.
type PointerMove struct {
	Pos        r2.Vec
	ButtonDown bool
}

// PointerUp is a primary button release.
type PointerUp struct{ Pos r2.Vec }

// PointerCancel is an environment cancel of the gesture.
type PointerCancel struct{}

// LostCapture signals the pointer capture was taken away.
type LostCapture struct{}

func (PointerDown) kind() eventKind   { return kindDown }
func (PointerMove) kind() eventKind   { return kindMove }
func (PointerUp) kind() eventKind     { return kindUp }
func (PointerCancel) kind() eventKind { return kindCancel }
func (LostCapture) kind() eventKind   { return kindLostCapture }

// Contract is the surface presenters and views depend on.
type Contract interface {
	Dispatch(Event)
	State() State
	Dragged() *points.TrackPoint
	AddListener(StateListener)
	Reset()
}
