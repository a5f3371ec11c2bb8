package presenter

import (
	"log/slog"
	"strings"
	"sync"
)

// Modifiers is the process-wide keyboard and window state observed by the surface.
type Modifiers struct {
	Log    bool // logging modifier (Control) held
	Hold   bool // continuous-play key held
	Width  int
	Height int
}

// Concern names one subscriber slot. Subscribing twice under the same
// concern replaces the earlier registration.
type Concern string

const (
	ConcernHold   Concern = "hold"
	ConcernResize Concern = "resize"
	ConcernCursor Concern = "cursor"
)

// ModifierWatcher tracks modifier keys and window size from raw key and
// configure events and fans changes out to subscribers.
type ModifierWatcher struct {
	Logger  *slog.Logger
	HoldKey string

	mu     sync.Mutex
	state  Modifiers
	nextID uint64
	subs   map[Concern]subscription
}

type subscription struct {
	id uint64
	fn func(Modifiers)
}

// NewModifierWatcher constructs a watcher; holdKey is a Tk keysym such as "Shift_L".
func NewModifierWatcher(holdKey string, logger *slog.Logger) *ModifierWatcher {
	if holdKey == "" {
		holdKey = "Shift_L"
	}
	return &ModifierWatcher{Logger: logger, HoldKey: holdKey, subs: make(map[Concern]subscription)}
}

// Subscribe registers fn for concern and returns its unsubscribe function.
// The unsubscribe function is a no-op once the slot was taken over.
func (w *ModifierWatcher) Subscribe(concern Concern, fn func(Modifiers)) (unsubscribe func()) {
	if w == nil || fn == nil {
		return func() {}
	}
	w.mu.Lock()
	w.nextID++
	id := w.nextID
	if _, replaced := w.subs[concern]; replaced && w.Logger != nil {
		w.Logger.Debug("modifier subscription replaced", "concern", string(concern))
	}
	w.subs[concern] = subscription{id: id, fn: fn}
	w.mu.Unlock()
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if cur, ok := w.subs[concern]; ok && cur.id == id {
			delete(w.subs, concern)
		}
	}
}

// Subscribers reports the number of active registrations.
func (w *ModifierWatcher) Subscribers() int {
	if w == nil {
		return 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.subs)
}

// State returns the current modifier snapshot.
func (w *ModifierWatcher) State() Modifiers {
	if w == nil {
		return Modifiers{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// KeyDown records a key press by keysym.
func (w *ModifierWatcher) KeyDown(keysym string) { w.key(keysym, true) }

// KeyUp records a key release by keysym.
func (w *ModifierWatcher) KeyUp(keysym string) { w.key(keysym, false) }

// FocusLost releases every held modifier; key releases are not delivered
// to an unfocused window.
func (w *ModifierWatcher) FocusLost() {
	w.update(func(m *Modifiers) {
		m.Log = false
		m.Hold = false
	})
}

// Resize records the window size.
func (w *ModifierWatcher) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.update(func(m *Modifiers) {
		m.Width, m.Height = width, height
	})
}

func (w *ModifierWatcher) key(keysym string, down bool) {
	if w == nil {
		return
	}
	w.update(func(m *Modifiers) {
		if strings.EqualFold(keysym, w.HoldKey) {
			m.Hold = down
		}
		if isControl(keysym) {
			m.Log = down
		}
	})
}

func (w *ModifierWatcher) update(fn func(*Modifiers)) {
	if w == nil {
		return
	}
	w.mu.Lock()
	prev := w.state
	fn(&w.state)
	next := w.state
	if prev == next {
		w.mu.Unlock()
		return
	}
	fns := make([]func(Modifiers), 0, len(w.subs))
	for _, s := range w.subs {
		fns = append(fns, s.fn)
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn(next)
	}
}

func isControl(keysym string) bool {
	switch keysym {
	case "Control_L", "Control_R", "Meta_L", "Meta_R":
		return true
	}
	return false
}
