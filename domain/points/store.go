// Package points holds the authoritative set of logged track points together
// with the project state (active object, object count, unsaved changes).
package points

import (
	"log/slog"
	"sort"

	"github.com/soocke/frame-tracker-go/domain/frames"
)

// Store is the single writer-owned point collection. It is not safe for
// concurrent use; all mutations happen on the UI event thread.
//
// Records are keyed by (frame index at the current fps, object id) for
// both replacement and deletion.
type Store struct {
	logger     *slog.Logger
	fps        float64
	points     []TrackPoint
	active     int
	numObjects int
	dirty      bool
	revision   uint64
	listeners  []Listener
}

// NewStore returns an empty project at fps.
func NewStore(fps float64, logger *slog.Logger) *Store {
	if fps <= 0 {
		fps = frames.DefaultFPS
	}
	return &Store{logger: logger, fps: fps, active: 1, numObjects: 1}
}

// AddListener registers l for mutation notifications.
func (s *Store) AddListener(l Listener) { s.listeners = append(s.listeners, l) }

// FPS returns the frame rate used to derive frame keys.
func (s *Store) FPS() float64 { return s.fps }

// SetFPS changes the frame rate used for keys; existing points are kept.
func (s *Store) SetFPS(fps float64) {
	if fps <= 0 {
		fps = frames.DefaultFPS
	}
	s.fps = fps
}

// KeyOf returns the slot of p at the store's frame rate.
func (s *Store) KeyOf(p TrackPoint) Key {
	return Key{Frame: frames.Index(float64(p.TimestampMs), s.fps), ObjectID: p.ObjectID}
}

// AddOrReplace inserts p, replacing any point already occupying its
// (frame, object) slot. Object ids beyond the current object count extend it.
func (s *Store) AddOrReplace(p TrackPoint) {
	if p.ObjectID < 1 {
		return
	}
	if p.ID == "" {
		p.ID = PointID(p.TimestampMs, p.ObjectID)
	}
	key := s.KeyOf(p)
	out := s.points[:0]
	for _, q := range s.points {
		if s.KeyOf(q) != key {
			out = append(out, q)
		}
	}
	s.points = append(out, p)
	if p.ObjectID > s.numObjects {
		s.numObjects = p.ObjectID
	}
	s.touch()
	if s.logger != nil {
		s.logger.Debug("point stored", "frame", key.Frame, "object", p.ObjectID, "x", p.X, "y", p.Y)
	}
}

// Delete removes the point of objectID on the frame shown at timeMs,
// regardless of its exact stored timestamp. It reports whether a point was removed.
func (s *Store) Delete(timeMs float64, objectID int) bool {
	key := Key{Frame: frames.Index(timeMs, s.fps), ObjectID: objectID}
	for i, q := range s.points {
		if s.KeyOf(q) == key {
			s.points = append(s.points[:i], s.points[i+1:]...)
			s.touch()
			if s.logger != nil {
				s.logger.Debug("point deleted", "frame", key.Frame, "object", objectID)
			}
			return true
		}
	}
	return false
}

// BulkReplace swaps in an imported point set. Duplicate slots keep the last
// row. The object count never shrinks; the active object resets to 1 and the
// store is marked clean because it matches the imported data.
func (s *Store) BulkReplace(pts []TrackPoint) {
	slot := make(map[Key]int, len(pts))
	next := make([]TrackPoint, 0, len(pts))
	maxObj := 0
	for _, p := range pts {
		if p.ObjectID < 1 {
			continue
		}
		if p.ID == "" {
			p.ID = PointID(p.TimestampMs, p.ObjectID)
		}
		k := s.KeyOf(p)
		if i, ok := slot[k]; ok {
			next[i] = p
			continue
		}
		slot[k] = len(next)
		next = append(next, p)
		if p.ObjectID > maxObj {
			maxObj = p.ObjectID
		}
	}
	s.points = next
	if maxObj > s.numObjects {
		s.numObjects = maxObj
	}
	s.active = 1
	s.revision++
	s.dirty = false
	s.notify()
}

// Reset clears all points and the project state for a new video.
func (s *Store) Reset() {
	s.points = nil
	s.active = 1
	s.numObjects = 1
	s.dirty = false
	s.revision++
	s.notify()
}

// Points returns a copy of all points in insertion order.
func (s *Store) Points() []TrackPoint {
	out := make([]TrackPoint, len(s.points))
	copy(out, s.points)
	return out
}

// Sorted returns a copy ordered by timestamp then object id.
func (s *Store) Sorted() []TrackPoint {
	out := s.Points()
	SortPoints(out)
	return out
}

// Len returns the number of stored points.
func (s *Store) Len() int { return len(s.points) }

// At returns the point of objectID on the frame shown at timeMs.
func (s *Store) At(timeMs float64, objectID int) (TrackPoint, bool) {
	key := Key{Frame: frames.Index(timeMs, s.fps), ObjectID: objectID}
	for _, q := range s.points {
		if s.KeyOf(q) == key {
			return q, true
		}
	}
	return TrackPoint{}, false
}

// ActiveObject returns the object new points are logged for.
func (s *Store) ActiveObject() int { return s.active }

// NumObjects returns the number of known objects.
func (s *Store) NumObjects() int { return s.numObjects }

// SetActiveObject selects id when it is a known object.
func (s *Store) SetActiveObject(id int) bool {
	if id < 1 || id > s.numObjects {
		return false
	}
	s.active = id
	return true
}

// AddObject grows the object count by one and selects the new object.
func (s *Store) AddObject() int {
	s.numObjects++
	s.active = s.numObjects
	return s.active
}

// Dirty reports unsaved changes.
func (s *Store) Dirty() bool { return s.dirty }

// MarkDirty flags the store as holding changes not yet exported.
func (s *Store) MarkDirty() {
	s.dirty = true
}

// MarkSaved clears the unsaved-changes flag after a successful export.
func (s *Store) MarkSaved() { s.dirty = false }

// Revision increments on every mutation.
func (s *Store) Revision() uint64 { return s.revision }

func (s *Store) touch() {
	s.dirty = true
	s.revision++
	s.notify()
}

func (s *Store) notify() {
	for _, l := range s.listeners {
		l(s.revision)
	}
}

// SortPoints orders pts by timestamp, then object id.
func SortPoints(pts []TrackPoint) {
	sort.SliceStable(pts, func(i, j int) bool {
		if pts[i].TimestampMs != pts[j].TimestampMs {
			return pts[i].TimestampMs < pts[j].TimestampMs
		}
		return pts[i].ObjectID < pts[j].ObjectID
	})
}
