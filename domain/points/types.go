package points

import (
	"fmt"

	"github.com/google/uuid"
)

// TrackPoint is one logged position of an object at a media timestamp.
// X and Y are in video pixel space with the origin at the top-left.
type TrackPoint struct {
	ID          string
	TimestampMs int64
	ObjectID    int
	X           float64
	Y           float64
}

// idNamespace scopes the name-based ids derived from (timestamp, object).
var idNamespace = uuid.NewSHA1(uuid.NameSpaceOID, []byte("frame-tracker/trackpoint"))

// PointID derives the stable id of the record at (timestampMs, objectID).
func PointID(timestampMs int64, objectID int) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%d:%d", timestampMs, objectID))).String()
}

// NewPoint builds a TrackPoint with its derived id.
func NewPoint(timestampMs int64, objectID int, x, y float64) TrackPoint {
	return TrackPoint{ID: PointID(timestampMs, objectID), TimestampMs: timestampMs, ObjectID: objectID, X: x, Y: y}
}

// Key identifies the slot a point occupies: one point per frame and object.
type Key struct {
	Frame    int
	ObjectID int
}

// Listener is called after every mutation of the store.
type Listener func(revision uint64)
