package presenter

import (
	"context"
	"log/slog"
	"time"

	"github.com/soocke/frame-tracker-go/domain/points"
)

const autosaveTimeout = 3 * time.Second

// SnapshotSaver persists the full point set of one video.
type SnapshotSaver interface {
	SaveAll(ctx context.Context, videoKey string, fps float64, numObjects int, pts []points.TrackPoint) error
}

// PointSource is the read side of the point store.
type PointSource interface {
	Revision() uint64
	Points() []points.TrackPoint
	NumObjects() int
	FPS() float64
}

// Autosaver writes the point set to the session store when it changed and
// the interval elapsed. It runs on the UI thread from the loop tick.
type Autosaver struct {
	saver    SnapshotSaver
	store    PointSource
	interval time.Duration
	logger   *slog.Logger

	videoKey string
	lastRev  uint64
	lastSave time.Time
}

func NewAutosaver(saver SnapshotSaver, store PointSource, interval time.Duration, logger *slog.Logger) *Autosaver {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Autosaver{saver: saver, store: store, interval: interval, logger: logger}
}

// SetVideo switches the save key. The current revision counts as saved.
func (a *Autosaver) SetVideo(videoKey string, now time.Time) {
	if a == nil || a.store == nil {
		return
	}
	a.videoKey = videoKey
	a.lastRev = a.store.Revision()
	a.lastSave = now
}

// Tick saves when due.
func (a *Autosaver) Tick(now time.Time) {
	if a == nil || a.saver == nil || a.store == nil || a.videoKey == "" {
		return
	}
	if a.store.Revision() == a.lastRev || now.Sub(a.lastSave) < a.interval {
		return
	}
	a.save(now)
}

// Flush saves pending changes immediately, e.g. before exit or opening another video.
func (a *Autosaver) Flush(now time.Time) error {
	if a == nil || a.saver == nil || a.store == nil || a.videoKey == "" {
		return nil
	}
	if a.store.Revision() == a.lastRev {
		return nil
	}
	return a.save(now)
}

func (a *Autosaver) save(now time.Time) error {
	ctx, cancel := context.WithTimeout(context.Background(), autosaveTimeout)
	defer cancel()
	rev := a.store.Revision()
	pts := a.store.Points()
	a.lastSave = now
	if err := a.saver.SaveAll(ctx, a.videoKey, a.store.FPS(), a.store.NumObjects(), pts); err != nil {
		if a.logger != nil {
			a.logger.Error("autosave", "video", a.videoKey, "error", err)
		}
		return err
	}
	a.lastRev = rev
	if a.logger != nil {
		a.logger.Debug("autosaved", "video", a.videoKey, "points", len(pts), "revision", rev)
	}
	return nil
}
