package presenter

import (
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/frame-tracker-go/domain/overlay"
	"github.com/soocke/frame-tracker-go/domain/viewport"
	"github.com/soocke/frame-tracker-go/media"
	"github.com/soocke/frame-tracker-go/ui/images"
)

// FrameSource supplies the most recent decoded frame.
type FrameSource interface {
	LatestFrame() media.FrameSnapshot
	Ended() bool
}

// FrameClock receives per-frame notifications on the UI thread.
type FrameClock interface {
	OnFrame(ms float64)
	OnEnded()
	Ended() bool
	Playing() bool
}

// OverlaySource builds the markers and transform for the current instant.
type OverlaySource interface {
	Overlay() []overlay.Marker
	Transform() viewport.Transform
}

// SurfaceView displays the composed tracking surface.
type SurfaceView interface {
	UpdateSurface(png []byte)
}

type renderTask struct {
	frame     *image.RGBA
	sequence  uint64
	markers   []overlay.Marker
	transform viewport.Transform
	size      image.Point
}

type renderResult struct {
	sequence uint64
	png      []byte
	duration time.Duration
}

// TrackingPresenter forwards decoded frames to the playback clock and
// composes frame plus overlay off the UI thread. Only the newest pending
// render survives; older ones are dropped.
type TrackingPresenter struct {
	Overlay OverlaySource
	Clock   FrameClock
	View    SurfaceView
	logger  *slog.Logger

	source FrameSource
	size   image.Point

	workerOnce sync.Once
	workCh     chan renderTask
	resultCh   chan renderResult

	lastSeq uint64
	frame   *image.RGBA
	dirty   bool
}

// NewTrackingPresenter constructs a presenter rendering at size.
func NewTrackingPresenter(overlaySrc OverlaySource, clock FrameClock, view SurfaceView, size image.Point, logger *slog.Logger) *TrackingPresenter {
	return &TrackingPresenter{
		Overlay:  overlaySrc,
		Clock:    clock,
		View:     view,
		logger:   logger,
		size:     size,
		workCh:   make(chan renderTask, 1),
		resultCh: make(chan renderResult, 1),
		dirty:    true,
	}
}

// SetSource switches to a newly opened video; nil clears the surface.
func (p *TrackingPresenter) SetSource(src FrameSource) {
	if p == nil {
		return
	}
	p.source = src
	p.lastSeq = 0
	p.frame = nil
	p.dirty = true
}

// Resize changes the render size.
func (p *TrackingPresenter) Resize(size image.Point) {
	if p == nil || size == p.size {
		return
	}
	p.size = size
	p.dirty = true
}

// Invalidate requests a re-render on the next frame tick, e.g. after the
// point set, selection or viewport changed.
func (p *TrackingPresenter) Invalidate() {
	if p == nil {
		return
	}
	p.dirty = true
}

// ProcessFrame polls the frame source, notifies the clock of new frames and
// schedules a render when anything visible changed.
func (p *TrackingPresenter) ProcessFrame() {
	if p == nil || p.View == nil || p.Overlay == nil {
		return
	}

	p.ensureWorker()

	for {
		select {
		case res := <-p.resultCh:
			p.View.UpdateSurface(res.png)
		default:
			goto drained
		}
	}

drained:
	if p.source != nil {
		snap := p.source.LatestFrame()
		if snap.Image != nil && snap.Sequence != p.lastSeq {
			p.lastSeq = snap.Sequence
			p.frame = snap.Image
			if p.Clock != nil {
				p.Clock.OnFrame(snap.PresentationMs)
			}
			p.dirty = true
		}
		if p.Clock != nil && p.source.Ended() && p.Clock.Playing() && !p.Clock.Ended() {
			p.Clock.OnEnded()
			p.dirty = true
		}
	}
	if !p.dirty || p.size.X <= 0 || p.size.Y <= 0 {
		return
	}
	p.dirty = false
	p.dispatchTask(renderTask{
		frame:     p.frame,
		sequence:  p.lastSeq,
		markers:   p.Overlay.Overlay(),
		transform: p.Overlay.Transform(),
		size:      p.size,
	})
}

func (p *TrackingPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *TrackingPresenter) runWorker() {
	for task := range p.workCh {
		res := p.render(task)
		if res.png == nil {
			continue
		}
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *TrackingPresenter) dispatchTask(task renderTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *TrackingPresenter) render(task renderTask) (res renderResult) {
	defer recoverLog(p.logger, "render")
	start := time.Now()
	var frame image.Image
	if task.frame != nil {
		frame = task.frame
	}
	img := images.Render(frame, task.markers, task.transform, task.size)
	res = renderResult{sequence: task.sequence, png: images.EncodePNG(img)}
	res.duration = time.Since(start)
	if p.logger != nil && res.duration > 100*time.Millisecond {
		p.logger.Debug("slow render", "sequence", task.sequence, "duration", res.duration)
	}
	return res
}

func recoverLog(logger *slog.Logger, where string) {
	if r := recover(); r != nil && logger != nil {
		logger.Error("panic recovered", "where", where, "recover", r)
	}
}
