package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/frame-tracker-go/domain/frames"
	"github.com/soocke/frame-tracker-go/domain/playback"
)

const playerStatsLogInterval = 5 * time.Second

// DecoderBinary is the ffmpeg executable used by Player.
var DecoderBinary = "ffmpeg"

// ErrClosed is returned by operations on a closed player.
var ErrClosed = errors.New("media: player closed")

// Player decodes a video file with ffmpeg into RGBA frames and paces them
// against the wall clock while playing. The latest frame is published
// atomically for the UI thread to poll.
type Player struct {
	logger *slog.Logger
	info   Info
	fps    float64
	rect   image.Rectangle

	latest      atomic.Pointer[FrameSnapshot]
	playing     atomic.Bool
	ended       atomic.Bool
	sequence    atomic.Uint64
	decoded     atomic.Uint64
	discarded   atomic.Uint64
	restarts    atomic.Uint64
	decodeNanos atomic.Uint64

	mu         sync.Mutex
	cancel     context.CancelFunc
	wake       chan struct{}
	anchorWall time.Time
	anchorMs   float64
	closed     bool
}

// NewPlayer starts decoding info.Path at time zero. The first frame is
// published as soon as it is decoded; playback starts paused.
func NewPlayer(logger *slog.Logger, info Info) (*Player, error) {
	if info.Width <= 0 || info.Height <= 0 {
		return nil, ErrNoVideoStream
	}
	p := &Player{
		logger: logger,
		info:   info,
		fps:    info.FPSOrDefault(frames.DefaultFPS),
		rect:   image.Rect(0, 0, info.Width, info.Height),
		wake:   make(chan struct{}, 1),
	}
	if err := p.restart(0); err != nil {
		return nil, err
	}
	return p, nil
}

var _ playback.MediaSource = (*Player)(nil)

// Info returns the probed stream description.
func (p *Player) Info() Info { return p.info }

// Size returns the intrinsic frame size.
func (p *Player) Size() image.Point { return p.rect.Size() }

// FPS returns the pacing frame rate.
func (p *Player) FPS() float64 { return p.fps }

// Duration returns the media duration in milliseconds, zero when unknown.
func (p *Player) Duration() float64 { return p.info.DurationMs }

// LatestFrame returns the freshest decoded frame.
func (p *Player) LatestFrame() FrameSnapshot {
	snap := p.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

// CurrentTime returns the presentation time of the latest frame.
func (p *Player) CurrentTime() float64 { return p.LatestFrame().PresentationMs }

// Playing reports whether frames are being paced out.
func (p *Player) Playing() bool { return p.playing.Load() }

// Ended reports whether the decoder reached the end of the stream.
func (p *Player) Ended() bool { return p.ended.Load() }

// Play resumes paced playback, rewinding first when the stream has ended.
func (p *Player) Play() error {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if p.ended.Load() {
		if err := p.restart(0); err != nil {
			return err
		}
	}
	p.mu.Lock()
	p.anchorWall = time.Now()
	p.anchorMs = p.CurrentTime()
	p.mu.Unlock()
	p.playing.Store(true)
	p.signal()
	return nil
}

// Pause holds the current frame.
func (p *Player) Pause() {
	p.playing.Store(false)
	p.signal()
}

// Seek restarts the decoder at ms. The frame at ms is published even while paused.
func (p *Player) Seek(ms float64) {
	if ms < 0 {
		ms = 0
	}
	if d := p.Duration(); d > 0 && ms > d {
		ms = d
	}
	if err := p.restart(ms); err != nil && p.logger != nil {
		p.logger.Error("seek", "time_ms", ms, "error", err)
	}
}

// Close stops the decoder.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.playing.Store(false)
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Stats reports decoder counters.
func (p *Player) Stats() PlayerStats {
	decoded := p.decoded.Load()
	total := p.decodeNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if decoded > 0 && total > 0 {
		avg = time.Duration(total / decoded)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	snap := p.LatestFrame()
	age := time.Duration(0)
	if !snap.DecodedAt.IsZero() {
		age = time.Since(snap.DecodedAt)
	}
	return PlayerStats{
		Decoded:         decoded,
		Discarded:       p.discarded.Load(),
		Restarts:        p.restarts.Load(),
		AvgDecode:       avg,
		AvgDecodeMicros: avgMicros,
		LatestFrameAge:  age,
		Sequence:        snap.Sequence,
	}
}

func (p *Player) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Player) restart(startMs float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, DecoderBinary,
		"-v", "error",
		"-ss", strconv.FormatFloat(startMs/1000, 'f', 3, 64),
		"-i", p.info.Path,
		"-an",
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"-",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("decoder pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("start decoder: %w", err)
	}
	p.cancel = cancel
	p.ended.Store(false)
	p.anchorWall = time.Now()
	p.anchorMs = startMs
	p.restarts.Add(1)
	go p.decode(ctx, cmd, stdout, startMs)
	return nil
}

func (p *Player) decode(ctx context.Context, cmd *exec.Cmd, stdout io.Reader, startMs float64) {
	defer func() {
		if r := recover(); r != nil && p.logger != nil {
			p.logger.Error("decoder panic", "recover", r)
		}
	}()
	defer cmd.Wait()

	logTicker := time.NewTicker(playerStatsLogInterval)
	defer logTicker.Stop()
	step := frames.Duration(p.fps)
	for idx := 0; ; idx++ {
		start := time.Now()
		img := acquireFrame(p.rect)
		if _, err := io.ReadFull(stdout, img.Pix); err != nil {
			recycleFrame(img)
			if ctx.Err() == nil {
				p.ended.Store(true)
				p.playing.Store(false)
				if p.logger != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
					p.logger.Error("decode frame", "error", err)
				}
			}
			return
		}
		p.decodeNanos.Add(uint64(time.Since(start).Nanoseconds()))
		p.decoded.Add(1)
		pts := startMs + float64(idx)*step
		if d := p.Duration(); d > 0 {
			pts = math.Min(pts, d)
		}
		if idx > 0 && !p.waitDue(ctx, pts) {
			recycleFrame(img)
			p.discarded.Add(1)
			return
		}
		if !p.publish(ctx, img, pts) {
			recycleFrame(img)
			p.discarded.Add(1)
			return
		}

		select {
		case <-logTicker.C:
			p.logStats()
		default:
		}
	}
}

// publish stores img as the latest frame unless ctx was cancelled. restart
// cancels under p.mu, so a decoder superseded by a seek can never publish
// after the seek returned.
func (p *Player) publish(ctx context.Context, img *image.RGBA, pts float64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if ctx.Err() != nil {
		return false
	}
	seq := p.sequence.Add(1)
	p.latest.Store(&FrameSnapshot{Image: img, PresentationMs: pts, DecodedAt: time.Now(), Sequence: seq})
	return true
}

// waitDue blocks until the frame at pts should be shown. It returns false
// when the decoder was cancelled.
func (p *Player) waitDue(ctx context.Context, pts float64) bool {
	for {
		if !p.playing.Load() {
			select {
			case <-ctx.Done():
				return false
			case <-p.wake:
				continue
			}
		}
		p.mu.Lock()
		due := p.anchorWall.Add(time.Duration((pts - p.anchorMs) * float64(time.Millisecond)))
		p.mu.Unlock()
		wait := time.Until(due)
		if wait <= 0 {
			return true
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return false
		case <-p.wake:
			timer.Stop()
		case <-timer.C:
			return true
		}
	}
}

func (p *Player) logStats() {
	if p.logger == nil {
		return
	}
	stats := p.Stats()
	p.logger.Debug("player.stats",
		"decoded", stats.Decoded,
		"discarded", stats.Discarded,
		"restarts", stats.Restarts,
		"avg_decode", stats.AvgDecode,
		"age", stats.LatestFrameAge,
	)
}
