// Package media decodes local video files through the ffmpeg command line
// tools and exposes them as a playback source.
package media

import (
	"image"
	"time"
)

// FrameSnapshot carries the latest decoded frame and its presentation time.
type FrameSnapshot struct {
	Image          *image.RGBA
	PresentationMs float64
	DecodedAt      time.Time
	Sequence       uint64
}

// FrameSource provides read-only access to decoded frames.
type FrameSource interface {
	LatestFrame() FrameSnapshot
	Ended() bool
}

// PlayerStats summarises decoder behaviour for instrumentation.
type PlayerStats struct {
	Decoded         uint64
	Discarded       uint64
	Restarts        uint64
	AvgDecode       time.Duration
	AvgDecodeMicros float64
	LatestFrameAge  time.Duration
	Sequence        uint64
}
