package model

import (
	"sync/atomic"
)

// PlaybackModel mirrors whether the media is playing. The zero value is paused and usable.
// Atomic because the debug stats logger reads it off the UI thread.
type PlaybackModel struct{ playing atomic.Bool }

// Playing reports whether playback is running.
func (m *PlaybackModel) Playing() bool {
	if m == nil {
		return false
	}
	return m.playing.Load()
}

// SetPlaying stores the playing flag.
func (m *PlaybackModel) SetPlaying(b bool) {
	if m == nil {
		return
	}
	m.playing.Store(b)
}
