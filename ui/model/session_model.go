package model

import (
	"time"
)

// SessionModel tracks how long the current playback run has lasted and the
// accumulated playing time of the whole editing session.
// Presenters poll Values() and update views. The zero value is ready to use.
type SessionModel struct {
	active      bool
	playStart   time.Time
	lastRun     time.Duration
	accumulated time.Duration
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick advances the model with the current playing state.
func (m *SessionModel) OnTick(playing bool, now time.Time) {
	if m == nil {
		return
	}
	if playing {
		if !m.active { // paused -> playing
			m.active = true
			m.playStart = now
			m.lastRun = 0
		}
		m.lastRun = now.Sub(m.playStart)
	} else if m.active { // playing -> paused
		m.lastRun = now.Sub(m.playStart)
		m.accumulated += m.lastRun
		m.active = false
	}
}

// Reset forgets all durations, e.g. when another video is opened.
func (m *SessionModel) Reset() {
	if m == nil {
		return
	}
	*m = SessionModel{}
}

// Values returns the last run duration and the total playing time,
// including the ongoing run.
func (m *SessionModel) Values() (run, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	run = m.lastRun
	total = m.accumulated
	if m.active {
		total += run
	}
	return
}
