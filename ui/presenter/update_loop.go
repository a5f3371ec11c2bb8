package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Session  *SessionPresenter
	FSM      *FSMPresenter
	Tracking *TrackingPresenter
	Hover    *HoverPresenter
	Autosave *Autosaver
	Schedule func()
}

func NewLoop(sess *SessionPresenter, fsm *FSMPresenter, tracking *TrackingPresenter, hover *HoverPresenter, autosave *Autosaver, schedule func()) *Loop {
	return &Loop{Session: sess, FSM: fsm, Tracking: tracking, Hover: hover, Autosave: autosave, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	// Frames first so the clock and labels see the newest presentation time.
	if l.Tracking != nil {
		l.Tracking.ProcessFrame()
	}
	if l.FSM != nil {
		l.FSM.Tick(now)
	}
	if l.Hover != nil {
		l.Hover.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Autosave != nil {
		l.Autosave.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
