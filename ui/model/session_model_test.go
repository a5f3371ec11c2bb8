package model

import (
	"testing"
	"time"
)

func TestSessionModel_PlayPauseRuns(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)

	m.OnTick(true, base)
	m.OnTick(true, base.Add(4*time.Second))
	run, total := m.Values()
	if run != 4*time.Second || total != 4*time.Second {
		t.Fatalf("first run: got run=%v total=%v", run, total)
	}

	// auto-pause at 4s, then idle
	m.OnTick(false, base.Add(4*time.Second))
	m.OnTick(false, base.Add(9*time.Second))
	run, total = m.Values()
	if run != 4*time.Second || total != 4*time.Second {
		t.Fatalf("paused ticks must not advance: run=%v total=%v", run, total)
	}

	m.OnTick(true, base.Add(10*time.Second))
	m.OnTick(true, base.Add(12*time.Second))
	run, total = m.Values()
	if run != 2*time.Second || total != 6*time.Second {
		t.Fatalf("second run ongoing: run=%v total=%v", run, total)
	}

	m.OnTick(false, base.Add(13*time.Second))
	run, total = m.Values()
	if run != 3*time.Second || total != 7*time.Second {
		t.Fatalf("second run finished: run=%v total=%v", run, total)
	}
}

func TestSessionModel_Reset(t *testing.T) {
	m := NewSessionModel()
	base := time.Unix(0, 0)
	m.OnTick(true, base)
	m.OnTick(false, base.Add(time.Second))
	m.Reset()
	if run, total := m.Values(); run != 0 || total != 0 {
		t.Fatalf("reset left run=%v total=%v", run, total)
	}
	var nilModel *SessionModel
	nilModel.OnTick(true, base)
	if run, total := nilModel.Values(); run != 0 || total != 0 {
		t.Fatalf("nil model should report zero")
	}
}
