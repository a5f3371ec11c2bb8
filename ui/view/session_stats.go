package view

import (
	"fmt"
	"time"

	"github.com/soocke/frame-tracker-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows the playback position, point summary and playing durations.
type SessionStats interface {
	SetPosition(text string)
	SetPoints(text string)
	SetDurations(run, total time.Duration)
}

type sessionStats struct {
	positionLbl *TLabelWidget
	pointsLbl   *TLabelWidget
	runLbl      *TLabelWidget
	totalLbl    *TLabelWidget
}

// NewSessionStats creates the labels inside parent starting at (row, startCol).
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{
		positionLbl: TLabel(Width(44), Anchor("w")),
		pointsLbl:   TLabel(Width(52), Anchor("w")),
		runLbl:      TLabel(Width(12), Style(theme.StyleMutedLabel)),
		totalLbl:    TLabel(Width(12), Style(theme.StyleMutedLabel)),
	}
	Grid(s.positionLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.4m"))
	Grid(s.pointsLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.4m"))
	Grid(s.runLbl, In(parent), Row(row), Column(startCol+2), Sticky("e"), Padx("0.2m"))
	Grid(s.totalLbl, In(parent), Row(row), Column(startCol+3), Sticky("e"), Padx("0.2m"))
	s.positionLbl.Configure(Txt("No video"))
	s.pointsLbl.Configure(Txt(""))
	s.SetDurations(0, 0)
	return s
}

func (s *sessionStats) SetPosition(text string) {
	if s == nil || s.positionLbl == nil {
		return
	}
	s.positionLbl.Configure(Txt(text))
}

func (s *sessionStats) SetPoints(text string) {
	if s == nil || s.pointsLbl == nil {
		return
	}
	s.pointsLbl.Configure(Txt(text))
}

// SetDurations updates the run and total playing time.
func (s *sessionStats) SetDurations(run, total time.Duration) {
	if s == nil || s.runLbl == nil || s.totalLbl == nil {
		return
	}
	s.runLbl.Configure(Txt("Run: " + clock(run)))
	s.totalLbl.Configure(Txt("Played: " + clock(total)))
}

func clock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
