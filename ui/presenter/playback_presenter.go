package presenter

import (
	"log/slog"

	"github.com/soocke/frame-tracker-go/domain/playback"
)

// PlaybackModel provides playing state access.
type PlaybackModel interface {
	Playing() bool
	SetPlaying(bool)
}

// PlaybackControl narrows what the presenter needs from the playback clock.
type PlaybackControl interface {
	Play() error
	Pause()
}

// GestureResetter cancels a pointer gesture in progress.
type GestureResetter interface {
	Reset()
}

// PlaybackView updates UI elements affected by play/pause.
type PlaybackView interface {
	SetPlaying(bool)
	SetEditable(bool)
	ShowStatus(string)
}

// PlaybackPresenter owns presentation logic for toggling playback.
type PlaybackPresenter struct {
	model   PlaybackModel
	clock   PlaybackControl
	gesture GestureResetter
	view    PlaybackView
	logger  *slog.Logger
}

func NewPlaybackPresenter(model PlaybackModel, clock PlaybackControl, gesture GestureResetter, view PlaybackView, logger *slog.Logger) *PlaybackPresenter {
	return &PlaybackPresenter{model: model, clock: clock, gesture: gesture, view: view, logger: logger}
}

// Play starts playback and locks editing. Idempotent.
func (p *PlaybackPresenter) Play() {
	if p == nil || p.model == nil || p.clock == nil || p.view == nil {
		return
	}
	if p.model.Playing() {
		return
	}
	if p.gesture != nil {
		p.gesture.Reset()
	}
	if err := p.clock.Play(); err != nil {
		if p.logger != nil {
			p.logger.Error("play", "error", err)
		}
		p.view.ShowStatus("Cannot play: " + err.Error())
		return
	}
	p.apply(true)
}

// Pause stops playback and unlocks editing. Idempotent.
func (p *PlaybackPresenter) Pause() {
	if p == nil || p.model == nil || p.clock == nil || p.view == nil {
		return
	}
	if !p.model.Playing() {
		return
	}
	p.clock.Pause()
	p.apply(false)
}

// Toggle flips playing state delegating to Play/Pause.
func (p *PlaybackPresenter) Toggle() {
	if p == nil || p.model == nil {
		return
	}
	if p.model.Playing() {
		p.Pause()
		return
	}
	p.Play()
}

// OnStatus follows clock-initiated changes such as auto-pause and end of stream.
func (p *PlaybackPresenter) OnStatus(s playback.Status) {
	if p == nil || p.model == nil || p.view == nil {
		return
	}
	p.apply(s.Playing)
}

func (p *PlaybackPresenter) apply(playing bool) {
	if p.model.Playing() == playing {
		return
	}
	p.model.SetPlaying(playing)
	p.view.SetPlaying(playing)
	p.view.SetEditable(!playing)
}
