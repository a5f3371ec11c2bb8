package presenter

import (
	"testing"
	"time"

	"github.com/soocke/frame-tracker-go/domain/tracking"
	"github.com/soocke/frame-tracker-go/ui/model"
)

type mockStatus struct{ st tracking.Status }

func (m *mockStatus) Status() tracking.Status { return m.st }

type mockSessionView struct {
	run, total        time.Duration
	positions, points []string
}

func (v *mockSessionView) SetSession(run, total time.Duration) { v.run, v.total = run, total }
func (v *mockSessionView) SetPosition(s string)                { v.positions = append(v.positions, s) }
func (v *mockSessionView) SetPoints(s string)                  { v.points = append(v.points, s) }

func TestFormatClock(t *testing.T) {
	cases := map[float64]string{
		0:         "00:00.000",
		1033.4:    "00:01.033",
		61_000:    "01:01.000",
		-5:        "00:00.000",
		3_599_999: "59:59.999",
	}
	for in, want := range cases {
		if got := FormatClock(in); got != want {
			t.Fatalf("FormatClock(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestSessionPresenter_Tick(t *testing.T) {
	src := &mockStatus{st: tracking.Status{
		CurrentMs:     1000,
		DurationMs:    10_000,
		Frame:         30,
		TrackingFrame: true,
		Points:        2,
		Objects:       2,
		ActiveObject:  1,
		Dirty:         true,
		Settings:      tracking.Settings{SamplingNum: 1, SamplingDen: 1, TrailLength: 3},
	}}
	view := &mockSessionView{}
	p := NewSessionPresenter(model.NewSessionModel(), src, view)
	base := time.Unix(0, 0)

	p.Tick(base)
	if len(view.positions) != 1 || view.positions[0] != "00:01.000 / 00:10.000  frame 30  tracking frame" {
		t.Fatalf("position: %v", view.positions)
	}
	if len(view.points) != 1 || view.points[0] != "Object 1/2  2 points  unsaved  rate 1/1s  trail 3" {
		t.Fatalf("points: %v", view.points)
	}

	// unchanged snapshot does not relabel
	p.Tick(base.Add(time.Second))
	if len(view.positions) != 1 || len(view.points) != 1 {
		t.Fatalf("unexpected relabel: %v %v", view.positions, view.points)
	}

	src.st.Playing = true
	src.st.TrackingFrame = false
	src.st.Hold = true
	p.Tick(base.Add(2 * time.Second))
	p.Tick(base.Add(5 * time.Second))
	if view.run != 3*time.Second || view.total != 3*time.Second {
		t.Fatalf("durations: run=%v total=%v", view.run, view.total)
	}
	if got := view.positions[len(view.positions)-1]; got != "00:01.000 / 00:10.000  frame 30  off grid  [hold]" {
		t.Fatalf("position while holding: %q", got)
	}
}
