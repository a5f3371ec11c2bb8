package playback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	now      float64
	duration float64
	playing  bool
	seeks    []float64
	pauses   int
	playErr  error
}

func (f *fakeSource) CurrentTime() float64 { return f.now }
func (f *fakeSource) Play() error {
	if f.playErr != nil {
		return f.playErr
	}
	f.playing = true
	return nil
}
func (f *fakeSource) Pause()            { f.playing = false; f.pauses++ }
func (f *fakeSource) Seek(ms float64)   { f.now = ms; f.seeks = append(f.seeks, ms) }
func (f *fakeSource) Duration() float64 { return f.duration }

func newClock(t *testing.T) (*Clock, *fakeSource) {
	t.Helper()
	src := &fakeSource{duration: 10_000}
	c := NewClock(nil, 30, 1, 1)
	c.Attach(src, 30)
	return c, src
}

func TestAutoPauseSnapsToGridFrame(t *testing.T) {
	c, src := newClock(t)
	require.NoError(t, c.Play())

	// Frames every ~33.3ms with a little jitter; the next grid frame is 30 (1000ms).
	for _, ms := range []float64{0, 33.4, 500, 940, 962} {
		c.OnFrame(ms)
		require.True(t, c.Playing(), "still playing at %v", ms)
	}
	c.OnFrame(975) // 25ms remaining, within 0.85 of a frame

	assert.False(t, c.Playing())
	assert.Equal(t, 1000.0, c.CurrentTime())
	assert.Equal(t, []float64{1000}, src.seeks)
	assert.False(t, src.playing)
}

func TestAutoPauseSnapsBackWhenOvershooting(t *testing.T) {
	c, _ := newClock(t)
	require.NoError(t, c.Play())
	c.OnFrame(900)
	c.OnFrame(1040)

	assert.False(t, c.Playing())
	assert.Equal(t, 1000.0, c.CurrentTime())
}

func TestAutoPauseTargetsStrictlyAheadOfGridFrame(t *testing.T) {
	c, _ := newClock(t)
	c.Seek(1000)
	require.NoError(t, c.Play())
	c.OnFrame(1000)
	assert.True(t, c.Playing(), "the frame we start on is not the target")
	c.OnFrame(1980)
	assert.False(t, c.Playing())
	assert.Equal(t, 2000.0, c.CurrentTime())
}

func TestHoldSuspendsAutoPause(t *testing.T) {
	c, _ := newClock(t)
	require.NoError(t, c.Play())
	c.OnFrame(900)
	c.SetHold(true)
	c.OnFrame(990)
	c.OnFrame(1000)
	assert.True(t, c.Playing())

	c.SetHold(false)
	c.OnFrame(1033)
	assert.True(t, c.Playing(), "re-armed target is the next grid frame")
	c.OnFrame(1990)
	assert.False(t, c.Playing())
	assert.Equal(t, 2000.0, c.CurrentTime())
}

func TestSeekClampsAndResetsTarget(t *testing.T) {
	c, src := newClock(t)
	var last Status
	c.AddListener(func(s Status) { last = s })

	c.Seek(-50)
	assert.Equal(t, 0.0, c.CurrentTime())
	c.Seek(20_000)
	assert.Equal(t, 10_000.0, c.CurrentTime())
	assert.Equal(t, 10_000.0, last.CurrentMs)

	c.Seek(1500)
	require.NoError(t, c.Play())
	c.OnFrame(1600) // target 60 (2000ms)
	c.Seek(3000)
	c.OnFrame(3000)
	assert.True(t, c.Playing(), "old target discarded by seek")
	assert.Equal(t, 3000.0, src.now)
}

func TestEndedReportedOnce(t *testing.T) {
	c, _ := newClock(t)
	require.NoError(t, c.Play())
	stops := 0
	c.AddListener(func(s Status) {
		if s.Ended {
			stops++
		}
	})
	c.OnEnded()
	c.OnEnded()
	assert.Equal(t, 1, stops)
	assert.False(t, c.Playing())
}

func TestPlayErrors(t *testing.T) {
	c := NewClock(nil, 0, 1, 1)
	assert.ErrorIs(t, c.Play(), ErrNoSource)
	assert.Equal(t, 30.0, c.FPS())

	boom := errors.New("boom")
	c.Attach(&fakeSource{playErr: boom}, 25)
	err := c.Play()
	assert.ErrorIs(t, err, boom)
	assert.False(t, c.Playing())
}

func TestToggle(t *testing.T) {
	c, _ := newClock(t)
	require.NoError(t, c.Toggle())
	assert.True(t, c.Playing())
	require.NoError(t, c.Toggle())
	assert.False(t, c.Playing())
}
