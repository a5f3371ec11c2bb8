package frames

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexRoundsDrift(t *testing.T) {
	assert.Equal(t, 30, Index(1000, 30))
	assert.Equal(t, 30, Index(1010, 30))
	assert.Equal(t, 30, Index(999.4, 30))
	assert.Equal(t, 0, Index(0, 30))
	assert.Equal(t, 1, Index(33.4, 30))
}

func TestTimeRoundTripWithinOneFrame(t *testing.T) {
	for _, fps := range []float64{23.976, 25, 29.97, 30, 60, 120} {
		for ms := 0.0; ms < 5000; ms += 7.3 {
			got := Time(Index(ms, fps), fps)
			assert.LessOrEqual(t, math.Abs(got-ms), Duration(fps), "fps=%v ms=%v", fps, ms)
		}
	}
}

func TestIntervalFrames(t *testing.T) {
	t.Run("one sample per second", func(t *testing.T) {
		assert.Equal(t, 30, IntervalFrames(1, 1, 30))
	})
	t.Run("two seconds", func(t *testing.T) {
		assert.Equal(t, 60, IntervalFrames(1, 2, 30))
	})
	t.Run("faster than frame rate clamps to every frame", func(t *testing.T) {
		assert.Equal(t, 1, IntervalFrames(120, 1, 30))
	})
	t.Run("invalid rate counts every frame", func(t *testing.T) {
		assert.Equal(t, 1, IntervalFrames(0, 1, 30))
	})
}

func TestIsTrackingFramePeriodic(t *testing.T) {
	cases := []struct {
		num, den int
		fps      float64
	}{
		{1, 1, 30}, {2, 1, 30}, {1, 3, 25}, {5, 1, 29.97}, {60, 1, 30},
	}
	for _, c := range cases {
		interval := IntervalFrames(c.num, c.den, c.fps)
		assert.True(t, IsTrackingFrame(0, c.fps, c.num, c.den), "frame 0 must be on the grid")
		for f := 0; f < 4*interval; f++ {
			now := IsTrackingFrame(Time(f, c.fps), c.fps, c.num, c.den)
			later := IsTrackingFrame(Time(f+interval, c.fps), c.fps, c.num, c.den)
			assert.Equal(t, now, later, "frame %d interval %d", f, interval)
		}
	}
}

func TestIsTrackingFrameScenario(t *testing.T) {
	assert.True(t, IsTrackingFrame(1000, 30, 1, 1))
	assert.True(t, IsTrackingFrame(1010, 30, 1, 1))
	assert.False(t, IsTrackingFrame(500, 30, 1, 1))
	assert.Equal(t, 1000.0, GridTime(1010, 30))
}

func TestNextGridFrame(t *testing.T) {
	assert.Equal(t, 60, NextGridFrame(30, 30))
	assert.Equal(t, 60, NextGridFrame(45, 30))
	assert.Equal(t, 30, NextGridFrame(0, 30))
	assert.Equal(t, 1, NextGridFrame(0, 1))
	assert.Equal(t, 6, NextGridFrame(5, 1))
}
