package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soocke/frame-tracker-go/domain/points"
)

func query(now float64, pts ...points.TrackPoint) Query {
	return Query{
		Points:       pts,
		ActiveObject: 1,
		CurrentMs:    now,
		FPS:          30,
		SamplingNum:  1,
		SamplingDen:  1,
	}
}

func scenario(now float64) Query {
	return query(now,
		points.NewPoint(2000, 1, 3, 3),
		points.NewPoint(0, 1, 1, 1),
		points.NewPoint(1000, 1, 2, 2),
		points.NewPoint(1500, 1, 9, 9), // off grid, never a target
		points.NewPoint(3000, 2, 4, 4), // other object
	)
}

func TestJumpScenario(t *testing.T) {
	ms, ok := Target(scenario(500), Next)
	assert.True(t, ok)
	assert.Equal(t, 1000.0, ms)

	for _, now := range []float64{0, 1200, 2000, 5000} {
		ms, ok = Target(scenario(now), Final)
		assert.True(t, ok)
		assert.Equal(t, 2000.0, ms, "final from %v", now)
	}

	ms, ok = Target(scenario(1500), First)
	assert.True(t, ok)
	assert.Equal(t, 0.0, ms)
}

func TestPrevNextPickNearest(t *testing.T) {
	ms, _ := Target(scenario(1500), Prev)
	assert.Equal(t, 1000.0, ms)
	ms, _ = Target(scenario(1000), Prev)
	assert.Equal(t, 0.0, ms)
	ms, _ = Target(scenario(1000), Next)
	assert.Equal(t, 2000.0, ms)
}

func TestIntervalFallback(t *testing.T) {
	t.Run("next past the last point", func(t *testing.T) {
		ms, ok := Target(scenario(2000), Next)
		assert.True(t, ok)
		assert.Equal(t, 3000.0, ms)
	})
	t.Run("prev clamps at zero", func(t *testing.T) {
		ms, _ := Target(query(400), Prev)
		assert.Equal(t, 0.0, ms)
	})
	t.Run("half second interval", func(t *testing.T) {
		q := query(1000)
		q.SamplingNum = 2
		ms, _ := Target(q, Next)
		assert.Equal(t, 1500.0, ms)
		ms, _ = Target(q, Prev)
		assert.Equal(t, 500.0, ms)
	})
}

func TestFirstTwoStage(t *testing.T) {
	q := query(2000, points.NewPoint(1000, 1, 0, 0), points.NewPoint(2000, 1, 0, 0))
	ms, _ := Target(q, First)
	assert.Equal(t, 1000.0, ms)

	q.CurrentMs = 1000
	ms, _ = Target(q, First)
	assert.Equal(t, 0.0, ms, "already at the first point rewinds to start")

	ms, ok := Target(query(800), First)
	assert.True(t, ok)
	assert.Equal(t, 0.0, ms)
}

func TestFinalWithoutPointsIsNoop(t *testing.T) {
	_, ok := Target(query(800, points.NewPoint(1000, 2, 0, 0)), Final)
	assert.False(t, ok)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "final", Final.String())
	assert.Equal(t, "unknown", Direction(9).String())
}
