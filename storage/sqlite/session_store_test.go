package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/frame-tracker-go/domain/points"
)

func openTestStore(t *testing.T) (*SessionStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func TestOpenAppliesMigrations(t *testing.T) {
	s, _ := openTestStore(t)
	version, dirty, err := s.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)
	assert.False(t, dirty)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, path := openTestStore(t)
	ctx := context.Background()
	pts := []points.TrackPoint{
		points.NewPoint(2000, 1, 3.5, 4.25),
		points.NewPoint(0, 2, 1, 2),
		points.NewPoint(0, 1, 0.125, 9),
	}
	require.NoError(t, s.SaveAll(ctx, "a.mp4", 30, 2, pts))

	got, err := s.LoadAll(ctx, "a.mp4")
	require.NoError(t, err)
	want := append([]points.TrackPoint(nil), pts...)
	points.SortPoints(want)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("loaded points differ (-want +got):\n%s", diff)
	}
	n, err := s.NumObjects(ctx, "a.mp4")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NoError(t, s.Close())
	reopened, err := Open(path, nil)
	require.NoError(t, err)
	defer reopened.Close()
	got, err = reopened.LoadAll(ctx, "a.mp4")
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSaveAllReplacesPreviousSet(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(ctx, "a.mp4", 30, 1, []points.TrackPoint{
		points.NewPoint(0, 1, 1, 1),
		points.NewPoint(1000, 1, 2, 2),
	}))
	require.NoError(t, s.SaveAll(ctx, "a.mp4", 30, 1, []points.TrackPoint{
		points.NewPoint(1000, 1, 5, 5),
	}))
	require.NoError(t, s.SaveAll(ctx, "b.mp4", 25, 1, []points.TrackPoint{
		points.NewPoint(40, 1, 7, 7),
	}))

	got, err := s.LoadAll(ctx, "a.mp4")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 5.0, got[0].X)

	other, err := s.LoadAll(ctx, "b.mp4")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestClear(t *testing.T) {
	s, _ := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveAll(ctx, "a.mp4", 30, 3, []points.TrackPoint{points.NewPoint(0, 3, 1, 1)}))
	require.NoError(t, s.Clear(ctx, "a.mp4"))

	got, err := s.LoadAll(ctx, "a.mp4")
	require.NoError(t, err)
	assert.Empty(t, got)
	n, err := s.NumObjects(ctx, "a.mp4")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestVideoKeyIsAbsolute(t *testing.T) {
	key := VideoKey("clip.mp4")
	assert.True(t, filepath.IsAbs(key))
	assert.Equal(t, "clip.mp4", filepath.Base(key))
}
