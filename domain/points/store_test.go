package points

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAddOrReplaceSameSlot(t *testing.T) {
	s := NewStore(30, nil)
	s.AddOrReplace(NewPoint(1000, 1, 100, 50))
	s.AddOrReplace(NewPoint(1000, 1, 120, 60))
	require.Equal(t, 1, s.Len())
	p, ok := s.At(1000, 1)
	require.True(t, ok)
	assert.Equal(t, 120.0, p.X)
	assert.Equal(t, 60.0, p.Y)
	assert.True(t, s.Dirty())
}

func TestStoreAddOrReplaceMatchesByFrame(t *testing.T) {
	s := NewStore(30, nil)
	// 1010ms and 1000ms both show frame 30 at 30fps.
	s.AddOrReplace(NewPoint(1010, 1, 1, 1))
	s.AddOrReplace(NewPoint(1000, 1, 2, 2))
	require.Equal(t, 1, s.Len())
	assert.Equal(t, int64(1000), s.Points()[0].TimestampMs)
}

func TestStoreKeepsDistinctObjects(t *testing.T) {
	s := NewStore(30, nil)
	s.AddOrReplace(NewPoint(1000, 1, 1, 1))
	s.AddOrReplace(NewPoint(1000, 2, 2, 2))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.NumObjects())
}

func TestStoreDeleteByFrame(t *testing.T) {
	s := NewStore(30, nil)
	s.AddOrReplace(NewPoint(1000, 1, 1, 1))
	s.AddOrReplace(NewPoint(1000, 2, 1, 1))
	s.MarkSaved()

	assert.False(t, s.Delete(2000, 1))
	assert.False(t, s.Dirty())

	assert.True(t, s.Delete(1012.5, 1))
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Dirty())
	_, ok := s.At(1000, 2)
	assert.True(t, ok)
}

func TestStoreBulkReplace(t *testing.T) {
	s := NewStore(30, nil)
	s.AddObject()
	s.AddObject()
	require.Equal(t, 3, s.ActiveObject())
	s.AddOrReplace(NewPoint(0, 1, 1, 1))

	s.BulkReplace([]TrackPoint{
		NewPoint(0, 2, 5, 5),
		NewPoint(1000, 2, 6, 6),
		NewPoint(1000, 2, 7, 7),
	})
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 3, s.NumObjects(), "object count never shrinks")
	assert.Equal(t, 1, s.ActiveObject())
	assert.False(t, s.Dirty())
	p, ok := s.At(1000, 2)
	require.True(t, ok)
	assert.Equal(t, 7.0, p.X, "last duplicate row wins")

	s.BulkReplace([]TrackPoint{NewPoint(0, 5, 0, 0)})
	assert.Equal(t, 5, s.NumObjects())
}

func TestStoreReset(t *testing.T) {
	s := NewStore(30, nil)
	s.AddObject()
	s.AddOrReplace(NewPoint(0, 2, 1, 1))
	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, 1, s.NumObjects())
	assert.Equal(t, 1, s.ActiveObject())
	assert.False(t, s.Dirty())
}

func TestStoreActiveObjectBounds(t *testing.T) {
	s := NewStore(30, nil)
	assert.False(t, s.SetActiveObject(2))
	assert.False(t, s.SetActiveObject(0))
	s.AddObject()
	assert.True(t, s.SetActiveObject(1))
	assert.Equal(t, 1, s.ActiveObject())
}

func TestStoreListenerSeesRevisions(t *testing.T) {
	s := NewStore(30, nil)
	var seen []uint64
	s.AddListener(func(rev uint64) { seen = append(seen, rev) })
	s.AddOrReplace(NewPoint(0, 1, 1, 1))
	s.Delete(0, 1)
	s.Reset()
	assert.Equal(t, []uint64{1, 2, 3}, seen)
}

func TestPointIDDeterministic(t *testing.T) {
	assert.Equal(t, PointID(1000, 1), NewPoint(1000, 1, 3, 4).ID)
	assert.NotEqual(t, PointID(1000, 1), PointID(1000, 2))
	assert.NotEqual(t, PointID(1000, 1), PointID(1001, 1))
}
