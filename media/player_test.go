package media

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublishDropsFramesFromCancelledDecoder(t *testing.T) {
	p := &Player{rect: image.Rect(0, 0, 2, 2), wake: make(chan struct{}, 1)}

	live, cancelLive := context.WithCancel(context.Background())
	defer cancelLive()
	assert.True(t, p.publish(live, image.NewRGBA(p.rect), 40))
	assert.Equal(t, uint64(1), p.LatestFrame().Sequence)

	stale, cancelStale := context.WithCancel(context.Background())
	cancelStale()
	assert.False(t, p.publish(stale, image.NewRGBA(p.rect), 80))

	got := p.LatestFrame()
	assert.Equal(t, uint64(1), got.Sequence)
	assert.Equal(t, 40.0, got.PresentationMs)
}
