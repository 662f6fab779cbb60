package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "catalog:track:12", TrackKey(12))
	assert.Equal(t, "catalog:playlist:3:tracks", PlaylistTracksKey(3))
}

func TestNopCache(t *testing.T) {
	var c Cache = NopCache{}
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, KeyArtists, []int{1, 2}, time.Minute))

	var out []int
	hit, err := c.Get(ctx, KeyArtists, &out)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)
}
