package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PutOpenList(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "sample2.wav", strings.NewReader("RIFF2"), 5))
	require.NoError(t, store.Put(ctx, "sample1.wav", strings.NewReader("RIFF1"), 5))

	rc, info, err := store.Open(ctx, "sample1.wav")
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "RIFF1", string(body))
	assert.Equal(t, int64(5), info.Size)
	assert.Equal(t, "audio/wav", info.ContentType)

	objects, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 2)
	assert.Equal(t, "sample1.wav", objects[0].Name)
	assert.Equal(t, "sample2.wav", objects[1].Name)
}

func TestLocalStore_OpenMissingOrInvalid(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	for _, name := range []string{"missing.wav", "../etc/passwd", "..", "", "a/b.wav"} {
		_, _, err := store.Open(ctx, name)
		assert.ErrorIs(t, err, ErrObjectNotFound, "name %q", name)
	}
	assert.Error(t, store.Put(ctx, "../escape.wav", strings.NewReader("x"), 1))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "audio/mpeg", ContentType("song.MP3"))
	assert.Equal(t, "audio/wav", ContentType("tone.wav"))
	assert.Equal(t, "application/octet-stream", ContentType("notes.txt"))
}

func TestFormatSize(t *testing.T) {
	assert.Equal(t, "512 B", FormatSize(512))
	assert.Equal(t, "1.5 KB", FormatSize(1536))
	assert.Equal(t, "2.0 MB", FormatSize(2*1024*1024))
}
