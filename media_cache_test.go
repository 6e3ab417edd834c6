package main

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIdleCache builds a cache without a worker so queued requests can be
// inspected. load returns no image; only the call count matters here.
func newIdleCache(items []MediaItem, preloadCount int) (*MediaCache, *int) {
	calls := 0
	ctx, cancel := context.WithCancel(context.Background())
	mc := &MediaCache{
		items: items,
		cache: newImageLRU(8),
		load: func(MediaSource) (*ebiten.Image, error) {
			calls++
			return nil, nil
		},
		requests:   make(chan PreloadRequest, 100),
		ctx:        ctx,
		cancel:     cancel,
		maxPreload: preloadCount,
		enabled:    true,
		log:        componentLogger("cache"),
	}
	return mc, &calls
}

func TestCalculatePreloadIndices(t *testing.T) {
	tests := []struct {
		name  string
		req   PreloadRequest
		max   int
		total int
		want  []int
	}{
		{"forward", PreloadRequest{Index: 2, Direction: DirectionNext}, 3, 10, []int{3, 4, 5}},
		{"forward clipped at end", PreloadRequest{Index: 8, Direction: DirectionNext}, 3, 10, []int{9}},
		{"backward", PreloadRequest{Index: 5, Direction: DirectionPrev}, 2, 10, []int{4, 3}},
		{"backward clipped at start", PreloadRequest{Index: 1, Direction: DirectionPrev}, 4, 10, []int{0}},
		{"jump spreads both ways", PreloadRequest{Index: 5, Jump: true}, 4, 10, []int{6, 7, 4, 3}},
		{"jump with tiny budget", PreloadRequest{Index: 0, Jump: true}, 1, 3, []int{1}},
		{"last page forward", PreloadRequest{Index: 9, Direction: DirectionNext}, 4, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calculatePreloadIndices(tt.req, tt.max, tt.total))
		})
	}
}

func TestMediaCacheOnPageChange(t *testing.T) {
	mc, _ := newIdleCache(imageItems(10), 4)

	tests := []struct {
		name   string
		change PageChange
		want   PreloadRequest
	}{
		{"step forward", PageChange{From: 2, To: 3, Direction: DirectionNext}, PreloadRequest{Index: 3, Direction: DirectionNext}},
		{"step back", PageChange{From: 3, To: 2, Direction: DirectionPrev}, PreloadRequest{Index: 2, Direction: DirectionPrev}},
		{"seek", PageChange{From: 0, To: 7, Direction: DirectionNext}, PreloadRequest{Index: 7, Direction: DirectionNext, Jump: true}},
		{"wrap", PageChange{From: 9, To: 0, Direction: DirectionNext}, PreloadRequest{Index: 0, Direction: DirectionNext, Jump: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mc.OnPageChange(tt.change)
			require.Len(t, mc.requests, 1, "older requests are replaced")
			assert.Equal(t, tt.want, <-mc.requests)
		})
	}
}

func TestMediaCacheStartPreloadReplacesPending(t *testing.T) {
	mc, _ := newIdleCache(imageItems(10), 4)
	mc.StartPreload(1, DirectionNext, false)
	mc.StartPreload(2, DirectionNext, false)
	mc.StartPreload(3, DirectionPrev, false)

	require.Len(t, mc.requests, 1)
	assert.Equal(t, 3, (<-mc.requests).Index)
}

func TestMediaCacheStartPreloadDisabledOrStopped(t *testing.T) {
	mc, _ := newIdleCache(imageItems(4), 2)

	mc.SetEnabled(false)
	assert.False(t, mc.IsEnabled())
	mc.StartPreload(1, DirectionNext, false)
	assert.Empty(t, mc.requests)

	mc.SetEnabled(true)
	mc.Stop()
	mc.Stop()
	mc.StartPreload(1, DirectionNext, false)
	assert.Empty(t, mc.requests)
}

func TestMediaCacheProcessPreloadRequest(t *testing.T) {
	items := testItems(MediaImage, MediaImage, MediaVideo, MediaImage, MediaImage)
	mc, calls := newIdleCache(items, 3)

	mc.processPreloadRequest(PreloadRequest{Index: 0, Direction: DirectionNext})
	assert.Equal(t, 2, *calls, "video pages are not decoded")

	stats := mc.Stats()
	assert.Equal(t, 2, stats.LoadedCount)
	assert.Zero(t, stats.FailedCount)
	assert.Equal(t, DirectionNext, stats.LastDirection)

	// already cached
	mc.processPreloadRequest(PreloadRequest{Index: 0, Direction: DirectionNext})
	assert.Equal(t, 2, *calls)

	mc.processPreloadRequest(PreloadRequest{Index: 1, Direction: DirectionPrev})
	assert.Equal(t, 3, *calls)
	assert.Equal(t, DirectionPrev, mc.Stats().LastDirection)
}

func TestMediaCacheImage(t *testing.T) {
	items := testItems(MediaImage, MediaVideo)
	mc, calls := newIdleCache(items, 2)

	assert.Nil(t, mc.Image(-1))
	assert.Nil(t, mc.Image(2))
	assert.Nil(t, mc.Image(1), "videos have no still image")
	assert.Zero(t, *calls)

	mc.Image(0)
	mc.Image(0)
	assert.Equal(t, 1, *calls, "second lookup is a cache hit")
}

func writePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestReadMediaBytes(t *testing.T) {
	dir := t.TempDir()
	data := writePNG(t)

	plain := filepath.Join(dir, "a.png")
	require.NoError(t, os.WriteFile(plain, data, 0644))
	archive := filepath.Join(dir, "pics.zip")
	writeZip(t, archive, map[string][]byte{"in/b.png": data})

	got, err := readMediaBytes(MediaSource{Path: plain})
	require.NoError(t, err)
	assert.Equal(t, data, got)

	got, err = readMediaBytes(archiveSource(archive, "in/b.png"))
	require.NoError(t, err)
	assert.Equal(t, data, got)

	_, err = readMediaBytes(archiveSource(archive, "in/missing.png"))
	assert.Error(t, err)

	_, err = readMediaBytes(archiveSource(filepath.Join(dir, "pics.tar"), "b.png"))
	assert.Error(t, err)

	_, err = readMediaBytes(MediaSource{Path: filepath.Join(dir, "gone.png")})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestDecodeMedia(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	require.NoError(t, os.WriteFile(good, writePNG(t), 0644))
	bad := filepath.Join(dir, "bad.jpg")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))

	img, err := decodeMedia(MediaSource{Path: good})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	_, err = decodeMedia(MediaSource{Path: bad})
	assert.ErrorContains(t, err, "decoding")
}
