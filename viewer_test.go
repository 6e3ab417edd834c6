package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer(t *testing.T, items []MediaItem, tweak func(c *Config)) *Viewer {
	t.Helper()
	cfg := defaultConfig()
	cfg.PreloadEnabled = false
	cfg.FlipDurationMs = int(testFlip / time.Millisecond)
	cfg.AutoplayIntervalMs = int(testInterval / time.Millisecond)
	if tweak != nil {
		tweak(&cfg)
	}
	status := ConfigLoadResult{Config: cfg, Status: "OK"}
	return NewViewer(Album{Title: "Trip", Items: items}, status, filepath.Join(t.TempDir(), "album.json"))
}

// keyScript presses one key per poll
type keyScript struct {
	keys []string
}

func (s *keyScript) Poll(m *Multiplexer) {
	if len(s.keys) == 0 {
		return
	}
	key := s.keys[0]
	s.keys = s.keys[1:]
	if key != "" {
		m.KeyDown(key, Modifiers{})
	}
}

func TestViewerKeyboardNavigation(t *testing.T) {
	v := newTestViewer(t, imageItems(3), nil)
	v.Open(t0, &keyScript{keys: []string{"ArrowRight", "ArrowRight", ""}})
	defer v.Close()

	assert.True(t, v.IsOpen())
	assert.Equal(t, 0, v.GetCurrentIndex())
	assert.Equal(t, 3, v.GetTotalPagesCount())

	v.tick(t0)
	require.False(t, v.GetTransition().IsIdle())

	// the second press lands mid-flip and is dropped
	v.tick(t0.Add(testFlip / 2))
	assert.InDelta(t, 0.5, v.GetFlipProgress(), 0.01)

	v.tick(t0.Add(testFlip))
	assert.True(t, v.GetTransition().IsIdle())
	assert.Equal(t, 1, v.GetCurrentIndex())
	assert.Zero(t, v.GetFlipProgress())
}

func TestViewerSlideshowWaitsOnVideo(t *testing.T) {
	items := testItems(MediaImage, MediaVideo, MediaImage)
	v := newTestViewer(t, items, func(c *Config) {
		c.Slideshow = true
		c.VideoPlaceholderMs = 2000
	})
	v.Open(t0)
	defer v.Close()

	require.True(t, v.IsAutoplayEnabled())

	v.tick(t0.Add(testInterval))
	landed := t0.Add(testInterval + testFlip)
	v.tick(landed)
	require.Equal(t, 1, v.GetCurrentIndex())
	assert.True(t, v.IsAwaitingPlayback())

	v.tick(landed.Add(time.Second))
	assert.InDelta(t, 0.5, v.GetPlaybackProgress(), 0.001)
	assert.Equal(t, 1, v.GetCurrentIndex(), "the interval does not apply to videos")

	v.tick(landed.Add(2 * time.Second))
	assert.False(t, v.IsAwaitingPlayback())
	assert.Zero(t, v.GetPlaybackProgress())
	assert.False(t, v.GetTransition().IsIdle())

	v.tick(landed.Add(2*time.Second + testFlip))
	assert.Equal(t, 2, v.GetCurrentIndex())
}

func TestViewerManualNavigationStopsPlayback(t *testing.T) {
	items := testItems(MediaVideo, MediaImage)
	v := newTestViewer(t, items, func(c *Config) { c.Slideshow = true })
	keys := &keyScript{}
	v.Open(t0, keys)
	defer v.Close()

	v.tick(t0)
	require.True(t, v.IsAwaitingPlayback())
	require.NotZero(t, v.playbackTask)

	keys.keys = []string{"ArrowRight"}
	v.tick(t0.Add(time.Second))
	v.tick(t0.Add(time.Second + testFlip))
	assert.Equal(t, 1, v.GetCurrentIndex())
	assert.Zero(t, v.playbackTask)
	assert.False(t, v.IsAwaitingPlayback())
	assert.Equal(t, 1, v.sched.Pending(), "only the image interval is armed")
}

func TestViewerEscapeRequestsClose(t *testing.T) {
	v := newTestViewer(t, imageItems(2), nil)
	v.Open(t0, &keyScript{keys: []string{"Escape"}})
	defer v.Close()

	v.tick(t0)
	assert.True(t, v.closeRequested)
}

func TestViewerCloseCancelsEverything(t *testing.T) {
	v := newTestViewer(t, imageItems(3), func(c *Config) { c.Slideshow = true })
	v.Open(t0, &keyScript{keys: []string{"ArrowRight"}})

	v.tick(t0)
	require.False(t, v.GetTransition().IsIdle())

	v.Close()
	assert.False(t, v.IsOpen())
	assert.Zero(t, v.sched.Pending())
	assert.False(t, v.mux.Active())
	assert.False(t, v.IsAutoplayEnabled())

	// late frames do nothing
	v.tick(t0.Add(time.Minute))
	assert.Equal(t, 0, v.GetCurrentIndex())

	v.Close()
}

func TestViewerReopenStartsAtFirstPage(t *testing.T) {
	v := newTestViewer(t, imageItems(3), nil)
	v.Open(t0, &keyScript{keys: []string{"End"}})
	v.tick(t0)
	v.tick(t0.Add(testFlip))
	require.Equal(t, 2, v.GetCurrentIndex())
	v.Close()

	later := t0.Add(time.Hour)
	v.Open(later)
	defer v.Close()
	assert.Equal(t, 0, v.GetCurrentIndex())
	assert.True(t, v.GetTransition().IsIdle())
}

func TestViewerOverlayMessage(t *testing.T) {
	v := newTestViewer(t, imageItems(2), nil)
	v.Open(t0, &keyScript{keys: []string{"Space", ""}})
	defer v.Close()

	v.tick(t0)
	assert.Equal(t, "Slideshow: playing", v.GetOverlayMessage())
	assert.Equal(t, t0, v.GetOverlayMessageTime())

	v.tick(t0.Add(time.Second))
	assert.NotEmpty(t, v.GetOverlayMessage())

	v.tick(t0.Add(overlayMessageDuration))
	assert.Empty(t, v.GetOverlayMessage())
}

func TestViewerToggleInfo(t *testing.T) {
	v := newTestViewer(t, imageItems(2), func(c *Config) { c.ShowInfo = false })
	v.Open(t0, &keyScript{keys: []string{"KeyI"}})
	defer v.Close()

	assert.False(t, v.IsShowingInfo())
	v.tick(t0)
	assert.True(t, v.IsShowingInfo())
}

func TestViewerApplyConfig(t *testing.T) {
	v := newTestViewer(t, imageItems(3), nil)
	v.Open(t0)
	defer v.Close()

	cfg := defaultConfig()
	cfg.FlipDurationMs = 100
	cfg.AutoplayIntervalMs = 2000
	cfg.SwipeThresholdPx = 120
	cfg.WindowWidth = 640
	cfg.Keybindings = map[string][]string{"next": {"KeyJ"}}
	v.applyConfig(ConfigLoadResult{Config: cfg, Status: "OK"})

	assert.Equal(t, 100*time.Millisecond, v.pager.FlipDuration())
	assert.Equal(t, 2*time.Second, v.autoplay.Interval())
	assert.Equal(t, 120.0, v.gesture.Threshold())
	assert.Equal(t, defaultWidth, v.config.WindowWidth, "window geometry is not reloaded")
	assert.Equal(t, "Config: OK", v.GetOverlayMessage())

	action, ok := v.keys.ActionForKey("KeyJ", Modifiers{})
	assert.True(t, ok)
	assert.Equal(t, "next", action)
}

func TestViewerDragOffset(t *testing.T) {
	v := newTestViewer(t, imageItems(3), nil)
	v.Open(t0)
	defer v.Close()

	v.mux.PointerBegin(300, 200)
	v.mux.PointerMove(270, 200)
	assert.Equal(t, -30.0, v.GetDragOffset())

	v.mux.PointerEnd()
	assert.Zero(t, v.GetDragOffset())
}

func TestViewerEmptyAlbum(t *testing.T) {
	v := newTestViewer(t, nil, func(c *Config) { c.Slideshow = true })
	v.Open(t0, &keyScript{keys: []string{"ArrowRight"}})
	defer v.Close()

	v.tick(t0)
	v.tick(t0.Add(testInterval))
	assert.Equal(t, 0, v.GetTotalPagesCount())
	assert.True(t, v.GetTransition().IsIdle())
	assert.Zero(t, v.sched.Pending())
}

func TestViewerApplyConfigKeepsOverrides(t *testing.T) {
	v := newTestViewer(t, imageItems(3), nil)
	v.SetOverrides(Args{Interval: 1500}.applyTo)
	v.Open(t0)
	defer v.Close()

	cfg := defaultConfig()
	cfg.AutoplayIntervalMs = 9000
	v.applyConfig(ConfigLoadResult{Config: cfg, Status: "OK"})
	assert.Equal(t, 1500*time.Millisecond, v.autoplay.Interval())
}
