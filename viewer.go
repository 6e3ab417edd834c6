package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
)

// Viewer is the ebiten game hosting one album. Everything that touches
// navigation state runs inside Update, so the controller is single threaded;
// the config watcher and the preload worker talk to it only through channels
// and the goroutine-safe cache.
type Viewer struct {
	album        Album
	config       Config
	configPath   string
	configStatus ConfigLoadResult
	watcher      *ConfigWatcher
	overrides    func(*Config) error

	sched    *Scheduler
	pager    *Pager
	autoplay *Autoplay
	gesture  *GestureDecoder
	keys     *KeybindingManager
	mouse    *MousebindingManager
	mux      *Multiplexer
	controls *ControlLayout
	cache    *MediaCache
	flip     *FlipAnimation
	renderer *Renderer

	open           bool
	closeRequested bool
	fullscreen     bool
	savedWinW      int
	savedWinH      int
	showInfo       bool

	overlayMessage     string
	overlayMessageTime time.Time

	// simulated playback of the video page the slideshow waits on
	playbackTask    TaskID
	playbackID      string
	playbackStarted time.Time

	lastSnapshot  *ViewStateSnapshot
	width, height int
	log           zerolog.Logger
}

// NewViewer creates a closed viewer for album
func NewViewer(album Album, status ConfigLoadResult, configPath string) *Viewer {
	config := status.Config
	return &Viewer{
		album:        album,
		config:       config,
		configPath:   configPath,
		configStatus: status,
		sched:        NewScheduler(time.Now()),
		gesture:      NewGestureDecoder(config.SwipeThresholdPx),
		keys:         NewKeybindingManager(config.Keybindings),
		mouse:        NewMousebindingManager(config.Mousebindings, config.MouseSettings),
		controls:     NewControlLayout(len(album.Items)),
		flip:         NewFlipAnimation(),
		fullscreen:   config.Fullscreen,
		savedWinW:    config.WindowWidth,
		savedWinH:    config.WindowHeight,
		showInfo:     config.ShowInfo,
		log:          componentLogger("viewer"),
	}
}

// SetWatcher hands the viewer a config watcher to drain and close
func (v *Viewer) SetWatcher(w *ConfigWatcher) {
	v.watcher = w
}

// SetOverrides installs command line overrides that reloaded configs keep
func (v *Viewer) SetOverrides(fn func(*Config) error) {
	v.overrides = fn
}

// Open builds a fresh navigation controller starting at page 0 and starts
// accepting input from sources
func (v *Viewer) Open(now time.Time, sources ...InputSource) {
	if v.open {
		return
	}

	v.sched = NewScheduler(now)

	ctl := v.config.Controller()
	v.pager = NewPager(v.album.Items, ctl.FlipDuration, v.sched)
	v.autoplay = NewAutoplay(v.pager, v.sched, ctl.AutoplayInterval)
	v.cache = NewMediaCache(v.album.Items, v.config.CacheSize, v.config.PreloadCount, v.config.PreloadEnabled)
	v.pager.OnCommit(v.cache.OnPageChange)
	v.pager.OnCommit(v.onPageChange)

	v.mux = NewMultiplexer(v.pager, v.autoplay, v, v.keys, v.mouse, v.gesture)
	v.mux.SetControls(v.controls)
	v.mux.Activate(sources...)

	v.open = true
	v.closeRequested = false
	v.lastSnapshot = nil

	if len(v.album.Items) > 0 {
		v.cache.StartPreload(0, DirectionNext, false)
	}
	if v.config.Slideshow {
		v.autoplay.Enable()
	}
	v.log.Info().Str("album", v.album.Title).Int("pages", len(v.album.Items)).Msg("viewer opened")
}

// Close detaches input before cancelling timers and closing the pager.
// Nothing scheduled before Close can fire afterwards.
func (v *Viewer) Close() {
	if !v.open {
		return
	}
	v.open = false

	v.mux.Deactivate()
	v.autoplay.Disable()
	v.stopPlayback()
	v.pager.Close()
	v.sched.Clear()
	v.cache.Stop()

	if v.watcher != nil {
		if err := v.watcher.Close(); err != nil {
			v.log.Warn().Err(err).Msg("closing config watcher")
		}
		v.watcher = nil
	}
	v.log.Info().Msg("viewer closed")
}

// IsOpen reports whether the viewer is accepting input
func (v *Viewer) IsOpen() bool {
	return v.open
}

func (v *Viewer) onPageChange(change PageChange) {
	v.stopPlayback()
	v.log.Debug().Int("page", change.To+1).Int("total", v.pager.Total()).Msg("page")
}

// tick runs one frame of controller work at now
func (v *Viewer) tick(now time.Time) {
	if !v.open {
		return
	}

	v.sched.Advance(now)
	v.drainConfigUpdates()
	v.syncPlayback(now)
	v.mux.Poll()
	v.flip.Update(v.pager.Transition(), v.pager.FlipDuration(), now)

	if v.overlayMessage != "" && now.Sub(v.overlayMessageTime) >= overlayMessageDuration {
		v.overlayMessage = ""
	}
}

// syncPlayback starts the stand-in playback timer when the slideshow begins
// waiting on a video page
func (v *Viewer) syncPlayback(now time.Time) {
	id := v.autoplay.AwaitingPlayback()
	if id == "" {
		v.stopPlayback()
		return
	}
	if v.playbackTask != 0 && v.playbackID == id {
		return
	}

	v.stopPlayback()
	v.playbackID = id
	v.playbackStarted = now
	v.playbackTask = v.sched.After(v.config.VideoPlaceholderDuration(), func() {
		v.playbackTask = 0
		v.autoplay.PlaybackEnded(id)
	})
	debugLog("video playback started: %s", id)
}

func (v *Viewer) stopPlayback() {
	v.sched.Cancel(v.playbackTask)
	v.playbackTask = 0
	v.playbackID = ""
}

func (v *Viewer) drainConfigUpdates() {
	if v.watcher == nil {
		return
	}
	select {
	case result := <-v.watcher.Updates():
		v.applyConfig(result)
	default:
	}
}

// applyConfig takes over a reloaded config without disturbing navigation
func (v *Viewer) applyConfig(result ConfigLoadResult) {
	config := result.Config
	if v.overrides != nil {
		if err := v.overrides(&config); err != nil {
			v.log.Warn().Err(err).Msg("command line overrides no longer apply")
		}
	}
	// window geometry belongs to the running window
	config.WindowWidth, config.WindowHeight = v.config.WindowWidth, v.config.WindowHeight
	config.Fullscreen = v.config.Fullscreen

	ctl := config.Controller()
	v.pager.SetFlipDuration(ctl.FlipDuration)
	v.autoplay.SetInterval(ctl.AutoplayInterval)
	v.gesture.SetThreshold(ctl.SwipeThreshold)
	v.keys.UpdateKeybindings(config.Keybindings)
	v.mouse.UpdateMousebindings(config.Mousebindings)
	v.mouse.UpdateSettings(config.MouseSettings)
	v.cache.SetEnabled(config.PreloadEnabled)

	v.config = config
	v.configStatus = result
	v.ShowOverlayMessage("Config: " + result.Status)
}

// Update implements ebiten.Game
func (v *Viewer) Update() error {
	if !v.open {
		return ebiten.Termination
	}

	v.tick(time.Now())

	if v.closeRequested {
		v.saveCurrentWindowSize()
		v.Close()
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game
func (v *Viewer) Draw(screen *ebiten.Image) {
	if v.renderer == nil {
		r, err := NewRenderer(v)
		if err != nil {
			v.log.Error().Err(err).Msg("renderer unavailable")
			return
		}
		v.renderer = r
	}

	snapshot := NewViewStateSnapshot(v, v.width, v.height)
	if snapshot.Equals(v.lastSnapshot, time.Now()) {
		return
	}
	v.renderer.Draw(screen)
	v.lastSnapshot = snapshot
}

// Layout implements ebiten.Game
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	v.controls.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// saveCurrentWindowSize writes the window size back to the config file,
// leaving command line overrides out of it
func (v *Viewer) saveCurrentWindowSize() {
	w, h := v.savedWinW, v.savedWinH
	if !v.fullscreen {
		w, h = ebiten.WindowSize()
	}
	if w <= 0 || h <= 0 {
		return
	}

	onDisk := loadConfigFromPath(v.configPath)
	if onDisk.HasError {
		// don't clobber a file the user has to fix by hand
		return
	}
	onDisk.Config.WindowWidth, onDisk.Config.WindowHeight = w, h
	if err := saveConfigToPath(onDisk.Config, v.configPath); err != nil {
		v.log.Warn().Err(err).Msg("failed to save config")
	}
}

// ViewerHost implementation

// RequestClose closes the viewer at the end of the current frame
func (v *Viewer) RequestClose() {
	v.closeRequested = true
}

// ToggleFullscreen switches between windowed and fullscreen
func (v *Viewer) ToggleFullscreen() {
	v.fullscreen = !v.fullscreen
	if v.fullscreen {
		v.savedWinW, v.savedWinH = ebiten.WindowSize()
		ebiten.SetFullscreen(true)
		return
	}
	ebiten.SetFullscreen(false)
	if v.savedWinW > 0 && v.savedWinH > 0 {
		ebiten.SetWindowSize(v.savedWinW, v.savedWinH)
	}
}

// ToggleInfo shows or hides the page counter
func (v *Viewer) ToggleInfo() {
	v.showInfo = !v.showInfo
}

// ShowOverlayMessage displays message for a couple of seconds
func (v *Viewer) ShowOverlayMessage(message string) {
	v.overlayMessage = message
	v.overlayMessageTime = v.sched.Now()
}

// ViewState implementation

func (v *Viewer) AlbumTitle() string                { return v.album.Title }
func (v *Viewer) GetTotalPagesCount() int           { return len(v.album.Items) }
func (v *Viewer) GetCurrentIndex() int              { return v.pager.Index() }
func (v *Viewer) GetItem(idx int) (MediaItem, bool) { return v.pager.Item(idx) }
func (v *Viewer) GetImage(idx int) *ebiten.Image    { return v.cache.Image(idx) }
func (v *Viewer) GetTransition() TransitionState    { return v.pager.Transition() }
func (v *Viewer) GetFlipProgress() float64          { return v.flip.Progress() }
func (v *Viewer) IsAutoplayEnabled() bool           { return v.autoplay.Enabled() }
func (v *Viewer) IsAwaitingPlayback() bool          { return v.autoplay.AwaitingPlayback() != "" }
func (v *Viewer) IsFullscreen() bool                { return v.fullscreen }
func (v *Viewer) IsShowingInfo() bool               { return v.showInfo }
func (v *Viewer) GetControls() []ControlButton      { return v.controls.Buttons() }
func (v *Viewer) GetOverlayMessage() string         { return v.overlayMessage }
func (v *Viewer) GetOverlayMessageTime() time.Time  { return v.overlayMessageTime }
func (v *Viewer) GetFontSize() float64              { return v.config.FontSize }
func (v *Viewer) GetConfigStatus() ConfigLoadResult { return v.configStatus }
func (v *Viewer) GetSortMethodName() string         { return getSortMethodName(v.config.SortMethod) }

// GetDragOffset is the horizontal travel of a swipe in progress
func (v *Viewer) GetDragOffset() float64 {
	if !v.gesture.Active() || !v.pager.IsIdle() {
		return 0
	}
	return v.gesture.Displacement()
}

// GetPlaybackProgress is how far the stand-in playback has run, 0 to 1
func (v *Viewer) GetPlaybackProgress() float64 {
	if v.playbackTask == 0 {
		return 0
	}
	d := v.config.VideoPlaceholderDuration()
	if d <= 0 {
		return 1
	}
	p := float64(v.sched.Now().Sub(v.playbackStarted)) / float64(d)
	if p > 1 {
		return 1
	}
	return p
}
