package main

import (
	"time"

	"github.com/rs/zerolog"
)

// Autoplay advances the pager on its own while enabled. Images are shown for
// a fixed interval; videos advance when their playback ends. Exactly one of
// the two triggers is armed at any time, always for the current page.
type Autoplay struct {
	pager    *Pager
	sched    *Scheduler
	interval time.Duration
	enabled  bool

	tick          TaskID // pending interval tick for an image page
	awaitingVideo string // ID of the video page whose end we wait for
	log           zerolog.Logger
}

// NewAutoplay creates a disabled Autoplay driving pager. It re-arms after
// every committed page change.
func NewAutoplay(pager *Pager, sched *Scheduler, interval time.Duration) *Autoplay {
	if interval <= 0 {
		interval = defaultAutoplayInterval
	}
	a := &Autoplay{
		pager:    pager,
		sched:    sched,
		interval: interval,
		log:      componentLogger("autoplay"),
	}
	pager.OnCommit(func(PageChange) {
		a.arm()
	})
	return a
}

// Enable starts the slideshow from the current page
func (a *Autoplay) Enable() {
	if a.enabled {
		return
	}
	a.enabled = true
	a.log.Debug().Dur("interval", a.interval).Msg("enabled")
	a.arm()
}

// Disable stops the slideshow and cancels whatever trigger is armed. Safe to
// call repeatedly or before Enable.
func (a *Autoplay) Disable() {
	a.disarm()
	if a.enabled {
		a.log.Debug().Msg("disabled")
	}
	a.enabled = false
}

// Toggle flips the enabled state and returns the new one
func (a *Autoplay) Toggle() bool {
	if a.enabled {
		a.Disable()
	} else {
		a.Enable()
	}
	return a.enabled
}

// Enabled reports whether the slideshow is running
func (a *Autoplay) Enabled() bool {
	return a.enabled
}

// SetInterval changes the image interval; takes effect at the next arm
func (a *Autoplay) SetInterval(interval time.Duration) {
	if interval > 0 {
		a.interval = interval
	}
}

// Interval returns the image display interval
func (a *Autoplay) Interval() time.Duration {
	return a.interval
}

// AwaitingPlayback returns the ID of the video whose end will advance the
// slideshow, or "" when an interval tick (or nothing) is armed
func (a *Autoplay) AwaitingPlayback() string {
	return a.awaitingVideo
}

// PlaybackEnded reports that the video with the given ID finished playing.
// Ignored unless the slideshow is waiting on exactly that video.
func (a *Autoplay) PlaybackEnded(id string) {
	if !a.enabled || a.awaitingVideo == "" || a.awaitingVideo != id {
		return
	}
	a.awaitingVideo = ""
	a.step()
}

// Rearm restarts the trigger for the current page, e.g. after a reset
func (a *Autoplay) Rearm() {
	a.arm()
}

func (a *Autoplay) arm() {
	a.disarm()
	if !a.enabled || a.pager.Closed() {
		return
	}

	item, ok := a.pager.Current()
	if !ok {
		return
	}
	if item.IsVideo() {
		a.awaitingVideo = item.ID
		return
	}
	a.tick = a.sched.After(a.interval, a.onTick)
}

func (a *Autoplay) disarm() {
	a.sched.Cancel(a.tick)
	a.tick = 0
	a.awaitingVideo = ""
}

func (a *Autoplay) onTick() {
	a.tick = 0
	a.step()
}

// step moves the slideshow one page, looping past the end
func (a *Autoplay) step() {
	if !a.enabled {
		return
	}

	var accepted bool
	if a.pager.AtLast() {
		accepted = a.pager.WrapToFirst()
	} else {
		accepted = a.pager.Advance()
	}
	if accepted {
		// the commit re-arms
		return
	}

	// A flip started elsewhere will re-arm on commit. Otherwise nothing will
	// (a one-page album), so keep ticking.
	if a.pager.IsIdle() {
		a.arm()
	}
}
