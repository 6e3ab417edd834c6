package main

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// FlipAnimation turns the pager's transition state into an eased progress
// value for drawing. It only follows the pager; the flip commits on the
// scheduler whether or not a frame is ever drawn.
type FlipAnimation struct {
	tween    *gween.Tween
	started  time.Time
	last     time.Time
	progress float64
	easing   ease.TweenFunc
}

// NewFlipAnimation creates an idle animation
func NewFlipAnimation() *FlipAnimation {
	return &FlipAnimation{easing: ease.InOutCubic}
}

// Update advances the animation to now for the given transition
func (f *FlipAnimation) Update(state TransitionState, duration time.Duration, now time.Time) {
	if state.IsIdle() {
		f.tween = nil
		f.progress = 0
		return
	}

	if f.tween == nil || !state.Started.Equal(f.started) {
		f.started = state.Started
		f.last = state.Started
		secs := float32(duration.Seconds())
		if secs <= 0 {
			f.tween = nil
			f.progress = 1
			return
		}
		f.tween = gween.New(0, 1, secs, f.easing)
	}

	dt := now.Sub(f.last)
	if dt < 0 {
		dt = 0
	}
	f.last = now
	val, _ := f.tween.Update(float32(dt.Seconds()))
	f.progress = float64(val)
}

// Progress is 0 when a flip starts and 1 when it lands
func (f *FlipAnimation) Progress() float64 {
	return f.progress
}

