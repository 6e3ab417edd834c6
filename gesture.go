package main

import "math"

// tapSlop is how far a pointer may wander and still count as a tap (pixels)
const tapSlop = 4.0

// GestureOutcome is what a finished gesture resolved to
type GestureOutcome struct {
	Intent Intent
	Tap    bool // pointer barely moved; X, Y is where it went down
	X, Y   float64
}

// GestureDecoder turns one pointer or touch stroke into a navigation intent.
// State lives for a single gesture: Begin wipes whatever the previous stroke
// left, so a stroke that never ended cleanly cannot leak into the next one.
type GestureDecoder struct {
	threshold float64

	active         bool
	startX, startY float64
	endX, endY     float64
}

// NewGestureDecoder creates a decoder with the given horizontal swipe threshold
func NewGestureDecoder(threshold float64) *GestureDecoder {
	if threshold <= 0 {
		threshold = defaultSwipeThreshold
	}
	return &GestureDecoder{threshold: threshold}
}

// SetThreshold changes the swipe threshold; applies from the next gesture
func (d *GestureDecoder) SetThreshold(threshold float64) {
	if threshold > 0 {
		d.threshold = threshold
	}
}

// Threshold returns the swipe threshold in pixels
func (d *GestureDecoder) Threshold() float64 {
	return d.threshold
}

// Begin starts a gesture at (x, y)
func (d *GestureDecoder) Begin(x, y float64) {
	d.active = true
	d.startX, d.startY = x, y
	d.endX, d.endY = x, y
}

// Move records the live pointer position
func (d *GestureDecoder) Move(x, y float64) {
	if !d.active {
		return
	}
	d.endX, d.endY = x, y
}

// End resolves the gesture. Swiping left (start right of end) by more than the
// threshold advances, swiping right retreats. An End without a Begin yields
// nothing.
func (d *GestureDecoder) End() GestureOutcome {
	if !d.active {
		return GestureOutcome{}
	}
	d.active = false

	distance := d.startX - d.endX
	switch {
	case distance > d.threshold:
		return GestureOutcome{Intent: Intent{Kind: IntentAdvance}}
	case distance < -d.threshold:
		return GestureOutcome{Intent: Intent{Kind: IntentRetreat}}
	}

	if math.Abs(distance) <= tapSlop && math.Abs(d.startY-d.endY) <= tapSlop {
		return GestureOutcome{Tap: true, X: d.startX, Y: d.startY}
	}
	return GestureOutcome{}
}

// Cancel drops a gesture that lost its pointer
func (d *GestureDecoder) Cancel() {
	d.active = false
}

// Active reports whether a gesture is in progress
func (d *GestureDecoder) Active() bool {
	return d.active
}

// Displacement returns the live horizontal drag (end - start); 0 when idle
func (d *GestureDecoder) Displacement() float64 {
	if !d.active {
		return 0
	}
	return d.endX - d.startX
}
