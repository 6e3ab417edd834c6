package main

import (
	"time"

	"github.com/rs/zerolog"
)

// InputSource is a device polled once per frame while the viewer is open
type InputSource interface {
	Poll(m *Multiplexer)
}

// ViewerHost receives the intents that are about the viewer rather than the page
type ViewerHost interface {
	RequestClose()
	ToggleFullscreen()
	ToggleInfo()
	ShowOverlayMessage(message string)
}

// ControlHitTester maps a click position to an on-screen control
type ControlHitTester interface {
	HitTest(x, y float64) (Intent, bool)
}

// Multiplexer funnels keyboard, pointer, button and wheel input into one
// dispatch function. Nothing reaches the pager except through Dispatch, so
// every source is subject to the same guard.
type Multiplexer struct {
	pager    *Pager
	autoplay *Autoplay
	host     ViewerHost
	keys     *KeybindingManager
	mouse    *MousebindingManager
	gesture  *GestureDecoder
	controls ControlHitTester

	sources []InputSource
	active  bool
	log     zerolog.Logger
}

// NewMultiplexer creates an inactive Multiplexer
func NewMultiplexer(pager *Pager, autoplay *Autoplay, host ViewerHost, keys *KeybindingManager, mouse *MousebindingManager, gesture *GestureDecoder) *Multiplexer {
	return &Multiplexer{
		pager:    pager,
		autoplay: autoplay,
		host:     host,
		keys:     keys,
		mouse:    mouse,
		gesture:  gesture,
		log:      componentLogger("input"),
	}
}

// SetControls installs the hit tester for on-screen buttons
func (m *Multiplexer) SetControls(controls ControlHitTester) {
	m.controls = controls
}

// Activate registers the polled sources and starts accepting input
func (m *Multiplexer) Activate(sources ...InputSource) {
	m.sources = append([]InputSource(nil), sources...)
	m.active = true
	m.log.Debug().Int("sources", len(m.sources)).Msg("input activated")
}

// Deactivate deregisters every source and drops a gesture in progress.
// Until the next Activate all entry points are ignored.
func (m *Multiplexer) Deactivate() {
	if !m.active {
		return
	}
	m.active = false
	m.sources = nil
	m.gesture.Cancel()
	m.log.Debug().Msg("input deactivated")
}

// Active reports whether input is being accepted
func (m *Multiplexer) Active() bool {
	return m.active
}

// Poll lets every registered source report input for this frame
func (m *Multiplexer) Poll() {
	for _, src := range m.sources {
		if !m.active {
			return
		}
		src.Poll(m)
	}
}

// Dispatch applies an intent and reports whether it had an effect
func (m *Multiplexer) Dispatch(intent Intent) bool {
	if !m.active {
		return false
	}

	switch intent.Kind {
	case IntentAdvance:
		return m.pager.Advance()
	case IntentRetreat:
		return m.pager.Retreat()
	case IntentJumpTo:
		return m.pager.JumpTo(intent.Index)
	case IntentFirst:
		return m.pager.JumpTo(0)
	case IntentLast:
		return m.pager.JumpTo(m.pager.Total() - 1)
	case IntentRestart:
		if m.pager.Total() == 0 {
			return false
		}
		m.pager.Reset()
		m.autoplay.Rearm()
		return true
	case IntentToggleAutoplay:
		if m.autoplay.Toggle() {
			m.host.ShowOverlayMessage("Slideshow: playing")
		} else {
			m.host.ShowOverlayMessage("Slideshow: paused")
		}
		return true
	case IntentClose:
		m.host.RequestClose()
		return true
	case IntentToggleFullscreen:
		m.host.ToggleFullscreen()
		return true
	case IntentToggleInfo:
		m.host.ToggleInfo()
		return true
	default:
		return false
	}
}

// dispatchAction resolves a bound action name and dispatches it
func (m *Multiplexer) dispatchAction(action string) bool {
	intent, ok := globalActionExecutor.IntentFor(action)
	if !ok {
		return false
	}
	m.log.Debug().Str("action", action).Stringer("intent", intent.Kind).Msg("action")
	return m.Dispatch(intent)
}

// KeyDown handles a key press by name, e.g. "ArrowLeft"
func (m *Multiplexer) KeyDown(key string, mods Modifiers) bool {
	if !m.active {
		return false
	}
	action, ok := m.keys.ActionForKey(key, mods)
	if !ok {
		return false
	}
	return m.dispatchAction(action)
}

// MouseButton handles a mouse button press by name, e.g. "MiddleClick"
func (m *Multiplexer) MouseButton(button string, mods Modifiers, now time.Time) bool {
	if !m.active {
		return false
	}
	action, ok := m.mouse.ActionForButton(button, mods, now)
	if !ok {
		return false
	}
	return m.dispatchAction(action)
}

// Wheel handles vertical wheel motion
func (m *Multiplexer) Wheel(dy float64, mods Modifiers) bool {
	if !m.active {
		return false
	}
	action, ok := m.mouse.ActionForWheel(dy, mods)
	if !ok {
		return false
	}
	return m.dispatchAction(action)
}

// PointerBegin starts a touch or drag gesture
func (m *Multiplexer) PointerBegin(x, y float64) {
	if !m.active {
		return
	}
	m.gesture.Begin(x, y)
}

// PointerMove updates the gesture in progress
func (m *Multiplexer) PointerMove(x, y float64) {
	if !m.active {
		return
	}
	m.gesture.Move(x, y)
}

// PointerEnd finishes the gesture. A swipe navigates; a tap is treated as a
// click on whatever control is under it.
func (m *Multiplexer) PointerEnd() bool {
	if !m.active {
		return false
	}
	outcome := m.gesture.End()
	if outcome.Tap {
		return m.Click(outcome.X, outcome.Y)
	}
	if outcome.Intent.Kind == IntentNone {
		return false
	}
	return m.Dispatch(outcome.Intent)
}

// PointerCancel abandons the gesture without producing an intent
func (m *Multiplexer) PointerCancel() {
	m.gesture.Cancel()
}

// Click presses the on-screen control at (x, y), if any
func (m *Multiplexer) Click(x, y float64) bool {
	if !m.active || m.controls == nil {
		return false
	}
	intent, ok := m.controls.HitTest(x, y)
	if !ok {
		return false
	}
	return m.Dispatch(intent)
}
