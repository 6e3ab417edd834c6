package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// currentModifiers reads the modifier keys held this frame
func currentModifiers() Modifiers {
	return Modifiers{
		Shift: ebiten.IsKeyPressed(ebiten.KeyShift),
		Ctrl:  ebiten.IsKeyPressed(ebiten.KeyControl),
		Alt:   ebiten.IsKeyPressed(ebiten.KeyAlt),
	}
}

// KeyboardSource reports keys pressed this frame by their binding names
type KeyboardSource struct {
	names   map[ebiten.Key]string
	pressed []ebiten.Key
}

// NewKeyboardSource creates a KeyboardSource for the keys km understands
func NewKeyboardSource(km *KeybindingManager) *KeyboardSource {
	names := make(map[ebiten.Key]string)
	for name, key := range km.KeyNames() {
		names[key] = name
	}
	return &KeyboardSource{names: names}
}

func (s *KeyboardSource) Poll(m *Multiplexer) {
	s.pressed = inpututil.AppendJustPressedKeys(s.pressed[:0])
	if len(s.pressed) == 0 {
		return
	}
	mods := currentModifiers()
	for _, key := range s.pressed {
		if name, ok := s.names[key]; ok {
			m.KeyDown(name, mods)
		}
	}
}

// TouchSource follows the first finger down as a swipe gesture
type TouchSource struct {
	tracking bool
	id       ebiten.TouchID
	ids      []ebiten.TouchID
}

// NewTouchSource creates a TouchSource
func NewTouchSource() *TouchSource {
	return &TouchSource{}
}

func (s *TouchSource) Poll(m *Multiplexer) {
	if s.tracking {
		if inpututil.IsTouchJustReleased(s.id) {
			x, y := inpututil.TouchPositionInPreviousTick(s.id)
			m.PointerMove(float64(x), float64(y))
			m.PointerEnd()
			s.tracking = false
		} else {
			x, y := ebiten.TouchPosition(s.id)
			m.PointerMove(float64(x), float64(y))
		}
		return
	}

	s.ids = inpututil.AppendJustPressedTouchIDs(s.ids[:0])
	if len(s.ids) == 0 {
		return
	}
	s.id = s.ids[0]
	s.tracking = true
	x, y := ebiten.TouchPosition(s.id)
	m.PointerBegin(float64(x), float64(y))
}

// MouseSource reports bound buttons, wheel motion and left-button drags
type MouseSource struct {
	mouse    *MousebindingManager
	buttons  map[ebiten.MouseButton]string
	dragging bool
}

// NewMouseSource creates a MouseSource for the buttons mm understands
func NewMouseSource(mm *MousebindingManager) *MouseSource {
	buttons := make(map[ebiten.MouseButton]string)
	for name, button := range mm.ButtonNames() {
		buttons[button] = name
	}
	return &MouseSource{mouse: mm, buttons: buttons}
}

func (s *MouseSource) Poll(m *Multiplexer) {
	settings := s.mouse.GetSettings()
	if !settings.EnableMouse {
		return
	}

	mods := currentModifiers()
	now := time.Now()
	for button, name := range s.buttons {
		if inpututil.IsMouseButtonJustPressed(button) {
			m.MouseButton(name, mods, now)
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		m.Wheel(wy, mods)
	}

	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)

	if !settings.EnableDragSwipe {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			m.Click(x, y)
		}
		return
	}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.dragging = true
		m.PointerBegin(x, y)
	case s.dragging && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		s.dragging = false
		m.PointerMove(x, y)
		m.PointerEnd()
	case s.dragging:
		m.PointerMove(x, y)
	}
}
