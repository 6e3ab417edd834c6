package main

// Control layout constants (pixels)
const (
	controlMargin   = 16.0
	arrowButtonSize = 56.0
	topButtonSize   = 44.0
	dotSize         = 12.0
	dotSpacing      = 22.0
	dotsBottomInset = 48.0
	maxDots         = 40 // more pages than this and the dots row is hidden
)

// ControlKind identifies an on-screen control
type ControlKind int

const (
	ControlPrev ControlKind = iota
	ControlNext
	ControlClose
	ControlAutoplay
	ControlDot
)

// HitRect is an axis-aligned rectangular hit area in screen coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ControlButton is one clickable control
type ControlButton struct {
	Kind   ControlKind
	Rect   HitRect
	Intent Intent
	Page   int // ControlDot only
}

// ControlLayout positions the viewer's buttons for the current screen size
type ControlLayout struct {
	width, height float64
	pages         int
	buttons       []ControlButton
}

// NewControlLayout creates a layout for an album of the given size
func NewControlLayout(pages int) *ControlLayout {
	return &ControlLayout{pages: pages}
}

// Resize recomputes button positions when the screen size changes
func (l *ControlLayout) Resize(width, height int) {
	w, h := float64(width), float64(height)
	if w == l.width && h == l.height && l.buttons != nil {
		return
	}
	l.width, l.height = w, h
	l.buttons = l.buttons[:0]

	midY := h/2 - arrowButtonSize/2
	l.buttons = append(l.buttons,
		ControlButton{
			Kind:   ControlPrev,
			Rect:   HitRect{X: controlMargin, Y: midY, Width: arrowButtonSize, Height: arrowButtonSize},
			Intent: Intent{Kind: IntentRetreat},
		},
		ControlButton{
			Kind:   ControlNext,
			Rect:   HitRect{X: w - controlMargin - arrowButtonSize, Y: midY, Width: arrowButtonSize, Height: arrowButtonSize},
			Intent: Intent{Kind: IntentAdvance},
		},
		ControlButton{
			Kind:   ControlClose,
			Rect:   HitRect{X: w - controlMargin - topButtonSize, Y: controlMargin, Width: topButtonSize, Height: topButtonSize},
			Intent: Intent{Kind: IntentClose},
		},
		ControlButton{
			Kind:   ControlAutoplay,
			Rect:   HitRect{X: controlMargin, Y: controlMargin, Width: topButtonSize * 2, Height: topButtonSize},
			Intent: Intent{Kind: IntentToggleAutoplay},
		},
	)

	if l.pages <= 1 || l.pages > maxDots {
		return
	}
	rowWidth := float64(l.pages-1)*dotSpacing + dotSize
	startX := w/2 - rowWidth/2
	y := h - dotsBottomInset
	for i := 0; i < l.pages; i++ {
		l.buttons = append(l.buttons, ControlButton{
			Kind:   ControlDot,
			Rect:   HitRect{X: startX + float64(i)*dotSpacing, Y: y, Width: dotSize, Height: dotSize},
			Intent: JumpIntent(i),
			Page:   i,
		})
	}
}

// Buttons returns the laid out controls
func (l *ControlLayout) Buttons() []ControlButton {
	return l.buttons
}

// HitTest returns the intent of the control under (x, y)
func (l *ControlLayout) HitTest(x, y float64) (Intent, bool) {
	for _, b := range l.buttons {
		if b.Rect.Contains(x, y) {
			return b.Intent, true
		}
	}
	return Intent{}, false
}
