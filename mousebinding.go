package main

import (
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// MouseSettings contains mouse-specific configuration
type MouseSettings struct {
	WheelSensitivity float64 `json:"wheel_sensitivity"`
	DoubleClickTime  int     `json:"double_click_time"` // milliseconds
	EnableMouse      bool    `json:"enable_mouse"`
	WheelInverted    bool    `json:"wheel_inverted"`
	EnableDragSwipe  bool    `json:"enable_drag_swipe"` // Treat left-button drags as swipes
}

// GetDefaultMouseSettings returns the default mouse settings
func GetDefaultMouseSettings() MouseSettings {
	return MouseSettings{
		WheelSensitivity: 1.0,
		DoubleClickTime:  300, // milliseconds
		EnableMouse:      true,
		WheelInverted:    false,
		EnableDragSwipe:  true,
	}
}

// DoubleClickTracker tracks double-click state
type DoubleClickTracker struct {
	lastClickTime   time.Time
	lastClickButton string
	clickCount      int
}

// MouseCombination represents a mouse action with optional modifiers
type MouseCombination struct {
	Button        string
	IsWheel       bool
	WheelDeltaY   float64
	IsDoubleClick bool
	Modifiers
}

// MousebindingManager resolves mouse buttons and wheel motion to bound actions
type MousebindingManager struct {
	mousebindings      map[string][]string
	mouseMapping       map[string]ebiten.MouseButton
	settings           MouseSettings
	doubleClickTracker DoubleClickTracker
	combos             map[MouseCombination]string
}

// NewMousebindingManager creates a new MousebindingManager
func NewMousebindingManager(mousebindings map[string][]string, settings MouseSettings) *MousebindingManager {
	mm := &MousebindingManager{
		mouseMapping: getMouseMapping(),
		settings:     settings,
	}
	mm.UpdateMousebindings(mousebindings)
	return mm
}

// getMouseMapping returns a mapping from string mouse actions to Ebiten mouse buttons
func getMouseMapping() map[string]ebiten.MouseButton {
	return map[string]ebiten.MouseButton{
		"LeftClick":   ebiten.MouseButtonLeft,
		"RightClick":  ebiten.MouseButtonRight,
		"MiddleClick": ebiten.MouseButtonMiddle,
		"Back":        ebiten.MouseButton3, // Back button (side button)
		"Forward":     ebiten.MouseButton4, // Forward button (side button)
	}
}

// parseMouseString parses a mouse string like "Shift+LeftClick" or "WheelUp" into a MouseCombination
func (mm *MousebindingManager) parseMouseString(mouseStr string) (MouseCombination, bool) {
	parts := strings.Split(mouseStr, "+")
	if len(parts) == 0 {
		return MouseCombination{}, false
	}

	var combination MouseCombination

	// Last part should be the actual mouse action
	actionName := parts[len(parts)-1]

	switch {
	case strings.HasPrefix(actionName, "Wheel"):
		combination.IsWheel = true
		switch actionName {
		case "WheelUp":
			combination.WheelDeltaY = 1.0
		case "WheelDown":
			combination.WheelDeltaY = -1.0
		default:
			return MouseCombination{}, false
		}
	case strings.HasPrefix(actionName, "Double"):
		baseAction := strings.TrimPrefix(actionName, "Double")
		if _, exists := mm.mouseMapping[baseAction]; !exists {
			return MouseCombination{}, false
		}
		combination.IsDoubleClick = true
		combination.Button = baseAction
	default:
		if _, exists := mm.mouseMapping[actionName]; !exists {
			return MouseCombination{}, false
		}
		combination.Button = actionName
	}

	for i := 0; i < len(parts)-1; i++ {
		switch strings.ToLower(parts[i]) {
		case "shift":
			combination.Shift = true
		case "ctrl":
			combination.Ctrl = true
		case "alt":
			combination.Alt = true
		default:
			return MouseCombination{}, false
		}
	}

	return combination, true
}

// ActionForButton returns the action bound to a button press. Double clicks
// are recognised here, so callers report every press with its time.
func (mm *MousebindingManager) ActionForButton(button string, mods Modifiers, now time.Time) (string, bool) {
	if !mm.settings.EnableMouse {
		return "", false
	}

	if mm.registerClick(button, now) {
		if action, ok := mm.combos[MouseCombination{Button: button, IsDoubleClick: true, Modifiers: mods}]; ok {
			return action, true
		}
	}
	action, ok := mm.combos[MouseCombination{Button: button, Modifiers: mods}]
	return action, ok
}

// ActionForWheel returns the action bound to vertical wheel motion dy
func (mm *MousebindingManager) ActionForWheel(dy float64, mods Modifiers) (string, bool) {
	if !mm.settings.EnableMouse {
		return "", false
	}

	if mm.settings.WheelInverted {
		dy = -dy
	}
	dy *= mm.settings.WheelSensitivity

	var combination MouseCombination
	switch {
	case dy > 0:
		combination = MouseCombination{IsWheel: true, WheelDeltaY: 1.0, Modifiers: mods}
	case dy < 0:
		combination = MouseCombination{IsWheel: true, WheelDeltaY: -1.0, Modifiers: mods}
	default:
		return "", false
	}
	action, ok := mm.combos[combination]
	return action, ok
}

// registerClick records a press and reports whether it completes a double click
func (mm *MousebindingManager) registerClick(button string, now time.Time) bool {
	tracker := &mm.doubleClickTracker
	window := time.Duration(mm.settings.DoubleClickTime) * time.Millisecond

	if tracker.clickCount > 0 && tracker.lastClickButton == button && now.Sub(tracker.lastClickTime) <= window {
		tracker.clickCount = 0
		tracker.lastClickTime = now
		return true
	}

	tracker.clickCount = 1
	tracker.lastClickButton = button
	tracker.lastClickTime = now
	return false
}

// GetMousebindings returns the current mouse bindings map (for display purposes)
func (mm *MousebindingManager) GetMousebindings() map[string][]string {
	return mm.mousebindings
}

// UpdateMousebindings replaces the bindings. Unparseable entries are skipped.
func (mm *MousebindingManager) UpdateMousebindings(mousebindings map[string][]string) {
	mm.mousebindings = mousebindings
	mm.combos = make(map[MouseCombination]string)
	for action, mouseStrs := range mousebindings {
		for _, mouseStr := range mouseStrs {
			combination, ok := mm.parseMouseString(mouseStr)
			if !ok {
				debugLog("ignoring unparseable mouse binding %q for action %q", mouseStr, action)
				continue
			}
			mm.combos[combination] = action
		}
	}
}

// UpdateSettings updates the mouse settings
func (mm *MousebindingManager) UpdateSettings(settings MouseSettings) {
	mm.settings = settings
}

// GetSettings returns the current mouse settings
func (mm *MousebindingManager) GetSettings() MouseSettings {
	return mm.settings
}

// ButtonNames returns every button name the manager understands, paired with its ebiten button
func (mm *MousebindingManager) ButtonNames() map[string]ebiten.MouseButton {
	return mm.mouseMapping
}
