package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{"close", []string{"Escape", "KeyQ"}, []string{}, "Close the album"},
	{"next", []string{"ArrowRight", "KeyN", "PageDown"}, []string{"WheelDown", "Forward"}, "Next page"},
	{"previous", []string{"ArrowLeft", "KeyP", "PageUp"}, []string{"WheelUp", "Back"}, "Previous page"},
	{"jump_first", []string{"Home"}, []string{}, "Jump to first page"},
	{"jump_last", []string{"End"}, []string{}, "Jump to last page"},
	{"restart", []string{"Backspace"}, []string{}, "Back to the first page at once"},
	{"toggle_autoplay", []string{"Space", "KeyS"}, []string{"MiddleClick"}, "Play/pause slideshow"},
	{"fullscreen", []string{"Enter", "KeyF"}, []string{"DoubleLeftClick"}, "Toggle fullscreen"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide page counter"},
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = append([]string(nil), action.Keys...)
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = append([]string(nil), action.MouseActions...)
	}
	return mousebindings
}
