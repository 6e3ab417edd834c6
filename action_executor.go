package main

// IntentKind enumerates the navigation and viewer requests every input source produces
type IntentKind int

const (
	IntentNone IntentKind = iota
	IntentAdvance
	IntentRetreat
	IntentJumpTo
	IntentFirst
	IntentLast
	IntentRestart
	IntentClose
	IntentToggleAutoplay
	IntentToggleFullscreen
	IntentToggleInfo
)

var intentNames = map[IntentKind]string{
	IntentNone:             "none",
	IntentAdvance:          "advance",
	IntentRetreat:          "retreat",
	IntentJumpTo:           "jump_to",
	IntentFirst:            "first",
	IntentLast:             "last",
	IntentRestart:          "restart",
	IntentClose:            "close",
	IntentToggleAutoplay:   "toggle_autoplay",
	IntentToggleFullscreen: "toggle_fullscreen",
	IntentToggleInfo:       "toggle_info",
}

func (k IntentKind) String() string {
	if name, ok := intentNames[k]; ok {
		return name
	}
	return "unknown"
}

// Intent is a request independent of the source that produced it.
// Index is used by IntentJumpTo only.
type Intent struct {
	Kind  IntentKind
	Index int
}

// JumpIntent builds a seek request to page i
func JumpIntent(i int) Intent {
	return Intent{Kind: IntentJumpTo, Index: i}
}

// ActionExecutor translates bound action names into intents. Keyboard and
// mouse bindings both go through it, so an action means the same thing
// whichever device triggered it.
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// IntentFor returns the intent for an action name
func (ae *ActionExecutor) IntentFor(action string) (Intent, bool) {
	switch action {
	case "close":
		return Intent{Kind: IntentClose}, true
	case "next":
		return Intent{Kind: IntentAdvance}, true
	case "previous":
		return Intent{Kind: IntentRetreat}, true
	case "jump_first":
		return Intent{Kind: IntentFirst}, true
	case "jump_last":
		return Intent{Kind: IntentLast}, true
	case "restart":
		return Intent{Kind: IntentRestart}, true
	case "toggle_autoplay":
		return Intent{Kind: IntentToggleAutoplay}, true
	case "fullscreen":
		return Intent{Kind: IntentToggleFullscreen}, true
	case "info":
		return Intent{Kind: IntentToggleInfo}, true
	default:
		return Intent{}, false
	}
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()
