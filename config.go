package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Window size constants
const (
	defaultWidth  = 1024
	defaultHeight = 768
	minWidth      = 400
	minHeight     = 300
)

// Sort method constants
const (
	SortNatural    = 0 // Natural sort order (e.g., file1, file2, file10)
	SortSimple     = 1 // Simple string sort (lexicographical)
	SortEntryOrder = 2 // Maintain original order (no sort)
)

// Timing defaults and limits, in milliseconds
const (
	defaultFlipDurationMs     = 600
	maxFlipDurationMs         = 5000
	defaultAutoplayIntervalMs = 5000
	minAutoplayIntervalMs     = 1000
	maxAutoplayIntervalMs     = 600000
	defaultVideoPlaceholderMs = 8000
	defaultSwipeThresholdPx   = 50
	maxSwipeThresholdPx       = 1000
)

// ControllerConfig is the navigation controller's slice of the configuration
type ControllerConfig struct {
	FlipDuration     time.Duration
	AutoplayInterval time.Duration
	SwipeThreshold   float64
}

// ConfigLoadResult contains the result of loading configuration
type ConfigLoadResult struct {
	Config   Config
	HasError bool
	Warnings []string
	Status   string // "OK", "Default", "Warning", "Error"
}

type Config struct {
	WindowWidth        int                 `json:"window_width"`
	WindowHeight       int                 `json:"window_height"`
	Fullscreen         bool                `json:"fullscreen"`
	FontSize           float64             `json:"font_size"`
	SortMethod         int                 `json:"sort_method"`
	CacheSize          int                 `json:"cache_size"`
	PreloadEnabled     bool                `json:"preload_enabled"`
	PreloadCount       int                 `json:"preload_count"`
	FlipDurationMs     int                 `json:"flip_duration_ms"`
	AutoplayIntervalMs int                 `json:"autoplay_interval_ms"`
	SwipeThresholdPx   float64             `json:"swipe_threshold_px"`
	VideoPlaceholderMs int                 `json:"video_placeholder_ms"`
	Slideshow          bool                `json:"slideshow"`
	ShowInfo           bool                `json:"show_info"`
	Keybindings        map[string][]string `json:"keybindings"`
	Mousebindings      map[string][]string `json:"mousebindings"`
	MouseSettings      MouseSettings       `json:"mouse_settings"`
}

// Controller returns the timings and thresholds the navigation controller uses
func (c Config) Controller() ControllerConfig {
	return ControllerConfig{
		FlipDuration:     time.Duration(c.FlipDurationMs) * time.Millisecond,
		AutoplayInterval: time.Duration(c.AutoplayIntervalMs) * time.Millisecond,
		SwipeThreshold:   c.SwipeThresholdPx,
	}
}

// VideoPlaceholderDuration is how long a video page stands in for playback
func (c Config) VideoPlaceholderDuration() time.Duration {
	return time.Duration(c.VideoPlaceholderMs) * time.Millisecond
}

func defaultConfig() Config {
	return Config{
		WindowWidth:        defaultWidth,
		WindowHeight:       defaultHeight,
		Fullscreen:         false,
		FontSize:           22.0,
		SortMethod:         SortNatural,
		CacheSize:          16,
		PreloadEnabled:     true,
		PreloadCount:       4,
		FlipDurationMs:     defaultFlipDurationMs,
		AutoplayIntervalMs: defaultAutoplayIntervalMs,
		SwipeThresholdPx:   defaultSwipeThresholdPx,
		VideoPlaceholderMs: defaultVideoPlaceholderMs,
		Slideshow:          false,
		ShowInfo:           true,
		Keybindings:        GetDefaultKeybindings(),
		Mousebindings:      GetDefaultMousebindings(),
		MouseSettings:      GetDefaultMouseSettings(),
	}
}

// validateKeybindings validates the keybindings configuration
func validateKeybindings(keybindings map[string][]string) error {
	keyToAction := make(map[string]string)
	validKeys := getKeyMapping()

	for action, keys := range keybindings {
		if _, ok := globalActionExecutor.IntentFor(action); !ok {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, keyStr := range keys {
			if err := validateKeyString(keyStr, validKeys); err != nil {
				return fmt.Errorf("invalid key '%s' for action '%s': %w", keyStr, action, err)
			}

			if existingAction, exists := keyToAction[keyStr]; exists {
				return fmt.Errorf("key conflict: '%s' is bound to both '%s' and '%s'", keyStr, existingAction, action)
			}
			keyToAction[keyStr] = action
		}
	}

	return nil
}

// validateKeyString validates a single key string format
func validateKeyString[K any](keyStr string, validKeys map[string]K) error {
	if keyStr == "" {
		return fmt.Errorf("empty key string")
	}
	parts := strings.Split(keyStr, "+")

	// Last part should be the actual key
	keyName := parts[len(parts)-1]
	if _, ok := validKeys[keyName]; !ok {
		return fmt.Errorf("unknown key: %s", keyName)
	}

	for i := 0; i < len(parts)-1; i++ {
		modifier := strings.ToLower(parts[i])
		if modifier != "shift" && modifier != "ctrl" && modifier != "alt" {
			return fmt.Errorf("unknown modifier: %s", parts[i])
		}
	}

	return nil
}

// validateMousebindings checks every mouse binding parses and none conflict
func validateMousebindings(mousebindings map[string][]string) error {
	parser := &MousebindingManager{mouseMapping: getMouseMapping()}
	seen := make(map[MouseCombination]string)

	for action, mouseStrs := range mousebindings {
		if _, ok := globalActionExecutor.IntentFor(action); !ok {
			return fmt.Errorf("unknown action '%s'", action)
		}
		for _, mouseStr := range mouseStrs {
			combination, ok := parser.parseMouseString(mouseStr)
			if !ok {
				return fmt.Errorf("invalid mouse binding '%s' for action '%s'", mouseStr, action)
			}
			if existing, exists := seen[combination]; exists {
				return fmt.Errorf("mouse conflict: '%s' is bound to both '%s' and '%s'", mouseStr, existing, action)
			}
			seen[combination] = action
		}
	}
	return nil
}

func getConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "album.json"
	}
	return filepath.Join(homeDir, ".album.json")
}

func loadConfigFromPath(configPath string) ConfigLoadResult {
	config := defaultConfig()

	result := ConfigLoadResult{
		Config:   config,
		HasError: false,
		Warnings: []string{},
		Status:   "OK",
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		// Config file not found is not an error - use defaults
		result.Status = "Default"
		return result
	}

	// Start from empty binding maps so a file that names only some actions is
	// merged with the defaults below instead of into them
	config.Keybindings = nil
	config.Mousebindings = nil
	if err := json.Unmarshal(data, &config); err != nil {
		logger.Warn().Err(err).Str("path", configPath).Msg("invalid config file, using defaults")
		result.HasError = true
		result.Status = "Error"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Invalid config file: %v", err))
		return result
	}

	// Validate minimum size
	if config.WindowWidth < minWidth {
		config.WindowWidth = defaultWidth
	}
	if config.WindowHeight < minHeight {
		config.WindowHeight = defaultHeight
	}

	// Validate font size (minimum 12px for readability)
	if config.FontSize < 12.0 {
		config.FontSize = 22.0
	}

	if config.SortMethod < SortNatural || config.SortMethod > SortEntryOrder {
		config.SortMethod = SortNatural
	}

	// Validate cache size (minimum 1, maximum 64)
	if config.CacheSize < 1 {
		config.CacheSize = 16
	} else if config.CacheSize > 64 {
		config.CacheSize = 64
	}

	// Validate preload count (minimum 1, maximum 16)
	if config.PreloadCount < 1 {
		config.PreloadCount = 4
	} else if config.PreloadCount > 16 {
		config.PreloadCount = 16
	}

	// Flip duration: 0 means instant page changes
	if config.FlipDurationMs < 0 {
		config.FlipDurationMs = defaultFlipDurationMs
	} else if config.FlipDurationMs > maxFlipDurationMs {
		config.FlipDurationMs = maxFlipDurationMs
	}

	if config.AutoplayIntervalMs < minAutoplayIntervalMs {
		config.AutoplayIntervalMs = defaultAutoplayIntervalMs
	} else if config.AutoplayIntervalMs > maxAutoplayIntervalMs {
		config.AutoplayIntervalMs = maxAutoplayIntervalMs
	}

	if config.SwipeThresholdPx <= 0 {
		config.SwipeThresholdPx = defaultSwipeThresholdPx
	} else if config.SwipeThresholdPx > maxSwipeThresholdPx {
		config.SwipeThresholdPx = maxSwipeThresholdPx
	}

	if config.VideoPlaceholderMs <= 0 {
		config.VideoPlaceholderMs = defaultVideoPlaceholderMs
	}

	if config.MouseSettings.DoubleClickTime <= 0 {
		config.MouseSettings.DoubleClickTime = GetDefaultMouseSettings().DoubleClickTime
	}
	if config.MouseSettings.WheelSensitivity <= 0 {
		config.MouseSettings.WheelSensitivity = GetDefaultMouseSettings().WheelSensitivity
	}

	config.Keybindings = mergeBindings(config.Keybindings, GetDefaultKeybindings())
	if err := validateKeybindings(config.Keybindings); err != nil {
		logger.Warn().Err(err).Msg("invalid keybindings detected, using defaults")
		config.Keybindings = GetDefaultKeybindings()
		result.Status = "Warning"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Keybinding errors: %v", err))
	}

	config.Mousebindings = mergeBindings(config.Mousebindings, GetDefaultMousebindings())
	if err := validateMousebindings(config.Mousebindings); err != nil {
		logger.Warn().Err(err).Msg("invalid mouse bindings detected, using defaults")
		config.Mousebindings = GetDefaultMousebindings()
		result.Status = "Warning"
		result.Warnings = append(result.Warnings, fmt.Sprintf("Mouse binding errors: %v", err))
	}

	result.Config = config
	return result
}

// mergeBindings fills actions missing from configured with their defaults
func mergeBindings(configured, defaults map[string][]string) map[string][]string {
	if configured == nil {
		return defaults
	}
	for action, bindings := range defaults {
		if _, exists := configured[action]; !exists {
			configured[action] = bindings
		}
	}
	return configured
}

// getSortMethodName returns the human-readable name of a sort method
func getSortMethodName(sortMethod int) string {
	return GetSortStrategy(sortMethod).Name()
}

func saveConfigToPath(config Config, configPath string) error {
	// Don't save if size is too small
	if config.WindowWidth < minWidth || config.WindowHeight < minHeight {
		return fmt.Errorf("refusing to save invalid window size %dx%d", config.WindowWidth, config.WindowHeight)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", configPath, err)
	}
	return nil
}
