package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Overlay message display duration
	overlayMessageDuration = 2 * time.Second
)

// ViewState provides read-only access to viewer state for the renderer
type ViewState interface {
	// Album data
	AlbumTitle() string
	GetTotalPagesCount() int
	GetCurrentIndex() int
	GetItem(idx int) (MediaItem, bool)
	GetImage(idx int) *ebiten.Image

	// Navigation state
	GetTransition() TransitionState
	GetFlipProgress() float64
	GetDragOffset() float64
	IsAutoplayEnabled() bool
	IsAwaitingPlayback() bool
	GetPlaybackProgress() float64

	// UI state
	IsFullscreen() bool
	IsShowingInfo() bool
	GetControls() []ControlButton
	GetOverlayMessage() string
	GetOverlayMessageTime() time.Time
	GetFontSize() float64
	GetConfigStatus() ConfigLoadResult
	GetSortMethodName() string
}

// ViewStateSnapshot captures what can change the picture between frames
type ViewStateSnapshot struct {
	Index          int
	Transition     TransitionState
	FlipProgress   float64
	DragOffset     float64
	Autoplay       bool
	ShowInfo       bool
	PlaybackActive bool

	// Overlay message state (auto-expires after 2 seconds)
	OverlayMessage     string
	OverlayMessageTime time.Time

	// Window dimensions for resize detection
	WindowWidth  int
	WindowHeight int
}

// NewViewStateSnapshot records the current view state
func NewViewStateSnapshot(state ViewState, windowWidth, windowHeight int) *ViewStateSnapshot {
	return &ViewStateSnapshot{
		Index:              state.GetCurrentIndex(),
		Transition:         state.GetTransition(),
		FlipProgress:       state.GetFlipProgress(),
		DragOffset:         state.GetDragOffset(),
		Autoplay:           state.IsAutoplayEnabled(),
		ShowInfo:           state.IsShowingInfo(),
		PlaybackActive:     state.IsAwaitingPlayback(),
		OverlayMessage:     state.GetOverlayMessage(),
		OverlayMessageTime: state.GetOverlayMessageTime(),
		WindowWidth:        windowWidth,
		WindowHeight:       windowHeight,
	}
}

// Equals reports whether redrawing other would produce the same frame as s
// at time now
func (s *ViewStateSnapshot) Equals(other *ViewStateSnapshot, now time.Time) bool {
	if other == nil {
		return false
	}

	isOverlayActive := func(message string, messageTime time.Time) bool {
		return message != "" && now.Sub(messageTime) < overlayMessageDuration
	}

	overlayEqual := func() bool {
		sActive := isOverlayActive(s.OverlayMessage, s.OverlayMessageTime)
		otherActive := isOverlayActive(other.OverlayMessage, other.OverlayMessageTime)

		// Both inactive: still compare messages so the frame that clears an
		// expired overlay gets drawn
		if !sActive && !otherActive {
			return s.OverlayMessage == other.OverlayMessage
		}
		if sActive && otherActive {
			return s.OverlayMessage == other.OverlayMessage &&
				s.OverlayMessageTime.Equal(other.OverlayMessageTime)
		}
		return false
	}

	// A running flip or video placeholder animates every frame
	if !s.Transition.IsIdle() || s.PlaybackActive {
		return false
	}

	return overlayEqual() &&
		s.Index == other.Index &&
		s.Transition == other.Transition &&
		s.FlipProgress == other.FlipProgress &&
		s.DragOffset == other.DragOffset &&
		s.Autoplay == other.Autoplay &&
		s.ShowInfo == other.ShowInfo &&
		s.PlaybackActive == other.PlaybackActive &&
		s.WindowWidth == other.WindowWidth &&
		s.WindowHeight == other.WindowHeight
}
