package main

import "time"

// Direction is the orientation of a page flip
type Direction int

const (
	DirectionNext Direction = iota
	DirectionPrev
)

func (d Direction) String() string {
	if d == DirectionPrev {
		return "prev"
	}
	return "next"
}

// Phase is the tag of a TransitionState
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFlipping
)

// TransitionState describes the flip in flight, if any.
// From, To and Started are meaningful only while Flipping.
type TransitionState struct {
	Phase     Phase
	Direction Direction
	From      int
	To        int
	Started   time.Time
}

// IsIdle reports whether no flip is in flight
func (t TransitionState) IsIdle() bool {
	return t.Phase == PhaseIdle
}

func (t TransitionState) String() string {
	if t.Phase == PhaseIdle {
		return "idle"
	}
	return "flipping(" + t.Direction.String() + ")"
}

// transitionGuard admits at most one flip at a time. Callers run on the
// single event loop, so tryAcquire's check and set cannot interleave with
// another handler.
type transitionGuard struct {
	state TransitionState
}

// tryAcquire enters Flipping if idle and reports whether it did
func (g *transitionGuard) tryAcquire(dir Direction, from, to int, now time.Time) bool {
	if g.state.Phase != PhaseIdle {
		return false
	}
	g.state = TransitionState{
		Phase:     PhaseFlipping,
		Direction: dir,
		From:      from,
		To:        to,
		Started:   now,
	}
	return true
}

func (g *transitionGuard) release() {
	g.state = TransitionState{Phase: PhaseIdle}
}

func (g *transitionGuard) current() TransitionState {
	return g.state
}
