package main

import (
	"time"

	"github.com/rs/zerolog"
)

// Default timings
const (
	defaultFlipDuration     = 600 * time.Millisecond
	defaultAutoplayInterval = 5000 * time.Millisecond
	defaultSwipeThreshold   = 50.0
)

// PageChange is delivered to commit observers after a flip lands
type PageChange struct {
	From      int
	To        int
	Direction Direction
}

// Pager owns the current page and the flip in flight. It is the only code
// that mutates either. Navigation requests that cannot be honoured (edge of
// the album, flip already running, empty album) are dropped, never queued.
type Pager struct {
	items        []MediaItem
	index        int
	guard        transitionGuard
	flipDuration time.Duration
	sched        *Scheduler
	commitTask   TaskID
	observers    []func(PageChange)
	closed       bool
	log          zerolog.Logger
}

// NewPager creates a Pager over items, flipping for flipDuration on sched
func NewPager(items []MediaItem, flipDuration time.Duration, sched *Scheduler) *Pager {
	owned := make([]MediaItem, len(items))
	copy(owned, items)

	if flipDuration < 0 {
		flipDuration = 0
	}

	return &Pager{
		items:        owned,
		flipDuration: flipDuration,
		sched:        sched,
		log:          componentLogger("pager"),
	}
}

// OnCommit registers fn to run after every committed page change
func (p *Pager) OnCommit(fn func(PageChange)) {
	p.observers = append(p.observers, fn)
}

// SetFlipDuration changes the flip length; a flip already running keeps its own
func (p *Pager) SetFlipDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	p.flipDuration = d
}

// FlipDuration returns the flip length
func (p *Pager) FlipDuration() time.Duration {
	return p.flipDuration
}

// Advance starts a flip to the next page
func (p *Pager) Advance() bool {
	if p.index >= len(p.items)-1 {
		p.log.Debug().Int("index", p.index).Msg("advance dropped: last page")
		return false
	}
	return p.begin(DirectionNext, p.index+1)
}

// Retreat starts a flip to the previous page
func (p *Pager) Retreat() bool {
	if p.index <= 0 {
		p.log.Debug().Int("index", p.index).Msg("retreat dropped: first page")
		return false
	}
	return p.begin(DirectionPrev, p.index-1)
}

// JumpTo starts a flip straight to page i. Seeks obey the same guard and
// animation as single steps.
func (p *Pager) JumpTo(i int) bool {
	if i < 0 || i >= len(p.items) || i == p.index {
		return false
	}
	dir := DirectionNext
	if i < p.index {
		dir = DirectionPrev
	}
	return p.begin(dir, i)
}

// WrapToFirst flips forward from the current page back to page 0, the way a
// looping slideshow turns past its end
func (p *Pager) WrapToFirst() bool {
	if p.index == 0 || len(p.items) <= 1 {
		return false
	}
	return p.begin(DirectionNext, 0)
}

func (p *Pager) begin(dir Direction, to int) bool {
	if p.closed {
		return false
	}
	from := p.index
	if !p.guard.tryAcquire(dir, from, to, p.sched.Now()) {
		p.log.Debug().Int("to", to).Str("state", p.guard.current().String()).Msg("navigation dropped: flip in flight")
		return false
	}

	p.commitTask = p.sched.After(p.flipDuration, func() {
		p.commit(to)
	})
	p.log.Debug().Int("from", from).Int("to", to).Stringer("direction", dir).Msg("flip started")
	return true
}

func (p *Pager) commit(to int) {
	p.commitTask = 0
	state := p.guard.current()
	if p.closed || state.IsIdle() || state.To != to {
		return
	}

	p.index = to
	p.guard.release()

	change := PageChange{From: state.From, To: to, Direction: state.Direction}
	p.log.Debug().Int("from", change.From).Int("to", change.To).Msg("flip committed")
	for _, fn := range p.observers {
		fn(change)
	}
}

// Reset returns to page 0 and abandons any flip in flight. It is the only
// operation that bypasses the guard.
func (p *Pager) Reset() {
	p.sched.Cancel(p.commitTask)
	p.commitTask = 0
	p.index = 0
	p.guard.release()
}

// Close resets the pager and makes it inert. Nothing scheduled before Close
// can change it afterwards.
func (p *Pager) Close() {
	p.Reset()
	p.closed = true
	p.observers = nil
}

// Closed reports whether Close has been called
func (p *Pager) Closed() bool {
	return p.closed
}

// Index returns the committed page
func (p *Pager) Index() int {
	return p.index
}

// Total returns the number of pages
func (p *Pager) Total() int {
	return len(p.items)
}

// Transition returns the current transition state
func (p *Pager) Transition() TransitionState {
	return p.guard.current()
}

// IsIdle reports whether a navigation request would currently be admitted by the guard
func (p *Pager) IsIdle() bool {
	return p.guard.current().IsIdle()
}

// AtFirst reports whether there is no previous page
func (p *Pager) AtFirst() bool {
	return p.index <= 0
}

// AtLast reports whether there is no next page
func (p *Pager) AtLast() bool {
	return p.index >= len(p.items)-1
}

// Item returns the item at page i
func (p *Pager) Item(i int) (MediaItem, bool) {
	if i < 0 || i >= len(p.items) {
		return MediaItem{}, false
	}
	return p.items[i], true
}

// Current returns the item on the committed page; false for an empty album
func (p *Pager) Current() (MediaItem, bool) {
	return p.Item(p.index)
}
