package feed

import "time"

// DefaultAdvanceDelay is the pause between end of media and auto-advance
const DefaultAdvanceDelay = 500 * time.Millisecond

// Player is the host media surface. Its methods are called with the
// controller locked and must not call back into the Controller
// synchronously; reporting end of media from another goroutine is fine.
type Player interface {
	// Activate starts playback of item from the beginning.
	Activate(item VideoItem, muted bool)
	// Deactivate stops id and rewinds it to the start.
	Deactivate(id string)
	SetPaused(id string, paused bool)
}

// Timer is a pending scheduled call
type Timer interface {
	Stop() bool
}

// Scheduler runs f after d. time.AfterFunc satisfies it via SystemScheduler.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemScheduler schedules on the runtime timer
type SystemScheduler struct{}

// AfterFunc wraps time.AfterFunc
func (SystemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Placement is where a slide is parked relative to the current index
type Placement int

const (
	PlacementAbove Placement = iota - 1
	PlacementNeutral
	PlacementBelow
)

func (p Placement) String() string {
	switch p {
	case PlacementAbove:
		return "above"
	case PlacementBelow:
		return "below"
	default:
		return "neutral"
	}
}

// PlacementFor places index i relative to current
func PlacementFor(i, current int) Placement {
	switch {
	case i < current:
		return PlacementAbove
	case i > current:
		return PlacementBelow
	default:
		return PlacementNeutral
	}
}

// playback keeps exactly one active item, derived from the current index.
type playback struct {
	player Player
	muted  bool
	delay  time.Duration
	sched  Scheduler

	activeID string
	paused   bool

	// token invalidates advances scheduled for an earlier activation
	token   uint64
	pending Timer
}

func newPlayback(player Player, muted bool, delay time.Duration, sched Scheduler) *playback {
	if sched == nil {
		sched = SystemScheduler{}
	}
	if delay < 0 {
		delay = 0
	}
	return &playback{player: player, muted: muted, delay: delay, sched: sched}
}

// sync makes item the active one, deactivating the previous item if the
// active id changed. It reports whether a transition happened.
func (p *playback) sync(item *VideoItem) bool {
	next := ""
	if item != nil {
		next = item.ID
	}
	if next == p.activeID {
		return false
	}

	p.cancelAdvance()
	if p.activeID != "" && p.player != nil {
		p.player.Deactivate(p.activeID)
	}
	p.activeID = next
	p.paused = false
	if item != nil && p.player != nil {
		p.player.Activate(*item, p.muted)
	}
	return true
}

func (p *playback) togglePaused() bool {
	if p.activeID == "" {
		return false
	}
	p.paused = !p.paused
	if p.player != nil {
		p.player.SetPaused(p.activeID, p.paused)
	}
	if p.paused {
		p.cancelAdvance()
	}
	return true
}

// scheduleAdvance arranges for fire(token) to run after the delay. The
// caller must compare the token against p.token before acting.
func (p *playback) scheduleAdvance(fire func(token uint64)) {
	p.cancelAdvance()
	token := p.token
	p.pending = p.sched.AfterFunc(p.delay, func() { fire(token) })
}

func (p *playback) cancelAdvance() {
	p.token++
	if p.pending != nil {
		p.pending.Stop()
		p.pending = nil
	}
}

// release stops the active item for good.
func (p *playback) release() {
	p.cancelAdvance()
	if p.activeID != "" && p.player != nil {
		p.player.Deactivate(p.activeID)
	}
	p.activeID = ""
	p.paused = false
}
