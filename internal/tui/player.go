package tui

import (
	"sync"
	"time"

	"github.com/zfogg/swipefeed/pkg/feed"
)

// Player simulates playback for the terminal. It has no media, only a
// clock: it tracks how far the active item has played and reports end of
// media once DurationSeconds have elapsed unpaused.
type Player struct {
	mu    sync.Mutex
	sched feed.Scheduler
	now   func() time.Time
	ended func(id string)

	id       string
	muted    bool
	duration time.Duration
	elapsed  time.Duration
	started  time.Time
	paused   bool

	// gen invalidates end-of-media timers from an earlier activation
	gen   uint64
	timer feed.Timer
}

var _ feed.Player = (*Player)(nil)

// NewPlayer creates a player that schedules end of media on sched
func NewPlayer(sched feed.Scheduler) *Player {
	if sched == nil {
		sched = feed.SystemScheduler{}
	}
	return &Player{sched: sched, now: time.Now}
}

// OnEnded registers the end-of-media callback. It runs on the timer's
// goroutine, never under the controller lock.
func (p *Player) OnEnded(f func(id string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.ended = f
}

// Activate implements feed.Player
func (p *Player) Activate(item feed.VideoItem, muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.id = item.ID
	p.muted = muted
	p.duration = time.Duration(item.DurationSeconds * float64(time.Second))
	p.elapsed = 0
	p.paused = false
	p.started = p.now()
	p.scheduleLocked()
}

// Deactivate implements feed.Player
func (p *Player) Deactivate(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id != p.id {
		return
	}
	p.stopLocked()
	p.id = ""
	p.duration = 0
	p.elapsed = 0
	p.paused = false
}

// SetPaused implements feed.Player
func (p *Player) SetPaused(id string, paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if id != p.id || paused == p.paused {
		return
	}
	p.paused = paused
	if paused {
		p.elapsed += p.now().Sub(p.started)
		p.stopLocked()
		return
	}
	p.started = p.now()
	p.scheduleLocked()
}

// Progress returns the active id with its played and total duration
func (p *Player) Progress() (id string, played, total time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	played = p.elapsed
	if !p.paused && p.id != "" {
		played += p.now().Sub(p.started)
	}
	if played > p.duration {
		played = p.duration
	}
	return p.id, played, p.duration
}

// Muted reports whether the active item was started muted
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *Player) scheduleLocked() {
	remaining := p.duration - p.elapsed
	if p.duration <= 0 || remaining < 0 {
		return
	}
	gen, id := p.gen, p.id
	p.timer = p.sched.AfterFunc(remaining, func() { p.fire(gen, id) })
}

func (p *Player) stopLocked() {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Player) fire(gen uint64, id string) {
	p.mu.Lock()
	if gen != p.gen || id != p.id {
		p.mu.Unlock()
		return
	}
	p.timer = nil
	ended := p.ended
	p.mu.Unlock()

	if ended != nil {
		ended(id)
	}
}
