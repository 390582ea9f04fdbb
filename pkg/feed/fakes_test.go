package feed

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func makeItems(from, n int) []VideoItem {
	items := make([]VideoItem, 0, n)
	for i := from; i < from+n; i++ {
		items = append(items, VideoItem{
			ID:              fmt.Sprintf("v%d", i),
			Title:           fmt.Sprintf("clip %d", i),
			DurationSeconds: 15,
			Stats:           Stats{Likes: i, Views: 100 * i},
		})
	}
	return items
}

type pageCall struct {
	page    int
	size    int
	exclude []string
}

// fakeSource serves canned pages. When gate is set, page fetches block
// until a value is received from it.
type fakeSource struct {
	mu       sync.Mutex
	pages    map[int]Page
	pageErrs map[int]error
	targets  map[string]VideoItem
	calls    []pageCall
	targetN  int

	gate        chan struct{}
	inFlight    int
	maxInFlight int
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		pages:    make(map[int]Page),
		pageErrs: make(map[int]error),
		targets:  make(map[string]VideoItem),
	}
}

func (f *fakeSource) FetchVideoPage(ctx context.Context, page, pageSize int, excludeIDs []string) (Page, error) {
	f.mu.Lock()
	f.calls = append(f.calls, pageCall{page: page, size: pageSize, exclude: excludeIDs})
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight--
	if err := f.pageErrs[page]; err != nil {
		return Page{}, err
	}
	p := f.pages[page]
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	out := Page{HasMore: p.HasMore}
	for _, item := range p.Items {
		if !excluded[item.ID] {
			out.Items = append(out.Items, item)
		}
	}
	return out, nil
}

func (f *fakeSource) FetchVideoByID(ctx context.Context, id string) (VideoItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.targetN++
	item, ok := f.targets[id]
	if !ok {
		return VideoItem{}, fmt.Errorf("video %s: %w", id, ErrNotFound)
	}
	return item, nil
}

func (f *fakeSource) pageNumbers() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.page)
	}
	return out
}

type postCall struct {
	kind InteractionKind
	id   string
}

type fakePoster struct {
	mu    sync.Mutex
	calls []postCall
	err   error
	gate  chan struct{}
}

func (p *fakePoster) PostInteraction(ctx context.Context, kind InteractionKind, id string) error {
	if p.gate != nil {
		<-p.gate
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, postCall{kind: kind, id: id})
	return p.err
}

func (p *fakePoster) posted() []postCall {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]postCall(nil), p.calls...)
}

// recordingPlayer tracks which ids are playing
type recordingPlayer struct {
	mu     sync.Mutex
	active map[string]bool
	events []string
}

func newRecordingPlayer() *recordingPlayer {
	return &recordingPlayer{active: make(map[string]bool)}
}

func (p *recordingPlayer) Activate(item VideoItem, muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.active[item.ID] = true
	p.events = append(p.events, "activate:"+item.ID)
}

func (p *recordingPlayer) Deactivate(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.active, id)
	p.events = append(p.events, "deactivate:"+id)
}

func (p *recordingPlayer) SetPaused(id string, paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, fmt.Sprintf("paused:%s:%v", id, paused))
}

func (p *recordingPlayer) playing() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.active))
	for id := range p.active {
		out = append(out, id)
	}
	return out
}

type manualTimer struct {
	mu      sync.Mutex
	f       func()
	delay   time.Duration
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	wasPending := !t.stopped && !t.fired
	t.stopped = true
	return wasPending
}

// manualScheduler never runs callbacks on its own; tests fire them.
type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{f: f, delay: d}
	s.timers = append(s.timers, t)
	return t
}

// timer returns the i-th timer ever scheduled, live or not.
func (s *manualScheduler) timer(i int) *manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timers[i]
}

func (s *manualScheduler) pending() []*manualTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*manualTimer
	for _, t := range s.timers {
		t.mu.Lock()
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
		t.mu.Unlock()
	}
	return out
}

func (s *manualScheduler) fire() int {
	n := 0
	for _, t := range s.pending() {
		t.mu.Lock()
		t.fired = true
		f := t.f
		t.mu.Unlock()
		f()
		n++
	}
	return n
}

type harness struct {
	ctrl   *Controller
	source *fakeSource
	poster *fakePoster
	player *recordingPlayer
	sched  *manualScheduler
}

func newHarness(t *testing.T, configure func(*Options)) *harness {
	t.Helper()
	h := &harness{
		source: newFakeSource(),
		poster: &fakePoster{},
		player: newRecordingPlayer(),
		sched:  &manualScheduler{},
	}
	opts := DefaultOptions()
	opts.Source = h.source
	opts.Poster = h.poster
	opts.Player = h.player
	opts.Scheduler = h.sched
	if configure != nil {
		configure(&opts)
	}
	ctrl, err := New(opts)
	require.NoError(t, err)
	h.ctrl = ctrl
	t.Cleanup(func() {
		ctrl.Destroy()
		ctrl.Wait()
	})
	return h
}

// preload puts the controller in a ready state without going through a fetch.
func (h *harness) preload(items []VideoItem, index, page int, hasMore bool) {
	c := h.ctrl
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
	c.state.appendPage(items)
	c.state.CurrentIndex = index
	c.state.Page = page
	c.state.HasMore = hasMore
	c.state.Phase = PhaseReady
	c.state.refreshPhase()
	c.playback.sync(c.state.current())
}

func swipeUp(c *Controller) {
	for _, ev := range drag(500, 440) {
		c.Dispatch(ev)
	}
}

func swipeDown(c *Controller) {
	for _, ev := range drag(300, 360) {
		c.Dispatch(ev)
	}
}

func ids(items []VideoItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}
