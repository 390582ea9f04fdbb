package feed

import (
	"context"
	"sync"
)

// Slide is one rendered item around the current index
type Slide struct {
	Index     int
	Item      VideoItem
	Placement Placement
}

// Snapshot is a consistent, copied view of the feed for rendering
type Snapshot struct {
	// Version increases with every snapshot taken. Notifications are
	// delivered outside the lock, so a consumer keeps the highest it has seen.
	Version uint64
	Mode    EntryMode
	Phase   Phase
	Err     ErrorTag
	Index   int
	Len     int
	Current *VideoItem
	// ActiveID is the only item with playback; it is always Items[Index].
	ActiveID      string
	Paused        bool
	CanGoPrevious bool
	CanGoNext     bool
	HasMore       bool
	Loading       bool
	Window        []Slide
}

// Controller owns one FeedState and serialises every mutation of it. Input
// events, fetch completions, timers and interaction results all re-enter
// through its methods.
type Controller struct {
	mu sync.Mutex

	opts         Options
	state        FeedState
	gesture      GestureState
	loader       *Loader
	playback     *playback
	interactions *interactions

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	started    bool
	generation uint64
	version    uint64
}

// New creates a controller. Call Start to begin loading.
func New(opts Options) (*Controller, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		opts:         opts,
		state:        newFeedState(),
		loader:       NewLoader(opts.Source, opts.PageSize, opts.FetchTimeout),
		playback:     newPlayback(opts.Player, opts.Muted, opts.AdvanceDelay, opts.Scheduler),
		interactions: newInteractions(),
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// Start kicks off the initial page or target fetch. Subsequent calls are
// no-ops.
func (c *Controller) Start() {
	c.mu.Lock()
	if c.started || c.state.Destroyed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.beginLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Retry restarts initialization after a fatal initial failure. It returns
// false unless the feed is in the error phase.
func (c *Controller) Retry() bool {
	c.mu.Lock()
	if c.state.Destroyed || c.state.Phase != PhaseError {
		c.mu.Unlock()
		return false
	}
	c.generation++
	c.state.reset()
	c.gesture = GestureState{}
	c.beginLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return true
}

func (c *Controller) beginLocked() {
	c.state.Phase = PhaseInitializing
	c.opts.Logger.Debug("Initializing feed", "mode", c.opts.Mode, "target", c.opts.TargetID)
	if c.opts.Mode == EntryTarget {
		c.requestTargetLocked(c.opts.TargetID)
		return
	}
	c.requestPageLocked(1)
}

// Destroy unmounts the feed: input is ignored from now on, in-flight
// fetches are discarded on completion and the active item is released.
func (c *Controller) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Destroyed {
		return
	}
	c.state.Destroyed = true
	c.cancel()
	c.gesture = GestureState{}
	c.playback.release()
	c.opts.Logger.Debug("Feed destroyed", "items", len(c.state.Items))
}

// Wait blocks until every fetch and interaction request started so far
// has completed.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Dispatch feeds one raw input event through the gesture recognizer and
// applies the resulting intent.
func (c *Controller) Dispatch(ev Event) Result {
	c.mu.Lock()
	if c.state.Destroyed {
		c.mu.Unlock()
		return Result{}
	}
	var res Result
	c.gesture, res = Recognize(c.gesture, ev, c.opts.Thresholds)
	switch res.Intent {
	case IntentNext, IntentPrevious:
		c.navigateLocked(res.Intent)
	case IntentTogglePlay:
		c.playback.togglePaused()
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	if res.Intent != IntentNone {
		c.notify(snap)
	}
	if res.Intent == IntentExit && c.opts.OnExit != nil {
		c.opts.OnExit()
	}
	return res
}

// Navigate moves one item forward or back. Moving past either end is a
// no-op. It reports whether the index changed.
func (c *Controller) Navigate(in Intent) bool {
	c.mu.Lock()
	if c.state.Destroyed {
		c.mu.Unlock()
		return false
	}
	moved := c.navigateLocked(in)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return moved
}

func (c *Controller) navigateLocked(in Intent) bool {
	var moved bool
	switch in {
	case IntentNext:
		moved = c.state.setIndex(c.state.CurrentIndex + 1)
	case IntentPrevious:
		moved = c.state.setIndex(c.state.CurrentIndex - 1)
	default:
		return false
	}
	if moved {
		c.playback.sync(c.state.current())
	}
	c.opts.Metrics.Navigated(in, moved)
	c.state.refreshPhase()
	c.checkPrefetchLocked()
	return moved
}

// TogglePlay pauses or resumes the active item
func (c *Controller) TogglePlay() bool {
	c.mu.Lock()
	if c.state.Destroyed {
		c.mu.Unlock()
		return false
	}
	toggled := c.playback.togglePaused()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
	return toggled
}

// MediaEnded reports natural end of media for id. If id is still active,
// the feed advances after the configured delay unless the index changes
// first.
func (c *Controller) MediaEnded(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Destroyed || id == "" || c.playback.activeID != id || c.playback.paused {
		return
	}
	c.playback.scheduleAdvance(func(token uint64) {
		c.advanceAfterEnd(id, token)
	})
}

func (c *Controller) advanceAfterEnd(id string, token uint64) {
	c.mu.Lock()
	if c.state.Destroyed || c.playback.token != token || c.playback.activeID != id {
		c.mu.Unlock()
		return
	}
	c.playback.pending = nil
	c.navigateLocked(IntentNext)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// ToggleLike flips the like state of id locally and then posts it. A
// second toggle for the same id fails with ErrInteractionPending until the
// first request resolves.
func (c *Controller) ToggleLike(id string) error {
	return c.interact(id, func(s *FeedState) (InteractionKind, error) {
		return c.interactions.toggleLike(s, id)
	})
}

// RecordShare bumps the share counter of id and posts the share
func (c *Controller) RecordShare(id string) error {
	return c.interact(id, func(s *FeedState) (InteractionKind, error) {
		return KindShare, c.interactions.recordShare(s, id)
	})
}

// RecordCommentAdded bumps the comment counter of id and posts it
func (c *Controller) RecordCommentAdded(id string) error {
	return c.interact(id, func(s *FeedState) (InteractionKind, error) {
		return KindComment, c.interactions.recordCommentAdded(s, id)
	})
}

func (c *Controller) interact(id string, mutate func(*FeedState) (InteractionKind, error)) error {
	c.mu.Lock()
	if c.state.Destroyed {
		c.mu.Unlock()
		return ErrDestroyed
	}
	kind, err := mutate(&c.state)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	c.post(kind, id)
	return nil
}

// post sends the interaction off the caller's path. It outlives Destroy so
// a like made just before unmount still reaches the server.
func (c *Controller) post(kind InteractionKind, id string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		var err error
		if c.opts.Poster != nil {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(c.ctx), c.opts.FetchTimeout)
			err = c.opts.Poster.PostInteraction(ctx, kind, id)
			cancel()
		}
		c.opts.Metrics.InteractionPosted(kind, err)
		if err != nil {
			c.opts.Logger.Warn("Interaction request failed", "kind", kind, "video_id", id, "error", err)
		}

		c.mu.Lock()
		c.interactions.settle(kind, id)
		c.mu.Unlock()
	}()
}

// ApplyStats reconciles server-pushed counters for id. It reports whether
// the update was applied.
func (c *Controller) ApplyStats(id string, update StatsUpdate) bool {
	c.mu.Lock()
	if c.state.Destroyed {
		c.mu.Unlock()
		return false
	}
	applied := c.interactions.applyStats(&c.state, id, update)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	if applied {
		c.notify(snap)
	}
	return applied
}

func (c *Controller) checkPrefetchLocked() {
	if shouldPrefetch(&c.state, c.opts.PrefetchThreshold) {
		c.requestPageLocked(c.state.Page + 1)
	}
}

// requestPageLocked starts a page fetch unless one is already in flight, in
// which case the request is dropped.
func (c *Controller) requestPageLocked(page int) {
	if c.state.IsLoading || c.state.Destroyed {
		return
	}
	c.state.IsLoading = true
	gen := c.generation
	exclude := c.state.excludedList()
	c.opts.Logger.Debug("Fetching video page", "page", page, "excluded", len(exclude))

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		p, err := c.loader.LoadPage(c.ctx, page, exclude)
		c.finishPage(gen, page, p, err)
	}()
}

func (c *Controller) finishPage(gen uint64, page int, p Page, err error) {
	c.mu.Lock()
	if c.state.Destroyed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.state.IsLoading = false
	initial := c.state.Phase == PhaseInitializing

	if err != nil {
		c.opts.Metrics.PageFetched(page, 0, err)
		c.state.Err = TagFor(err)
		if initial && len(c.state.Items) == 0 {
			c.state.Phase = PhaseError
			c.opts.Logger.Error("Initial feed load failed", "page", page, "error", err)
		} else {
			c.state.PrefetchHalted = true
			c.opts.Logger.Warn("Continuation page failed, prefetch stopped", "page", page, "error", err)
		}
	} else {
		added := c.state.appendPage(p.Items)
		c.state.Page = page
		c.state.HasMore = p.HasMore && len(p.Items) > 0
		c.state.Err = TagNone
		if initial {
			c.state.Phase = PhaseReady
		}
		if c.state.CurrentIndex < 0 && len(c.state.Items) > 0 {
			c.state.CurrentIndex = 0
		}
		c.opts.Metrics.PageFetched(page, added, nil)
		c.opts.Logger.Debug("Video page loaded", "page", page, "added", added, "has_more", c.state.HasMore)
	}

	c.state.refreshPhase()
	c.playback.sync(c.state.current())
	c.checkPrefetchLocked()
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

func (c *Controller) requestTargetLocked(id string) {
	c.state.IsLoading = true
	gen := c.generation

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		item, err := c.loader.LoadTarget(c.ctx, id)
		c.finishTarget(gen, item, err)
	}()
}

func (c *Controller) finishTarget(gen uint64, item VideoItem, err error) {
	c.mu.Lock()
	if c.state.Destroyed || gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.state.IsLoading = false

	if err != nil {
		c.state.Phase = PhaseError
		c.state.Err = TagFor(err)
		c.opts.Logger.Error("Target video load failed", "video_id", c.opts.TargetID, "error", err)
	} else {
		c.state.seed(item)
		c.state.Phase = PhaseReady
		c.state.refreshPhase()
		c.playback.sync(c.state.current())
		c.checkPrefetchLocked()
	}
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.notify(snap)
}

// Snapshot returns the current render state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// State returns a deep copy of the feed state
func (c *Controller) State() FeedState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// ActiveID returns the id of the item with playback, or "" when empty
func (c *Controller) ActiveID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playback.activeID
}

// LikePending reports whether a like request for id is still in flight
func (c *Controller) LikePending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interactions.pending(id)
}

func (c *Controller) snapshotLocked() Snapshot {
	s := &c.state
	c.version++
	snap := Snapshot{
		Version:  c.version,
		Mode:     c.opts.Mode,
		Phase:    s.Phase,
		Err:      s.Err,
		Index:    s.CurrentIndex,
		Len:      len(s.Items),
		ActiveID: c.playback.activeID,
		Paused:   c.playback.paused,
		HasMore:  s.HasMore,
		Loading:  s.IsLoading,
	}
	if cur := s.current(); cur != nil {
		item := *cur
		snap.Current = &item
		snap.CanGoPrevious = s.CurrentIndex > 0
		snap.CanGoNext = s.CurrentIndex < len(s.Items)-1

		lo := max(0, s.CurrentIndex-c.opts.WindowRadius)
		hi := min(len(s.Items)-1, s.CurrentIndex+c.opts.WindowRadius)
		snap.Window = make([]Slide, 0, hi-lo+1)
		for i := lo; i <= hi; i++ {
			snap.Window = append(snap.Window, Slide{
				Index:     i,
				Item:      s.Items[i],
				Placement: PlacementFor(i, s.CurrentIndex),
			})
		}
	}
	return snap
}

func (c *Controller) notify(snap Snapshot) {
	if c.opts.OnChange != nil {
		c.opts.OnChange(snap)
	}
}
