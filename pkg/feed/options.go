package feed

import (
	"fmt"
	"time"
)

// EntryMode selects how a feed starts
type EntryMode int

const (
	// EntryCold loads page 1 of the general feed.
	EntryCold EntryMode = iota
	// EntryTarget loads one known video first, then a continuation feed
	// that excludes it.
	EntryTarget
)

func (m EntryMode) String() string {
	if m == EntryTarget {
		return "target"
	}
	return "cold"
}

// Logger is the structured logger the engine writes to
type Logger interface {
	Debug(msg string, keyvals ...interface{})
	Warn(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

// Metrics receives engine events
type Metrics interface {
	PageFetched(page, added int, err error)
	Navigated(intent Intent, moved bool)
	InteractionPosted(kind InteractionKind, err error)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type nopMetrics struct{}

func (nopMetrics) PageFetched(int, int, error)             {}
func (nopMetrics) Navigated(Intent, bool)                  {}
func (nopMetrics) InteractionPosted(InteractionKind, error) {}

// Options configures a Controller
type Options struct {
	Mode     EntryMode
	TargetID string

	Source Source
	Poster Poster
	Player Player

	PageSize          int
	PrefetchThreshold int
	FetchTimeout      time.Duration
	Thresholds        Thresholds
	AdvanceDelay      time.Duration
	Muted             bool
	// WindowRadius is how many slides on each side of the current one a
	// Snapshot carries.
	WindowRadius int

	Scheduler Scheduler
	Logger    Logger
	Metrics   Metrics

	// OnChange is called after every state change, outside the lock.
	OnChange func(Snapshot)
	// OnExit is called when the exit intent is recognised.
	OnExit func()
}

// DefaultOptions returns options with every tunable at its default
func DefaultOptions() Options {
	return Options{
		PageSize:          DefaultPageSize,
		PrefetchThreshold: DefaultPrefetchThreshold,
		FetchTimeout:      DefaultFetchTimeout,
		Thresholds:        DefaultThresholds(),
		AdvanceDelay:      DefaultAdvanceDelay,
		WindowRadius:      1,
	}
}

func (o *Options) validate() error {
	if o.Source == nil {
		return fmt.Errorf("feed: a source is required")
	}
	if o.Mode == EntryTarget && o.TargetID == "" {
		return fmt.Errorf("feed: target mode requires a target id")
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = DefaultFetchTimeout
	}
	if o.PrefetchThreshold <= 0 {
		o.PrefetchThreshold = DefaultPrefetchThreshold
	}
	if o.Thresholds.Scroll <= 0 {
		o.Thresholds.Scroll = DefaultScrollThreshold
	}
	if o.Thresholds.Commit <= 0 {
		o.Thresholds.Commit = DefaultCommitThreshold
	}
	if o.WindowRadius < 0 {
		o.WindowRadius = 0
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	if o.Metrics == nil {
		o.Metrics = nopMetrics{}
	}
	return nil
}
