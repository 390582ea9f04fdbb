package feed

import (
	"context"
	"time"
)

// Defaults for paginated loading
const (
	DefaultPageSize          = 10
	DefaultPrefetchThreshold = 3
	DefaultFetchTimeout      = 10 * time.Second
)

// Source is the collaborator that serves video pages and single videos.
// FetchVideoByID must return an error wrapping ErrNotFound when the video
// is absent or private.
type Source interface {
	FetchVideoPage(ctx context.Context, page, pageSize int, excludeIDs []string) (Page, error)
	FetchVideoByID(ctx context.Context, id string) (VideoItem, error)
}

// Loader fetches pages and target videos with a bounded timeout and
// classifies failures as ErrNetwork or ErrNotFound. Single-flight and
// deduplication are applied by the Controller against its FeedState.
type Loader struct {
	source   Source
	pageSize int
	timeout  time.Duration
}

// NewLoader creates a loader. Non-positive pageSize and timeout fall back to
// the defaults.
func NewLoader(source Source, pageSize int, timeout time.Duration) *Loader {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if timeout <= 0 {
		timeout = DefaultFetchTimeout
	}
	return &Loader{source: source, pageSize: pageSize, timeout: timeout}
}

// PageSize returns the page size requested from the source
func (l *Loader) PageSize() int {
	return l.pageSize
}

// LoadPage fetches one page, excluding the given ids
func (l *Loader) LoadPage(ctx context.Context, page int, excludeIDs []string) (Page, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	p, err := l.source.FetchVideoPage(ctx, page, l.pageSize, excludeIDs)
	if err != nil {
		return Page{}, classify(err)
	}
	return p, nil
}

// LoadTarget fetches the single video a target-first feed starts from
func (l *Loader) LoadTarget(ctx context.Context, id string) (VideoItem, error) {
	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	item, err := l.source.FetchVideoByID(ctx, id)
	if err != nil {
		return VideoItem{}, classify(err)
	}
	if item.ID == "" {
		return VideoItem{}, ErrNotFound
	}
	return item, nil
}

// shouldPrefetch reports whether the next page must be requested
func shouldPrefetch(s *FeedState, threshold int) bool {
	if !s.HasMore || s.IsLoading || s.PrefetchHalted || s.Destroyed {
		return false
	}
	if s.Phase == PhaseInitializing || s.Phase == PhaseError {
		return false
	}
	return s.CurrentIndex >= len(s.Items)-threshold
}
