// Package demo provides an in-memory video catalog for offline use.
package demo

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/zfogg/swipefeed/pkg/feed"
)

// Interaction is one request accepted by the catalog
type Interaction struct {
	Kind    feed.InteractionKind
	VideoID string
}

// Catalog is a seeded, in-memory feed.Source and feed.Poster
type Catalog struct {
	mu           sync.Mutex
	videos       []feed.VideoItem
	byID         map[string]int
	latency      time.Duration
	interactions []Interaction
}

var (
	_ feed.Source = (*Catalog)(nil)
	_ feed.Poster = (*Catalog)(nil)
)

// NewCatalog generates size fake videos. The same seed yields the same catalog.
func NewCatalog(size int, seed uint64) *Catalog {
	faker := gofakeit.New(seed)

	c := &Catalog{
		videos: make([]feed.VideoItem, 0, size),
		byID:   make(map[string]int, size),
	}
	for i := 0; i < size; i++ {
		id := fmt.Sprintf("demo-%04d", i+1)
		title := strings.TrimSuffix(faker.HipsterSentence(), ".")
		c.byID[id] = len(c.videos)
		c.videos = append(c.videos, feed.VideoItem{
			ID:              id,
			Title:           title,
			Owner:           faker.Username(),
			MediaURL:        fmt.Sprintf("https://cdn.example.com/videos/%s.mp4", faker.UUID()),
			DurationSeconds: float64(faker.IntRange(6, 60)),
			IsLiked:         faker.Bool() && faker.Bool(),
			Stats: feed.Stats{
				Likes:    faker.IntRange(0, 5000),
				Comments: faker.IntRange(0, 400),
				Shares:   faker.IntRange(0, 200),
				Views:    faker.IntRange(100, 90000),
			},
		})
	}
	return c
}

// WithLatency delays every fetch by d, honouring cancellation
func (c *Catalog) WithLatency(d time.Duration) *Catalog {
	c.mu.Lock()
	c.latency = d
	c.mu.Unlock()
	return c
}

// Len returns the number of videos in the catalog
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.videos)
}

// FetchVideoPage implements feed.Source. Pages are 1-based and computed
// after removing excluded ids.
func (c *Catalog) FetchVideoPage(ctx context.Context, page, pageSize int, excludeIDs []string) (feed.Page, error) {
	if err := c.wait(ctx); err != nil {
		return feed.Page{}, err
	}
	if page < 1 || pageSize < 1 {
		return feed.Page{}, fmt.Errorf("invalid page %d/%d", page, pageSize)
	}

	excluded := make(map[string]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	visible := make([]feed.VideoItem, 0, len(c.videos))
	for _, v := range c.videos {
		if _, skip := excluded[v.ID]; !skip {
			visible = append(visible, v)
		}
	}

	start := (page - 1) * pageSize
	if start >= len(visible) {
		return feed.Page{HasMore: false}, nil
	}
	end := start + pageSize
	if end > len(visible) {
		end = len(visible)
	}

	items := make([]feed.VideoItem, end-start)
	copy(items, visible[start:end])
	return feed.Page{Items: items, HasMore: end < len(visible)}, nil
}

// FetchVideoByID implements feed.Source
func (c *Catalog) FetchVideoByID(ctx context.Context, id string) (feed.VideoItem, error) {
	if err := c.wait(ctx); err != nil {
		return feed.VideoItem{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byID[id]
	if !ok {
		return feed.VideoItem{}, fmt.Errorf("%w: %s", feed.ErrNotFound, id)
	}
	return c.videos[i], nil
}

// PostInteraction implements feed.Poster and updates the stored counters
func (c *Catalog) PostInteraction(ctx context.Context, kind feed.InteractionKind, videoID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.byID[videoID]
	if !ok {
		return fmt.Errorf("%w: %s", feed.ErrNotFound, videoID)
	}
	v := &c.videos[i]
	switch kind {
	case feed.KindLike:
		if !v.IsLiked {
			v.IsLiked = true
			v.Stats.Likes++
		}
	case feed.KindUnlike:
		if v.IsLiked {
			v.IsLiked = false
			if v.Stats.Likes > 0 {
				v.Stats.Likes--
			}
		}
	case feed.KindShare:
		v.Stats.Shares++
	case feed.KindComment:
		v.Stats.Comments++
	default:
		return fmt.Errorf("unsupported interaction kind %q", kind)
	}

	c.interactions = append(c.interactions, Interaction{Kind: kind, VideoID: videoID})
	return nil
}

// Interactions returns the accepted requests in order
func (c *Catalog) Interactions() []Interaction {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Interaction(nil), c.interactions...)
}

func (c *Catalog) wait(ctx context.Context) error {
	c.mu.Lock()
	d := c.latency
	c.mu.Unlock()

	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
