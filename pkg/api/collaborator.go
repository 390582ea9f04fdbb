package api

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/zfogg/swipefeed/pkg/feed"
	"github.com/zfogg/swipefeed/pkg/logger"
	"golang.org/x/time/rate"
)

// Collaborator serves the feed engine over HTTP.
// It satisfies feed.Source and feed.Poster.
type Collaborator struct {
	client  *resty.Client
	limiter *rate.Limiter
}

var (
	_ feed.Source = (*Collaborator)(nil)
	_ feed.Poster = (*Collaborator)(nil)
)

// NewCollaborator wraps c. Interaction posts are limited to perSecond
// requests; zero or less disables the limit.
func NewCollaborator(c *resty.Client, perSecond float64) *Collaborator {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if perSecond > 0 {
		burst := int(perSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
	return &Collaborator{client: c, limiter: limiter}
}

// FetchVideoPage implements feed.Source
func (c *Collaborator) FetchVideoPage(ctx context.Context, page, pageSize int, excludeIDs []string) (feed.Page, error) {
	resp, err := GetVideoPage(ctx, c.client, page, pageSize, excludeIDs)
	if err != nil {
		return feed.Page{}, engineError(err)
	}
	return resp.ToPage(), nil
}

// FetchVideoByID implements feed.Source
func (c *Collaborator) FetchVideoByID(ctx context.Context, id string) (feed.VideoItem, error) {
	resp, err := GetVideo(ctx, c.client, id)
	if err != nil {
		return feed.VideoItem{}, engineError(err)
	}
	return resp.Video.ToItem(), nil
}

// PostInteraction implements feed.Poster
func (c *Collaborator) PostInteraction(ctx context.Context, kind feed.InteractionKind, videoID string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("interaction rate limit: %w", err)
	}
	_, err := PostInteraction(ctx, c.client, kind, videoID)
	return err
}

// engineError tags collaborator failures with the engine's sentinels
func engineError(err error) error {
	switch {
	case IsNotFound(err), IsForbidden(err):
		return fmt.Errorf("%w: %w", feed.ErrNotFound, err)
	case IsUnauthorized(err):
		logger.Warn("Video service rejected the token", "error", err)
	case IsServerError(err):
		logger.Warn("Video service failed", "error", err)
	}
	return fmt.Errorf("%w: %w", feed.ErrNetwork, err)
}
