package service

import (
	"context"
	"fmt"
	"time"

	"github.com/zfogg/swipefeed/pkg/api"
	"github.com/zfogg/swipefeed/pkg/client"
	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/demo"
	"github.com/zfogg/swipefeed/pkg/feed"
	"github.com/zfogg/swipefeed/pkg/logger"
	"github.com/zfogg/swipefeed/pkg/output"
)

// Backend is everything the feed needs from a collaborator
type Backend interface {
	feed.Source
	feed.Poster
}

// NewBackend returns the offline demo catalog or the HTTP collaborator
func NewBackend(offline bool) Backend {
	if offline {
		logger.Debug("Using offline demo catalog", "size", config.GetInt("demo.size"))
		return demo.NewCatalog(config.GetInt("demo.size"), uint64(config.GetInt("demo.seed")))
	}
	return api.NewCollaborator(client.GetClient(), config.GetFloat("api.interaction_rate"))
}

// VideoService provides one-shot video operations for the CLI
type VideoService struct {
	backend Backend
	loader  *feed.Loader
}

// NewVideoService creates a new video service
func NewVideoService(backend Backend) *VideoService {
	return &VideoService{
		backend: backend,
		loader: feed.NewLoader(backend,
			config.GetInt("feed.page_size"),
			config.GetDuration("api.timeout", time.Second)),
	}
}

// ShowPage prints one page of the main feed
func (vs *VideoService) ShowPage(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("page must be 1 or greater, got %d", page)
	}
	logger.Debug("Showing feed page", "page", page)

	p, err := vs.loader.LoadPage(ctx, page, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch page %d: %w", page, err)
	}

	if len(p.Items) == 0 {
		output.PrintInfo("No videos on page %d.", page)
		return nil
	}
	return output.PrintVideos(page, p.Items, p.HasMore)
}

// ShowVideo prints a single video
func (vs *VideoService) ShowVideo(ctx context.Context, videoID string) error {
	logger.Debug("Showing video", "video_id", videoID)

	item, err := vs.loader.LoadTarget(ctx, videoID)
	if err != nil {
		return fmt.Errorf("failed to fetch video %s: %w", videoID, err)
	}
	return output.PrintVideo(item)
}

// Interact posts one interaction for a video
func (vs *VideoService) Interact(ctx context.Context, kind feed.InteractionKind, videoID string) error {
	logger.Debug("Posting interaction", "kind", kind, "video_id", videoID)

	if err := vs.backend.PostInteraction(ctx, kind, videoID); err != nil {
		return fmt.Errorf("failed to %s video %s: %w", kind, videoID, err)
	}

	output.PrintSuccess("%s recorded for %s", pastTense(kind), videoID)
	return nil
}

func pastTense(kind feed.InteractionKind) string {
	switch kind {
	case feed.KindLike:
		return "Like"
	case feed.KindUnlike:
		return "Unlike"
	case feed.KindShare:
		return "Share"
	case feed.KindComment:
		return "Comment"
	default:
		return string(kind)
	}
}
