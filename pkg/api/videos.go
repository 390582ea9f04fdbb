package api

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/zfogg/swipefeed/pkg/feed"
	"github.com/zfogg/swipefeed/pkg/logger"
)

// GetVideoPage retrieves one page of the main feed, skipping excluded ids
func GetVideoPage(ctx context.Context, c *resty.Client, page, pageSize int, excludeIDs []string) (*VideoPageResponse, error) {
	logger.Debug("Fetching video page", "page", page, "page_size", pageSize, "excluded", len(excludeIDs))

	var response VideoPageResponse

	req := c.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"page":      strconv.Itoa(page),
			"page_size": strconv.Itoa(pageSize),
		}).
		SetResult(&response)
	if len(excludeIDs) > 0 {
		req.SetQueryParam("exclude", strings.Join(excludeIDs, ","))
	}

	resp, err := req.Get("/api/v1/videos/feed")
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &response, nil
}

// GetVideo retrieves a single video by id
func GetVideo(ctx context.Context, c *resty.Client, videoID string) (*VideoResponse, error) {
	logger.Debug("Fetching video", "video_id", videoID)

	var response VideoResponse

	resp, err := c.R().
		SetContext(ctx).
		SetPathParam("id", videoID).
		SetResult(&response).
		Get("/api/v1/videos/{id}")
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &response, nil
}

// PostInteraction records a like, unlike, share or comment on a video
func PostInteraction(ctx context.Context, c *resty.Client, kind feed.InteractionKind, videoID string) (*InteractionResponse, error) {
	logger.Debug("Posting interaction", "kind", kind, "video_id", videoID)

	switch kind {
	case feed.KindLike, feed.KindUnlike, feed.KindShare, feed.KindComment:
	default:
		return nil, fmt.Errorf("unsupported interaction kind %q", kind)
	}

	var response InteractionResponse

	resp, err := c.R().
		SetContext(ctx).
		SetPathParams(map[string]string{
			"id":   videoID,
			"kind": string(kind),
		}).
		SetResult(&response).
		Post("/api/v1/videos/{id}/{kind}")
	if err := CheckResponse(resp, err); err != nil {
		return nil, err
	}

	return &response, nil
}
