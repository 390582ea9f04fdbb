package api

import "github.com/zfogg/swipefeed/pkg/feed"

// Video is the wire shape of one feed entry
type Video struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	AuthorUsername  string  `json:"author_username"`
	MediaURL        string  `json:"media_url"`
	DurationSeconds float64 `json:"duration_seconds"`
	IsLiked         bool    `json:"is_liked"`
	LikeCount       int     `json:"like_count"`
	CommentCount    int     `json:"comment_count"`
	ShareCount      int     `json:"share_count"`
	ViewCount       int     `json:"view_count"`
}

// ToItem converts the wire shape into an engine item
func (v Video) ToItem() feed.VideoItem {
	return feed.VideoItem{
		ID:              v.ID,
		Title:           v.Title,
		Owner:           v.AuthorUsername,
		MediaURL:        v.MediaURL,
		DurationSeconds: v.DurationSeconds,
		IsLiked:         v.IsLiked,
		Stats: feed.Stats{
			Likes:    v.LikeCount,
			Comments: v.CommentCount,
			Shares:   v.ShareCount,
			Views:    v.ViewCount,
		},
	}
}

// VideoPageResponse is returned by the paged feed endpoint
type VideoPageResponse struct {
	Videos   []Video `json:"videos"`
	HasMore  bool    `json:"has_more"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

// ToPage converts the response into an engine page
func (r VideoPageResponse) ToPage() feed.Page {
	items := make([]feed.VideoItem, 0, len(r.Videos))
	for _, v := range r.Videos {
		items = append(items, v.ToItem())
	}
	return feed.Page{Items: items, HasMore: r.HasMore}
}

// VideoResponse wraps a single video
type VideoResponse struct {
	Video Video `json:"video"`
}

// InteractionResponse is returned after a like, unlike, share or comment
type InteractionResponse struct {
	Status       string `json:"status"`
	LikeCount    int    `json:"like_count"`
	CommentCount int    `json:"comment_count"`
	ShareCount   int    `json:"share_count"`
}

// Error Response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
