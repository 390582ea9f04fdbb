// Package feed implements the swipe-driven short-video feed engine: gesture
// recognition, paginated loading, playback synchronisation and optimistic
// interaction counters, orchestrated by a Controller.
package feed

// Stats holds the interaction counters shown on a video
type Stats struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
	Views    int `json:"views"`
}

// StatsUpdate carries counters pushed by the server. Nil fields are left
// unchanged.
type StatsUpdate struct {
	Likes    *int `json:"like_count,omitempty"`
	Comments *int `json:"comment_count,omitempty"`
	Shares   *int `json:"share_count,omitempty"`
	Views    *int `json:"view_count,omitempty"`
}

// FullUpdate replaces every counter with the values in s
func FullUpdate(s Stats) StatsUpdate {
	return StatsUpdate{Likes: &s.Likes, Comments: &s.Comments, Shares: &s.Shares, Views: &s.Views}
}

// Empty reports whether u changes nothing
func (u StatsUpdate) Empty() bool {
	return u.Likes == nil && u.Comments == nil && u.Shares == nil && u.Views == nil
}

func (u StatsUpdate) apply(s Stats) Stats {
	if u.Likes != nil {
		s.Likes = *u.Likes
	}
	if u.Comments != nil {
		s.Comments = *u.Comments
	}
	if u.Shares != nil {
		s.Shares = *u.Shares
	}
	if u.Views != nil {
		s.Views = *u.Views
	}
	return s.normalized()
}

// VideoItem is an opaque video descriptor. Identity is by ID.
type VideoItem struct {
	ID              string  `json:"id"`
	Title           string  `json:"title,omitempty"`
	Owner           string  `json:"owner,omitempty"`
	MediaURL        string  `json:"media_url,omitempty"`
	DurationSeconds float64 `json:"duration_seconds"`
	IsLiked         bool    `json:"is_liked"`
	Stats           Stats   `json:"stats"`
}

// Page is one ordered page returned by a Source
type Page struct {
	Items   []VideoItem
	HasMore bool
}

func (s Stats) normalized() Stats {
	return Stats{
		Likes:    nonNegative(s.Likes),
		Comments: nonNegative(s.Comments),
		Shares:   nonNegative(s.Shares),
		Views:    nonNegative(s.Views),
	}
}

func (v VideoItem) normalized() VideoItem {
	if v.DurationSeconds < 0 {
		v.DurationSeconds = 0
	}
	v.Stats = v.Stats.normalized()
	return v
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
