package feed

import "context"

// InteractionKind names a collaborator interaction request
type InteractionKind string

const (
	KindLike    InteractionKind = "like"
	KindUnlike  InteractionKind = "unlike"
	KindShare   InteractionKind = "share"
	KindComment InteractionKind = "comment"
)

// Poster sends interaction requests to the collaborator
type Poster interface {
	PostInteraction(ctx context.Context, kind InteractionKind, videoID string) error
}

// interactions applies optimistic counter mutations to FeedState. Local
// state stays authoritative once mutated; failed requests are not reverted.
type interactions struct {
	likesInFlight map[string]struct{}
}

func newInteractions() *interactions {
	return &interactions{likesInFlight: make(map[string]struct{})}
}

func (m *interactions) toggleLike(s *FeedState, id string) (InteractionKind, error) {
	item, ok := s.lookup(id)
	if !ok {
		return "", ErrUnknownItem
	}
	if _, busy := m.likesInFlight[id]; busy {
		return "", ErrInteractionPending
	}
	m.likesInFlight[id] = struct{}{}

	item.IsLiked = !item.IsLiked
	if item.IsLiked {
		item.Stats.Likes++
		return KindLike, nil
	}
	item.Stats.Likes = nonNegative(item.Stats.Likes - 1)
	return KindUnlike, nil
}

func (m *interactions) recordShare(s *FeedState, id string) error {
	item, ok := s.lookup(id)
	if !ok {
		return ErrUnknownItem
	}
	item.Stats.Shares++
	return nil
}

func (m *interactions) recordCommentAdded(s *FeedState, id string) error {
	item, ok := s.lookup(id)
	if !ok {
		return ErrUnknownItem
	}
	item.Stats.Comments++
	return nil
}

// applyStats reconciles counters pushed by the server. Updates for an id
// with a like in flight are dropped so they cannot undo the optimistic like.
func (m *interactions) applyStats(s *FeedState, id string, update StatsUpdate) bool {
	item, ok := s.lookup(id)
	if !ok || update.Empty() {
		return false
	}
	if _, busy := m.likesInFlight[id]; busy {
		return false
	}
	item.Stats = update.apply(item.Stats)
	return true
}

func (m *interactions) settle(kind InteractionKind, id string) {
	if kind == KindLike || kind == KindUnlike {
		delete(m.likesInFlight, id)
	}
}

func (m *interactions) pending(id string) bool {
	_, busy := m.likesInFlight[id]
	return busy
}
