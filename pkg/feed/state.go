package feed

import "sort"

// Phase is the controller lifecycle state
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseReady
	PhaseExhausted
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseReady:
		return "ready"
	case PhaseExhausted:
		return "exhausted"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// FeedState is the single mutable state of one mounted feed. Only the
// Controller mutates it.
type FeedState struct {
	Items        []VideoItem
	CurrentIndex int
	Page         int
	HasMore      bool
	IsLoading    bool
	ExcludedIDs  map[string]struct{}
	Err          ErrorTag
	Phase        Phase
	// PrefetchHalted is set after a continuation page fails.
	PrefetchHalted bool
	Destroyed      bool

	index map[string]int
}

func newFeedState() FeedState {
	return FeedState{
		CurrentIndex: -1,
		HasMore:      true,
		ExcludedIDs:  make(map[string]struct{}),
		index:        make(map[string]int),
	}
}

// reset returns the state to its freshly mounted form.
func (s *FeedState) reset() {
	*s = newFeedState()
}

// appendPage appends items in order, dropping ids already present, excluded
// ids and ids without a value. It returns the number of items added.
func (s *FeedState) appendPage(items []VideoItem) int {
	added := 0
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		if _, dup := s.index[item.ID]; dup {
			continue
		}
		if _, excluded := s.ExcludedIDs[item.ID]; excluded {
			continue
		}
		s.index[item.ID] = len(s.Items)
		s.Items = append(s.Items, item.normalized())
		added++
	}
	return added
}

// seed makes target the only item and excludes it from continuation pages.
func (s *FeedState) seed(target VideoItem) {
	s.Items = nil
	s.index = make(map[string]int)
	s.appendPage([]VideoItem{target})
	s.ExcludedIDs[target.ID] = struct{}{}
	s.CurrentIndex = 0
}

func (s *FeedState) setIndex(i int) bool {
	if i < 0 || i >= len(s.Items) || i == s.CurrentIndex {
		return false
	}
	s.CurrentIndex = i
	return true
}

func (s *FeedState) lookup(id string) (*VideoItem, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return &s.Items[i], true
}

func (s *FeedState) current() *VideoItem {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Items) {
		return nil
	}
	return &s.Items[s.CurrentIndex]
}

func (s *FeedState) excludedList() []string {
	if len(s.ExcludedIDs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(s.ExcludedIDs))
	for id := range s.ExcludedIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// refreshPhase derives Ready/Exhausted once the feed has left initialization.
func (s *FeedState) refreshPhase() {
	if s.Phase == PhaseInitializing || s.Phase == PhaseError {
		return
	}
	if !s.HasMore && s.CurrentIndex >= len(s.Items)-1 {
		s.Phase = PhaseExhausted
		return
	}
	s.Phase = PhaseReady
}

func (s FeedState) clone() FeedState {
	out := s
	out.Items = append([]VideoItem(nil), s.Items...)
	out.ExcludedIDs = make(map[string]struct{}, len(s.ExcludedIDs))
	for id := range s.ExcludedIDs {
		out.ExcludedIDs[id] = struct{}{}
	}
	out.index = nil
	return out
}
