package feed

import "math"

// Key names understood by the recognizer
const (
	KeyArrowUp   = "ArrowUp"
	KeyArrowDown = "ArrowDown"
	KeyEscape    = "Escape"
)

// Default gesture thresholds in pixels
const (
	DefaultScrollThreshold = 20
	DefaultCommitThreshold = 50
)

// EventKind identifies a raw input event
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventKeyDown
	EventVideoTap
)

// Event is a raw pointer, key or tap event from the host
type Event struct {
	Kind EventKind
	Y    float64
	Key  string
}

// PointerDown creates a pointer-down/touch-start event at y
func PointerDown(y float64) Event { return Event{Kind: EventPointerDown, Y: y} }

// PointerMove creates a pointer-move event at y
func PointerMove(y float64) Event { return Event{Kind: EventPointerMove, Y: y} }

// PointerUp creates a pointer-up/touch-end event
func PointerUp() Event { return Event{Kind: EventPointerUp} }

// KeyDown creates a key press event
func KeyDown(key string) Event { return Event{Kind: EventKeyDown, Key: key} }

// VideoTap creates a plain tap on the playing surface
func VideoTap() Event { return Event{Kind: EventVideoTap} }

// Intent is the navigation command produced by a completed gesture
type Intent int

const (
	IntentNone Intent = iota
	IntentNext
	IntentPrevious
	IntentTogglePlay
	IntentExit
)

func (i Intent) String() string {
	switch i {
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	case IntentTogglePlay:
		return "toggle-play"
	case IntentExit:
		return "exit"
	default:
		return "none"
	}
}

// Thresholds configures the recognizer. Scroll separates a tap from a swipe
// attempt, Commit is the travel needed for a swipe to navigate.
type Thresholds struct {
	Scroll float64
	Commit float64
}

// DefaultThresholds returns the 20px/50px thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{Scroll: DefaultScrollThreshold, Commit: DefaultCommitThreshold}
}

// GestureState is the ephemeral state of one pointer gesture
type GestureState struct {
	OriginY   float64
	LastY     float64
	Active    bool
	Committed bool
}

// Result is what the recognizer reports for one event
type Result struct {
	Intent Intent
	// SuppressDefault asks the host to cancel native scrolling and
	// pull-to-refresh for this event.
	SuppressDefault bool
}

// Recognize advances the gesture state by one event. It never emits an
// intent for pointer events outside a full down→up cycle.
func Recognize(s GestureState, ev Event, th Thresholds) (GestureState, Result) {
	switch ev.Kind {
	case EventPointerDown:
		return GestureState{OriginY: ev.Y, LastY: ev.Y, Active: true}, Result{}

	case EventPointerMove:
		if !s.Active {
			return s, Result{}
		}
		s.LastY = ev.Y
		if math.Abs(s.LastY-s.OriginY) > th.Scroll {
			s.Committed = true
		}
		return s, Result{SuppressDefault: s.Committed}

	case EventPointerUp:
		if !s.Active {
			return GestureState{}, Result{}
		}
		if !s.Committed {
			return GestureState{}, Result{Intent: IntentTogglePlay}
		}
		delta := s.LastY - s.OriginY
		res := Result{SuppressDefault: true}
		if math.Abs(delta) > th.Commit {
			if delta < 0 {
				res.Intent = IntentNext
			} else {
				res.Intent = IntentPrevious
			}
		}
		return GestureState{}, res

	case EventKeyDown:
		switch ev.Key {
		case KeyArrowDown:
			return s, Result{Intent: IntentNext}
		case KeyArrowUp:
			return s, Result{Intent: IntentPrevious}
		case KeyEscape:
			return s, Result{Intent: IntentExit}
		}
		return s, Result{}

	case EventVideoTap:
		return s, Result{Intent: IntentTogglePlay}
	}
	return s, Result{}
}
