package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zfogg/swipefeed/pkg/feed"
)

// Key bindings
var keys = struct {
	Quit     key.Binding
	Exit     key.Binding
	Next     key.Binding
	Previous key.Binding
	Play     key.Binding
	Like     key.Binding
	Share    key.Binding
	Comment  key.Binding
	Retry    key.Binding
	Help     key.Binding
}{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
	Exit:     key.NewBinding(key.WithKeys("esc")),
	Next:     key.NewBinding(key.WithKeys("down", "j")),
	Previous: key.NewBinding(key.WithKeys("up", "k")),
	Play:     key.NewBinding(key.WithKeys(" ", "space", "p")),
	Like:     key.NewBinding(key.WithKeys("l")),
	Share:    key.NewBinding(key.WithKeys("s")),
	Comment:  key.NewBinding(key.WithKeys("c")),
	Retry:    key.NewBinding(key.WithKeys("r")),
	Help:     key.NewBinding(key.WithKeys("?")),
}

// feedEvent translates navigation keys into recognizer input. Arrow keys
// and Escape go through the recognizer so terminal and pointer input share
// one path.
func feedEvent(msg tea.KeyMsg) (feed.Event, bool) {
	switch {
	case key.Matches(msg, keys.Next):
		return feed.KeyDown(feed.KeyArrowDown), true
	case key.Matches(msg, keys.Previous):
		return feed.KeyDown(feed.KeyArrowUp), true
	case key.Matches(msg, keys.Exit):
		return feed.KeyDown(feed.KeyEscape), true
	case key.Matches(msg, keys.Play):
		return feed.VideoTap(), true
	}
	return feed.Event{}, false
}

// pointerEvent translates a mouse event. Terminal rows are scaled by
// rowPixels so the recognizer thresholds keep their pixel meaning.
// The wheel behaves like the arrow keys.
func pointerEvent(msg tea.MouseMsg, rowPixels float64) (feed.Event, bool) {
	y := float64(msg.Y) * rowPixels
	switch {
	case msg.Button == tea.MouseButtonWheelDown:
		return feed.KeyDown(feed.KeyArrowDown), true
	case msg.Button == tea.MouseButtonWheelUp:
		return feed.KeyDown(feed.KeyArrowUp), true
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		return feed.PointerDown(y), true
	case msg.Action == tea.MouseActionMotion:
		return feed.PointerMove(y), true
	case msg.Action == tea.MouseActionRelease:
		return feed.PointerUp(), true
	}
	return feed.Event{}, false
}
