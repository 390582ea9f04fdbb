// Package tui hosts the swipe feed in a terminal.
//
// The view is dumb: every decision about which video is current, what is
// playing and when to fetch belongs to the feed.Controller. The Model
// forwards keys and mouse drags to the controller and renders the
// snapshots it publishes.
//
// # Input
//
//   - up/down, j/k and the mouse wheel move one video
//   - dragging with the left button swipes; a click toggles play
//   - space pauses, l likes, s shares, c records a comment
//   - esc exits the feed, r retries a failed load
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zfogg/swipefeed/pkg/feed"
)

const progressInterval = 250 * time.Millisecond

// Updates buffers controller snapshots for the program loop. Snapshots
// are complete, so when the buffer is full the oldest one is dropped.
type Updates struct {
	ch chan feed.Snapshot
}

// NewUpdates creates an empty buffer
func NewUpdates() *Updates {
	return &Updates{ch: make(chan feed.Snapshot, 16)}
}

// Push queues snap without blocking. It is safe as feed.Options.OnChange.
func (u *Updates) Push(snap feed.Snapshot) {
	for {
		select {
		case u.ch <- snap:
			return
		default:
		}
		select {
		case <-u.ch:
		default:
		}
	}
}

// Message types for tea.Cmd
type (
	snapshotMsg     feed.Snapshot
	progressTickMsg time.Time
)

// Model is the root Bubble Tea model for the feed viewer.
type Model struct {
	ctrl      *feed.Controller
	player    *Player
	updates   *Updates
	rowPixels float64

	snap      feed.Snapshot
	width     int
	height    int
	spinner   spinner.Model
	showHelp  bool
	statusMsg string
}

// New creates a viewer for ctrl. rowPixels scales terminal rows into
// recognizer pixels.
func New(ctrl *feed.Controller, player *Player, updates *Updates, rowPixels float64) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Spinner

	if rowPixels <= 0 {
		rowPixels = 16
	}

	return Model{
		ctrl:      ctrl,
		player:    player,
		updates:   updates,
		rowPixels: rowPixels,
		snap:      ctrl.Snapshot(),
		spinner:   s,
		statusMsg: "Loading...",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.listenForSnapshots(),
		tickProgress(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if ev, ok := pointerEvent(msg, m.rowPixels); ok {
			m.ctrl.Dispatch(ev)
			m.snap = m.ctrl.Snapshot()
		}

	case snapshotMsg:
		// Notifications can arrive out of order; keep the newest state.
		if msg.Version >= m.snap.Version {
			m.snap = feed.Snapshot(msg)
			m.statusMsg = statusFor(m.snap)
		}
		cmds = append(cmds, m.listenForSnapshots())

	case progressTickMsg:
		cmds = append(cmds, tickProgress())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	if ev, ok := feedEvent(msg); ok {
		res := m.ctrl.Dispatch(ev)
		m.snap = m.ctrl.Snapshot()
		if res.Intent == feed.IntentExit {
			return m, tea.Quit
		}
		return m, nil
	}

	id := m.snap.ActiveID
	switch {
	case key.Matches(msg, keys.Like):
		m.report(m.ctrl.ToggleLike(id), "Like")
	case key.Matches(msg, keys.Share):
		m.report(m.ctrl.RecordShare(id), "Shared")
	case key.Matches(msg, keys.Comment):
		m.report(m.ctrl.RecordCommentAdded(id), "Comment recorded")
	case key.Matches(msg, keys.Retry):
		if m.ctrl.Retry() {
			m.statusMsg = "Retrying..."
		} else {
			m.statusMsg = "Nothing to retry"
		}
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
	}
	m.snap = m.ctrl.Snapshot()
	return m, nil
}

func (m *Model) report(err error, done string) {
	switch {
	case err == nil:
		m.statusMsg = done
	case errors.Is(err, feed.ErrInteractionPending):
		m.statusMsg = "Still saving the last like"
	case errors.Is(err, feed.ErrUnknownItem):
		m.statusMsg = "No video selected"
	default:
		m.statusMsg = fmt.Sprintf("Error: %v", err)
	}
}

func statusFor(s feed.Snapshot) string {
	switch {
	case s.Phase == feed.PhaseError:
		return fmt.Sprintf("Error: %s", s.Err)
	case s.Loading:
		return "Loading..."
	case s.Phase == feed.PhaseExhausted:
		return "End of feed"
	default:
		return fmt.Sprintf("%d videos", s.Len)
	}
}

func (m Model) listenForSnapshots() tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(<-m.updates.ch)
	}
}

func tickProgress() tea.Cmd {
	return tea.Tick(progressInterval, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderFeed())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m Model) renderHeader() string {
	left := fmt.Sprintf("SWIPEFEED │ %s", m.snap.Mode)
	if m.snap.Len > 0 {
		left += fmt.Sprintf(" │ %d/%d", m.snap.Index+1, m.snap.Len)
		if m.snap.HasMore {
			left += "+"
		}
	}

	right := ""
	if m.snap.Loading {
		right = m.spinner.View() + " loading"
	}

	padding := m.width - len(left) - len(right) - 4
	if padding < 0 {
		padding = 0
	}

	return Header.Render(left + strings.Repeat(" ", padding) + right)
}

func (m Model) renderFeed() string {
	s := m.snap
	switch {
	case s.Phase == feed.PhaseError:
		return ErrorStyle.Render(fmt.Sprintf("Could not load the feed (%s)", s.Err)) +
			"\n" + HelpStyle.Render("Press r to retry or q to quit")
	case s.Len == 0 && s.Phase == feed.PhaseExhausted:
		return HelpStyle.Render("No videos yet")
	case s.Len == 0:
		return HelpStyle.Render(m.spinner.View() + " Loading feed...")
	}

	var b strings.Builder
	for _, slide := range s.Window {
		switch slide.Placement {
		case feed.PlacementAbove:
			b.WriteString(ParkedSlide.Render("▲ " + label(slide.Item)))
		case feed.PlacementBelow:
			b.WriteString(ParkedSlide.Render("▼ " + label(slide.Item)))
		default:
			b.WriteString(ActiveCard.Render(m.renderCard(slide.Item)))
		}
		b.WriteString("\n")
	}
	if !s.CanGoNext && !s.HasMore {
		b.WriteString(HelpStyle.Render("End of feed"))
	}
	return b.String()
}

func (m Model) renderCard(item feed.VideoItem) string {
	var b strings.Builder
	b.WriteString(Title.Render(label(item)))
	b.WriteString("\n")
	if item.Owner != "" {
		b.WriteString(Owner.Render("@" + item.Owner))
		b.WriteString("\n")
	}
	b.WriteString(m.renderProgress(item.ID))
	b.WriteString("\n")

	heart := "♡"
	if item.IsLiked {
		heart = Liked.Render("♥")
	}
	fmt.Fprintf(&b, "%s %d  comments %d  shares %d  views %d",
		heart, item.Stats.Likes, item.Stats.Comments, item.Stats.Shares, item.Stats.Views)
	if m.ctrl.LikePending(item.ID) {
		b.WriteString("  (saving)")
	}
	return b.String()
}

func (m Model) renderProgress(id string) string {
	const width = 30

	state := "▶"
	if m.snap.Paused {
		state = "❚❚"
	}
	if m.player == nil {
		return state
	}

	active, played, total := m.player.Progress()
	if active != id || total <= 0 {
		return state
	}
	filled := int(float64(width) * float64(played) / float64(total))
	bar := ProgressFill.Render(strings.Repeat("━", filled)) +
		ProgressTrack.Render(strings.Repeat("─", width-filled))
	line := fmt.Sprintf("%s %s %s / %s", state, bar, clock(played), clock(total))
	if m.player.Muted() {
		line += " (muted)"
	}
	return line
}

func (m Model) renderStatusBar() string {
	help := StatusBarKey.Render("↑/↓") + " move  " +
		StatusBarKey.Render("space") + " play  " +
		StatusBarKey.Render("l") + " like  " +
		StatusBarKey.Render("?") + " help  " +
		StatusBarKey.Render("q") + " quit"
	return StatusBar.Render(fmt.Sprintf("[%s] %s │ %s", m.snap.Phase, m.statusMsg, help))
}

func (m Model) renderHelp() string {
	help := `
  NAVIGATION
    ↑/↓, j/k      Previous / next video
    mouse drag    Swipe up or down
    wheel         Previous / next video
    click, space  Play / pause

  INTERACTIONS
    l             Like / unlike
    s             Share
    c             Record a comment

  OTHER
    r             Retry a failed load
    esc           Leave the feed
    ?             Toggle this help
`
	return HelpStyle.Render(help)
}

func label(item feed.VideoItem) string {
	if item.Title != "" {
		return item.Title
	}
	return item.ID
}

func clock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
