package tui

import "github.com/charmbracelet/lipgloss"

// Colors used by the viewer.
var (
	colorPrimary   = lipgloss.Color("62")  // Purple
	colorSecondary = lipgloss.Color("241") // Gray
	colorMuted     = lipgloss.Color("240") // Darker gray
	colorHighlight = lipgloss.Color("212") // Pink
	colorSuccess   = lipgloss.Color("78")  // Green
)

// Header style for the top bar.
var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255")).
	Background(colorPrimary).
	Padding(0, 1)

// ActiveCard frames the playing video.
var ActiveCard = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(colorHighlight).
	Padding(0, 1)

// ParkedSlide style for the neighbours above and below the active card.
var ParkedSlide = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(0, 2)

// Title style inside the active card.
var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("255"))

// Owner style for the @username line.
var Owner = lipgloss.NewStyle().
	Foreground(colorSecondary)

// Liked marks a liked heart.
var Liked = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// ProgressFill and ProgressTrack draw the playback bar.
var (
	ProgressFill  = lipgloss.NewStyle().Foreground(colorSuccess)
	ProgressTrack = lipgloss.NewStyle().Foreground(colorMuted)
)

// StatusBar style for the bottom status bar.
var StatusBar = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// StatusBarKey style for key hints in the status bar.
var StatusBarKey = lipgloss.NewStyle().
	Foreground(colorHighlight).
	Bold(true)

// ErrorStyle for a failed feed.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("196")).
	Bold(true).
	Padding(0, 1)

// HelpStyle for help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(colorMuted).
	Padding(1, 2)

// Spinner style while pages load.
var Spinner = lipgloss.NewStyle().
	Foreground(colorHighlight)
