package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/logger"
	"github.com/zfogg/swipefeed/pkg/service"
)

// Options configures an interactive viewing session
type Options struct {
	Backend  service.Backend
	TargetID string
	Live     bool
}

// Run opens the feed full screen and blocks until the user leaves it
func Run(opts Options) error {
	updates := NewUpdates()
	player := NewPlayer(nil)

	sess, err := service.StartSession(service.SessionOptions{
		TargetID: opts.TargetID,
		Backend:  opts.Backend,
		Player:   player,
		Live:     opts.Live,
		OnChange: updates.Push,
		OnExit:   func() { logger.Debug("Feed exit requested") },
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	player.OnEnded(sess.Controller.MediaEnded)

	app := New(sess.Controller, player, updates, config.GetFloat("gesture.row_pixels"))
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("Starting viewer", "target", opts.TargetID, "live", opts.Live)
	if _, err := p.Run(); err != nil {
		logger.Error("Viewer error", "error", err)
		return err
	}
	return nil
}
