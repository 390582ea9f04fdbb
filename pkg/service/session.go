package service

import (
	"context"
	"fmt"

	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/credentials"
	"github.com/zfogg/swipefeed/pkg/feed"
	"github.com/zfogg/swipefeed/pkg/logger"
	"github.com/zfogg/swipefeed/pkg/metrics"
	"github.com/zfogg/swipefeed/pkg/websocket"
)

// SessionOptions describes one interactive viewing session
type SessionOptions struct {
	TargetID  string
	Backend   Backend
	Player    feed.Player
	Scheduler feed.Scheduler
	Live      bool
	OnChange  func(feed.Snapshot)
	OnExit    func()
}

// Session owns a feed controller and the live services attached to it
type Session struct {
	Controller *feed.Controller
	Metrics    *metrics.Recorder

	live      *websocket.Client
	stopStats func()
	cancel    context.CancelFunc
}

// StartSession builds a controller from config and starts loading
func StartSession(opts SessionOptions) (*Session, error) {
	if opts.Backend == nil {
		return nil, fmt.Errorf("session requires a backend")
	}

	recorder := metrics.NewRecorder()

	fo := config.FeedOptions()
	fo.Source = opts.Backend
	fo.Poster = opts.Backend
	fo.Player = opts.Player
	fo.Scheduler = opts.Scheduler
	fo.Logger = logger.Engine()
	fo.Metrics = recorder
	fo.OnChange = opts.OnChange
	fo.OnExit = opts.OnExit
	if opts.TargetID != "" {
		fo.Mode = feed.EntryTarget
		fo.TargetID = opts.TargetID
	}

	ctrl, err := feed.New(fo)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{Controller: ctrl, Metrics: recorder, cancel: cancel}

	if addr := config.GetString("metrics.addr"); addr != "" {
		go func() {
			if err := recorder.Serve(ctx, addr); err != nil {
				logger.Warn("Metrics server stopped", "addr", addr, "error", err)
			}
		}()
	}

	if opts.Live {
		s.attachLive()
	}

	ctrl.Start()
	return s, nil
}

// attachLive connects the websocket and feeds counter pushes into the
// controller. A failed connection only disables live counters.
func (s *Session) attachLive() {
	live := websocket.NewClient(websocket.ConfigFromSettings())
	s.stopStats = live.OnStats(func(videoID string, update feed.StatsUpdate) {
		if !s.Controller.ApplyStats(videoID, update) {
			logger.Debug("Stats push ignored", "video_id", videoID)
		}
	})
	if err := live.Connect(credentials.Token()); err != nil {
		logger.Warn("Live counters unavailable", "error", err)
		s.stopStats()
		s.stopStats = nil
		return
	}
	s.live = live
}

// Close tears down the controller and every attached service
func (s *Session) Close() {
	s.Controller.Destroy()
	if s.stopStats != nil {
		s.stopStats()
	}
	if s.live != nil {
		_ = s.live.Disconnect()
	}
	s.cancel()
}
