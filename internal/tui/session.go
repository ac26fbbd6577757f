package tui

import (
	"context"
	"sync"

	"github.com/jmylchreest/devconsole/internal/config"
	"github.com/jmylchreest/devconsole/internal/console"
)

// session is the part of Run that outlives the program's loop: the console
// routing, the feeds and the config watcher.
type session struct {
	console *console.Console
	model   *Model
	disp    *programDispatcher
	watcher *config.Watcher

	stopFeeds context.CancelFunc
	feeds     sync.WaitGroup
}

// newSession routes c's output through disp.
func newSession(c *console.Console, m *Model, disp *programDispatcher) *session {
	c.SetDispatcher(disp)
	return &session{
		console:   c,
		model:     m,
		disp:      disp,
		stopFeeds: func() {},
	}
}

// startFeeds runs each feed in its own goroutine until close.
func (s *session) startFeeds(ctx context.Context, feeds []func(context.Context)) {
	ctx, s.stopFeeds = context.WithCancel(ctx)
	for _, feed := range feeds {
		s.feeds.Go(func() { feed(ctx) })
	}
}

// close runs once the loop has stopped. Feeds and the watcher are stopped
// first so nothing else dispatches, then the model is detached and the
// queue the loop never drained is appended here.
func (s *session) close() {
	s.stopFeeds()
	s.feeds.Wait()
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.model.logger.Debug("config watcher stop failed", "error", err)
		}
	}

	s.model.Close()
	s.console.SetDispatcher(console.Immediate{})
	s.disp.drain()
}
