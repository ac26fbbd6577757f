package main

import (
	"io"
	"log/slog"
	"sync"

	"github.com/jmylchreest/devconsole/internal/config"
	"github.com/jmylchreest/devconsole/internal/console"
)

// sinkSwitcher owns the console's output sink and reopens it when the
// configured sink changes.
type sinkSwitcher struct {
	console      *console.Console
	fallback     string
	terminalBusy bool
	logger       *slog.Logger

	mu      sync.Mutex
	name    string
	current io.Closer
}

func newSinkSwitcher(c *console.Console, fallback string, terminalBusy bool, logger *slog.Logger) *sinkSwitcher {
	return &sinkSwitcher{
		console:      c,
		fallback:     fallback,
		terminalBusy: terminalBusy,
		logger:       logger,
	}
}

// open points the console at the named sink and closes the previous one.
func (s *sinkSwitcher) open(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && name == s.name {
		return nil
	}

	w, err := console.OpenSink(name, s.fallback, s.terminalBusy)
	if err != nil {
		return err
	}
	s.console.SetSink(w)

	if s.current != nil {
		if err := s.current.Close(); err != nil {
			s.logger.Warn("failed to close previous sink", "sink", s.name, "error", err)
		}
	}
	s.name = name
	s.current = w
	return nil
}

// reload follows a reloaded config's output.sink. A sink that cannot be
// opened leaves the current one in place.
func (s *sinkSwitcher) reload(cfg *config.Config) {
	if err := s.open(cfg.Output.Sink); err != nil {
		s.logger.Warn("keeping current sink", "sink", cfg.Output.Sink, "error", err)
		return
	}
	s.logger.Debug("sink in use", "sink", cfg.Output.Sink)
}

// Close detaches and closes the current sink.
func (s *sinkSwitcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil
	}
	s.console.SetSink(io.Discard)
	err := s.current.Close()
	s.current = nil
	return err
}
