// Package tui provides the BubbleTea-based terminal user interface: host
// content with the floating debug control, its hint and the log panel drawn
// over it.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/devconsole/internal/config"
	"github.com/jmylchreest/devconsole/internal/console"
	"github.com/jmylchreest/devconsole/internal/control"
	"github.com/jmylchreest/devconsole/internal/export"
	"github.com/jmylchreest/devconsole/internal/geometry"
	"github.com/jmylchreest/devconsole/internal/gesture"
	"github.com/jmylchreest/devconsole/internal/store"
)

// HostFunc renders the host application's content for the given terminal
// size. The console draws on top of it.
type HostFunc func(width, height int) string

// Options configures a Model.
type Options struct {
	Config *config.Config
	Store  *store.Store
	Host   HostFunc
	Logger *slog.Logger

	// Now stamps pointer events. Defaults to time.Now.
	Now func() time.Time
}

// Model is the main TUI model.
type Model struct {
	// Configuration
	cfg    *config.Config
	store  *store.Store
	logger *slog.Logger
	host   HostFunc
	now    func() time.Time

	// Console state
	sched   *tickScheduler
	ctrl    *control.Controller
	tracker *gesture.Tracker
	unbind  func()
	unwatch func()

	// Components
	panel viewport.Model
	help  help.Model
	keys  KeyMap

	// State
	width       int
	height      int
	ready       bool
	logsChanged bool
	panelShown  bool

	// Status message
	statusMsg string
	statusErr bool
	statusGen uint64
}

// New creates a new TUI model and binds it to the store.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	s := opts.Store
	if s == nil {
		s = store.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	host := opts.Host
	if host == nil {
		host = defaultHost
	}

	sched := newTickScheduler()
	ctrl := control.New(s, sched, control.Options{
		Metrics:      cfg.Control.Metrics,
		Corner:       cfg.StartCorner(),
		HintDuration: cfg.Hint.Duration.Duration(),
		TapGuard:     cfg.Hint.TapGuard.Duration(),
		Logger:       logger,
	})

	m := &Model{
		cfg:     cfg,
		store:   s,
		logger:  logger,
		host:    host,
		now:     now,
		sched:   sched,
		ctrl:    ctrl,
		tracker: gesture.NewTracker(ctrl),
		panel:   viewport.New(0, 0),
		help:    help.New(),
		keys:    DefaultKeyMap(),
	}

	m.tracker.SetVelocityWindow(cfg.Control.VelocityWindow.Duration())
	m.unbind = control.Bind(s, ctrl)
	m.unwatch = s.OnChange(func(store.ChangeEvent) {
		m.logsChanged = true
	})

	return m
}

// Close detaches the model from its store.
func (m *Model) Close() {
	m.unbind()
	m.unwatch()
}

// Controller returns the floating control's controller.
func (m *Model) Controller() *control.Controller {
	return m.ctrl
}

// Init initializes the TUI.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("devconsole")
}

// ConfigReloadedMsg carries a configuration reloaded from disk.
type ConfigReloadedMsg struct {
	Config *config.Config
}

type statusMsg struct {
	text  string
	isErr bool
}

type clearStatusMsg struct {
	gen uint64
}

type copyResultMsg struct {
	format export.FormatType
	count  int
	err    error
}

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncPanel()
	if ticks := m.sched.flush(); ticks != nil {
		return m, tea.Batch(cmd, ticks)
	}
	return m, cmd
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resizePanel()
		m.ctrl.ViewportResized(geometry.Size{
			Width:  float64(msg.Width),
			Height: float64(msg.Height),
		})
		return nil

	case drainMsg:
		msg.d.drain()
		return nil

	case timerFiredMsg:
		m.sched.fire(msg.id)
		return nil

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config)
		return nil

	case statusMsg:
		m.statusMsg = msg.text
		m.statusErr = msg.isErr
		m.statusGen++
		gen := m.statusGen
		return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{gen: gen}
		})

	case clearStatusMsg:
		if msg.gen == m.statusGen {
			m.statusMsg = ""
			m.statusErr = false
		}
		return nil

	case copyResultMsg:
		if msg.err != nil {
			return status("Copy failed: "+msg.err.Error(), true)
		}
		return status(fmt.Sprintf("Copied %d entries as %s", msg.count, msg.format), false)
	}

	if m.ctrl.PanelOpen() {
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return cmd
	}
	return nil
}

func status(text string, isErr bool) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: text, isErr: isErr}
	}
}

// handleKey handles key presses.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Global keys
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case key.Matches(msg, m.keys.TogglePanel):
		if m.ctrl.PanelOpen() {
			m.ctrl.ClosePanel()
		} else {
			m.ctrl.Tap()
		}
		return nil

	case key.Matches(msg, m.keys.TopLeft):
		m.ctrl.SetCorner(geometry.TopLeft)
		return nil
	case key.Matches(msg, m.keys.TopRight):
		m.ctrl.SetCorner(geometry.TopRight)
		return nil
	case key.Matches(msg, m.keys.BottomLeft):
		m.ctrl.SetCorner(geometry.BottomLeft)
		return nil
	case key.Matches(msg, m.keys.BottomRight):
		m.ctrl.SetCorner(geometry.BottomRight)
		return nil
	}

	if m.ctrl.PanelOpen() {
		return m.handlePanelKey(msg)
	}

	if key.Matches(msg, m.keys.Done) && m.help.ShowAll {
		m.help.ShowAll = false
	}
	return nil
}

// handlePanelKey handles keys while the log panel is open.
func (m *Model) handlePanelKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Done):
		m.ctrl.ClosePanel()
		return nil

	case key.Matches(msg, m.keys.Clear):
		m.store.Clear()
		return status("Logs cleared", false)

	case key.Matches(msg, m.keys.CopyAllJSON):
		return m.copyEntries(export.FormatJSON)

	case key.Matches(msg, m.keys.CopyAllYAML):
		return m.copyEntries(export.FormatYAML)

	case key.Matches(msg, m.keys.Home):
		m.panel.GotoTop()
		return nil

	case key.Matches(msg, m.keys.End):
		m.panel.GotoBottom()
		return nil
	}

	// Pass to viewport
	var cmd tea.Cmd
	m.panel, cmd = m.panel.Update(msg)
	return cmd
}

// handleMouse feeds left-button gestures to the tracker. While the panel is
// open the mouse scrolls it instead.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.ctrl.PanelOpen() {
		m.tracker.Cancel()
		var cmd tea.Cmd
		m.panel, cmd = m.panel.Update(msg)
		return cmd
	}

	p := geometry.Point{X: float64(msg.X), Y: float64(msg.Y)}
	at := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.tracker.Press(p, at)
		}
	case tea.MouseActionMotion:
		m.tracker.Move(p, at)
	case tea.MouseActionRelease:
		m.tracker.Release(p, at)
	}
	return nil
}

// applyConfig takes the layout and timings of a reloaded config. The
// current corner is kept.
func (m *Model) applyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.ctrl.SetMetrics(cfg.Control.Metrics)
	m.ctrl.SetTimings(cfg.Hint.Duration.Duration(), cfg.Hint.TapGuard.Duration())
	m.tracker.SetVelocityWindow(cfg.Control.VelocityWindow.Duration())
	m.logger.Info("config reloaded", "corner", m.ctrl.Corner())
}

// copyEntries copies every entry to the clipboard in the given format.
func (m *Model) copyEntries(format export.FormatType) tea.Cmd {
	entries := m.store.Entries()
	cfg := m.cfg
	return func() tea.Msg {
		f := export.NewFormatter(format, export.DefaultFormatterOptions())
		text, err := export.String(f, entries)
		if err == nil {
			err = copyText(text, cfg)
		}
		return copyResultMsg{format: format, count: len(entries), err: err}
	}
}

// RunOptions configures the TUI.
type RunOptions struct {
	Config  *config.Config
	Console *console.Console
	Host    HostFunc
	Logger  *slog.Logger

	// ConfigPath is watched for changes; empty disables hot reload.
	ConfigPath string

	// OnReload runs on the watcher's goroutine for every reloaded config,
	// before the program sees it.
	OnReload func(*config.Config)

	// Feeds run in their own goroutines once console output is routed to
	// the program. Their context ends when the program exits and Run waits
	// for them to return.
	Feeds []func(ctx context.Context)
}

// Run starts the TUI and blocks until it exits or ctx is cancelled. Console
// output is routed onto the program's loop while it runs; anything still
// queued when the loop stops is appended before Run returns.
func Run(ctx context.Context, opts RunOptions) error {
	c := opts.Console
	if c == nil {
		c = console.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := New(Options{
		Config: opts.Config,
		Store:  c.Store(),
		Host:   opts.Host,
		Logger: logger,
	})

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	sess := newSession(c, m, newProgramDispatcher(p.Send))
	defer sess.close()

	if opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(opts.ConfigPath, logger, func(cfg *config.Config) {
			if opts.OnReload != nil {
				opts.OnReload(cfg)
			}
			p.Send(ConfigReloadedMsg{Config: cfg})
		})
		if err != nil {
			logger.Warn("failed to create config watcher", "error", err)
		} else if err := watcher.Start(); err != nil {
			logger.Warn("failed to start config watcher", "error", err)
		} else {
			sess.watcher = watcher
		}
	}

	sess.startFeeds(ctx, opts.Feeds)

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
