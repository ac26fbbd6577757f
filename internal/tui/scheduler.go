package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmylchreest/devconsole/internal/control"
)

// timerFiredMsg is delivered when a scheduled tick elapses.
type timerFiredMsg struct {
	id uint64
}

// tickScheduler runs control timers on the bubbletea loop. Each timer is a
// tea.Tick tagged with a unique id; a stopped timer's tick still arrives but
// finds nothing to run.
type tickScheduler struct {
	nextID  uint64
	timers  map[uint64]*tickTimer
	pending []tea.Cmd
}

type tickTimer struct {
	sched *tickScheduler
	id    uint64
	fn    func()
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{timers: make(map[uint64]*tickTimer)}
}

// AfterFunc queues a tick; the command is handed to bubbletea by flush.
func (s *tickScheduler) AfterFunc(d time.Duration, fn func()) control.Timer {
	s.nextID++
	t := &tickTimer{sched: s, id: s.nextID, fn: fn}
	s.timers[t.id] = t

	id := t.id
	s.pending = append(s.pending, tea.Tick(d, func(time.Time) tea.Msg {
		return timerFiredMsg{id: id}
	}))
	return t
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *tickTimer) Stop() bool {
	if _, ok := t.sched.timers[t.id]; !ok {
		return false
	}
	delete(t.sched.timers, t.id)
	return true
}

// fire runs the callback for id unless it was stopped or already ran.
func (s *tickScheduler) fire(id uint64) bool {
	t, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	t.fn()
	return true
}

// flush returns the ticks queued since the last flush.
func (s *tickScheduler) flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// armed returns the number of timers waiting to fire.
func (s *tickScheduler) armed() int {
	return len(s.timers)
}
