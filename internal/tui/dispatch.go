package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// drainMsg asks the event loop to run queued dispatches.
type drainMsg struct {
	d *programDispatcher
}

// programDispatcher is a console.Dispatcher that hops work onto the
// bubbletea event loop. Dispatch never blocks, so it is safe to call from
// inside Update (a slog record emitted while handling a message, say);
// queued functions run in submission order.
type programDispatcher struct {
	send func(tea.Msg)

	mu      sync.Mutex
	queue   []func()
	waiting bool
}

func newProgramDispatcher(send func(tea.Msg)) *programDispatcher {
	return &programDispatcher{send: send}
}

// Dispatch queues fn and wakes the loop if it is not already due to drain.
func (d *programDispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	d.queue = append(d.queue, fn)
	wake := !d.waiting
	d.waiting = true
	d.mu.Unlock()

	if wake {
		go d.send(drainMsg{d: d})
	}
}

// drain runs everything queued so far. It must be called on the loop.
func (d *programDispatcher) drain() {
	d.mu.Lock()
	queue := d.queue
	d.queue = nil
	d.waiting = false
	d.mu.Unlock()

	for _, fn := range queue {
		fn()
	}
}
