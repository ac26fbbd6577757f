package console

import (
	"context"
	"sync"
)

// Dispatcher runs functions on the UI loop.
type Dispatcher interface {
	Dispatch(fn func())
}

// Immediate runs every function inline on the caller's goroutine. Use it
// only when the caller already is the UI loop.
type Immediate struct{}

// Dispatch runs fn now.
func (Immediate) Dispatch(fn func()) { fn() }

// Loop is a Dispatcher backed by a single goroutine draining a queue.
// Functions run in submission order.
type Loop struct {
	mu      sync.Mutex
	cond    *sync.Cond
	queue   []func()
	stopped bool
}

// NewLoop creates a Loop. Call Run to start draining.
func NewLoop() *Loop {
	l := &Loop{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

// Dispatch enqueues fn. It never blocks on the loop.
func (l *Loop) Dispatch(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.stopped {
		return
	}
	l.queue = append(l.queue, fn)
	l.cond.Signal()
}

// Run drains the queue until ctx is cancelled. Functions still queued at
// cancellation are dropped.
func (l *Loop) Run(ctx context.Context) {
	stop := context.AfterFunc(ctx, func() {
		l.mu.Lock()
		l.stopped = true
		l.cond.Broadcast()
		l.mu.Unlock()
	})
	defer stop()

	for {
		l.mu.Lock()
		for len(l.queue) == 0 && !l.stopped {
			l.cond.Wait()
		}
		if l.stopped {
			l.queue = nil
			l.mu.Unlock()
			return
		}
		fn := l.queue[0]
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
	}
}

// Sync runs fn on the loop and waits for it to finish, or for ctx.
func (l *Loop) Sync(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Dispatch(func() {
		fn()
		close(done)
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
