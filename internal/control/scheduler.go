package control

import (
	"sort"
	"sync"
	"time"
)

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already fired
	// or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks after a delay on the UI loop.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// ManualScheduler is a Scheduler driven by an explicit clock. Callbacks run
// inside Advance, in deadline order.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s        *ManualScheduler
	deadline time.Duration
	seq      int
	fn       func()
	done     bool
}

// NewManualScheduler creates a ManualScheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc schedules fn to run once the clock has advanced by d.
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &manualTimer{s: s, deadline: s.now + d, seq: s.seq, fn: fn}
	s.seq++
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward by d, firing every timer that comes due.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := s.nextDueLocked(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		s.now = next.deadline
		next.done = true
		s.removeLocked(next)
		s.mu.Unlock()

		next.fn()
	}
}

// Elapsed returns the current clock value.
func (s *ManualScheduler) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of timers that have not fired or been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *ManualScheduler) nextDueLocked(target time.Duration) *manualTimer {
	if len(s.pending) == 0 {
		return nil
	}
	sort.SliceStable(s.pending, func(i, j int) bool {
		if s.pending[i].deadline == s.pending[j].deadline {
			return s.pending[i].seq < s.pending[j].seq
		}
		return s.pending[i].deadline < s.pending[j].deadline
	})
	if s.pending[0].deadline > target {
		return nil
	}
	return s.pending[0]
}

func (s *ManualScheduler) removeLocked(t *manualTimer) {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	t.s.removeLocked(t)
	return true
}
