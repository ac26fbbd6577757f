// Package store provides the observable, append-only log store.
package store

import (
	"slices"
	"sync"

	"github.com/jmylchreest/devconsole/internal/model"
)

// ChangeType indicates the type of store change.
type ChangeType int

const (
	// ChangeTypeAppend indicates an entry was appended.
	ChangeTypeAppend ChangeType = iota
	// ChangeTypeClear indicates all entries were cleared.
	ChangeTypeClear
)

// String returns the string representation of ChangeType.
func (t ChangeType) String() string {
	switch t {
	case ChangeTypeAppend:
		return "append"
	case ChangeTypeClear:
		return "clear"
	default:
		return "unknown"
	}
}

// ChangeEvent signals store content changes.
type ChangeEvent struct {
	Type  ChangeType
	Count int // entry count after the change
}

// Listener is invoked synchronously after every store mutation.
type Listener func(ChangeEvent)

// Store holds log entries in insertion order.
// Entries are only ever appended or cleared all at once.
type Store struct {
	mu      sync.RWMutex
	entries []model.Entry

	listeners map[int]Listener
	nextID    int
	closed    bool
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		entries:   make([]model.Entry, 0),
		listeners: make(map[int]Listener),
	}
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
)

// Default returns the process-wide store, creating it on first use.
func Default() *Store {
	defaultOnce.Do(func() {
		defaultStore = NewStore()
	})
	return defaultStore
}

// Append creates an entry for message and appends it.
// Listeners have been notified by the time Append returns.
func (s *Store) Append(message string) model.Entry {
	entry := model.NewEntry(message)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return entry
	}
	s.entries = append(s.entries, entry)
	event := ChangeEvent{Type: ChangeTypeAppend, Count: len(s.entries)}
	s.mu.Unlock()

	s.notifyChange(event)
	return entry
}

// Clear removes every entry in one step.
func (s *Store) Clear() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.entries = make([]model.Entry, 0)
	s.mu.Unlock()

	s.notifyChange(ChangeEvent{Type: ChangeTypeClear, Count: 0})
}

// Latest returns the most recent entry, or false if the store is empty.
func (s *Store) Latest() (model.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 {
		return model.Entry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// Entries returns a copy of all entries, oldest first.
func (s *Store) Entries() []model.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Entry, len(s.entries))
	copy(result, s.entries)
	return result
}

// Count returns the number of entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// OnChange registers a synchronous listener and returns a function that
// removes it.
func (s *Store) OnChange(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Close detaches every listener. Later mutations are ignored.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.listeners = make(map[int]Listener)

	return nil
}

// notifyChange delivers event to listeners in registration order. Called
// without the lock held so that listeners may read the store.
func (s *Store) notifyChange(event ChangeEvent) {
	s.mu.RLock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	listeners := make([]Listener, 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(event)
	}
}
