// Package model defines the core data structures for devconsole.
package model

import (
	"crypto/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// TimeLayout is the fixed display format for entry timestamps.
const TimeLayout = "15:04:05.000"

// Entry represents a single captured log message.
// Entries are created once by the store and never mutated.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	Message   string    `json:"message" yaml:"message"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// NewEntry creates an Entry stamped with the current time.
func NewEntry(message string) Entry {
	return NewEntryAt(message, time.Now())
}

// NewEntryAt creates an Entry with an explicit timestamp.
func NewEntryAt(message string, ts time.Time) Entry {
	// ulid.Make panics on entropy failure; fall back to the zero ID.
	id, err := ulid.New(ulid.Timestamp(ts), rand.Reader)
	if err != nil {
		id = ulid.ULID{}
	}

	return Entry{
		ID:        id.String(),
		Message:   message,
		Timestamp: ts,
	}
}

// FormattedTime returns the timestamp as HH:mm:ss.mmm.
func (e Entry) FormattedTime() string {
	return e.Timestamp.Format(TimeLayout)
}

// RelativeTime returns a human-readable age, e.g. "3 seconds ago".
func (e Entry) RelativeTime() string {
	return humanize.Time(e.Timestamp)
}
