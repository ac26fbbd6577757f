package control

import (
	"time"

	"github.com/jmylchreest/devconsole/internal/geometry"
	"github.com/jmylchreest/devconsole/internal/model"
)

// DefaultHintDuration is how long the hint stays up after the last change.
const DefaultHintDuration = 5 * time.Second

// EntrySource provides the most recent log entry.
type EntrySource interface {
	Latest() (model.Entry, bool)
}

// HintSide says which side of the control the hint renders on.
type HintSide int

const (
	HintRight HintSide = iota
	HintLeft
)

// String returns the string representation of HintSide.
func (s HintSide) String() string {
	if s == HintLeft {
		return "left"
	}
	return "right"
}

// SideFor returns the side that keeps the hint on screen for corner.
func SideFor(corner geometry.Corner) HintSide {
	if corner.IsLeft() {
		return HintRight
	}
	return HintLeft
}

// Hint tracks the visibility of the latest-entry bubble.
// At most one auto-hide timer is armed at a time.
type Hint struct {
	source   EntrySource
	sched    Scheduler
	duration time.Duration
	onChange func()

	visible bool
	entry   model.Entry
	timer   Timer
	gen     uint64
}

// NewHint creates a hidden Hint. onChange may be nil.
func NewHint(source EntrySource, sched Scheduler, duration time.Duration, onChange func()) *Hint {
	if duration <= 0 {
		duration = DefaultHintDuration
	}
	return &Hint{
		source:   source,
		sched:    sched,
		duration: duration,
		onChange: onChange,
	}
}

// OnLogCountChanged re-arms the hint for the newest entry. With an empty
// source the hint is hidden and stays hidden.
func (h *Hint) OnLogCountChanged() {
	h.cancel()

	latest, ok := h.source.Latest()
	if !ok {
		h.setHidden()
		return
	}

	h.visible = true
	h.entry = latest
	gen := h.gen
	h.timer = h.sched.AfterFunc(h.duration, func() {
		// A stop that lost the race with delivery must not hide a newer hint.
		if gen != h.gen {
			return
		}
		h.timer = nil
		h.setHidden()
	})
	h.changed()
}

// Hide hides the hint immediately and cancels any pending timer.
func (h *Hint) Hide() {
	h.cancel()
	h.setHidden()
}

// Visible reports whether the hint is showing.
func (h *Hint) Visible() bool {
	return h.visible
}

// Entry returns the displayed entry, or false when hidden.
func (h *Hint) Entry() (model.Entry, bool) {
	if !h.visible {
		return model.Entry{}, false
	}
	return h.entry, true
}

// SetDuration changes the auto-hide delay used by later re-arms.
func (h *Hint) SetDuration(d time.Duration) {
	if d > 0 {
		h.duration = d
	}
}

// Duration returns the auto-hide delay.
func (h *Hint) Duration() time.Duration {
	return h.duration
}

func (h *Hint) cancel() {
	h.gen++
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
}

func (h *Hint) setHidden() {
	if !h.visible {
		return
	}
	h.visible = false
	h.entry = model.Entry{}
	h.changed()
}

func (h *Hint) changed() {
	if h.onChange != nil {
		h.onChange()
	}
}
