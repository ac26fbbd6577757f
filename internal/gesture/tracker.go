// Package gesture turns raw pointer events into drag and tap commands.
package gesture

import (
	"time"

	"github.com/jmylchreest/devconsole/internal/geometry"
)

// DefaultVelocityWindow is how far back motion samples count toward the
// release velocity.
const DefaultVelocityWindow = 100 * time.Millisecond

// Target receives the commands derived from a gesture.
type Target interface {
	Contains(p geometry.Point) bool
	BeginDrag()
	UpdateDrag(translation geometry.Vector)
	EndDrag(translation, velocity geometry.Vector)
	Tap() bool
}

type sample struct {
	at time.Time
	p  geometry.Point
}

// Tracker follows one pointer gesture at a time.
type Tracker struct {
	target Target
	window time.Duration

	active   bool
	dragging bool
	start    geometry.Point
	samples  []sample
}

// NewTracker creates a Tracker driving target.
func NewTracker(target Target) *Tracker {
	return &Tracker{target: target, window: DefaultVelocityWindow}
}

// SetVelocityWindow changes the sampling window for release velocity.
func (t *Tracker) SetVelocityWindow(d time.Duration) {
	if d > 0 {
		t.window = d
	}
}

// Active reports whether a gesture is in progress.
func (t *Tracker) Active() bool {
	return t.active
}

// Press starts a gesture when p hits the target. It reports whether the
// event was consumed.
func (t *Tracker) Press(p geometry.Point, at time.Time) bool {
	if t.active {
		return true
	}
	if !t.target.Contains(p) {
		return false
	}
	t.active = true
	t.dragging = false
	t.start = p
	t.samples = append(t.samples[:0], sample{at: at, p: p})
	return true
}

// Move updates the gesture. The first motion away from the press point
// begins a drag.
func (t *Tracker) Move(p geometry.Point, at time.Time) bool {
	if !t.active {
		return false
	}
	t.record(p, at)

	translation := t.translation(p)
	if !t.dragging {
		if translation.IsZero() {
			return true
		}
		t.dragging = true
		t.target.BeginDrag()
	}
	t.target.UpdateDrag(translation)
	return true
}

// Release ends the gesture: a drag snaps, anything else is a tap.
func (t *Tracker) Release(p geometry.Point, at time.Time) bool {
	if !t.active {
		return false
	}
	t.record(p, at)

	translation := t.translation(p)
	if !t.dragging && !translation.IsZero() {
		t.dragging = true
		t.target.BeginDrag()
		t.target.UpdateDrag(translation)
	}

	if t.dragging {
		t.target.EndDrag(translation, t.Velocity())
	} else {
		t.target.Tap()
	}

	t.reset()
	return true
}

// Cancel abandons the gesture. A drag in progress snaps back using zero
// translation.
func (t *Tracker) Cancel() {
	if t.active && t.dragging {
		t.target.EndDrag(geometry.Vector{}, geometry.Vector{})
	}
	t.reset()
}

// Velocity estimates pointer velocity in units per second from the samples
// inside the window ending at the latest sample.
func (t *Tracker) Velocity() geometry.Vector {
	if len(t.samples) < 2 {
		return geometry.Vector{}
	}

	last := t.samples[len(t.samples)-1]
	first := last
	for i := len(t.samples) - 2; i >= 0; i-- {
		if last.at.Sub(t.samples[i].at) > t.window {
			break
		}
		first = t.samples[i]
	}

	dt := last.at.Sub(first.at).Seconds()
	if dt <= 0 {
		return geometry.Vector{}
	}
	return geometry.Vector{
		DX: (last.p.X - first.p.X) / dt,
		DY: (last.p.Y - first.p.Y) / dt,
	}
}

func (t *Tracker) translation(p geometry.Point) geometry.Vector {
	return geometry.Vector{DX: p.X - t.start.X, DY: p.Y - t.start.Y}
}

func (t *Tracker) record(p geometry.Point, at time.Time) {
	t.samples = append(t.samples, sample{at: at, p: p})

	// Drop samples that can no longer fall inside the window.
	cutoff := 0
	for cutoff < len(t.samples)-1 && at.Sub(t.samples[cutoff].at) > t.window {
		cutoff++
	}
	if cutoff > 0 {
		t.samples = append(t.samples[:0], t.samples[cutoff:]...)
	}
}

func (t *Tracker) reset() {
	t.active = false
	t.dragging = false
	t.samples = t.samples[:0]
}
