// Package control implements the floating control's state machine.
//
// The Controller owns the drag state, the current corner and the transient
// hint bubble. It consumes drag, tap, panel and viewport-size commands and
// exposes the resulting state for a renderer to draw. All methods are meant
// to be called from a single UI loop; deferred work is scheduled through a
// Scheduler whose callbacks also run on that loop.
package control
