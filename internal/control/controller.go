package control

import (
	"log/slog"
	"time"

	"github.com/jmylchreest/devconsole/internal/geometry"
	"github.com/jmylchreest/devconsole/internal/model"
)

// DefaultTapGuard is how long a finished drag keeps suppressing taps.
const DefaultTapGuard = 100 * time.Millisecond

// DragState is the state of the drag-and-snap machine.
type DragState int

const (
	// DragIdle means the control is at rest in its corner.
	DragIdle DragState = iota
	// DragActive means a drag gesture is in progress.
	DragActive
)

// String returns the string representation of DragState.
func (s DragState) String() string {
	switch s {
	case DragIdle:
		return "idle"
	case DragActive:
		return "dragging"
	default:
		return "unknown"
	}
}

// Options configures a Controller. Zero values select defaults.
type Options struct {
	Metrics      geometry.Metrics
	Corner       geometry.Corner
	HintDuration time.Duration
	TapGuard     time.Duration
	Logger       *slog.Logger
}

// HintState is the observable state of the hint bubble.
type HintState struct {
	Visible bool
	Entry   model.Entry
	Side    HintSide
}

// State is everything a renderer needs to draw the control.
type State struct {
	Position   geometry.Point
	Corner     geometry.Corner
	Drag       DragState
	DragOffset geometry.Vector
	PanelOpen  bool
	Hint       HintState
}

// Controller owns the floating control's corner, drag offset, panel flag and
// hint. It must only be driven from the UI loop.
type Controller struct {
	metrics  geometry.Metrics
	tapGuard time.Duration
	sched    Scheduler
	logger   *slog.Logger

	corner      geometry.Corner
	viewport    geometry.Size
	hasViewport bool

	drag       DragState
	dragOffset geometry.Vector

	// isDragging outlives the drag by tapGuard so that the tap a gesture
	// recognizer may deliver on release is swallowed.
	isDragging bool
	guardTimer Timer
	guardGen   uint64

	panelOpen bool
	hint      *Hint

	listeners []func()
}

// New creates a Controller reading hint content from source.
func New(source EntrySource, sched Scheduler, opts Options) *Controller {
	if opts.Metrics == (geometry.Metrics{}) {
		opts.Metrics = geometry.DefaultMetrics()
	}
	if opts.TapGuard <= 0 {
		opts.TapGuard = DefaultTapGuard
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	c := &Controller{
		metrics:  opts.Metrics,
		tapGuard: opts.TapGuard,
		sched:    sched,
		logger:   opts.Logger,
		corner:   opts.Corner,
	}
	c.hint = NewHint(source, sched, opts.HintDuration, c.notify)
	return c
}

// OnChange registers fn to run after every state change.
func (c *Controller) OnChange(fn func()) {
	c.listeners = append(c.listeners, fn)
}

// OnLogCountChanged shows the hint for the newest entry and restarts its
// auto-hide countdown.
func (c *Controller) OnLogCountChanged() {
	c.hint.OnLogCountChanged()
}

// BeginDrag enters the dragging state and hides the hint.
func (c *Controller) BeginDrag() {
	if c.drag == DragActive {
		return
	}
	c.drag = DragActive
	c.dragOffset = geometry.Vector{}
	c.isDragging = true
	c.cancelGuard()
	c.hint.Hide()

	c.logger.Debug("drag started", "corner", c.corner)
	c.notify()
}

// UpdateDrag sets the drag offset to the gesture's cumulative translation.
func (c *Controller) UpdateDrag(translation geometry.Vector) {
	if c.drag != DragActive {
		return
	}
	c.dragOffset = translation
	c.notify()
}

// EndDrag snaps the control to the corner inferred from the final
// translation and release velocity. Without a known viewport the previous
// corner is kept.
func (c *Controller) EndDrag(translation, velocity geometry.Vector) {
	if c.drag != DragActive {
		return
	}

	if c.hasViewport {
		resting := c.metrics.Position(c.corner, c.viewport)
		previous := c.corner
		c.corner = c.metrics.InferCorner(resting, translation, velocity, c.viewport)
		c.logger.Debug("drag ended",
			"from", previous,
			"to", c.corner,
			"translation_x", translation.DX,
			"translation_y", translation.DY,
			"velocity_x", velocity.DX,
			"velocity_y", velocity.DY,
		)
	} else {
		c.logger.Debug("drag ended without viewport, keeping corner", "corner", c.corner)
	}

	c.drag = DragIdle
	c.dragOffset = geometry.Vector{}
	c.armGuard()
	c.notify()
}

// Tap opens the panel unless a drag just finished. It reports whether the
// panel was opened.
func (c *Controller) Tap() bool {
	if c.isDragging {
		c.logger.Debug("tap suppressed after drag")
		return false
	}
	c.OpenPanel()
	return true
}

// OpenPanel shows the log panel and dismisses the hint.
func (c *Controller) OpenPanel() {
	c.hint.Hide()
	if c.panelOpen {
		return
	}
	c.panelOpen = true
	c.notify()
}

// ClosePanel hides the log panel.
func (c *Controller) ClosePanel() {
	if !c.panelOpen {
		return
	}
	c.panelOpen = false
	c.notify()
}

// ViewportResized records a new viewport size; the resting position follows.
func (c *Controller) ViewportResized(size geometry.Size) {
	if c.hasViewport && c.viewport == size {
		return
	}
	c.viewport = size
	c.hasViewport = true
	c.notify()
}

// SetCorner moves the control to corner directly.
func (c *Controller) SetCorner(corner geometry.Corner) {
	if c.drag == DragActive || c.corner == corner {
		return
	}
	c.corner = corner
	c.notify()
}

// SetMetrics replaces the layout metrics.
func (c *Controller) SetMetrics(m geometry.Metrics) {
	c.metrics = m
	c.notify()
}

// SetTimings replaces the hint duration and tap guard. Non-positive values
// are ignored.
func (c *Controller) SetTimings(hintDuration, tapGuard time.Duration) {
	c.hint.SetDuration(hintDuration)
	if tapGuard > 0 {
		c.tapGuard = tapGuard
	}
}

// Position returns where the control should be drawn: the resting position
// plus the drag offset while dragging.
func (c *Controller) Position() geometry.Point {
	resting := c.restingPosition()
	if c.drag == DragActive {
		return resting.Add(c.dragOffset)
	}
	return resting
}

// restingPosition is the position derived from the current corner and
// viewport.
func (c *Controller) restingPosition() geometry.Point {
	return c.metrics.Position(c.corner, c.viewport)
}

// Contains reports whether p lies within the control's bounding square.
func (c *Controller) Contains(p geometry.Point) bool {
	pos := c.Position()
	d := c.metrics.ControlDiameter
	return p.X >= pos.X && p.X < pos.X+d && p.Y >= pos.Y && p.Y < pos.Y+d
}

// Corner returns the current corner.
func (c *Controller) Corner() geometry.Corner { return c.corner }

// Metrics returns the layout metrics.
func (c *Controller) Metrics() geometry.Metrics { return c.metrics }

// PanelOpen reports whether the log panel is showing.
func (c *Controller) PanelOpen() bool { return c.panelOpen }

// Hint returns the hint policy.
func (c *Controller) Hint() *Hint { return c.hint }

// State returns a snapshot of the observable state.
func (c *Controller) State() State {
	entry, visible := c.hint.Entry()
	return State{
		Position:   c.Position(),
		Corner:     c.corner,
		Drag:       c.drag,
		DragOffset: c.dragOffset,
		PanelOpen:  c.panelOpen,
		Hint: HintState{
			Visible: visible,
			Entry:   entry,
			Side:    SideFor(c.corner),
		},
	}
}

func (c *Controller) armGuard() {
	c.cancelGuard()
	gen := c.guardGen
	c.guardTimer = c.sched.AfterFunc(c.tapGuard, func() {
		if gen != c.guardGen {
			return
		}
		c.guardTimer = nil
		c.isDragging = false
		c.notify()
	})
}

func (c *Controller) cancelGuard() {
	c.guardGen++
	if c.guardTimer != nil {
		c.guardTimer.Stop()
		c.guardTimer = nil
	}
}

func (c *Controller) notify() {
	for _, fn := range c.listeners {
		fn()
	}
}
