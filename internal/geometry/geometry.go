package geometry

import "math"

// Point is an absolute position.
type Point struct {
	X, Y float64
}

// Add returns p translated by v.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.DX, Y: p.Y + v.DY}
}

// Vector is a translation or a velocity.
type Vector struct {
	DX, DY float64
}

// IsZero reports whether v has no extent on either axis.
func (v Vector) IsZero() bool {
	return v.DX == 0 && v.DY == 0
}

// Size is a viewport width and height.
type Size struct {
	Width, Height float64
}

// Metrics holds the layout constants for the control.
type Metrics struct {
	Padding           float64 `toml:"padding"`
	ControlDiameter   float64 `toml:"control_diameter"`
	TopSafeArea       float64 `toml:"top_safe_area"`    // status bar / notch allowance
	BottomSafeArea    float64 `toml:"bottom_safe_area"` // home indicator allowance
	VelocityThreshold float64 `toml:"velocity_threshold"`
}

// DefaultMetrics returns the standard point-based metrics.
func DefaultMetrics() Metrics {
	return Metrics{
		Padding:           16,
		ControlDiameter:   56,
		TopSafeArea:       60,
		BottomSafeArea:    80,
		VelocityThreshold: 500,
	}
}

// ComputePosition returns the resting position for corner using
// DefaultMetrics.
func ComputePosition(corner Corner, viewport Size) Point {
	return DefaultMetrics().Position(corner, viewport)
}

// Position returns the control's top-left resting point for corner within
// viewport. Coordinates never go negative.
func (m Metrics) Position(corner Corner, viewport Size) Point {
	left := m.Padding
	right := viewport.Width - m.ControlDiameter - m.Padding
	top := m.Padding + m.TopSafeArea
	bottom := viewport.Height - m.ControlDiameter - m.Padding - m.BottomSafeArea

	var p Point
	switch corner {
	case TopRight:
		p = Point{X: right, Y: top}
	case BottomLeft:
		p = Point{X: left, Y: bottom}
	case BottomRight:
		p = Point{X: right, Y: bottom}
	default:
		p = Point{X: left, Y: top}
	}

	return Point{X: math.Max(0, p.X), Y: math.Max(0, p.Y)}
}

// InferCorner picks the corner a drag should snap to. The control's final
// center decides each axis unless the release velocity on that axis exceeds
// the threshold, in which case the velocity's sign wins.
func (m Metrics) InferCorner(resting Point, translation, velocity Vector, viewport Size) Corner {
	half := m.ControlDiameter / 2
	center := resting.Add(translation).Add(Vector{DX: half, DY: half})

	right := center.X > viewport.Width/2
	bottom := center.Y > viewport.Height/2

	if math.Abs(velocity.DX) > m.VelocityThreshold {
		right = velocity.DX > 0
	}
	if math.Abs(velocity.DY) > m.VelocityThreshold {
		bottom = velocity.DY > 0
	}

	return CornerFromBias(right, bottom)
}
