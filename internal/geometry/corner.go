// Package geometry computes where the floating control rests on screen and
// which corner a finished drag should snap to.
package geometry

import "fmt"

// Corner is one of the four screen-relative anchors for the control.
type Corner int

const (
	TopLeft Corner = iota
	TopRight
	BottomLeft
	BottomRight
)

// Corners lists all corners in declaration order.
func Corners() []Corner {
	return []Corner{TopLeft, TopRight, BottomLeft, BottomRight}
}

// CornerFromBias maps a (right, bottom) bias pair to a corner.
func CornerFromBias(right, bottom bool) Corner {
	switch {
	case right && bottom:
		return BottomRight
	case right:
		return TopRight
	case bottom:
		return BottomLeft
	default:
		return TopLeft
	}
}

// IsLeft reports whether the corner is on the left edge.
func (c Corner) IsLeft() bool {
	return c == TopLeft || c == BottomLeft
}

// IsBottom reports whether the corner is on the bottom edge.
func (c Corner) IsBottom() bool {
	return c == BottomLeft || c == BottomRight
}

// String returns the config form of the corner, e.g. "top-left".
func (c Corner) String() string {
	switch c {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// ParseCorner parses the config form of a corner.
func ParseCorner(s string) (Corner, error) {
	for _, c := range Corners() {
		if c.String() == s {
			return c, nil
		}
	}
	return TopLeft, fmt.Errorf("invalid corner %q, must be one of: top-left, top-right, bottom-left, bottom-right", s)
}

// MarshalText implements encoding.TextMarshaler.
func (c Corner) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Corner) UnmarshalText(text []byte) error {
	parsed, err := ParseCorner(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
