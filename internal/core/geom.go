// Package core provides fundamental types shared by the game logic and the
// terminal platform. It has no Bubble Tea dependency so the match logic stays
// pure and testable.
package core

// Rect is an integer cell rectangle on the terminal screen.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Vec is a point in viewport units (y grows downward, like screen space).
type Vec struct {
	X, Y float64
}

// Box is an axis-aligned bounding box in viewport units.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoxAround returns a w×h box centered on c.
func BoxAround(c Vec, w, h float64) Box {
	return Box{
		MinX: c.X - w/2,
		MinY: c.Y - h/2,
		MaxX: c.X + w/2,
		MaxY: c.Y + h/2,
	}
}

// Intersects reports whether the two boxes overlap with positive area.
// Boxes that only share an edge do not intersect.
func (b Box) Intersects(o Box) bool {
	if b.MinX >= o.MaxX || o.MinX >= b.MaxX {
		return false
	}
	if b.MinY >= o.MaxY || o.MinY >= b.MaxY {
		return false
	}
	return true
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// EaseInOutQuad maps linear progress in [0, 1] onto an ease-in-out
// quadratic curve. Inputs outside the range are clamped.
func EaseInOutQuad(t float64) float64 {
	t = ClampF(t, 0, 1)
	if t < 0.5 {
		return 2 * t * t
	}
	u := -2*t + 2
	return 1 - u*u/2
}

// Lerp interpolates between a and b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
