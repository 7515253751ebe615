// Package core provides fundamental types and utilities for the arcade platform.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Rect represents an axis-aligned cell rectangle on a Screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Box is an axis-aligned bounding box in playfield units.
// Playfield units are continuous; the platform scales them to cells.
type Box struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewBox creates a box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects returns true if the two boxes overlap.
// Uses standard AABB collision detection; touching edges do not overlap.
func (b Box) Intersects(other Box) bool {
	return b.X < other.Right() && b.Right() > other.X &&
		b.Y < other.Bottom() && b.Bottom() > other.Y
}

// Circle is a circle in playfield units.
type Circle struct {
	X, Y float64 // Center
	R    float64 // Radius
}

// Bounds returns the circle's bounding box.
func (c Circle) Bounds() Box {
	return Box{X: c.X - c.R, Y: c.Y - c.R, W: 2 * c.R, H: 2 * c.R}
}

// IntersectsBox reports whether the circle overlaps the box.
// The closest point of the box to the center is found by clamping each axis
// independently; the circle overlaps iff that point is within the radius.
func (c Circle) IntersectsBox(b Box) bool {
	nx := ClampF(c.X, b.X, b.Right())
	ny := ClampF(c.Y, b.Y, b.Bottom())
	dx := c.X - nx
	dy := c.Y - ny
	return dx*dx+dy*dy <= c.R*c.R
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
