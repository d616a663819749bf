package game

import "math"

// Vector2d is a mutable 2D velocity owned by a single Body.
type Vector2d struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add accumulates o into v.
func (v *Vector2d) Add(o Vector2d) {
	v.X += o.X
	v.Y += o.Y
}

// Scaled returns v multiplied by k.
func (v Vector2d) Scaled(k float64) Vector2d {
	return Vector2d{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length.
func (v Vector2d) Len() float64 {
	return math.Hypot(v.X, v.Y)
}
