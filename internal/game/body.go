package game

// Body is the shared physics record of every simulated object: an
// axis-aligned rectangle with a velocity and the position it held before the
// last Move. The previous position is what collision resolution uses to tell
// which side an object entered a tile from.
type Body struct {
	X, Y   float64
	PX, PY float64
	W, H   float64
	Vel    Vector2d
}

// NewBody places a w×h rectangle at (x, y). Width and height never change afterwards.
func NewBody(x, y, w, h float64) Body {
	return Body{X: x, Y: y, PX: x, PY: y, W: w, H: h}
}

// Move records the current position as previous and integrates velocity over delta seconds.
func (b *Body) Move(delta float64) {
	b.PX, b.PY = b.X, b.Y
	b.X += b.Vel.X * delta
	b.Y += b.Vel.Y * delta
}

// ApplyGravity accelerates the body downwards.
func (b *Body) ApplyGravity(g, delta float64) {
	b.Vel.Add(Vector2d{Y: g * delta})
}

func (b *Body) Right() float64  { return b.X + b.W }
func (b *Body) Bottom() float64 { return b.Y + b.H }

// Center returns the midpoint of the rectangle.
func (b *Body) Center() (float64, float64) {
	return b.X + b.W/2, b.Y + b.H/2
}

// Overlaps reports whether the interiors of two rectangles intersect.
func (b *Body) Overlaps(o *Body) bool {
	return b.X < o.X+o.W && o.X < b.X+b.W &&
		b.Y < o.Y+o.H && o.Y < b.Y+b.H
}

// clampMin keeps the body on the non-negative side of both axes.
func (b *Body) clampMin() {
	if b.X < 0 {
		b.X = 0
	}
	if b.Y < 0 {
		b.Y = 0
	}
}
