package core

import "math"

// Vec2 is a continuous position or offset in world or screen space.
type Vec2 struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return v.Sub(o).Len()
}

// MoveTowards moves v toward target by at most maxDelta without overshooting.
func (v Vec2) MoveTowards(target Vec2, maxDelta float64) Vec2 {
	diff := target.Sub(v)
	dist := diff.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return v.Add(diff.Scale(maxDelta / dist))
}
