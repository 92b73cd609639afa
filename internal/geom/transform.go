package geom

import "math"

// Transform is a rigid motion: rotate by Angle about the origin, then
// translate by Offset. Same order as canvas translate() followed by rotate().
type Transform struct {
	Offset Vec2
	Angle  float64
}

func Translate(x, y float64) Transform { return Transform{Offset: Vec2{x, y}} }

// Rotate returns t followed by a rotation of a radians in t's local frame.
func (t Transform) Rotate(a float64) Transform {
	return Transform{Offset: t.Offset, Angle: t.Angle + a}
}

// Apply maps a local point into the parent frame.
func (t Transform) Apply(p Vec2) Vec2 {
	if t.Angle == 0 {
		return p.Add(t.Offset)
	}
	s, c := math.Sincos(t.Angle)
	return Vec2{p.X*c - p.Y*s + t.Offset.X, p.X*s + p.Y*c + t.Offset.Y}
}
