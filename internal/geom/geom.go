package geom

import "math"

// Vec2 is a point or a direction in surface pixels.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(k float64) Vec2 { return Vec2{v.X * k, v.Y * k} }
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }
func (v Vec2) Lerp(o Vec2, t float64) Vec2 { return Vec2{Lerp(v.X, o.X, t), Lerp(v.Y, o.Y, t)} }

// Perp returns v rotated by +90°.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Unit returns v scaled to length 1. A zero vector is returned unchanged.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Polar returns the point at angle a (radians) and distance r from the origin.
func Polar(a, r float64) Vec2 {
	return Vec2{math.Cos(a) * r, math.Sin(a) * r}
}

// Lerp interpolates between a and b; t=0 returns a, t=1 returns b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// WrapAngle folds a into (-π, π].
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// LerpAngle moves start toward end by factor t along the shorter arc, so the
// result never travels more than π from start.
func LerpAngle(start, end, t float64) float64 {
	return start + WrapAngle(end-start)*t
}

// CatmullRom evaluates the uniform Catmull-Rom spline through p1 and p2 with
// neighbours p0 and p3. t=0 yields p1 and t=1 yields p2.
func CatmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*p1 +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}

// CatmullRomVec applies CatmullRom to both coordinates.
func CatmullRomVec(p0, p1, p2, p3 Vec2, t float64) Vec2 {
	return Vec2{
		CatmullRom(p0.X, p1.X, p2.X, p3.X, t),
		CatmullRom(p0.Y, p1.Y, p2.Y, p3.Y, t),
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }
