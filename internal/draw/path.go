package draw

import (
	"math"

	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

type opKind int

const (
	opMove opKind = iota
	opLine
	opQuad
	opCubic
	opArc
	opClose
)

// op is one path segment: pts holds control points then the end point, except
// for arcs where pts[0] is the centre.
type op struct {
	kind   opKind
	pts    [3]geom.Vec2
	radius float64
	a0, a1 float64
	ccw    bool
}

// Path is a canvas-style path recorded in local coordinates.
type Path struct {
	ops []op
}

func NewPath() *Path { return &Path{} }

func (p *Path) MoveTo(x, y float64) *Path {
	p.ops = append(p.ops, op{kind: opMove, pts: [3]geom.Vec2{{X: x, Y: y}}})
	return p
}

func (p *Path) LineTo(x, y float64) *Path {
	p.ops = append(p.ops, op{kind: opLine, pts: [3]geom.Vec2{{X: x, Y: y}}})
	return p
}

func (p *Path) QuadTo(cx, cy, x, y float64) *Path {
	p.ops = append(p.ops, op{kind: opQuad, pts: [3]geom.Vec2{{X: cx, Y: cy}, {X: x, Y: y}}})
	return p
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Path {
	p.ops = append(p.ops, op{kind: opCubic, pts: [3]geom.Vec2{{X: c1x, Y: c1y}, {X: c2x, Y: c2y}, {X: x, Y: y}}})
	return p
}

// Arc adds a circular arc around (cx, cy) from angle a0 to a1, clockwise on
// screen unless ccw is set.
func (p *Path) Arc(cx, cy, r, a0, a1 float64, ccw bool) *Path {
	p.ops = append(p.ops, op{kind: opArc, pts: [3]geom.Vec2{{X: cx, Y: cy}}, radius: r, a0: a0, a1: a1, ccw: ccw})
	return p
}

func (p *Path) Close() *Path {
	p.ops = append(p.ops, op{kind: opClose})
	return p
}

// Circle adds a closed full circle.
func (p *Path) Circle(cx, cy, r float64) *Path {
	p.MoveTo(cx+r, cy)
	p.Arc(cx, cy, r, 0, 2*math.Pi, false)
	return p.Close()
}

// kappa places cubic control points so four segments approximate a circle.
const kappa = 0.5522847498

// Ellipse adds a closed ellipse with radii rx, ry rotated by rot.
func (p *Path) Ellipse(cx, cy, rx, ry, rot float64) *Path {
	t := geom.Translate(cx, cy).Rotate(rot)
	pt := func(x, y float64) (float64, float64) {
		v := t.Apply(geom.V(x, y))
		return v.X, v.Y
	}
	kx, ky := rx*kappa, ry*kappa

	x, y := pt(rx, 0)
	p.MoveTo(x, y)
	quadrants := [4][6]float64{
		{rx, ky, kx, ry, 0, ry},
		{-kx, ry, -rx, ky, -rx, 0},
		{-rx, -ky, -kx, -ry, 0, -ry},
		{kx, -ry, rx, -ky, rx, 0},
	}
	for _, q := range quadrants {
		c1x, c1y := pt(q[0], q[1])
		c2x, c2y := pt(q[2], q[3])
		ex, ey := pt(q[4], q[5])
		p.CubicTo(c1x, c1y, c2x, c2y, ex, ey)
	}
	return p.Close()
}

// Polygon adds a closed polyline through pts.
func (p *Path) Polygon(pts []geom.Vec2) *Path {
	if len(pts) == 0 {
		return p
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, v := range pts[1:] {
		p.LineTo(v.X, v.Y)
	}
	return p.Close()
}

// Empty reports whether the path has no drawable segment.
func (p *Path) Empty() bool {
	if p == nil {
		return true
	}
	for _, o := range p.ops {
		if o.kind != opMove && o.kind != opClose {
			return false
		}
	}
	return true
}

// Len is the number of recorded segments.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.ops)
}

// EndPoints returns the end point of every segment, arcs contributing their
// final point.
func (p *Path) EndPoints() []geom.Vec2 {
	var out []geom.Vec2
	for _, o := range p.ops {
		switch o.kind {
		case opMove, opLine:
			out = append(out, o.pts[0])
		case opQuad:
			out = append(out, o.pts[1])
		case opCubic:
			out = append(out, o.pts[2])
		case opArc:
			out = append(out, o.pts[0].Add(geom.Polar(o.a1, o.radius)))
		}
	}
	return out
}
