package draw

import (
	"math"

	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

// Color is a straight-alpha colour with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA builds a colour from 8-bit channels and a [0, 1] alpha.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, geom.Clamp01(a)}
}

// RGBAf builds a colour from channels computed in [0, 255], clamping each.
func RGBAf(r, g, b, a float64) Color {
	return Color{geom.Clamp(r, 0, 255) / 255, geom.Clamp(g, 0, 255) / 255, geom.Clamp(b, 0, 255) / 255, geom.Clamp01(a)}
}

// RGB is RGBA with full opacity.
func RGB(r, g, b uint8) Color { return RGBA(r, g, b, 1) }

// Fade multiplies the alpha by k.
func (c Color) Fade(k float64) Color {
	c.A = geom.Clamp01(c.A * k)
	return c
}

func (c Color) lerp(o Color, t float64) Color {
	return Color{
		geom.Lerp(c.R, o.R, t),
		geom.Lerp(c.G, o.G, t),
		geom.Lerp(c.B, o.B, t),
		geom.Lerp(c.A, o.A, t),
	}
}

// MaxStops is the most colour stops a gradient can carry.
const MaxStops = 8

// Stop is one gradient colour stop.
type Stop struct {
	Offset float64
	Color  Color
}

type PaintKind int

const (
	PaintSolid PaintKind = iota
	PaintLinear
	PaintRadial
)

// Paint is a fill or stroke style: a flat colour or a canvas-style gradient.
//
// Linear gradients run From -> To. Radial gradients interpolate between the
// circle (From, R0) and the circle (To, R1), the same two-circle model as
// CanvasRenderingContext2D.createRadialGradient.
type Paint struct {
	Kind     PaintKind
	Color    Color
	From, To geom.Vec2
	R0, R1   float64
	Stops    []Stop
}

func Solid(c Color) Paint { return Paint{Kind: PaintSolid, Color: c} }

func Linear(from, to geom.Vec2, stops ...Stop) Paint {
	return Paint{Kind: PaintLinear, From: from, To: to, Stops: clipStops(stops)}
}

func Radial(inner geom.Vec2, r0 float64, outer geom.Vec2, r1 float64, stops ...Stop) Paint {
	return Paint{Kind: PaintRadial, From: inner, R0: r0, To: outer, R1: r1, Stops: clipStops(stops)}
}

// RadialAt is a radial gradient with both circles on the same centre.
func RadialAt(c geom.Vec2, r0, r1 float64, stops ...Stop) Paint {
	return Radial(c, r0, c, r1, stops...)
}

func clipStops(stops []Stop) []Stop {
	if len(stops) > MaxStops {
		stops = stops[:MaxStops]
	}
	return stops
}

// Transformed returns the paint with its geometry moved by t.
func (p Paint) Transformed(t geom.Transform) Paint {
	if p.Kind == PaintSolid {
		return p
	}
	p.From = t.Apply(p.From)
	p.To = t.Apply(p.To)
	return p
}

// Faded multiplies every colour's alpha by k.
func (p Paint) Faded(k float64) Paint {
	if k == 1 {
		return p
	}
	p.Color = p.Color.Fade(k)
	if len(p.Stops) > 0 {
		stops := make([]Stop, len(p.Stops))
		for i, s := range p.Stops {
			stops[i] = Stop{Offset: s.Offset, Color: s.Color.Fade(k)}
		}
		p.Stops = stops
	}
	return p
}

// At evaluates the paint at pt, in the same frame as the paint's geometry.
func (p Paint) At(pt geom.Vec2) Color {
	switch p.Kind {
	case PaintLinear:
		return p.colorAt(p.linearT(pt))
	case PaintRadial:
		return p.colorAt(p.radialT(pt))
	default:
		return p.Color
	}
}

func (p Paint) linearT(pt geom.Vec2) float64 {
	d := p.To.Sub(p.From)
	l := d.X*d.X + d.Y*d.Y
	if l == 0 {
		return 0
	}
	q := pt.Sub(p.From)
	return (q.X*d.X + q.Y*d.Y) / l
}

// radialT solves |pt - c(t)| = r(t) for the largest t with r(t) >= 0.
func (p Paint) radialT(pt geom.Vec2) float64 {
	dc := p.To.Sub(p.From)
	dr := p.R1 - p.R0
	q := pt.Sub(p.From)

	a := dc.X*dc.X + dc.Y*dc.Y - dr*dr
	b := -2 * (q.X*dc.X + q.Y*dc.Y + p.R0*dr)
	c := q.X*q.X + q.Y*q.Y - p.R0*p.R0

	if math.Abs(a) < 1e-9 {
		if math.Abs(b) < 1e-9 {
			return 0
		}
		return -c / b
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0
	}
	s := math.Sqrt(disc)
	t1 := (-b + s) / (2 * a)
	t2 := (-b - s) / (2 * a)
	t := math.Max(t1, t2)
	if p.R0+dr*t < 0 {
		t = math.Min(t1, t2)
	}
	return t
}

func (p Paint) colorAt(t float64) Color {
	if len(p.Stops) == 0 {
		return p.Color
	}
	t = geom.Clamp01(t)
	c := p.Stops[0].Color
	for i := 1; i < len(p.Stops); i++ {
		o0, o1 := p.Stops[i-1].Offset, p.Stops[i].Offset
		if t < o0 {
			break
		}
		k := 1.0
		if o1 > o0 {
			k = geom.Clamp01((t - o0) / (o1 - o0))
		}
		c = p.Stops[i-1].Color.lerp(p.Stops[i].Color, k)
	}
	return c
}
