package scene

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/cosmic-portfolio/internal/draw"
	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

const (
	MeteorTrailLen = 8
	ShapePoints    = 10
	MinRadius      = 12.0
	MaxRadius      = 32.0

	// RecycleMargin is how far past the canvas edge a meteor may travel.
	RecycleMargin = 120.0
	spawnOffset   = 60.0
	smoothBlend   = 0.15
)

// MeteorState is where a meteor is in its life.
type MeteorState int

const (
	// Spawning meteors have not reached the canvas yet.
	Spawning MeteorState = iota
	Active
	// OutOfBounds meteors are replaced before the next frame is drawn.
	OutOfBounds
)

func (s MeteorState) String() string {
	switch s {
	case Spawning:
		return "spawning"
	case Active:
		return "active"
	case OutOfBounds:
		return "out of bounds"
	}
	return "unknown"
}

// ShapePoint is one vertex of the rock outline, in polar form around the
// centre. Radius is a fraction of the meteor radius. Jitter nudges the
// control point of the curve leading to this vertex.
type ShapePoint struct {
	Angle, Radius float64
	Jitter        geom.Vec2
}

// Crater is a dent drawn on the rock, in units of the meteor radius.
type Crater struct {
	Offset geom.Vec2
	Size   float64
}

// Meteor is one rock of the pool.
type Meteor struct {
	State MeteorState

	Pos, Vel geom.Vec2
	// Smooth lags Pos and is what gets drawn and avoided.
	Smooth geom.Vec2

	Radius                  float64
	Rotation, RotationSpeed float64
	Shape                   [ShapePoints]ShapePoint
	Craters                 []Crater
	GlowPhase               float64

	// Trail holds past smoothed positions, most recent first.
	Trail []geom.Vec2
}

// newMeteor places a fresh rock just outside a random edge of a w x h
// canvas, heading inward.
func newMeteor(w, h float64, rng *rand.Rand) *Meteor {
	speed := 0.8 + rng.Float64()*1.2
	cross := func() float64 { return (rng.Float64() - 0.5) * speed * 0.5 }

	m := &Meteor{State: Spawning}
	switch rng.IntN(4) {
	case 0: // top
		m.Pos = geom.V(rng.Float64()*w, -spawnOffset)
		m.Vel = geom.V(cross(), speed)
	case 1: // right
		m.Pos = geom.V(w+spawnOffset, rng.Float64()*h)
		m.Vel = geom.V(-speed, cross())
	case 2: // bottom
		m.Pos = geom.V(rng.Float64()*w, h+spawnOffset)
		m.Vel = geom.V(cross(), -speed)
	default: // left
		m.Pos = geom.V(-spawnOffset, rng.Float64()*h)
		m.Vel = geom.V(speed, cross())
	}
	m.Smooth = m.Pos

	m.Radius = MinRadius + rng.Float64()*(MaxRadius-MinRadius)
	for i := range m.Shape {
		m.Shape[i] = ShapePoint{
			Angle:  float64(i) / ShapePoints * 2 * math.Pi,
			Radius: 0.75 + rng.Float64()*0.25,
			Jitter: geom.V((rng.Float64()-0.5)*2, (rng.Float64()-0.5)*2),
		}
	}
	m.Rotation = rng.Float64() * 2 * math.Pi
	m.RotationSpeed = (rng.Float64() - 0.5) * 0.02

	m.Craters = make([]Crater, 2+rng.IntN(3))
	for i := range m.Craters {
		m.Craters[i] = Crater{
			Offset: geom.V((rng.Float64()-0.5)*0.5, (rng.Float64()-0.5)*0.5),
			Size:   0.12 + rng.Float64()*0.15,
		}
	}
	m.GlowPhase = rng.Float64() * 2 * math.Pi
	m.Trail = make([]geom.Vec2, 0, MeteorTrailLen)
	return m
}

// integrate moves meteor i of the pool by one frame at scene time now (ms).
func (m *Meteor) integrate(i int, dt, now float64) {
	drift := geom.V(
		math.Sin(now*0.002+float64(i))*0.1,
		math.Cos(now*0.0015+float64(i)*1.5)*0.1,
	)
	m.Pos = m.Pos.Add(m.Vel.Add(drift).Scale(dt))
	m.Smooth = m.Smooth.Lerp(m.Pos, smoothBlend*dt)
	m.Rotation += m.RotationSpeed * dt
	m.Trail = prepend(m.Trail, m.Smooth, MeteorTrailLen)
}

// outside advances the life state for a w x h canvas and reports whether
// the meteor has left the field for good.
func (m *Meteor) outside(w, h float64) bool {
	p := m.Pos
	if p.X < -RecycleMargin || p.X > w+RecycleMargin || p.Y < -RecycleMargin || p.Y > h+RecycleMargin {
		m.State = OutOfBounds
		return true
	}
	if m.State == Spawning && p.X >= 0 && p.X <= w && p.Y >= 0 && p.Y <= h {
		m.State = Active
	}
	return false
}

var (
	rockStops = []draw.Stop{
		{Offset: 0, Color: draw.RGB(0xa0, 0x80, 0x60)},
		{Offset: 0.3, Color: draw.RGB(0x8b, 0x73, 0x55)},
		{Offset: 0.6, Color: draw.RGB(0x6b, 0x53, 0x44)},
		{Offset: 1, Color: draw.RGB(0x4a, 0x37, 0x28)},
	}
	craterStops = []draw.Stop{
		{Offset: 0, Color: draw.RGB(0x3d, 0x2d, 0x1e)},
		{Offset: 0.7, Color: draw.RGB(0x2d, 0x21, 0x18)},
		{Offset: 1, Color: draw.RGB(0x4a, 0x37, 0x28)},
	}
	rockEdge = draw.RGBA(160, 140, 120, 0.3)
)

// trailColor is the orange of the streak at position t along it.
func trailColor(t float64) draw.Color {
	return draw.RGBAf(255, 120+t*80, 50+t*50, (1-t)*0.4)
}

// outline closes the rock shape with curves through jittered midpoints.
func (m *Meteor) outline() *draw.Path {
	p := draw.NewPath()
	var prev geom.Vec2
	for i, sp := range m.Shape {
		v := geom.Polar(sp.Angle, m.Radius*sp.Radius)
		if i == 0 {
			p.MoveTo(v.X, v.Y)
		} else {
			c := prev.Lerp(v, 0.5).Add(sp.Jitter)
			p.QuadTo(c.X, c.Y, v.X, v.Y)
		}
		prev = v
	}
	return p.Close()
}

func (m *Meteor) render(now float64) []draw.Command {
	var out []draw.Command

	if n := len(m.Trail); n > 1 {
		back := math.Atan2(-m.Vel.Y, -m.Vel.X)
		side := geom.Polar(back+math.Pi/2, 1)
		for i := 0; i < n-1; i++ {
			t := float64(i) / float64(n)
			nt := float64(i+1) / float64(n)
			w := m.Radius * (1 - t*0.7) * 0.4
			nw := m.Radius * (1 - nt*0.7) * 0.4
			a, b := m.Trail[i], m.Trail[i+1]
			quad := draw.NewPath().Polygon([]geom.Vec2{
				a.Add(side.Scale(w)),
				b.Add(side.Scale(nw)),
				b.Sub(side.Scale(nw)),
				a.Sub(side.Scale(w)),
			})
			out = append(out, draw.FillPath(quad, draw.Linear(a, b,
				draw.Stop{Offset: 0, Color: trailColor(t)},
				draw.Stop{Offset: 1, Color: trailColor(nt)},
			)))
		}
	}

	pulse := 0.7 + math.Sin(m.GlowPhase+now*0.003)*0.3
	out = append(out, draw.FillPath(
		draw.NewPath().Circle(m.Smooth.X, m.Smooth.Y, m.Radius*2),
		draw.RadialAt(m.Smooth, m.Radius*0.5, m.Radius*2,
			draw.Stop{Offset: 0, Color: draw.RGBA(255, 100, 50, 0.3*pulse)},
			draw.Stop{Offset: 0.5, Color: draw.RGBA(255, 80, 30, 0.15*pulse)},
			draw.Stop{Offset: 1, Color: draw.RGBA(255, 60, 20, 0)},
		),
	))

	at := geom.Translate(m.Smooth.X, m.Smooth.Y).Rotate(m.Rotation)
	r := m.Radius
	out = append(out, draw.FillPath(m.outline(),
		draw.Radial(geom.V(-r*0.25, -r*0.25), 0, geom.V(0, 0), r, rockStops...),
	).WithStroke(draw.Solid(rockEdge), 1).At(at))

	for _, c := range m.Craters {
		centre := c.Offset.Scale(r)
		size := c.Size * r
		out = append(out, draw.FillPath(
			draw.NewPath().Circle(centre.X, centre.Y, size),
			draw.Radial(centre.Sub(geom.V(size*0.2, size*0.2)), 0, centre, size, craterStops...),
		).At(at))
	}
	return out
}
