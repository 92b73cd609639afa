package scene

import (
	"math"

	"github.com/iburimskiy/cosmic-portfolio/internal/draw"
	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

const (
	DangerRadius    = 140.0
	DangerThreshold = 0.1
	// FleeDistance is how far ahead the flee target is placed at full danger.
	FleeDistance = 100.0

	// Margin keeps the steering target this far inside the canvas.
	Margin = 50.0
	// BoundsPull is the share of the overshoot removed per step.
	BoundsPull = 0.3

	Steering      = 0.03
	VelocityBlend = 0.08
	TurnBlend     = 0.06
	// TurnSpeed is the speed above which the ship turns to face its motion.
	TurnSpeed = 0.3

	ShipTrailLen = 6

	idleThrust     = 0.5
	thrustAttack   = 0.1
	thrustRelease  = 0.05
	thrusterStride = 0.15

	orbitRate   = 0.0008
	breatheRate = 0.0005
)

// Pose is a position with a heading; heading 0 points the nose up.
type Pose struct {
	Pos   geom.Vec2
	Angle float64
}

// Ship is the player-less spaceship that steers itself around the canvas.
type Ship struct {
	Pos, Vel, Target   geom.Vec2
	Angle, TargetAngle float64

	ThrusterPhase     float64
	ThrusterIntensity float64

	// Trail is the recent poses, most recent first.
	Trail []Pose
}

func newShip(w, h float64) Ship {
	c := geom.V(w/2, h/2)
	return Ship{
		Pos:               c,
		Target:            c,
		ThrusterIntensity: idleThrust,
		Trail:             make([]Pose, 0, ShipTrailLen),
	}
}

// AssessDanger sums, over meteors inside DangerRadius, a push away from
// each one weighted by (1 - d/DangerRadius)². It returns the summed push and
// the largest single weight.
func AssessDanger(pos geom.Vec2, meteors []*Meteor) (avoid geom.Vec2, danger float64) {
	for _, m := range meteors {
		d := m.Smooth.Sub(pos)
		dist := d.Len()
		if dist >= DangerRadius {
			continue
		}
		w := 1 - dist/DangerRadius
		w *= w
		if dist > 0 {
			avoid = avoid.Sub(d.Scale(w / dist))
		}
		danger = math.Max(danger, w)
	}
	return avoid, danger
}

// Orbit is the idle patrol target at scene time now (ms): a Lissajous figure
// around the centre.
func Orbit(w, h, now float64) geom.Vec2 {
	o := now * orbitRate
	b := now * breatheRate
	return geom.V(
		w/2+math.Sin(o)*70+math.Sin(o*2.3)*20,
		h/2+math.Cos(b)*50+math.Cos(b*1.7)*15,
	)
}

// SoftBound pulls each coordinate outside the margin 30% of the way back to
// it. A coordinate inside the margin is left alone.
func SoftBound(p geom.Vec2, w, h float64) geom.Vec2 {
	soft := func(v, lo, hi float64) float64 {
		if v < lo {
			v = geom.Lerp(v, lo, BoundsPull)
		}
		if v > hi {
			v = geom.Lerp(v, hi, BoundsPull)
		}
		return v
	}
	return geom.V(soft(p.X, Margin, w-Margin), soft(p.Y, Margin, h-Margin))
}

// steer picks this frame's target: away from danger, or along the orbit.
func (s *Ship) steer(meteors []*Meteor, w, h, now float64) {
	avoid, danger := AssessDanger(s.Pos, meteors)
	if danger > DangerThreshold {
		s.Target = s.Pos.Add(avoid.Unit().Scale(FleeDistance * danger))
		s.ThrusterIntensity = geom.Lerp(s.ThrusterIntensity, 1, thrustAttack)
	} else {
		s.Target = Orbit(w, h, now)
		s.ThrusterIntensity = geom.Lerp(s.ThrusterIntensity, idleThrust, thrustRelease)
	}
	s.Target = SoftBound(s.Target, w, h)
}

func (s *Ship) integrate(dt float64) {
	want := s.Target.Sub(s.Pos).Scale(Steering)
	s.Vel = s.Vel.Lerp(want, VelocityBlend*dt)
	s.Pos = s.Pos.Add(s.Vel.Scale(dt))

	if s.Vel.Len() > TurnSpeed {
		s.TargetAngle = math.Atan2(s.Vel.Y, s.Vel.X) + math.Pi/2
	}
	s.Angle = geom.LerpAngle(s.Angle, s.TargetAngle, TurnBlend*dt)

	s.Trail = prepend(s.Trail, Pose{Pos: s.Pos, Angle: s.Angle}, ShipTrailLen)
	s.ThrusterPhase += thrusterStride
}

// prepend inserts v at the front of s and drops whatever exceeds limit.
func prepend[T any](s []T, v T, limit int) []T {
	if limit <= 0 {
		return s[:0]
	}
	if len(s) < limit {
		var zero T
		s = append(s, zero)
	}
	copy(s[1:], s)
	s[0] = v
	return s[:min(len(s), limit)]
}

var (
	ghostFill = draw.RGBA(99, 102, 241, 0.3)
	hullEdge  = draw.RGBA(99, 102, 241, 0.6)
	wingEdge  = draw.RGBA(99, 102, 241, 0.5)

	hullStops = []draw.Stop{
		{Offset: 0, Color: draw.RGB(0x1a, 0x1a, 0x2e)},
		{Offset: 0.2, Color: draw.RGB(0x2d, 0x2d, 0x44)},
		{Offset: 0.35, Color: draw.RGB(0x4a, 0x4e, 0x69)},
		{Offset: 0.5, Color: draw.RGB(0x9a, 0x8c, 0x98)},
		{Offset: 0.65, Color: draw.RGB(0x4a, 0x4e, 0x69)},
		{Offset: 0.8, Color: draw.RGB(0x2d, 0x2d, 0x44)},
		{Offset: 1, Color: draw.RGB(0x1a, 0x1a, 0x2e)},
	}
	shineStops = []draw.Stop{
		{Offset: 0, Color: draw.RGBA(255, 255, 255, 0.15)},
		{Offset: 0.5, Color: draw.RGBA(255, 255, 255, 0.05)},
		{Offset: 1, Color: draw.RGBA(255, 255, 255, 0)},
	}
	flameStops = []draw.Stop{
		{Offset: 0, Color: draw.RGB(0xff, 0xff, 0xff)},
		{Offset: 0.1, Color: draw.RGB(0x00, 0xff, 0xff)},
		{Offset: 0.3, Color: draw.RGB(0x00, 0xdd, 0xff)},
		{Offset: 0.5, Color: draw.RGB(0x00, 0xaa, 0xff)},
		{Offset: 0.7, Color: draw.RGB(0x00, 0x77, 0xff)},
		{Offset: 1, Color: draw.RGBA(0, 50, 200, 0)},
	}
	coreStops = []draw.Stop{
		{Offset: 0, Color: draw.RGB(0xff, 0xff, 0xff)},
		{Offset: 0.3, Color: draw.RGB(0xaa, 0xff, 0xff)},
		{Offset: 1, Color: draw.RGBA(100, 200, 255, 0)},
	}
	wingStops = []draw.Stop{
		{Offset: 0, Color: draw.RGB(0x3d, 0x3d, 0x5c)},
		{Offset: 1, Color: draw.RGB(0x4a, 0x4e, 0x69)},
	}
)

func ghostPath() *draw.Path {
	return draw.NewPath().
		MoveTo(0, -25).
		CubicTo(12, -15, 15, 5, 12, 20).
		LineTo(-12, 20).
		CubicTo(-15, 5, -12, -15, 0, -25).
		Close()
}

func hullPath() *draw.Path {
	return draw.NewPath().
		MoveTo(0, -25).
		CubicTo(8, -20, 12, -10, 13, 0).
		CubicTo(14, 10, 13, 18, 12, 20).
		LineTo(-12, 20).
		CubicTo(-13, 18, -14, 10, -13, 0).
		CubicTo(-12, -10, -8, -20, 0, -25).
		Close()
}

func shinePath() *draw.Path {
	return draw.NewPath().
		MoveTo(-2, -22).
		CubicTo(4, -15, 6, -5, 5, 10).
		LineTo(-2, 10).
		CubicTo(-1, -5, 1, -15, -2, -22).
		Close()
}

// wingPath is the left wing for side -1 and the right one for side 1.
func wingPath(side float64) *draw.Path {
	return draw.NewPath().
		MoveTo(12*side, 8).
		CubicTo(18*side, 12, 24*side, 18, 25*side, 22).
		LineTo(20*side, 22).
		LineTo(12*side, 17).
		Close()
}

func (s *Ship) render(now float64) []draw.Command {
	var out []draw.Command

	for i := 0; i < len(s.Trail)-1; i++ {
		t := float64(i) / float64(len(s.Trail))
		p := s.Trail[i]
		out = append(out, draw.FillPath(ghostPath(), draw.Solid(ghostFill)).
			At(geom.Translate(p.Pos.X, p.Pos.Y).Rotate(p.Angle)).
			WithAlpha((1-t)*0.15))
	}

	at := geom.Translate(s.Pos.X, s.Pos.Y).Rotate(s.Angle)
	body := func(c draw.Command) draw.Command { return c.At(at) }

	wave := math.Sin(s.ThrusterPhase)
	wave2 := math.Sin(s.ThrusterPhase*1.7 + 1)
	// the flame stretches with the thrust: unchanged at idle, half again at full burn
	flameLen := (18 + wave*6 + wave2*4) * (0.5 + s.ThrusterIntensity)
	flameWidth := 8 + wave*2
	coreLen := flameLen * 0.7
	nozzle := geom.V(0, 25)

	out = append(out,
		body(draw.FillPath(draw.NewPath().Circle(0, 25, 25), draw.RadialAt(nozzle, 0, 25,
			draw.Stop{Offset: 0, Color: draw.RGBA(0, 255, 255, 0.4+wave*0.1)},
			draw.Stop{Offset: 0.5, Color: draw.RGBA(0, 150, 255, 0.2+wave*0.05)},
			draw.Stop{Offset: 1, Color: draw.RGBA(0, 100, 255, 0)},
		))),
		body(draw.FillPath(
			draw.NewPath().
				MoveTo(-flameWidth, 20).
				CubicTo(-flameWidth*0.6, 20+flameLen*0.4, -flameWidth*0.2, 20+flameLen*0.7, 0, 20+flameLen).
				CubicTo(flameWidth*0.2, 20+flameLen*0.7, flameWidth*0.6, 20+flameLen*0.4, flameWidth, 20).
				Close(),
			draw.Linear(geom.V(0, 20), geom.V(0, 20+flameLen), flameStops...),
		)),
		body(draw.FillPath(
			draw.NewPath().
				MoveTo(-flameWidth*0.5, 20).
				CubicTo(-flameWidth*0.3, 20+coreLen*0.5, 0, 20+coreLen*0.8, 0, 20+coreLen).
				CubicTo(0, 20+coreLen*0.8, flameWidth*0.3, 20+coreLen*0.5, flameWidth*0.5, 20).
				Close(),
			draw.Linear(geom.V(0, 20), geom.V(0, 20+coreLen), coreStops...),
		)),
		body(draw.FillPath(hullPath(), draw.Linear(geom.V(-15, 0), geom.V(15, 0), hullStops...)).
			WithStroke(draw.Solid(hullEdge), 1.5)),
		body(draw.FillPath(shinePath(), draw.Linear(geom.V(-5, -20), geom.V(5, 10), shineStops...))),
	)

	windowPulse := 0.9 + math.Sin(now*0.004)*0.1
	frame := 0.7 + math.Sin(now*0.003)*0.3
	out = append(out,
		body(draw.FillPath(draw.NewPath().Ellipse(0, -8, 5, 7, 0), draw.RadialAt(geom.V(0, -8), 0, 8,
			draw.Stop{Offset: 0, Color: draw.RGBA(200, 255, 255, windowPulse)},
			draw.Stop{Offset: 0.3, Color: draw.RGB(0x67, 0xe8, 0xf9)},
			draw.Stop{Offset: 0.6, Color: draw.RGB(0x22, 0xd3, 0xee)},
			draw.Stop{Offset: 1, Color: draw.RGB(0x08, 0x91, 0xb2)},
		)).WithStroke(draw.Solid(draw.RGBA(6, 182, 212, frame)), 1.5)),
		body(draw.FillPath(draw.NewPath().Ellipse(-1.5, -10, 1.5, 2, -0.3), draw.Solid(draw.RGBA(255, 255, 255, 0.4)))),
	)

	for _, side := range []float64{-1, 1} {
		out = append(out, body(draw.FillPath(wingPath(side),
			draw.Linear(geom.V(25*side, 10), geom.V(12*side, 20), wingStops...),
		).WithStroke(draw.Solid(wingEdge), 1)))
	}

	pulse := 0.8 + math.Sin(now*0.01)*0.2
	out = append(out, body(draw.FillPath(draw.NewPath().Circle(0, 20, 6), draw.RadialAt(geom.V(0, 20), 0, 8,
		draw.Stop{Offset: 0, Color: draw.RGBA(255, 255, 255, pulse)},
		draw.Stop{Offset: 0.3, Color: draw.RGBA(0, 255, 255, pulse*0.8)},
		draw.Stop{Offset: 0.6, Color: draw.RGBA(0, 136, 255, pulse*0.5)},
		draw.Stop{Offset: 1, Color: draw.RGBA(0, 68, 170, 0)},
	))))
	return out
}
