package cursor

import (
	"math"

	"github.com/iburimskiy/cosmic-portfolio/internal/draw"
	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

const (
	// MinRibbonPoints is the shortest history that produces a ribbon.
	MinRibbonPoints = 3

	headWidth    = 8.0
	minWidth     = 0.5
	taper        = 0.95
	glowRadius   = 3.0
	cursorRadius = 8.0
)

// segmentSteps are the spline parameters of the points inserted between two
// samples.
var segmentSteps = [...]float64{1.0 / 3, 2.0 / 3}

// Densify inserts Catmull-Rom points between every consecutive pair, using
// the neighbouring samples (clamped at both ends) as outer control points.
// Opacity is interpolated linearly.
func Densify(pts []Point) []Point {
	if len(pts) < 2 {
		return append([]Point(nil), pts...)
	}
	out := make([]Point, 0, len(pts)+(len(pts)-1)*len(segmentSteps))
	last := len(pts) - 1
	for i, p1 := range pts {
		out = append(out, p1)
		if i == last {
			break
		}
		p0 := pts[max(0, i-1)]
		p2 := pts[i+1]
		p3 := pts[min(last, i+2)]
		for _, t := range segmentSteps {
			out = append(out, Point{
				Pos:     geom.CatmullRomVec(p0.Pos, p1.Pos, p2.Pos, p3.Pos, t),
				Opacity: geom.Lerp(p1.Opacity, p2.Opacity, t),
			})
		}
	}
	return out
}

// WidthAt is the half-width of the ribbon at index i of n points.
func WidthAt(i, n int) float64 {
	progress := float64(i) / float64(n)
	return math.Max(headWidth*(1-progress*taper), minWidth)
}

// Ribbon is the outline of the trail: a spine with its left and right edges.
type Ribbon struct {
	Spine       []Point
	Left, Right []geom.Vec2
}

// BuildRibbon offsets every spine point along its unit normal by WidthAt.
// The direction at each point is toward the next one, or from the previous
// one at the tail.
func BuildRibbon(spine []Point) Ribbon {
	n := len(spine)
	rb := Ribbon{
		Spine: spine,
		Left:  make([]geom.Vec2, n),
		Right: make([]geom.Vec2, n),
	}
	for i, p := range spine {
		var d geom.Vec2
		switch {
		case i < n-1:
			d = spine[i+1].Pos.Sub(p.Pos)
		case i > 0:
			d = p.Pos.Sub(spine[i-1].Pos)
		}
		l := d.Len()
		if l == 0 {
			l = 1
		}
		normal := d.Perp().Scale(1 / l)
		w := WidthAt(i, n)
		rb.Left[i] = p.Pos.Add(normal.Scale(w))
		rb.Right[i] = p.Pos.Sub(normal.Scale(w))
	}
	return rb
}

// Path closes the ribbon into one shape: a round cap at the head, the right
// edge down to a curved tip at the tail, and the left edge back up.
func (rb Ribbon) Path() *draw.Path {
	n := len(rb.Spine)
	if n == 0 {
		return draw.NewPath()
	}
	head := rb.Spine[0].Pos
	tail := rb.Spine[n-1].Pos

	p := draw.NewPath().MoveTo(rb.Left[0].X, rb.Left[0].Y)

	capRadius := rb.Left[0].Dist(head)
	start := math.Atan2(rb.Left[0].Y-head.Y, rb.Left[0].X-head.X)
	p.Arc(head.X, head.Y, capRadius, start, start+math.Pi, false)

	for _, v := range rb.Right[1:] {
		p.LineTo(v.X, v.Y)
	}
	p.QuadTo(tail.X, tail.Y, rb.Left[n-1].X, rb.Left[n-1].Y)
	for i := n - 2; i >= 0; i-- {
		p.LineTo(rb.Left[i].X, rb.Left[i].Y)
	}
	return p.Close()
}

var (
	flameStops = []draw.Stop{
		{Offset: 0, Color: draw.RGBA(0xc4, 0xb5, 0xfd, 0.9)},
		{Offset: 0.3, Color: draw.RGBA(0xa7, 0x8b, 0xfa, 0.7)},
		{Offset: 0.6, Color: draw.RGBA(0x8b, 0x5c, 0xf6, 0.4)},
		{Offset: 1, Color: draw.RGBA(0x7c, 0x3a, 0xed, 0)},
	}
	cursorGlowStops = []draw.Stop{
		{Offset: 0, Color: draw.RGBA(0xc4, 0xb5, 0xfd, 0.8)},
		{Offset: 0.6, Color: draw.RGBA(0xa7, 0x8b, 0xfa, 0.4)},
		{Offset: 1, Color: draw.RGBA(0x8b, 0x5c, 0xf6, 0)},
	}
)

// Render returns this frame's commands: the ribbon when there are enough
// points, then the glow under the pointer. An unmounted renderer draws
// nothing.
func (r *Renderer) Render() draw.List {
	if !r.mounted {
		return nil
	}
	var out draw.List
	if len(r.points) >= MinRibbonPoints {
		rb := BuildRibbon(Densify(r.points))
		head, tail := r.points[0].Pos, r.points[len(r.points)-1].Pos
		out.Add(draw.FillPath(rb.Path(), draw.Linear(head, tail, flameStops...)).
			WithAlpha(r.points[0].Opacity).
			WithGlow(glowRadius))
	}
	out.Add(draw.FillPath(
		draw.NewPath().Circle(r.pointer.X, r.pointer.Y, cursorRadius),
		draw.RadialAt(r.pointer, 0, cursorRadius, cursorGlowStops...),
	).WithGlow(glowRadius))
	return out
}
