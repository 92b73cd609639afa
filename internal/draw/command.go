package draw

import "github.com/iburimskiy/cosmic-portfolio/internal/geom"

// Command is one declarative drawing step: a path in local coordinates,
// placed by Transform, filled and/or stroked.
type Command struct {
	Clear bool

	Path      *Path
	Transform geom.Transform
	Fill      *Paint
	Stroke    *Paint
	LineWidth float64
	// Alpha multiplies every colour of the command, like canvas globalAlpha.
	Alpha float64
	// Glow spreads a soft halo of this radius under the fill, standing in
	// for a gaussian blur filter.
	Glow float64
}

// ClearCommand wipes the surface.
func ClearCommand() Command { return Command{Clear: true} }

// FillPath fills path with paint.
func FillPath(path *Path, paint Paint) Command {
	return Command{Path: path, Fill: &paint, Alpha: 1}
}

// StrokePath strokes path with paint at width w.
func StrokePath(path *Path, paint Paint, w float64) Command {
	return Command{Path: path, Stroke: &paint, LineWidth: w, Alpha: 1}
}

func (c Command) At(t geom.Transform) Command {
	c.Transform = t
	return c
}

func (c Command) WithAlpha(a float64) Command {
	c.Alpha = geom.Clamp01(a)
	return c
}

func (c Command) WithStroke(paint Paint, w float64) Command {
	c.Stroke = &paint
	c.LineWidth = w
	return c
}

func (c Command) WithGlow(r float64) Command {
	c.Glow = r
	return c
}

// Visible reports whether executing c can change a pixel.
func (c Command) Visible() bool {
	if c.Clear {
		return true
	}
	if c.Alpha <= 0 || c.Path.Empty() {
		return false
	}
	return c.Fill != nil || (c.Stroke != nil && c.LineWidth > 0)
}

// List collects commands in back-to-front order.
type List []Command

func (l *List) Add(cmds ...Command) {
	for _, c := range cmds {
		if c.Visible() {
			*l = append(*l, c)
		}
	}
}
