package draw

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
	"github.com/iburimskiy/cosmic-portfolio/internal/logging"
)

var whiteSubImage *ebiten.Image

// white returns a 1x1 white source image cut from the middle of a 3x3 one so
// sampling never bleeds past its edges.
func white() *ebiten.Image {
	if whiteSubImage == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// glowPasses are the halo strokes drawn under a glowing shape, as
// (width multiplier, alpha multiplier) pairs from widest to narrowest.
var glowPasses = [...][2]float64{{2, 0.12}, {1.2, 0.22}}

// halo is the stroke for one glow pass under a shape filled with fill.
func halo(fill Paint, glow float64, pass [2]float64) (Paint, float64) {
	return fill.Faded(pass[1]), glow * pass[0]
}

// Writer executes command lists onto Ebitengine images. It is the only code
// that talks to the drawing API.
type Writer struct {
	log *logging.Logger

	shader       *ebiten.Shader
	shaderFailed bool

	vertices []ebiten.Vertex
	indices  []uint16
}

func NewWriter(log *logging.Logger) *Writer {
	if log == nil {
		log = logging.Discard()
	}
	return &Writer{log: log.Component("draw")}
}

// Execute runs cmds in order on dst. A nil dst is a no-op.
func (w *Writer) Execute(dst *ebiten.Image, cmds []Command) {
	if dst == nil {
		return
	}
	for _, c := range cmds {
		if c.Clear {
			dst.Clear()
			continue
		}
		if !c.Visible() {
			continue
		}
		w.execute(dst, c)
	}
}

func (w *Writer) execute(dst *ebiten.Image, c Command) {
	path := w.screenPath(c.Path, c.Transform)

	if c.Fill != nil {
		fill := c.Fill.Transformed(c.Transform)
		if c.Glow > 0 {
			for _, pass := range glowPasses {
				paint, width := halo(fill, c.Glow, pass)
				w.stroke(dst, path, paint, width, c.Alpha)
			}
		}
		w.fill(dst, path, fill, c.Alpha)
	}
	if c.Stroke != nil && c.LineWidth > 0 {
		w.stroke(dst, path, c.Stroke.Transformed(c.Transform), c.LineWidth, c.Alpha)
	}
}

// screenPath replays p through t into a vector.Path in destination pixels.
func (w *Writer) screenPath(p *Path, t geom.Transform) *vector.Path {
	var out vector.Path
	pt := func(v geom.Vec2) (float32, float32) {
		s := t.Apply(v)
		return float32(s.X), float32(s.Y)
	}
	for _, o := range p.ops {
		switch o.kind {
		case opMove:
			x, y := pt(o.pts[0])
			out.MoveTo(x, y)
		case opLine:
			x, y := pt(o.pts[0])
			out.LineTo(x, y)
		case opQuad:
			cx, cy := pt(o.pts[0])
			x, y := pt(o.pts[1])
			out.QuadTo(cx, cy, x, y)
		case opCubic:
			c1x, c1y := pt(o.pts[0])
			c2x, c2y := pt(o.pts[1])
			x, y := pt(o.pts[2])
			out.CubicTo(c1x, c1y, c2x, c2y, x, y)
		case opArc:
			cx, cy := pt(o.pts[0])
			dir := vector.Clockwise
			if o.ccw {
				dir = vector.CounterClockwise
			}
			out.Arc(cx, cy, float32(o.radius), float32(o.a0+t.Angle), float32(o.a1+t.Angle), dir)
		case opClose:
			out.Close()
		}
	}
	return &out
}

func (w *Writer) fill(dst *ebiten.Image, path *vector.Path, paint Paint, alpha float64) {
	w.vertices, w.indices = path.AppendVerticesAndIndicesForFilling(w.vertices[:0], w.indices[:0])
	w.paintTriangles(dst, paint, alpha, ebiten.NonZero)
}

func (w *Writer) stroke(dst *ebiten.Image, path *vector.Path, paint Paint, width, alpha float64) {
	w.vertices, w.indices = path.AppendVerticesAndIndicesForStroke(w.vertices[:0], w.indices[:0], &vector.StrokeOptions{
		Width:    float32(width),
		LineJoin: vector.LineJoinRound,
		LineCap:  vector.LineCapRound,
	})
	// stroke triangles overlap with mixed winding; NonZero would punch holes
	w.paintTriangles(dst, paint, alpha, ebiten.FillAll)
}

func (w *Writer) paintTriangles(dst *ebiten.Image, paint Paint, alpha float64, rule ebiten.FillRule) {
	if len(w.indices) == 0 {
		return
	}

	if paint.Kind != PaintSolid && len(paint.Stops) > 0 {
		if shader := w.gradientShader(); shader != nil {
			dst.DrawTrianglesShader(w.vertices, w.indices, shader, &ebiten.DrawTrianglesShaderOptions{
				Uniforms:  gradientUniforms(paint, alpha),
				AntiAlias: true,
				FillRule:  rule,
			})
			return
		}
	}

	// Solid paints, and gradients when no shader is available: colour each
	// vertex and let the rasterizer interpolate.
	for i := range w.vertices {
		v := &w.vertices[i]
		c := paint.Color
		if paint.Kind != PaintSolid {
			// paint is already in screen space, so sample it there directly
			c = paint.At(geom.V(float64(v.DstX), float64(v.DstY)))
		}
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(c.R)
		v.ColorG = float32(c.G)
		v.ColorB = float32(c.B)
		v.ColorA = float32(c.A * alpha)
	}
	dst.DrawTriangles(w.vertices, w.indices, white(), &ebiten.DrawTrianglesOptions{
		AntiAlias: true,
		FillRule:  rule,
	})
}

// gradientShader compiles the gradient shader once. On failure gradients fall
// back to per-vertex colours for the rest of the run.
func (w *Writer) gradientShader() *ebiten.Shader {
	if w.shader != nil || w.shaderFailed {
		return w.shader
	}
	s, err := ebiten.NewShader([]byte(gradientShaderSrc))
	if err != nil {
		w.shaderFailed = true
		w.log.Failure("gradient shader unavailable, using vertex colours", err)
		return nil
	}
	w.shader = s
	return s
}
