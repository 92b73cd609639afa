package draw

import (
	"math"
	"strings"
	"testing"

	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

func closeTo(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestLinearGradientAt(t *testing.T) {
	p := Linear(geom.V(0, 0), geom.V(100, 0),
		Stop{0, RGBA(255, 0, 0, 1)},
		Stop{1, RGBA(0, 0, 255, 0)},
	)

	tests := []struct {
		name  string
		pt    geom.Vec2
		wantR float64
		wantA float64
	}{
		{"start", geom.V(0, 0), 1, 1},
		{"middle", geom.V(50, 30), 0.5, 0.5},
		{"end", geom.V(100, -5), 0, 0},
		{"before start clamps", geom.V(-40, 0), 1, 1},
		{"past end clamps", geom.V(400, 0), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := p.At(tt.pt)
			if !closeTo(c.R, tt.wantR) || !closeTo(c.A, tt.wantA) {
				t.Errorf("At(%v) = %+v, want R=%v A=%v", tt.pt, c, tt.wantR, tt.wantA)
			}
		})
	}
}

func TestRadialGradientConcentric(t *testing.T) {
	p := RadialAt(geom.V(10, 10), 5, 25,
		Stop{0, RGBA(255, 255, 255, 1)},
		Stop{0.5, RGBA(255, 255, 255, 0.5)},
		Stop{1, RGBA(255, 255, 255, 0)},
	)

	if c := p.At(geom.V(12, 10)); !closeTo(c.A, 1) {
		t.Errorf("inside inner circle alpha = %v, want 1", c.A)
	}
	// distance 15 is halfway between radii 5 and 25
	if c := p.At(geom.V(25, 10)); !closeTo(c.A, 0.5) {
		t.Errorf("halfway alpha = %v, want 0.5", c.A)
	}
	if c := p.At(geom.V(10, 40)); !closeTo(c.A, 0) {
		t.Errorf("outside alpha = %v, want 0", c.A)
	}
}

func TestRadialGradientFocalOffset(t *testing.T) {
	// inner point circle off-centre, like a lit sphere
	p := Radial(geom.V(-5, -5), 0, geom.V(0, 0), 20,
		Stop{0, RGBA(0, 0, 0, 1)},
		Stop{1, RGBA(0, 0, 0, 0)},
	)
	if c := p.At(geom.V(-5, -5)); !closeTo(c.A, 1) {
		t.Errorf("focal point alpha = %v, want 1", c.A)
	}
	if c := p.At(geom.V(20, 0)); !closeTo(c.A, 0) {
		t.Errorf("outer rim alpha = %v, want 0", c.A)
	}
	near, far := p.At(geom.V(-2, -2)), p.At(geom.V(8, 8))
	if near.A <= far.A {
		t.Errorf("alpha should fall away from focus: near %v, far %v", near.A, far.A)
	}
}

func TestPaintTransformedAndFaded(t *testing.T) {
	p := Linear(geom.V(0, 0), geom.V(10, 0), Stop{0, RGB(0, 0, 0)}, Stop{1, RGB(255, 255, 255)})
	moved := p.Transformed(geom.Translate(100, 0).Rotate(math.Pi / 2))
	if !closeTo(moved.To.X, 100) || !closeTo(moved.To.Y, 10) {
		t.Errorf("transformed To = %v, want (100, 10)", moved.To)
	}

	faded := p.Faded(0.5)
	if !closeTo(faded.Stops[1].Color.A, 0.5) {
		t.Errorf("faded stop alpha = %v", faded.Stops[1].Color.A)
	}
	if !closeTo(p.Stops[1].Color.A, 1) {
		t.Error("Faded must not modify the original stops")
	}
}

func TestTooManyStopsAreClipped(t *testing.T) {
	stops := make([]Stop, MaxStops+3)
	if got := len(Linear(geom.V(0, 0), geom.V(1, 0), stops...).Stops); got != MaxStops {
		t.Errorf("stops = %d, want %d", got, MaxStops)
	}
}

func TestGradientUniforms(t *testing.T) {
	p := RadialAt(geom.V(3, 4), 1, 9, Stop{0, RGB(255, 0, 0)}, Stop{1, RGBA(0, 255, 0, 0.5)})
	u := gradientUniforms(p, 0.25)

	if u["Kind"].(float32) != 1 {
		t.Errorf("Kind = %v, want 1", u["Kind"])
	}
	if u["Count"].(float32) != 2 {
		t.Errorf("Count = %v, want 2", u["Count"])
	}
	colors := u["Colors"].([]float32)
	if len(colors) != 4*MaxStops {
		t.Fatalf("Colors len = %d", len(colors))
	}
	if colors[0] != 1 || colors[5] != 1 || colors[7] != 0.5 {
		t.Errorf("Colors = %v", colors[:8])
	}
	if u["Alpha"].(float32) != 0.25 {
		t.Errorf("Alpha = %v", u["Alpha"])
	}
}

func TestGradientShaderSamplesImageLocalPixels(t *testing.T) {
	// paint geometry is relative to the destination image, which may sit
	// anywhere inside an atlas
	if !strings.Contains(gradientShaderSrc, "dstPos.xy - imageDstOrigin()") {
		t.Fatal("gradient shader must offset dstPos by the image origin")
	}
	if strings.Contains(gradientShaderSrc, "linearT(dstPos") || strings.Contains(gradientShaderSrc, "radialT(dstPos") {
		t.Error("gradient is evaluated on raw texture positions")
	}
}

func TestHaloPasses(t *testing.T) {
	fill := Linear(geom.V(0, 0), geom.V(10, 0), Stop{0, RGBA(255, 0, 0, 0.8)}, Stop{1, RGB(0, 0, 255)})
	prevWidth := math.Inf(1)
	for _, pass := range glowPasses {
		paint, width := halo(fill, 10, pass)
		if !closeTo(width, 10*pass[0]) {
			t.Errorf("halo width = %v, want %v", width, 10*pass[0])
		}
		if width >= prevWidth {
			t.Errorf("passes should narrow: %v after %v", width, prevWidth)
		}
		prevWidth = width
		if !closeTo(paint.Stops[0].Color.A, 0.8*pass[1]) || !closeTo(paint.Stops[1].Color.A, pass[1]) {
			t.Errorf("halo stops = %v", paint.Stops)
		}
	}
	if !closeTo(fill.Stops[0].Color.A, 0.8) {
		t.Error("halo must not fade the shape's own fill")
	}

	solid, _ := halo(Solid(RGBA(1, 2, 3, 0.5)), 4, glowPasses[0])
	if !closeTo(solid.Color.A, 0.5*glowPasses[0][1]) {
		t.Errorf("solid halo alpha = %v", solid.Color.A)
	}
}

func TestPathShapes(t *testing.T) {
	c := NewPath().Circle(5, 5, 3)
	pts := c.EndPoints()
	if len(pts) != 2 {
		t.Fatalf("circle end points = %d, want 2", len(pts))
	}
	if !closeTo(pts[1].X, 8) || !closeTo(pts[1].Y, 5) {
		t.Errorf("circle arc should end where it started, got %v", pts[1])
	}

	e := NewPath().Ellipse(0, -8, 5, 7, 0)
	for _, p := range e.EndPoints() {
		// every end point lies on the ellipse
		v := (p.X*p.X)/25 + ((p.Y+8)*(p.Y+8))/49
		if !closeTo(v, 1) {
			t.Errorf("ellipse point %v off the curve (%v)", p, v)
		}
	}

	if !NewPath().MoveTo(1, 1).Close().Empty() {
		t.Error("move+close path should be empty")
	}
	var nilPath *Path
	if !nilPath.Empty() || nilPath.Len() != 0 {
		t.Error("nil path should be empty")
	}
}

func TestListSkipsInvisibleCommands(t *testing.T) {
	shape := NewPath().Circle(0, 0, 4)
	var l List
	l.Add(
		ClearCommand(),
		FillPath(shape, Solid(RGB(1, 2, 3))),
		FillPath(shape, Solid(RGB(1, 2, 3))).WithAlpha(0),
		FillPath(NewPath(), Solid(RGB(1, 2, 3))),
		StrokePath(shape, Solid(RGB(1, 2, 3)), 0),
		StrokePath(shape, Solid(RGB(1, 2, 3)), 1.5),
	)
	if len(l) != 3 {
		t.Errorf("list kept %d commands, want 3", len(l))
	}
	if !l[0].Clear {
		t.Error("first command should be the clear")
	}
}
