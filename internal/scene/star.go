package scene

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/cosmic-portfolio/internal/draw"
	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

// glowSize is the star size above which a halo is drawn.
const glowSize = 1.2

// Star is a twinkling background point of the canvas.
type Star struct {
	Pos          geom.Vec2
	Size         float64
	TwinkleSpeed float64
	// TwinkleOffset is the phase of the twinkle; it also tints the star on
	// the light theme.
	TwinkleOffset float64
	BaseOpacity   float64
}

func newStars(n int, w, h float64, rng *rand.Rand) []Star {
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{
			Pos:           geom.V(rng.Float64()*w, rng.Float64()*h),
			Size:          0.5 + rng.Float64()*2,
			TwinkleSpeed:  0.5 + rng.Float64()*2,
			TwinkleOffset: rng.Float64() * 2 * math.Pi,
			BaseOpacity:   0.3 + rng.Float64()*0.5,
		}
	}
	return stars
}

// Alpha is the star opacity at scene time now (ms).
func (s Star) Alpha(now float64) float64 {
	twinkle := 0.5 + math.Sin(now*0.001*s.TwinkleSpeed+s.TwinkleOffset)*0.5
	return s.BaseOpacity * twinkle
}

// Colors returns the fill and halo colours for the given theme.
func (s Star) Colors(now float64, dark bool) (fill, glow draw.Color) {
	a := s.Alpha(now)
	if dark {
		return draw.RGBA(255, 255, 255, a), draw.RGBA(200, 220, 255, a*0.3)
	}
	v := math.Sin(s.TwinkleOffset) * 30
	return draw.RGBAf(120+v, 80+v*0.5, 180+v*0.3, a*0.9), draw.RGBA(150, 100, 200, a*0.4)
}

func (s Star) render(now float64, dark bool) []draw.Command {
	fill, glow := s.Colors(now, dark)
	out := []draw.Command{
		draw.FillPath(draw.NewPath().Circle(s.Pos.X, s.Pos.Y, s.Size), draw.Solid(fill)),
	}
	if s.Size > glowSize {
		r := s.Size * 2.5
		out = append(out, draw.FillPath(
			draw.NewPath().Circle(s.Pos.X, s.Pos.Y, r),
			draw.RadialAt(s.Pos, 0, r,
				draw.Stop{Offset: 0, Color: glow},
				draw.Stop{Offset: 1, Color: draw.Color{}},
			),
		))
	}
	return out
}
