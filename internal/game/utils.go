package game

import (
	"math"

	"github.com/iburimskiy/cosmic-portfolio/internal/draw"
)

// hsv builds a colour from hue in degrees and saturation, value and alpha
// in [0, 1].
func hsv(h, s, v, a float64) draw.Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return draw.RGBAf((r+m)*255, (g+m)*255, (b+m)*255, a)
}
