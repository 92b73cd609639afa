// Package backdrop draws the page-wide decoration behind every section: a
// field of softly pulsing stars and a few shooting meteors that streak
// across the top of the window on a loop.
package backdrop

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/cosmic-portfolio/internal/config"
	"github.com/iburimskiy/cosmic-portfolio/internal/draw"
	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

const (
	// meteorAngle is the streak heading, measured like a CSS rotate().
	meteorAngle = 215 * math.Pi / 180
	// meteorTravel is how far a streak moves over one run.
	meteorTravel = 500.0
	// meteorFadeFrom is the share of a run after which the streak fades out.
	meteorFadeFrom = 0.7
	// pulseDepth is how much a star dims at the bottom of its pulse.
	pulseDepth = 0.2
	lightDim   = 0.7
)

// lightPalette tints stars on the light theme, picked by star id.
var lightPalette = [...]draw.Color{
	draw.RGB(0xa7, 0x8b, 0xfa), // violet
	draw.RGB(0xc0, 0x84, 0xfc), // purple
	draw.RGB(0xe8, 0x79, 0xf9), // fuchsia
	draw.RGB(0xa5, 0xb4, 0xfc), // indigo
	draw.RGB(0xd8, 0xb4, 0xfe), // light purple
}

// Star is one backdrop star. X and Y are percentages of the window.
type Star struct {
	ID       int
	Size     float64
	X, Y     float64
	Opacity  float64
	Duration time.Duration
}

// Pulse is the brightness factor at time now, between 1-pulseDepth and 1.
func (s Star) Pulse(now time.Duration) float64 {
	if s.Duration <= 0 {
		return 1
	}
	phase := float64(now%s.Duration) / float64(s.Duration)
	return 1 - pulseDepth*(0.5-0.5*math.Cos(2*math.Pi*phase))
}

// Color is the star colour for the theme, before pulsing.
func (s Star) Color(dark bool) draw.Color {
	if dark {
		return draw.RGBA(255, 255, 255, s.Opacity)
	}
	c := lightPalette[s.ID%len(lightPalette)]
	c.A = s.Opacity * lightDim
	return c
}

// Meteor is one shooting star. X and Y are percentages of the window.
type Meteor struct {
	ID       int
	Size     float64
	X, Y     float64
	Delay    time.Duration
	Duration time.Duration
}

// Length is the streak length in pixels.
func (m Meteor) Length() float64 { return m.Size * 50 }

// Progress is how far through its current run the meteor is at now, and
// whether it is on screen at all yet.
func (m Meteor) Progress(now time.Duration) (float64, bool) {
	t := now - m.Delay
	if t < 0 || m.Duration <= 0 {
		return 0, false
	}
	return float64(t%m.Duration) / float64(m.Duration), true
}

// Opacity is full for most of a run and fades to zero at its end.
func Opacity(progress float64) float64 {
	if progress <= meteorFadeFrom {
		return 1
	}
	return geom.Clamp01((1 - progress) / (1 - meteorFadeFrom))
}

type Options struct {
	// StarDensity is the number of square pixels per star.
	StarDensity int
	Meteors     int
}

func DefaultOptions() Options { return Options{StarDensity: 10000, Meteors: 4} }

func OptionsFrom(cfg config.BackdropConfig) Options {
	return Options{StarDensity: cfg.StarDensity, Meteors: cfg.Meteors}
}

// StarCount is how many stars a width x height window gets.
func StarCount(width, height, density int) int {
	if width <= 0 || height <= 0 || density <= 0 {
		return 0
	}
	return width * height / density
}

// Field is the backdrop for one window.
type Field struct {
	opts          Options
	rng           *rand.Rand
	width, height int

	stars   []Star
	meteors []Meteor
}

// New creates the meteors; stars are made on the first Resize.
func New(opts Options, rng *rand.Rand) *Field {
	f := &Field{opts: opts, rng: rng}
	f.meteors = make([]Meteor, opts.Meteors)
	for i := range f.meteors {
		f.meteors[i] = Meteor{
			ID:       i,
			Size:     1 + rng.Float64()*2,
			X:        rng.Float64() * 100,
			Y:        rng.Float64() * 20,
			Delay:    seconds(rng.Float64() * 15),
			Duration: seconds(3 + rng.Float64()*3),
		}
	}
	return f
}

func seconds(s float64) time.Duration { return time.Duration(s * float64(time.Second)) }

// Resize regenerates the stars for a new window size and reports whether
// the size changed. Meteors are kept.
func (f *Field) Resize(width, height int) bool {
	if width == f.width && height == f.height {
		return false
	}
	f.width, f.height = width, height

	n := StarCount(width, height, f.opts.StarDensity)
	f.stars = make([]Star, n)
	for i := range f.stars {
		f.stars[i] = Star{
			ID:       i,
			Size:     1 + f.rng.Float64()*3,
			X:        f.rng.Float64() * 100,
			Y:        f.rng.Float64() * 100,
			Opacity:  0.5 + f.rng.Float64()*0.5,
			Duration: seconds(2 + f.rng.Float64()*4),
		}
	}
	return true
}

func (f *Field) Stars() []Star { return f.stars }

func (f *Field) Meteors() []Meteor { return f.meteors }

// at converts percentage coordinates into window pixels.
func (f *Field) at(x, y float64) geom.Vec2 {
	return geom.V(x/100*float64(f.width), y/100*float64(f.height))
}

// Render draws the stars, then the meteors, at time now.
func (f *Field) Render(now time.Duration, dark bool) draw.List {
	var out draw.List
	for _, s := range f.stars {
		c := s.Color(dark)
		p := f.at(s.X, s.Y)
		cmd := draw.FillPath(draw.NewPath().Circle(p.X, p.Y, s.Size/2), draw.Solid(c)).
			WithAlpha(s.Pulse(now))
		if dark {
			cmd = cmd.WithGlow(s.Size)
		}
		out.Add(cmd)
	}

	head := draw.RGBA(255, 255, 255, 1)
	if !dark {
		head = draw.RGB(0x8b, 0x5c, 0xf6)
	}
	tail := head.Fade(0)

	for _, m := range f.meteors {
		progress, visible := m.Progress(now)
		if !visible {
			continue
		}
		start := f.at(m.X, m.Y)
		lead := -progress * meteorTravel
		length := m.Length()
		r := m.Size / 2

		streak := draw.NewPath().
			MoveTo(lead, -r).
			LineTo(lead+length, -r).
			LineTo(lead+length, r).
			LineTo(lead, r).
			Arc(lead, 0, r, math.Pi/2, 3*math.Pi/2, false).
			Close()
		out.Add(draw.FillPath(streak, draw.Linear(geom.V(lead, 0), geom.V(lead+length, 0),
			draw.Stop{Offset: 0, Color: head},
			draw.Stop{Offset: 1, Color: tail},
		)).At(geom.Translate(start.X, start.Y).Rotate(meteorAngle)).WithAlpha(Opacity(progress)))
	}
	return out
}
