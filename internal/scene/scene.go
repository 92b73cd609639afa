// Package scene simulates the spaceship canvas: a small ship that drifts on
// a Lissajous orbit, flees meteors that come too close, and a handful of
// rocks that tumble across the field and are recycled when they leave it.
//
// A Scene is advanced with Update and drawn with Render; it never touches a
// surface itself. Render is a pure function of the current state and the
// theme passed in, so the theme can change between frames without affecting
// the physics.
package scene

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/cosmic-portfolio/internal/config"
	"github.com/iburimskiy/cosmic-portfolio/internal/draw"
)

// NominalFrame is the frame length every per-frame constant is tuned for.
const NominalFrame = 16.67 // ms

// MaxFrameScale caps the frame multiplier after a stall.
const MaxFrameScale = 2.0

// Options size the scene population.
type Options struct {
	Meteors      int
	Stars        int
	SpawnStagger time.Duration
}

func DefaultOptions() Options {
	return Options{Meteors: 5, Stars: 50, SpawnStagger: 400 * time.Millisecond}
}

func OptionsFrom(cfg config.SceneConfig) Options {
	return Options{Meteors: cfg.Meteors, Stars: cfg.Stars, SpawnStagger: cfg.SpawnStagger}
}

// Dimensions is the canvas size for a container of the given width. A
// non-positive width means there is no room for the canvas.
func Dimensions(containerWidth int, cfg config.SceneConfig) (w, h int) {
	w = min(cfg.MaxWidth, containerWidth-cfg.Padding)
	if w <= 0 {
		return 0, 0
	}
	return w, cfg.Height
}

// FrameScale converts a frame's wall time into the multiplier applied to
// every per-frame rate.
func FrameScale(elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return math.Min(ms(elapsed)/NominalFrame, MaxFrameScale)
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// Scene is the spaceship canvas simulation.
type Scene struct {
	width, height float64
	opts          Options
	rng           *rand.Rand

	// now is the scene clock in milliseconds since the last reseed.
	now       float64
	nextSpawn float64

	ship    Ship
	meteors []*Meteor
	stars   []Star
}

// New builds a scene for a width x height canvas. rng drives every random
// choice; pass a seeded source for reproducible runs.
func New(width, height int, opts Options, rng *rand.Rand) *Scene {
	s := &Scene{opts: opts, rng: rng}
	s.reseed(float64(width), float64(height))
	return s
}

// Resize changes the canvas size. A change reseeds the stars and restarts
// the simulation; it reports whether that happened.
func (s *Scene) Resize(width, height int) bool {
	w, h := float64(width), float64(height)
	if w == s.width && h == s.height {
		return false
	}
	s.reseed(w, h)
	return true
}

func (s *Scene) reseed(w, h float64) {
	s.width, s.height = w, h
	s.now = 0
	s.nextSpawn = 0
	s.ship = newShip(w, h)
	s.meteors = s.meteors[:0]
	s.stars = newStars(s.opts.Stars, w, h, s.rng)
}

func (s *Scene) Size() (w, h float64) { return s.width, s.height }

// Update advances the simulation by one frame that took elapsed wall time.
func (s *Scene) Update(elapsed time.Duration) {
	if s.width <= 0 || s.height <= 0 {
		return
	}
	s.now += ms(elapsed)
	dt := FrameScale(elapsed)

	s.spawn()

	s.ship.steer(s.meteors, s.width, s.height, s.now)
	s.ship.integrate(dt)

	for i, m := range s.meteors {
		m.integrate(i, dt, s.now)
		if m.outside(s.width, s.height) {
			s.meteors[i] = newMeteor(s.width, s.height, s.rng)
		}
	}
}

// spawn releases meteors one stagger interval apart until the pool is full.
func (s *Scene) spawn() {
	for len(s.meteors) < s.opts.Meteors && s.now >= s.nextSpawn {
		s.meteors = append(s.meteors, newMeteor(s.width, s.height, s.rng))
		s.nextSpawn += ms(s.opts.SpawnStagger)
	}
}

// Render returns the frame: clear, stars, meteors in pool order, then the
// ship.
func (s *Scene) Render(dark bool) draw.List {
	if s.width <= 0 || s.height <= 0 {
		return nil
	}
	out := draw.List{draw.ClearCommand()}
	for _, st := range s.stars {
		out.Add(st.render(s.now, dark)...)
	}
	for _, m := range s.meteors {
		out.Add(m.render(s.now)...)
	}
	out.Add(s.ship.render(s.now)...)
	return out
}

// Ship returns a copy of the ship state.
func (s *Scene) Ship() Ship { return s.ship }

// Meteors returns the live pool. The meteors are owned by the scene.
func (s *Scene) Meteors() []*Meteor { return s.meteors }

func (s *Scene) Stars() []Star { return s.stars }
