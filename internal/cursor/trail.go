// Package cursor draws the glowing ribbon that follows the mouse pointer.
//
// The Renderer keeps a short history of pointer samples, fades them every
// frame and turns what is left into a tapered, Catmull-Rom smoothed ribbon.
// Time is passed in explicitly as a monotonic offset so the whole thing runs
// the same under a test clock as under the frame loop.
package cursor

import (
	"time"

	"github.com/iburimskiy/cosmic-portfolio/internal/config"
	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

// Point is one historical pointer sample.
type Point struct {
	Pos     geom.Vec2
	Opacity float64
}

// Options tune the trail. Zero values are not meaningful; start from
// DefaultOptions.
type Options struct {
	MaxPoints int
	// FadeSpeed is the opacity lost per frame while the pointer is active.
	FadeSpeed float64
	// StopDelay is how long after the last move the pointer counts as moving.
	StopDelay time.Duration
	// IdleAfter switches to the faster IdleFade multiplier.
	IdleAfter time.Duration
	IdleFade  float64
	// AgePenalty is extra opacity lost per frame per position in the history.
	AgePenalty float64
	// TouchBreakpoint is the viewport width below which the effect is off.
	TouchBreakpoint int
}

func DefaultOptions() Options {
	return Options{
		MaxPoints:       50,
		FadeSpeed:       0.02,
		StopDelay:       30 * time.Millisecond,
		IdleAfter:       100 * time.Millisecond,
		IdleFade:        2.5,
		AgePenalty:      0.001,
		TouchBreakpoint: config.TouchBreakpoint,
	}
}

// OptionsFrom overlays the configurable fields of cfg onto DefaultOptions.
func OptionsFrom(cfg config.CursorConfig) Options {
	o := DefaultOptions()
	o.MaxPoints = cfg.MaxPoints
	o.FadeSpeed = cfg.FadeSpeed
	o.StopDelay = cfg.StopDelay
	o.TouchBreakpoint = cfg.TouchBreakpoint
	return o
}

// Renderer tracks the pointer and owns the trail history.
type Renderer struct {
	opts Options

	mounted  bool
	pointer  geom.Vec2
	moving   bool
	stopAt   time.Duration
	lastMove time.Duration

	// most recent first
	points []Point
}

// NewRenderer returns an unmounted renderer; call SetDevice to start it.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// SetDevice mounts the renderer on pointer-driven devices and unmounts it on
// touch-primary ones. It may be called every frame.
func (r *Renderer) SetDevice(d Device, now time.Duration) {
	touch := d.TouchPrimary(r.opts.TouchBreakpoint)
	switch {
	case touch && r.mounted:
		r.Unmount()
	case !touch && !r.mounted:
		r.mount(now)
	}
}

func (r *Renderer) mount(now time.Duration) {
	r.mounted = true
	r.lastMove = now
}

// Unmount stops tracking, cancels the pending stop timer and drops the
// history.
func (r *Renderer) Unmount() {
	r.mounted = false
	r.moving = false
	r.stopAt = 0
	r.points = nil
}

func (r *Renderer) Mounted() bool { return r.mounted }

// PointerMove records the pointer position and marks it moving until
// StopDelay passes without another move.
func (r *Renderer) PointerMove(pos geom.Vec2, now time.Duration) {
	if !r.mounted {
		return
	}
	r.pointer = pos
	r.moving = true
	r.lastMove = now
	r.stopAt = now + r.opts.StopDelay
}

// PointerLeave stops sampling when the pointer leaves the window.
func (r *Renderer) PointerLeave() {
	r.moving = false
	r.stopAt = 0
}

// Tick advances the trail by one frame.
func (r *Renderer) Tick(now time.Duration) {
	if !r.mounted {
		return
	}

	if r.moving && now >= r.stopAt {
		r.moving = false
		r.stopAt = 0
	}

	if r.moving {
		r.points = append(r.points, Point{})
		copy(r.points[1:], r.points)
		r.points[0] = Point{Pos: r.pointer, Opacity: 1}
		if len(r.points) > r.opts.MaxPoints {
			r.points = r.points[:r.opts.MaxPoints]
		}
	}

	fade := r.opts.FadeSpeed
	if now-r.lastMove > r.opts.IdleAfter {
		fade *= r.opts.IdleFade
	}

	kept := r.points[:0]
	for i, p := range r.points {
		p.Opacity -= fade + float64(i)*r.opts.AgePenalty
		if p.Opacity > 0 {
			kept = append(kept, p)
		}
	}
	r.points = kept
}

// Points returns the live history, most recent first. The slice is owned by
// the renderer and valid until the next Tick.
func (r *Renderer) Points() []Point { return r.points }

func (r *Renderer) Pointer() geom.Vec2 { return r.pointer }

func (r *Renderer) Moving() bool { return r.moving }
