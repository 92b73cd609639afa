package cursor

import (
	"math"
	"testing"
	"time"

	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

const frame = 16 * time.Millisecond

var desktop = Device{ViewportWidth: 1280}

func mounted(t *testing.T) *Renderer {
	t.Helper()
	r := NewRenderer(DefaultOptions())
	r.SetDevice(desktop, 0)
	if !r.Mounted() {
		t.Fatal("renderer should mount on a desktop device")
	}
	return r
}

// sweep moves the pointer once per frame for n frames starting at now.
func sweep(r *Renderer, now time.Duration, n int) time.Duration {
	for i := 0; i < n; i++ {
		r.PointerMove(geom.V(float64(10*i), float64(5*i)), now)
		r.Tick(now)
		now += frame
	}
	return now
}

func TestTouchPrimary(t *testing.T) {
	tests := []struct {
		name string
		d    Device
		want bool
	}{
		{"desktop", Device{ViewportWidth: 1280}, false},
		{"touch laptop with fine pointer", Device{HasTouch: true, ViewportWidth: 1280}, false},
		{"tablet", Device{HasTouch: true, CoarsePointer: true, ViewportWidth: 1024}, true},
		{"narrow window", Device{ViewportWidth: 600}, true},
		{"exactly at breakpoint", Device{ViewportWidth: 768}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.TouchPrimary(768); got != tt.want {
				t.Errorf("TouchPrimary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMovePrependsPointAndCaps(t *testing.T) {
	r := mounted(t)
	sweep(r, 0, 80)

	pts := r.Points()
	if len(pts) > DefaultOptions().MaxPoints {
		t.Fatalf("history length %d exceeds cap", len(pts))
	}
	if pts[0].Pos != r.Pointer() {
		t.Errorf("newest point %v should be at the pointer %v", pts[0].Pos, r.Pointer())
	}
	// newest point: 1 - fade
	if math.Abs(pts[0].Opacity-0.98) > 1e-9 {
		t.Errorf("newest opacity = %v, want 0.98", pts[0].Opacity)
	}
	for i := 1; i < len(pts); i++ {
		if pts[i].Opacity >= pts[i-1].Opacity {
			t.Fatalf("older point %d is not fainter: %v >= %v", i, pts[i].Opacity, pts[i-1].Opacity)
		}
	}
}

func TestMovingFlagClearsAfterStopDelay(t *testing.T) {
	r := mounted(t)
	r.PointerMove(geom.V(1, 1), 0)
	r.Tick(0)
	if !r.Moving() || len(r.Points()) != 1 {
		t.Fatalf("first tick: moving=%v points=%d", r.Moving(), len(r.Points()))
	}

	r.Tick(29 * time.Millisecond)
	if !r.Moving() || len(r.Points()) != 2 {
		t.Fatalf("inside the stop delay the point should still be sampled: moving=%v points=%d", r.Moving(), len(r.Points()))
	}

	r.Tick(30 * time.Millisecond)
	if r.Moving() {
		t.Error("moving flag should clear 30ms after the last move")
	}
	if len(r.Points()) != 2 {
		t.Errorf("no point should be added once stopped, got %d", len(r.Points()))
	}
}

func TestPointerLeaveStopsSampling(t *testing.T) {
	r := mounted(t)
	r.PointerMove(geom.V(1, 1), 0)
	r.PointerLeave()
	r.Tick(frame)
	if len(r.Points()) != 0 {
		t.Errorf("points = %d after leave, want 0", len(r.Points()))
	}
}

func TestIdleTrailConvergesToEmpty(t *testing.T) {
	r := mounted(t)
	now := sweep(r, 0, 60)
	now += 2 * DefaultOptions().StopDelay

	prev := append([]Point(nil), r.Points()...)
	frames := 0
	for len(r.Points()) > 0 {
		r.Tick(now)
		now += frame
		frames++

		cur := r.Points()
		if len(cur) > len(prev) {
			t.Fatalf("frame %d: history grew from %d to %d", frames, len(prev), len(cur))
		}
		// survivors are the newest len(cur) points, each strictly fainter
		for i := range cur {
			if cur[i].Opacity >= prev[i].Opacity {
				t.Fatalf("frame %d: point %d did not fade (%v -> %v)", frames, i, prev[i].Opacity, cur[i].Opacity)
			}
			if cur[i].Opacity <= 0 {
				t.Fatalf("frame %d: point %d kept with opacity %v", frames, i, cur[i].Opacity)
			}
		}
		prev = append(prev[:0], cur...)

		if frames > 50 {
			t.Fatalf("trail still has %d points after %d idle frames", len(cur), frames)
		}
	}
}

func TestIdleFadeIsFaster(t *testing.T) {
	active := mounted(t)
	active.PointerMove(geom.V(0, 0), 0)
	active.Tick(0)
	active.Tick(50 * time.Millisecond)
	activeDrop := 0.98 - active.Points()[0].Opacity

	idle := mounted(t)
	idle.PointerMove(geom.V(0, 0), 0)
	idle.Tick(0)
	idle.Tick(150 * time.Millisecond)
	idleDrop := 0.98 - idle.Points()[0].Opacity

	if math.Abs(activeDrop-0.02) > 1e-9 {
		t.Errorf("active fade = %v, want 0.02", activeDrop)
	}
	if math.Abs(idleDrop-0.05) > 1e-9 {
		t.Errorf("idle fade = %v, want 0.05", idleDrop)
	}
}

func TestAgePenaltyFadesOlderPointsFaster(t *testing.T) {
	opts := DefaultOptions()
	opts.AgePenalty = 0.01
	opts.IdleAfter = time.Hour
	r := NewRenderer(opts)
	r.SetDevice(desktop, 0)
	now := sweep(r, 0, 5)

	before := append([]Point(nil), r.Points()...)
	if len(before) != 5 {
		t.Fatalf("points = %d, want 5", len(before))
	}
	r.Tick(now + 2*opts.StopDelay)
	after := r.Points()
	if len(after) != len(before) {
		t.Fatalf("points = %d after a still frame, want %d", len(after), len(before))
	}
	for i := range after {
		drop := before[i].Opacity - after[i].Opacity
		if want := opts.FadeSpeed + float64(i)*opts.AgePenalty; math.Abs(drop-want) > 1e-9 {
			t.Errorf("point %d lost %v, want %v", i, drop, want)
		}
	}
}

func TestTouchDeviceUnmountsAndIgnoresInput(t *testing.T) {
	r := mounted(t)
	sweep(r, 0, 10)

	r.SetDevice(Device{ViewportWidth: 500}, 200*time.Millisecond)
	if r.Mounted() {
		t.Fatal("narrow viewport should unmount the effect")
	}
	if len(r.Points()) != 0 || r.Moving() {
		t.Error("unmount should drop the history and the moving flag")
	}
	if r.Render() != nil {
		t.Error("unmounted renderer should draw nothing")
	}

	r.PointerMove(geom.V(5, 5), 210*time.Millisecond)
	r.Tick(210 * time.Millisecond)
	if len(r.Points()) != 0 {
		t.Error("unmounted renderer must not track the pointer")
	}

	r.SetDevice(desktop, 300*time.Millisecond)
	if !r.Mounted() {
		t.Error("widening the window should mount the effect again")
	}
}
