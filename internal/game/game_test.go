package game

import (
	"errors"
	"image"
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/cosmic-portfolio/internal/config"
	"github.com/iburimskiy/cosmic-portfolio/internal/content"
	"github.com/iburimskiy/cosmic-portfolio/internal/theme"
)

type fakeMusic struct {
	playing   bool
	toggles   int
	chooses   int
	interacts int
	closes    int
	updates   int
	toggleErr error
}

func (m *fakeMusic) Toggle() error {
	m.toggles++
	if m.toggleErr != nil {
		return m.toggleErr
	}
	m.playing = !m.playing
	return nil
}

func (m *fakeMusic) ChooseTrack() error {
	m.chooses++
	return nil
}

func (m *fakeMusic) Interact() { m.interacts++ }
func (m *fakeMusic) Playing() bool { return m.playing }
func (m *fakeMusic) UpdateLevels() { m.updates++ }
func (m *fakeMusic) Levels() []float64 { return []float64{0, 0, 0} }
func (m *fakeMusic) Clock() string { return "00:00" }
func (m *fakeMusic) Close() { m.closes++ }

type harness struct {
	g     *Game
	sig   *theme.Signal
	music *fakeMusic
	now   time.Duration
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	page, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	h := &harness{sig: theme.NewSignal(true), music: &fakeMusic{}}
	h.g = New(nil, config.Default(), h.sig, h.music, page, rand.New(rand.NewPCG(1, 2)))
	h.g.clock = func() time.Duration { return h.now }
	return h
}

// frame advances the clock by one nominal frame and runs a tick.
func (h *harness) frame(t *testing.T, in input) error {
	t.Helper()
	h.now += 16 * time.Millisecond
	return h.g.step(in)
}

func (h *harness) idle(t *testing.T, n int) {
	t.Helper()
	for range n {
		if err := h.frame(t, input{}); err != nil {
			t.Fatal(err)
		}
	}
}

func (h *harness) click(t *testing.T, p image.Point) {
	t.Helper()
	if err := h.frame(t, input{cursor: p, inside: true, pressed: true}); err != nil {
		t.Fatal(err)
	}
	if err := h.frame(t, input{cursor: p, inside: true, released: true}); err != nil {
		t.Fatal(err)
	}
}

func (h *harness) press(t *testing.T, k ebiten.Key) error {
	t.Helper()
	return h.frame(t, input{keys: []ebiten.Key{k}})
}

func centre(r image.Rectangle) image.Point {
	return r.Min.Add(r.Max).Div(2)
}

func TestArrangeDefaultWindow(t *testing.T) {
	page, _ := content.Default()
	cfg := config.Default()
	l := arrange(config.WindowWidth, config.WindowHeight, page, len(page.Skills), cfg.Scene)

	if want := image.Rect(625, 96, 1025, 446); l.scene != want {
		t.Errorf("scene = %v, want %v", l.scene, want)
	}
	if want := image.Pt(44, 676); l.player != want {
		t.Errorf("player = %v, want %v", l.player, want)
	}
	if l.theme.Max.X != config.WindowWidth-config.PagePadding || l.theme.Dy() != config.ButtonHeight {
		t.Errorf("theme button = %v", l.theme)
	}
	if l.skills.Min.Y <= l.about.Max.Y {
		t.Errorf("skills card %v overlaps about card %v", l.skills, l.about)
	}

	inner := image.Rect(l.skills.Min.X+cardPadding, l.skills.Min.Y, l.skills.Max.X-cardPadding+1, l.skillsTop)
	for i, r := range l.categories {
		if !r.In(inner) {
			t.Errorf("category %q at %v outside the card %v", page.Categories[i], r, inner)
		}
		for j := range i {
			if r.Overlaps(l.categories[j]) {
				t.Errorf("categories %d and %d overlap", i, j)
			}
		}
	}
}

func TestArrangeSceneFollowsHalfWidth(t *testing.T) {
	page, _ := content.Default()
	cfg := config.Default()
	tests := []struct {
		width int
		want  int
	}{
		{1100, 400},
		{400, 168},
		{64, 0},
	}
	for _, tt := range tests {
		l := arrange(tt.width, 720, page, 0, cfg.Scene)
		if got := l.scene.Dx(); got != tt.want {
			t.Errorf("width %d: scene width %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestButtonClickNeedsPressAndReleaseInside(t *testing.T) {
	in, out := image.Pt(10, 10), image.Pt(200, 10)
	tests := []struct {
		name         string
		press, relse image.Point
		want         bool
	}{
		{"inside", in, in, true},
		{"dragged in", out, in, false},
		{"dragged out", in, out, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := button{rect: image.Rect(0, 0, 100, 30)}
			if b.update(input{cursor: tt.press, inside: true, pressed: true}) {
				t.Fatal("click on press")
			}
			if got := b.update(input{cursor: tt.relse, inside: true, released: true}); got != tt.want {
				t.Errorf("click = %v, want %v", got, tt.want)
			}
			if b.pressed {
				t.Error("release should clear the pressed state")
			}
		})
	}
}

func TestRoundButtonHitTest(t *testing.T) {
	b := button{round: true, rect: roundButton(image.Pt(50, 50), 20)}
	if !b.contains(image.Pt(50, 50)) || !b.contains(image.Pt(69, 50)) {
		t.Error("points inside the circle should hit")
	}
	if b.contains(image.Pt(32, 32)) {
		t.Error("the square's corner is outside the circle")
	}
}

func TestKeys(t *testing.T) {
	h := newHarness(t)

	if err := h.press(t, ebiten.KeyT); err != nil || h.sig.Dark() {
		t.Fatalf("T should switch to light: err %v, dark %v", err, h.sig.Dark())
	}
	if err := h.press(t, ebiten.KeyM); err != nil || h.music.toggles != 1 {
		t.Fatalf("M should toggle music: err %v, toggles %d", err, h.music.toggles)
	}
	if err := h.press(t, ebiten.KeyO); err != nil || h.music.chooses != 1 {
		t.Fatalf("O should open the track chooser: err %v", err)
	}
	for _, k := range []ebiten.Key{ebiten.KeyEscape, ebiten.KeyQ} {
		if err := h.press(t, k); !IsTermination(err) {
			t.Errorf("%v returned %v, want termination", k, err)
		}
	}
}

func TestThemeButton(t *testing.T) {
	h := newHarness(t)
	h.idle(t, 1)
	h.click(t, centre(h.g.layout.theme))
	if h.sig.Dark() {
		t.Error("theme button should switch to light")
	}
}

func TestPlayerButtonTogglesWithoutInteract(t *testing.T) {
	h := newHarness(t)
	h.idle(t, 1)

	h.click(t, h.g.layout.player)
	if h.music.toggles != 1 || !h.music.playing {
		t.Fatalf("toggles = %d", h.music.toggles)
	}
	if h.music.interacts != 0 {
		t.Error("a click on the player should not also count as an unlock gesture")
	}

	h.click(t, image.Pt(600, 600))
	if h.music.interacts != 1 {
		t.Errorf("interacts = %d after a click elsewhere, want 1", h.music.interacts)
	}
}

func TestMusicErrorIsShownUntilSuccess(t *testing.T) {
	h := newHarness(t)
	h.music.toggleErr = errors.New("no audio device")
	_ = h.press(t, ebiten.KeyM)
	if h.g.lastErr == nil {
		t.Fatal("toggle error should be kept for display")
	}
	h.music.toggleErr = nil
	_ = h.press(t, ebiten.KeyM)
	if h.g.lastErr != nil {
		t.Errorf("lastErr = %v after a successful toggle", h.g.lastErr)
	}
}

func TestCategoryFilter(t *testing.T) {
	h := newHarness(t)
	h.idle(t, 1)
	full := h.g.layout.skills

	backend := -1
	for i, c := range h.g.page.Categories {
		if c == "backend" {
			backend = i
		}
	}
	h.click(t, centre(h.g.layout.categories[backend]))

	if h.g.category != "backend" || len(h.g.shown) != 1 || h.g.shown[0].Name != "Node.js" {
		t.Fatalf("category %q shows %v", h.g.category, h.g.shown)
	}
	if h.g.layout.skills.Dy() >= full.Dy() {
		t.Errorf("skills card did not shrink: %v -> %v", full, h.g.layout.skills)
	}

	h.click(t, centre(h.g.layout.categories[0]))
	if len(h.g.shown) != len(h.g.page.Skills) {
		t.Errorf("all shows %d skills", len(h.g.shown))
	}
}

func TestResizeReachesSceneAndBackdrop(t *testing.T) {
	h := newHarness(t)
	h.idle(t, 1)
	stars := len(h.g.backdrop.Stars())
	if w, _ := h.g.scene.Size(); w != 400 {
		t.Fatalf("scene width = %v, want 400", w)
	}

	if w, hh := h.g.Layout(800, 600); w != 800 || hh != 600 {
		t.Fatalf("Layout = %dx%d, want the outside size", w, hh)
	}
	h.idle(t, 1)
	if w, _ := h.g.scene.Size(); w != 368 {
		t.Errorf("scene width = %v after resize, want 368", w)
	}
	if got := len(h.g.backdrop.Stars()); got == stars || got != 48 {
		t.Errorf("backdrop has %d stars after resize, want 48", got)
	}
}

func TestSceneRunsOnFrameClock(t *testing.T) {
	h := newHarness(t)
	h.idle(t, 60)
	if len(h.g.scene.Meteors()) < 2 {
		t.Errorf("%d meteors after a second", len(h.g.scene.Meteors()))
	}
	if h.music.updates != 60 {
		t.Errorf("levels updated %d times, want every frame", h.music.updates)
	}
}

func TestSceneFrameOnlyStrokes(t *testing.T) {
	c := sceneFrame(image.Rect(10, 20, 410, 370), paletteFor(true))
	if c.Fill != nil {
		t.Error("the frame must not paint over the canvas")
	}
	if c.Stroke == nil || c.LineWidth != 1 || !c.Visible() {
		t.Errorf("frame stroke %v width %v", c.Stroke, c.LineWidth)
	}
	if c.Stroke.Color != darkPalette.cardBorder {
		t.Errorf("frame colour = %v", c.Stroke.Color)
	}
}

func TestFirstFrameIgnoresStartupTime(t *testing.T) {
	h := newHarness(t)
	h.now = 5 * time.Second
	h.idle(t, 1)
	// five seconds of scene time would have launched the whole pool
	if got := len(h.g.scene.Meteors()); got != 1 {
		t.Errorf("%d meteors after the first frame, want 1", got)
	}

	h.idle(t, 1)
	if got := len(h.g.scene.Meteors()); got != 1 {
		t.Errorf("%d meteors after two frames, want 1", got)
	}
}

func TestCursorTrailFollowsPointer(t *testing.T) {
	h := newHarness(t)
	for i := range 10 {
		p := image.Pt(100+10*i, 100)
		if err := h.frame(t, input{cursor: p, inside: true}); err != nil {
			t.Fatal(err)
		}
	}
	if !h.g.trail.Mounted() || len(h.g.trail.Points()) == 0 {
		t.Fatalf("trail mounted %v with %d points", h.g.trail.Mounted(), len(h.g.trail.Points()))
	}

	h.g.Layout(700, 720)
	h.idle(t, 1)
	if h.g.trail.Mounted() {
		t.Error("trail should unmount below the touch breakpoint")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	h := newHarness(t)
	h.idle(t, 1)
	h.g.Close()
	h.g.Close()
	if h.music.closes != 1 {
		t.Errorf("music closed %d times", h.music.closes)
	}
	if h.g.trail.Mounted() {
		t.Error("close should unmount the trail")
	}
}

func TestHSV(t *testing.T) {
	tests := []struct {
		h    float64
		want [3]float64
	}{
		{0, [3]float64{1, 0, 0}},
		{120, [3]float64{0, 1, 0}},
		{240, [3]float64{0, 0, 1}},
		{-120, [3]float64{0, 0, 1}},
		{420, [3]float64{1, 1, 0}},
	}
	for _, tt := range tests {
		c := hsv(tt.h, 1, 1, 0.5)
		got := [3]float64{c.R, c.G, c.B}
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-9 {
				t.Errorf("hsv(%v) = %v, want %v", tt.h, got, tt.want)
				break
			}
		}
		if c.A != 0.5 {
			t.Errorf("alpha = %v", c.A)
		}
	}
}
