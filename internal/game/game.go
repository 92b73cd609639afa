// Package game is the Ebitengine host: it reads input, keeps the frame
// clock, and drives the backdrop, the spaceship scene, the cursor trail and
// the music player, then draws the page around them.
package game

import (
	"errors"
	"image"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/cosmic-portfolio/internal/backdrop"
	"github.com/iburimskiy/cosmic-portfolio/internal/config"
	"github.com/iburimskiy/cosmic-portfolio/internal/content"
	"github.com/iburimskiy/cosmic-portfolio/internal/cursor"
	"github.com/iburimskiy/cosmic-portfolio/internal/draw"
	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
	"github.com/iburimskiy/cosmic-portfolio/internal/logging"
	"github.com/iburimskiy/cosmic-portfolio/internal/scene"
	"github.com/iburimskiy/cosmic-portfolio/internal/theme"
)

// Music is the part of the player the page controls.
type Music interface {
	Toggle() error
	ChooseTrack() error
	Interact()
	Playing() bool
	UpdateLevels()
	Levels() []float64
	Clock() string
	Close()
}

// Game implements ebiten.Game.
type Game struct {
	log   *logging.Logger
	cfg   *config.Config
	theme *theme.Signal
	music Music
	page  *content.Content

	writer   *draw.Writer
	backdrop *backdrop.Field
	scene    *scene.Scene
	trail    *cursor.Renderer
	sceneImg *ebiten.Image

	input inputReader
	// clock is the time since start; frames are stamped with it.
	clock func() time.Duration
	now   time.Duration

	// started is set once the first tick has seeded now.
	started bool

	width, height int
	layout        layout
	dirty         bool

	category string
	shown    []content.Skill

	themeBtn  button
	playerBtn button
	catBtns   []button

	lastCursor image.Point
	touchSeen  bool
	lastErr    error
	closed     bool
}

// New wires the page together. A nil rng is seeded from the runtime.
func New(log *logging.Logger, cfg *config.Config, sig *theme.Signal, player Music, page *content.Content, rng *rand.Rand) *Game {
	if log == nil {
		log = logging.Discard()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	start := time.Now()
	g := &Game{
		log:       log.Component("game"),
		cfg:       cfg,
		theme:     sig,
		music:     player,
		page:      page,
		writer:    draw.NewWriter(log),
		backdrop:  backdrop.New(backdrop.OptionsFrom(cfg.Backdrop), rng),
		scene:     scene.New(0, 0, scene.OptionsFrom(cfg.Scene), rng),
		trail:     cursor.NewRenderer(cursor.OptionsFrom(cfg.Cursor)),
		clock:     func() time.Duration { return time.Since(start) },
		width:     cfg.Window.Width,
		height:    cfg.Window.Height,
		dirty:     true,
		playerBtn: button{round: true},
	}
	for _, c := range page.Categories {
		g.catBtns = append(g.catBtns, button{label: c})
	}
	g.selectCategory(content.All)
	return g
}

// Update runs one tick.
func (g *Game) Update() error {
	return g.step(g.input.read(g.width, g.height))
}

func (g *Game) step(in input) error {
	now := g.clock()
	if !g.started {
		// startup time before the first frame is not frame time
		g.started = true
		g.now = now
	}
	elapsed := now - g.now
	g.now = now

	if g.dirty {
		g.relayout()
	}

	g.touchSeen = g.touchSeen || in.touches > 0
	g.trail.SetDevice(cursor.Device{
		HasTouch:      g.touchSeen,
		CoarsePointer: coarsePointer,
		ViewportWidth: g.width,
	}, now)
	switch {
	case !in.inside:
		g.trail.PointerLeave()
	case in.cursor != g.lastCursor:
		g.trail.PointerMove(geom.V(float64(in.cursor.X), float64(in.cursor.Y)), now)
	}
	g.lastCursor = in.cursor

	toggleMusic := g.playerBtn.update(in)
	for _, k := range in.keys {
		switch k {
		case ebiten.KeyEscape, ebiten.KeyQ:
			return ebiten.Termination
		case ebiten.KeyT:
			g.theme.Toggle()
		case ebiten.KeyM:
			toggleMusic = true
		case ebiten.KeyO:
			g.report("failed to choose track", g.music.ChooseTrack())
		}
	}
	if g.themeBtn.update(in) {
		g.theme.Toggle()
	}
	picked := -1
	for i := range g.catBtns {
		if g.catBtns[i].update(in) {
			picked = i
		}
	}
	if picked >= 0 {
		g.selectCategory(g.catBtns[picked].label)
	}

	switch {
	case toggleMusic:
		g.report("failed to play music", g.music.Toggle())
	case in.interacted() && !g.playerBtn.hovered:
		g.music.Interact()
	}

	if g.dirty {
		g.relayout()
	}
	g.scene.Update(elapsed)
	g.trail.Tick(now)
	g.music.UpdateLevels()
	return nil
}

func (g *Game) report(msg string, err error) {
	g.lastErr = err
	if err != nil {
		g.log.Failure(msg, err)
	}
}

// selectCategory filters the skills table; an unknown category shows none.
func (g *Game) selectCategory(c string) {
	if c == g.category && g.shown != nil {
		return
	}
	g.category = c
	g.shown = g.page.Filter(c)
	if g.shown == nil {
		g.shown = []content.Skill{}
	}
	g.dirty = true
}

func (g *Game) relayout() {
	g.layout = arrange(g.width, g.height, g.page, len(g.shown), g.cfg.Scene)
	g.dirty = false

	g.backdrop.Resize(g.width, g.height)
	if g.scene.Resize(g.layout.scene.Dx(), g.layout.scene.Dy()) {
		g.log.Debug("scene resized", "width", g.layout.scene.Dx(), "height", g.layout.scene.Dy())
	}

	g.themeBtn.rect = g.layout.theme
	g.playerBtn.rect = roundButton(g.layout.player, config.PlayerRadius)
	for i := range g.catBtns {
		g.catBtns[i].rect = g.layout.categories[i]
	}
}

// Layout follows the window size; a change is applied on the next tick.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.dirty = true
	}
	return outsideWidth, outsideHeight
}

// Close stops pointer tracking and the music. It is safe to call twice.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.trail.Unmount()
	g.music.Close()
	if g.sceneImg != nil {
		g.sceneImg.Deallocate()
		g.sceneImg = nil
	}
}

// IsTermination reports whether err is the clean exit requested by a quit
// key.
func IsTermination(err error) bool { return errors.Is(err, ebiten.Termination) }
