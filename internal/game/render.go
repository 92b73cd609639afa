package game

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/iburimskiy/cosmic-portfolio/internal/config"
	"github.com/iburimskiy/cosmic-portfolio/internal/draw"
	"github.com/iburimskiy/cosmic-portfolio/internal/geom"
)

// palette is the page chrome for one theme.
type palette struct {
	background  color.RGBA
	card        draw.Color
	cardBorder  draw.Color
	button      [3]draw.Color // normal, hovered, pressed
	buttonEdge  draw.Color
	active      draw.Color
	track       draw.Color
	accent      [2]draw.Color
	playerStops [2]draw.Color
}

var (
	darkPalette = palette{
		background: color.RGBA{R: 3, G: 0, B: 20, A: 255},
		card:       draw.RGBA(255, 255, 255, 0.05),
		cardBorder: draw.RGBA(139, 92, 246, 0.3),
		button: [3]draw.Color{
			draw.RGBA(100, 120, 160, 0.6),
			draw.RGBA(80, 100, 140, 0.8),
			draw.RGBA(60, 80, 120, 1),
		},
		buttonEdge:  draw.RGBA(150, 170, 200, 0.8),
		active:      draw.RGB(124, 58, 237),
		track:       draw.RGBA(255, 255, 255, 0.1),
		accent:      [2]draw.Color{draw.RGB(168, 85, 247), draw.RGB(59, 130, 246)},
		playerStops: [2]draw.Color{draw.RGB(124, 58, 237), draw.RGB(37, 99, 235)},
	}
	lightPalette = palette{
		background: color.RGBA{R: 245, G: 243, B: 255, A: 255},
		card:       draw.RGBA(76, 29, 149, 0.9),
		cardBorder: draw.RGBA(167, 139, 250, 0.6),
		button: [3]draw.Color{
			draw.RGBA(139, 92, 246, 0.7),
			draw.RGBA(124, 58, 237, 0.85),
			draw.RGB(109, 40, 217),
		},
		buttonEdge:  draw.RGBA(221, 214, 254, 0.9),
		active:      draw.RGB(192, 38, 211),
		track:       draw.RGBA(255, 255, 255, 0.2),
		accent:      [2]draw.Color{draw.RGB(196, 181, 253), draw.RGB(240, 171, 252)},
		playerStops: [2]draw.Color{draw.RGB(139, 92, 246), draw.RGB(168, 85, 247)},
	}
)

func paletteFor(dark bool) *palette {
	if dark {
		return &darkPalette
	}
	return &lightPalette
}

// Draw paints the backdrop, the page, the scene canvas, the player and
// finally the cursor trail on top of everything.
func (g *Game) Draw(screen *ebiten.Image) {
	dark := g.theme.Dark()
	pal := paletteFor(dark)
	l := &g.layout

	screen.Fill(pal.background)
	g.writer.Execute(screen, g.backdrop.Render(g.now, dark))

	var chrome draw.List
	chrome.Add(card(l.about, pal), card(l.skills, pal))
	chrome.Add(g.themeBtn.command(pal, false))
	for i := range g.catBtns {
		chrome.Add(g.catBtns[i].command(pal, g.catBtns[i].label == g.category))
	}
	chrome.Add(g.skillBars(pal)...)
	chrome.Add(g.playerCommands(pal)...)
	g.writer.Execute(screen, chrome)

	g.drawText(screen, dark)
	g.drawScene(screen, dark)

	g.writer.Execute(screen, g.trail.Render())
}

func (g *Game) drawText(screen *ebiten.Image, dark bool) {
	l := &g.layout
	top := (config.HeaderHeight - config.LineHeight) / 2
	ebitenutil.DebugPrintAt(screen, "T: theme  M: music  O: choose track  Esc/Q: quit", config.PagePadding, top)

	label := "Light mode"
	if !dark {
		label = "Dark mode"
	}
	theme := g.themeBtn
	theme.label = label
	theme.printLabel(screen)

	x, y := l.about.Min.X+cardPadding, l.about.Min.Y+cardPadding
	for i, line := range l.aboutLines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*config.LineHeight)
	}

	ebitenutil.DebugPrintAt(screen, "My Skills", l.skills.Min.X+cardPadding, l.skills.Min.Y+cardPadding)
	for i := range g.catBtns {
		g.catBtns[i].printLabel(screen)
	}
	barX := g.skillBarX()
	for i, s := range g.shown {
		y := l.skillRow(i)
		ebitenutil.DebugPrintAt(screen, s.Name, x, y)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%d%%", s.Level), barX+config.SkillBarWidth+config.CharWidth, y)
	}

	px := l.player.X + config.PlayerRadius + config.ButtonGap
	py := l.player.Y - config.LineHeight/2
	if g.music.Playing() {
		ebitenutil.DebugPrintAt(screen, g.music.Clock(), px, py)
	}
	if g.lastErr != nil {
		ebitenutil.DebugPrintAt(screen, "Error: "+g.lastErr.Error(), px, py+config.LineHeight)
	}
}

// drawScene renders the spaceship canvas offscreen and composites it.
func (g *Game) drawScene(screen *ebiten.Image, dark bool) {
	r := g.layout.scene
	if r.Empty() {
		return
	}
	if g.sceneImg == nil || g.sceneImg.Bounds().Size() != r.Size() {
		if g.sceneImg != nil {
			g.sceneImg.Deallocate()
		}
		g.sceneImg = ebiten.NewImage(r.Dx(), r.Dy())
	}
	g.writer.Execute(g.sceneImg, g.scene.Render(dark))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	screen.DrawImage(g.sceneImg, op)
	g.writer.Execute(screen, draw.List{sceneFrame(r, paletteFor(dark))})
}

// sceneFrame outlines the canvas without covering it.
func sceneFrame(r image.Rectangle, pal *palette) draw.Command {
	x, y := float64(r.Min.X), float64(r.Min.Y)
	return draw.StrokePath(rectPath(x, y, float64(r.Dx()), float64(r.Dy()), 8), draw.Solid(pal.cardBorder), 1)
}

// skillBarX is the left edge of the skill level bars, leaving room for the
// percentage label.
func (g *Game) skillBarX() int {
	return g.layout.skills.Max.X - cardPadding - config.SkillBarWidth - 5*config.CharWidth
}

func (g *Game) skillBars(pal *palette) []draw.Command {
	x := float64(g.skillBarX())
	var out []draw.Command
	for i, s := range g.shown {
		y := float64(g.layout.skillRow(i)) + 5
		out = append(out, draw.FillPath(rectPath(x, y, config.SkillBarWidth, 6, 3), draw.Solid(pal.track)))
		w := config.SkillBarWidth * geom.Clamp01(float64(s.Level)/100)
		out = append(out, draw.FillPath(
			rectPath(x, y, w, 6, 3),
			draw.Linear(geom.V(x, y), geom.V(x+config.SkillBarWidth, y),
				draw.Stop{Offset: 0, Color: pal.accent[0]},
				draw.Stop{Offset: 1, Color: pal.accent[1]}),
		))
	}
	return out
}

// playerCommands draws the round music button: wave bars while playing, a
// play triangle otherwise.
func (g *Game) playerCommands(pal *palette) []draw.Command {
	c := geom.V(float64(g.layout.player.X), float64(g.layout.player.Y))
	r := float64(config.PlayerRadius)
	body := draw.FillPath(
		draw.NewPath().Circle(c.X, c.Y, r),
		draw.Linear(c.Sub(geom.V(r, r)), c.Add(geom.V(r, r)),
			draw.Stop{Offset: 0, Color: pal.playerStops[0]},
			draw.Stop{Offset: 1, Color: pal.playerStops[1]}),
	)
	if g.playerBtn.hovered {
		body = body.WithGlow(r / 2)
	}
	out := []draw.Command{body}

	if !g.music.Playing() {
		tri := draw.NewPath().Polygon([]geom.Vec2{
			c.Add(geom.V(-5, -8)), c.Add(geom.V(9, 0)), c.Add(geom.V(-5, 8)),
		})
		return append(out, draw.FillPath(tri, draw.Solid(draw.RGB(255, 255, 255))))
	}

	levels := g.music.Levels()
	n := float64(len(levels))
	for i, lv := range levels {
		h := 4 + 16*geom.Clamp01(lv)
		x := c.X + (float64(i)-(n-1)/2)*6 - 1.5
		bar := hsv(260+float64(i)*30, 0.35, 1, 1)
		out = append(out, draw.FillPath(rectPath(x, c.Y-h/2, 3, h, 1.5), draw.Solid(bar)))
	}
	return out
}

func card(r image.Rectangle, pal *palette) draw.Command {
	x, y := float64(r.Min.X), float64(r.Min.Y)
	return draw.FillPath(rectPath(x, y, float64(r.Dx()), float64(r.Dy()), 12), draw.Solid(pal.card)).
		WithStroke(draw.Solid(pal.cardBorder), 1)
}

// command draws the button body in the hover and press shades.
func (b *button) command(pal *palette, active bool) draw.Command {
	fill := pal.button[0]
	switch {
	case b.pressed:
		fill = pal.button[2]
	case b.hovered:
		fill = pal.button[1]
	case active:
		fill = pal.active
	}
	x, y := float64(b.rect.Min.X), float64(b.rect.Min.Y)
	return draw.FillPath(rectPath(x, y, float64(b.rect.Dx()), float64(b.rect.Dy()), 6), draw.Solid(fill)).
		WithStroke(draw.Solid(pal.buttonEdge), 1)
}

func (b *button) printLabel(screen *ebiten.Image) {
	x := b.rect.Min.X + (b.rect.Dx()-len(b.label)*config.CharWidth)/2
	y := b.rect.Min.Y + (b.rect.Dy()-config.LineHeight)/2
	ebitenutil.DebugPrintAt(screen, b.label, x, y)
}

// rectPath is a rounded rectangle. The radius shrinks to fit small boxes.
func rectPath(x, y, w, h, radius float64) *draw.Path {
	p := draw.NewPath()
	if w <= 0 || h <= 0 {
		return p
	}
	radius = min(radius, w/2, h/2)
	p.MoveTo(x+radius, y)
	p.Arc(x+w-radius, y+radius, radius, -math.Pi/2, 0, false)
	p.Arc(x+w-radius, y+h-radius, radius, 0, math.Pi/2, false)
	p.Arc(x+radius, y+h-radius, radius, math.Pi/2, math.Pi, false)
	p.Arc(x+radius, y+radius, radius, math.Pi, 3*math.Pi/2, false)
	return p.Close()
}
