package game

import (
	"image"

	"github.com/iburimskiy/cosmic-portfolio/internal/config"
	"github.com/iburimskiy/cosmic-portfolio/internal/content"
	"github.com/iburimskiy/cosmic-portfolio/internal/scene"
)

const (
	cardPadding  = 16
	cardGap      = 16
	buttonMargin = 12
	minButton    = 48
)

// layout is where everything goes for one window size and skill filter.
// The left half of the window holds the About and Skills cards, the right
// half centres the spaceship canvas.
type layout struct {
	width, height int

	theme image.Rectangle

	about      image.Rectangle
	aboutLines []string

	skills     image.Rectangle
	categories []image.Rectangle
	// skillsTop is the baseline of the first skill row.
	skillsTop int

	// scene is empty when the half window has no room for the canvas.
	scene image.Rectangle

	player image.Point
}

// arrange lays out the page for a w x h window showing shown skill rows.
func arrange(w, h int, page *content.Content, shown int, sceneCfg config.SceneConfig) layout {
	l := layout{width: w, height: h}
	half := w / 2

	l.theme = image.Rect(
		w-config.PagePadding-config.ButtonWidth, (config.HeaderHeight-config.ButtonHeight)/2,
		w-config.PagePadding, (config.HeaderHeight+config.ButtonHeight)/2,
	)

	left := config.PagePadding
	right := max(left+minButton, half-config.ColumnGap/2)
	inner := right - left - 2*cardPadding

	// title, heading, blank, then each paragraph followed by a blank line
	l.aboutLines = []string{page.About.Title, page.About.Heading, ""}
	for i, p := range page.About.Paragraphs {
		if i > 0 {
			l.aboutLines = append(l.aboutLines, "")
		}
		l.aboutLines = append(l.aboutLines, content.Wrap(p, inner/config.CharWidth)...)
	}
	top := config.HeaderHeight
	l.about = image.Rect(left, top, right, top+len(l.aboutLines)*config.LineHeight+2*cardPadding)

	top = l.about.Max.Y + cardGap
	x, y := left+cardPadding, top+cardPadding+config.LineHeight+config.ButtonGap
	for _, c := range page.Categories {
		bw := max(minButton, len(c)*config.CharWidth+2*buttonMargin)
		if x > left+cardPadding && x+bw > right-cardPadding {
			x = left + cardPadding
			y += config.ButtonHeight + config.ButtonGap
		}
		l.categories = append(l.categories, image.Rect(x, y, x+bw, y+config.ButtonHeight))
		x += bw + config.ButtonGap
	}
	l.skillsTop = y + config.ButtonHeight + cardPadding
	l.skills = image.Rect(left, top, right, l.skillsTop+shown*config.SkillRowGap+cardPadding)

	if sw, sh := scene.Dimensions(half, sceneCfg); sw > 0 {
		x := half + (half-sw)/2
		y := config.HeaderHeight + config.PagePadding
		l.scene = image.Rect(x, y, x+sw, y+sh)
	}

	l.player = image.Pt(
		config.PlayerX+config.PlayerRadius,
		h-config.PlayerBottom-config.PlayerRadius,
	)
	return l
}

// skillRow is the top of the i-th skill row.
func (l layout) skillRow(i int) int { return l.skillsTop + i*config.SkillRowGap }

// button is a clickable region, rectangular or round, with the hover and
// press edge tracking of a desktop push button: a click is a release over
// the button that was also pressed over it.
type button struct {
	rect  image.Rectangle
	label string
	round bool

	hovered bool
	pressed bool
}

func (b *button) contains(p image.Point) bool {
	if !b.round {
		return p.In(b.rect)
	}
	r := b.rect.Dx() / 2
	c := b.rect.Min.Add(image.Pt(r, r))
	d := p.Sub(c)
	return d.X*d.X+d.Y*d.Y <= r*r
}

// update applies one frame of pointer input and reports a click.
func (b *button) update(in input) bool {
	b.hovered = in.inside && b.contains(in.cursor)
	if b.hovered && in.pressed {
		b.pressed = true
	}
	clicked := false
	if in.released {
		clicked = b.pressed && b.hovered
		b.pressed = false
	}
	return clicked
}

func roundButton(centre image.Point, radius int) image.Rectangle {
	return image.Rect(centre.X-radius, centre.Y-radius, centre.X+radius, centre.Y+radius)
}
