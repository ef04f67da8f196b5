package effect

import (
	"math"
	"math/rand"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/iburimskiy/screensaver/internal/frame"
	"github.com/iburimskiy/screensaver/internal/palette"
)

const (
	glyphCellW   = 9
	glyphCellH   = 12
	glyphLife    = 50
	glyphLevels  = 7
	glyphColumns = 35
	// glyphCap bounds the live glyph list. Spawns past it are skipped.
	glyphCap = 400

	glyphFall = 0.4
)

const glyphCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*()_+-=[]{}|;:,.<>?"

var glyphSpeeds = [...]float64{0.5, 1, 1.5, 2}

type glyph struct {
	col, row int
	r        rune
	color    int
	age      int
}

type drop struct {
	pos    float64
	speed  float64
	active bool
	color  int
}

// glyphRain drops coloured characters down the screen. Glyphs stay where
// they were written and fade out as they age.
type glyphRain struct {
	cols, rows int
	drops      []drop
	glyphs     []glyph
	time       float64
}

func newGlyphRain(w, h int) *glyphRain {
	cols, rows := w/glyphCellW, h/glyphCellH
	return &glyphRain{
		cols:   cols,
		rows:   rows,
		drops:  make([]drop, cols),
		glyphs: make([]glyph, 0, glyphCap),
	}
}

func (g *glyphRain) reset(rng *rand.Rand) {
	g.time = 0
	g.glyphs = g.glyphs[:0]
	for i := range g.drops {
		d := &g.drops[i]
		d.pos = float64(between(rng, -20, g.rows))
		d.speed = glyphSpeeds[rng.Intn(len(glyphSpeeds))]
		d.active = rng.Intn(2) == 0
		d.color = rng.Intn(len(palette.GlyphColors))
	}
}

func (g *glyphRain) age() {
	live := g.glyphs[:0]
	for _, gl := range g.glyphs {
		gl.age++
		if gl.age <= glyphLife {
			live = append(live, gl)
		}
	}
	g.glyphs = live
}

// spawn appends a glyph unless the list is full.
func (g *glyphRain) spawn(gl glyph) bool {
	if len(g.glyphs) >= glyphCap {
		return false
	}
	g.glyphs = append(g.glyphs, gl)
	return true
}

func (g *glyphRain) advance(fb *frame.Buffer, rng *rand.Rand) {
	g.time += 0.1
	g.age()

	n := g.cols
	if n > glyphColumns {
		n = glyphColumns
	}
	for col := 0; col < n; col++ {
		d := &g.drops[col]
		if !d.active {
			if rng.Intn(151) < 3 {
				d.active = true
				d.pos = float64(between(rng, -25, -5))
				d.color = rng.Intn(len(palette.GlyphColors))
			}
			continue
		}

		row := int(math.Floor(d.pos))
		if row >= 0 && row < g.rows && rng.Intn(4) == 0 {
			g.spawn(glyph{
				col:   col,
				row:   row,
				r:     rune(glyphCharset[rng.Intn(len(glyphCharset))]),
				color: d.color,
			})
		}

		d.pos += d.speed * glyphFall
		if d.pos > float64(g.rows+5) {
			d.pos = float64(between(rng, -25, -5))
			d.speed = glyphSpeeds[rng.Intn(len(glyphSpeeds))]
			d.color = rng.Intn(len(palette.GlyphColors))
			d.active = rng.Intn(3) != 0
		}
	}

	fb.Clear()
	for _, gl := range g.glyphs {
		level := gl.age * glyphLevels / (glyphLife + 1)
		idx := palette.GlyphIndex(gl.color, level, glyphLevels)
		drawGlyph(fb, gl.col*glyphCellW, gl.row*glyphCellH, gl.r, idx)
	}
}

// drawGlyph stamps r with its cell's top-left corner at (x, y).
func drawGlyph(fb *frame.Buffer, x, y int, r rune, idx int) {
	face := basicfont.Face7x13
	dr, mask, mp, _, ok := face.Glyph(fixed.P(x, y+face.Ascent), r)
	if !ok {
		return
	}
	for py := dr.Min.Y; py < dr.Max.Y; py++ {
		for px := dr.Min.X; px < dr.Max.X; px++ {
			_, _, _, a := mask.At(mp.X+px-dr.Min.X, mp.Y+py-dr.Min.Y).RGBA()
			if a >= 0x8000 {
				fb.Set(px, py, idx)
			}
		}
	}
}
