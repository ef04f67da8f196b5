// Package effect implements the animated patterns shown by the
// screensaver. Each Effect couples a generator with its palette, its
// framebuffer and its own seeded random stream.
package effect

import (
	"math/rand"
	"strings"

	"github.com/pkg/errors"

	"github.com/iburimskiy/screensaver/internal/frame"
	"github.com/iburimskiy/screensaver/internal/palette"
)

// ID names an effect.
type ID int

const (
	Plasma ID = iota
	Kaleidoscope
	Mandelbrot
	Spiral
	Matrix
	GlyphRain
	Julia
	Fire
	Starfield
	Waves
	Streamers

	numIDs
)

var ErrUnknownEffect = errors.New("unknown effect")

var names = [numIDs]string{
	Plasma:       "plasma",
	Kaleidoscope: "kaleidoscope",
	Mandelbrot:   "mandelbrot",
	Spiral:       "spiral",
	Matrix:       "matrix",
	GlyphRain:    "glyphrain",
	Julia:        "julia",
	Fire:         "fire",
	Starfield:    "starfield",
	Waves:        "waves",
	Streamers:    "streamers",
}

func (id ID) String() string {
	if id < 0 || id >= numIDs {
		return "unknown"
	}
	return names[id]
}

// ParseID accepts an effect name, ignoring case and surrounding space.
func ParseID(name string) (ID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return ID(i), nil
		}
	}
	return 0, errors.Wrapf(ErrUnknownEffect, "%q", name)
}

// All returns every effect in the default rotation order.
func All() []ID {
	ids := make([]ID, numIDs)
	for i := range ids {
		ids[i] = ID(i)
	}
	return ids
}

// generator advances one effect's animation state and draws a frame.
type generator interface {
	reset(rng *rand.Rand)
	advance(fb *frame.Buffer, rng *rand.Rand)
}

type layout struct {
	width, height int
	scale         int
	palette       func() palette.Palette
	build         func(w, h, colors int, s settings) generator
}

var layouts = [numIDs]layout{
	Plasma: {160, 120, 2, func() palette.Palette { return palette.Rainbow(256) },
		func(w, h, n int, _ settings) generator { return newPlasma(w, h) }},
	Kaleidoscope: {320, 240, 1, func() palette.Palette { return palette.Harmonics(256) },
		func(w, h, n int, _ settings) generator { return newKaleidoscope(w, h) }},
	Mandelbrot: {320, 240, 1, func() palette.Palette { return palette.Escape(256, palette.MandelbrotBands) },
		func(w, h, n int, s settings) generator { return newMandelbrot(w, h, s.iterations(mandelbrotIterations)) }},
	Spiral: {160, 120, 2, spiralPalette,
		func(w, h, n int, _ settings) generator { return newSpiral(w, h) }},
	Matrix: {20, 15, 16, func() palette.Palette { return palette.Mono(16, palette.MatrixGreen) },
		func(w, h, n int, _ settings) generator { return newMatrix(w, h, n) }},
	GlyphRain: {320, 240, 1, func() palette.Palette { return palette.Glyphs(64, palette.GlyphColors, glyphLevels) },
		func(w, h, n int, _ settings) generator { return newGlyphRain(w, h) }},
	Julia: {160, 120, 2, func() palette.Palette { return palette.Escape(64, palette.JuliaBands) },
		func(w, h, n int, s settings) generator { return newJulia(w, h, s.iterations(juliaIterations)) }},
	Fire: {80, 60, 4, func() palette.Palette { return palette.Heat(32) },
		func(w, h, n int, _ settings) generator { return newFire(w, h, n) }},
	Starfield: {160, 120, 2, func() palette.Palette { return palette.Stars(16) },
		func(w, h, n int, _ settings) generator { return newStarfield(w, h, n) }},
	Waves: {160, 120, 2, func() palette.Palette { return palette.Ramp(64, palette.WaveBands) },
		func(w, h, n int, _ settings) generator { return newWaves(w, h) }},
	Streamers: {160, 120, 2, func() palette.Palette { return palette.Streamers(32) },
		func(w, h, n int, _ settings) generator { return newStreamers(w, h, n) }},
}

type settings struct {
	seed     int64
	maxIters int
}

func (s settings) iterations(def int) int {
	if s.maxIters > 0 {
		return s.maxIters
	}
	return def
}

// Option tunes an effect at construction.
type Option func(*settings)

// WithSeed sets the seed of the effect's random stream.
func WithSeed(seed int64) Option {
	return func(s *settings) { s.seed = seed }
}

// WithIterations overrides the escape-time cutoff of the fractal
// effects. Other effects ignore it.
func WithIterations(n int) Option {
	return func(s *settings) { s.maxIters = n }
}

// Effect is one self-contained animated pattern. The palette is built
// once and never changes; everything else is rebuilt by Reset.
type Effect struct {
	id     ID
	pal    palette.Palette
	buf    *frame.Buffer
	scale  int
	gen    generator
	seed   int64
	rng    *rand.Rand
	frames int
}

func New(id ID, opts ...Option) (*Effect, error) {
	if id < 0 || id >= numIDs {
		return nil, errors.Wrapf(ErrUnknownEffect, "id %d", int(id))
	}
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	l := layouts[id]
	pal := l.palette()
	e := &Effect{
		id:    id,
		pal:   pal,
		buf:   frame.New(l.width, l.height, pal.Len()),
		scale: l.scale,
		gen:   l.build(l.width, l.height, pal.Len(), s),
		seed:  s.seed,
	}
	e.Reset()
	return e, nil
}

// Reset returns the effect to its freshly constructed state, replaying
// the same random stream from the start.
func (e *Effect) Reset() {
	e.rng = rand.New(rand.NewSource(e.seed))
	e.frames = 0
	e.buf.Clear()
	e.gen.reset(e.rng)
}

// AdvanceOneFrame steps the animation and redraws the framebuffer.
func (e *Effect) AdvanceOneFrame() {
	e.frames++
	e.gen.advance(e.buf, e.rng)
}

func (e *Effect) ID() ID                   { return e.id }
func (e *Effect) Name() string             { return e.id.String() }
func (e *Effect) Frames() int              { return e.frames }
func (e *Effect) Buffer() *frame.Buffer    { return e.buf }
func (e *Effect) Palette() palette.Palette { return e.pal }

// Scale is the integer factor that maps the framebuffer onto the native
// display.
func (e *Effect) Scale() int { return e.scale }
