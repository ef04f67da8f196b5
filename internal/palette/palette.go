package palette

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is a fixed ordered table of opaque colours addressed by index.
type Palette []color.RGBA

// Len returns the number of entries.
func (p Palette) Len() int { return len(p) }

// Index folds any integer into [0, Len()-1].
func (p Palette) Index(v int) int {
	n := len(p)
	if n == 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// Color returns entry i, clamping i into range.
func (p Palette) Color(i int) color.RGBA {
	if len(p) == 0 {
		return color.RGBA{A: 255}
	}
	if i < 0 {
		i = 0
	}
	if i >= len(p) {
		i = len(p) - 1
	}
	return p[i]
}

// Model converts the palette to a color.Palette for image.Paletted.
func (p Palette) Model() color.Palette {
	out := make(color.Palette, len(p))
	for i, c := range p {
		out[i] = c
	}
	return out
}

// rgb builds an entry from channel values on the 0..255 scale. Values
// outside the range are clamped, never wrapped.
func rgb(r, g, b float64) color.RGBA {
	c := colorful.Color{R: r / 255, G: g / 255, B: b / 255}.Clamped()
	r8, g8, b8 := c.RGB255()
	return color.RGBA{R: r8, G: g8, B: b8, A: 255}
}

// Func builds an n entry palette from f, which receives t = i/(n-1) and
// returns channels on the 0..255 scale.
func Func(n int, f func(t float64) (r, g, b float64)) Palette {
	p := make(Palette, n)
	for i := range p {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		p[i] = rgb(f(t))
	}
	return p
}

// Rainbow is a hue cycle with the three channels phase shifted by a
// third of a turn.
func Rainbow(n int) Palette {
	p := make(Palette, n)
	for i := range p {
		angle := float64(i) / float64(n) * 2 * math.Pi
		p[i] = rgb(
			127+127*math.Sin(angle),
			127+127*math.Sin(angle+2*math.Pi/3),
			127+127*math.Sin(angle+4*math.Pi/3),
		)
	}
	return p
}

// Bands parameterises an escape-time palette. Each channel is a sinusoid
// of t·π·Freq + Phase scaled by Base + Depth·sin(t·π·ModFreq).
type Bands struct {
	Freq    [3]float64
	Phase   [3]float64
	ModFreq [3]float64
	Base    float64
	Depth   float64
}

var (
	MandelbrotBands = Bands{
		Freq:    [3]float64{4, 4, 4},
		Phase:   [3]float64{0, 2 * math.Pi / 3, 4 * math.Pi / 3},
		ModFreq: [3]float64{8, 6, 10},
		Base:    0.8,
		Depth:   0.4,
	}
	JuliaBands = Bands{
		Freq:    [3]float64{6, 4, 8},
		Phase:   [3]float64{0, 2, 4},
		ModFreq: [3]float64{12, 12, 12},
		Base:    0.7,
		Depth:   0.3,
	}
)

// Escape builds an escape-time fractal palette. Index 0 is reserved for
// points inside the set and is black.
func Escape(n int, b Bands) Palette {
	p := make(Palette, n)
	p[0] = color.RGBA{A: 255}
	for i := 1; i < n; i++ {
		t := float64(i) / float64(n-1)
		var ch [3]float64
		for c := range ch {
			v := 127 + 127*math.Sin(t*math.Pi*b.Freq[c]+b.Phase[c])
			ch[c] = v * (b.Base + b.Depth*math.Sin(t*math.Pi*b.ModFreq[c]))
		}
		p[i] = rgb(ch[0], ch[1], ch[2])
	}
	return p
}

// Stop is one control point of a piecewise-linear ramp.
type Stop struct {
	At    float64
	Color colorful.Color
}

// RGB255 makes a Stop from 0..255 channel values.
func RGB255(at float64, r, g, b uint8) Stop {
	return Stop{At: at, Color: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}}
}

var (
	HeatStops = []Stop{
		RGB255(0, 0, 0, 0),
		RGB255(0.3, 128, 0, 0),
		RGB255(0.6, 255, 0, 0),
		RGB255(0.8, 255, 165, 0),
		RGB255(0.95, 255, 255, 100),
		RGB255(1, 255, 255, 255),
	}
	WaveBands = []Stop{
		RGB255(0, 0, 0, 255),
		RGB255(0.2, 0, 255, 255),
		RGB255(0.4, 0, 255, 0),
		RGB255(0.6, 255, 255, 0),
		RGB255(0.8, 255, 128, 0),
		RGB255(1, 255, 255, 255),
	}
)

// Ramp interpolates linearly between stops, which must be sorted by At.
func Ramp(n int, stops []Stop) Palette {
	p := make(Palette, n)
	for i := range p {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := sample(stops, t).Clamped()
		r, g, b := c.RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p
}

func sample(stops []Stop, t float64) colorful.Color {
	if len(stops) == 0 {
		return colorful.Color{}
	}
	if t <= stops[0].At {
		return stops[0].Color
	}
	for i := 1; i < len(stops); i++ {
		lo, hi := stops[i-1], stops[i]
		if t <= hi.At {
			span := hi.At - lo.At
			if span <= 0 {
				return hi.Color
			}
			return lo.Color.BlendRgb(hi.Color, (t-lo.At)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// Heat is the fire ramp: black, dark red, red, orange, yellow, white.
func Heat(n int) Palette {
	return Ramp(n, HeatStops)
}

// Mono is a luminance ramp of a single tint with index 0 pinned black.
func Mono(n int, tint colorful.Color) Palette {
	p := Func(n, func(t float64) (float64, float64, float64) {
		return tint.R * t * 255, tint.G * t * 255, tint.B * t * 255
	})
	p[0] = color.RGBA{A: 255}
	return p
}

// MatrixGreen is the tint of the column rain.
var MatrixGreen = colorful.Color{R: 0, G: 1, B: 50.0 / 255}

// Stars ramps from dim blue through grey to white. Index 0 is space.
func Stars(n int) Palette {
	p := Func(n, func(t float64) (float64, float64, float64) {
		switch {
		case t < 0.3:
			return t * 100, t * 100, t * 255
		case t < 0.7:
			return t * 255, t * 255, t * 255
		default:
			return 255, 255, 255
		}
	})
	p[0] = color.RGBA{A: 255}
	return p
}

// Saturated scales every entry so its brightest channel reaches
// 255·gain. Black entries are left alone.
func Saturated(p Palette, gain float64) Palette {
	out := make(Palette, len(p))
	for i, c := range p {
		m := math.Max(float64(c.R), math.Max(float64(c.G), float64(c.B)))
		if m == 0 {
			out[i] = c
			continue
		}
		s := 255 / m * gain
		out[i] = rgb(float64(c.R)*s, float64(c.G)*s, float64(c.B)*s)
	}
	return out
}

// Harmonics is the kaleidoscope palette: three channel harmonics over
// two hue cycles, then saturated.
func Harmonics(n int) Palette {
	p := Func(n, func(t float64) (float64, float64, float64) {
		angle := t * 4 * math.Pi
		return 127 + 127*math.Sin(angle*1.3),
			127 + 127*math.Sin(angle*0.8+math.Pi/2),
			127 + 127*math.Sin(angle*1.7+math.Pi)
	})
	return Saturated(p, 0.8)
}

// Streamers is black followed by a saturated rainbow over 1..n-1.
func Streamers(n int) Palette {
	p := make(Palette, n)
	p[0] = color.RGBA{A: 255}
	for i := 1; i < n; i++ {
		t := 0.0
		if n > 2 {
			t = float64(i-1) / float64(n-2)
		}
		angle := t * 2 * math.Pi
		p[i] = rgb(
			127+127*math.Sin(angle),
			127+127*math.Sin(angle+2*math.Pi/3),
			127+127*math.Sin(angle+4*math.Pi/3),
		)
	}
	return append(Palette{p[0]}, Saturated(p[1:], 0.9)...)
}

// GlyphColors are the base colours of the glyph rain.
var GlyphColors = []color.RGBA{
	{R: 0, G: 255, B: 0, A: 255},
	{R: 0, G: 255, B: 255, A: 255},
	{R: 255, G: 0, B: 255, A: 255},
	{R: 255, G: 255, B: 0, A: 255},
	{R: 255, G: 0, B: 0, A: 255},
	{R: 0, G: 0, B: 255, A: 255},
	{R: 255, G: 128, B: 0, A: 255},
	{R: 128, G: 0, B: 255, A: 255},
}

// Glyphs lays out black at index 0 followed by levels shades of each base
// colour, brightest first. The result is padded with black to size n.
func Glyphs(n int, base []color.RGBA, levels int) Palette {
	p := make(Palette, n)
	for i := range p {
		p[i] = color.RGBA{A: 255}
	}
	for c, col := range base {
		for l := 0; l < levels; l++ {
			i := GlyphIndex(c, l, levels)
			if i >= n {
				return p
			}
			k := 1 - float64(l)/float64(levels)
			p[i] = rgb(float64(col.R)*k, float64(col.G)*k, float64(col.B)*k)
		}
	}
	return p
}

// GlyphIndex is the palette slot of base colour c at fade level l.
func GlyphIndex(c, l, levels int) int {
	return 1 + c*levels + l
}
