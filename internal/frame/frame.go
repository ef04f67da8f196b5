// Package frame holds the indexed framebuffer shared by the effect
// generators and the display surfaces.
package frame

import (
	"image"

	"github.com/iburimskiy/screensaver/internal/palette"
)

// Buffer is a grid of palette indices. Every cell always holds a value
// in [0, Colors-1].
type Buffer struct {
	Width, Height int
	Colors        int
	Pix           []uint8
}

func New(width, height, colors int) *Buffer {
	if colors < 1 {
		colors = 1
	}
	if colors > 256 {
		colors = 256
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Colors: colors,
		Pix:    make([]uint8, width*height),
	}
}

func (b *Buffer) In(x, y int) bool {
	return x >= 0 && y >= 0 && x < b.Width && y < b.Height
}

// Set writes idx at (x, y). Writes outside the grid are dropped and idx
// is clamped into the palette range.
func (b *Buffer) Set(x, y, idx int) {
	if !b.In(x, y) {
		return
	}
	if idx < 0 {
		idx = 0
	} else if idx >= b.Colors {
		idx = b.Colors - 1
	}
	b.Pix[y*b.Width+x] = uint8(idx)
}

// At returns the index at (x, y), or 0 outside the grid.
func (b *Buffer) At(x, y int) int {
	if !b.In(x, y) {
		return 0
	}
	return int(b.Pix[y*b.Width+x])
}

// Block fills an n×n square with its top-left corner at (x, y), clipped
// at the edges.
func (b *Buffer) Block(x, y, n, idx int) {
	for dy := 0; dy < n; dy++ {
		for dx := 0; dx < n; dx++ {
			b.Set(x+dx, y+dy, idx)
		}
	}
}

func (b *Buffer) Fill(idx int) {
	if idx < 0 {
		idx = 0
	} else if idx >= b.Colors {
		idx = b.Colors - 1
	}
	for i := range b.Pix {
		b.Pix[i] = uint8(idx)
	}
}

func (b *Buffer) Clear() { b.Fill(0) }

// Paletted shares the pixel storage with an image.Paletted view.
func (b *Buffer) Paletted(p palette.Palette) *image.Paletted {
	return &image.Paletted{
		Pix:     b.Pix,
		Stride:  b.Width,
		Rect:    image.Rect(0, 0, b.Width, b.Height),
		Palette: p.Model(),
	}
}

// RGBA expands the buffer into 4 bytes per pixel, reusing dst when it is
// large enough.
func (b *Buffer) RGBA(p palette.Palette, dst []byte) []byte {
	n := len(b.Pix) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, idx := range b.Pix {
		c := p.Color(int(idx))
		dst[i*4] = c.R
		dst[i*4+1] = c.G
		dst[i*4+2] = c.B
		dst[i*4+3] = 255
	}
	return dst
}
