package frame

import (
	"testing"

	"github.com/iburimskiy/screensaver/internal/palette"
)

func TestSetDropsOutOfBounds(t *testing.T) {
	b := New(4, 3, 16)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}, {100, 100}} {
		b.Set(p[0], p[1], 7)
	}
	for i, v := range b.Pix {
		if v != 0 {
			t.Fatalf("pixel %d written by an out of bounds Set", i)
		}
	}
	if b.At(-3, 9) != 0 {
		t.Fatalf("At outside the grid must read 0")
	}
}

func TestSetClampsIndex(t *testing.T) {
	b := New(2, 2, 16)
	b.Set(0, 0, 300)
	b.Set(1, 0, -4)
	if b.At(0, 0) != 15 || b.At(1, 0) != 0 {
		t.Fatalf("expected clamped indices 15 and 0, got %d and %d", b.At(0, 0), b.At(1, 0))
	}
}

func TestBlockClipsAtEdge(t *testing.T) {
	b := New(3, 3, 4)
	b.Block(2, 2, 2, 3)
	if b.At(2, 2) != 3 {
		t.Fatalf("expected corner written")
	}
	count := 0
	for _, v := range b.Pix {
		if v != 0 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one pixel written, got %d", count)
	}
}

func TestRGBAExpansion(t *testing.T) {
	p := palette.Heat(32)
	b := New(2, 1, p.Len())
	b.Set(1, 0, 31)
	out := b.RGBA(p, nil)
	if len(out) != 8 {
		t.Fatalf("expected 8 bytes, got %d", len(out))
	}
	if out[0] != 0 || out[3] != 255 {
		t.Fatalf("expected opaque black first pixel, got %v", out[:4])
	}
	if out[4] != 255 || out[5] != 255 || out[6] != 255 {
		t.Fatalf("expected white second pixel, got %v", out[4:])
	}
	img := b.Paletted(p)
	if img.ColorIndexAt(1, 0) != 31 {
		t.Fatalf("paletted view must share pixels")
	}
}
