package terminal

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/screensaver/internal/frame"
	"github.com/iburimskiy/screensaver/internal/palette"
	"github.com/iburimskiy/screensaver/internal/pump"
)

func simScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	return s
}

func TestPresentStacksRowsInHalfBlocks(t *testing.T) {
	s := simScreen(t, 4, 2)
	defer s.Fini()
	term := New(s)

	pal := palette.Palette{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 200, G: 0, B: 0, A: 255},
		{R: 0, G: 200, B: 0, A: 255},
		{R: 0, G: 0, B: 200, A: 255},
	}
	buf := frame.New(4, 4, len(pal))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			buf.Set(x, y, y)
		}
	}
	if err := term.Present(pump.Frame{Buffer: buf, Palette: pal, Scale: 1}); err != nil {
		t.Fatalf("Present: %v", err)
	}

	check := func(cy int, top, bottom color.RGBA) {
		for cx := 0; cx < 4; cx++ {
			r, _, style, _ := s.GetContent(cx, cy)
			if r != halfBlock {
				t.Fatalf("cell (%d,%d): expected half block, got %q", cx, cy, r)
			}
			fg, bg, _ := style.Decompose()
			if fg != tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)) {
				t.Fatalf("cell (%d,%d): unexpected foreground %v", cx, cy, fg)
			}
			if bg != tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)) {
				t.Fatalf("cell (%d,%d): unexpected background %v", cx, cy, bg)
			}
		}
	}
	check(0, pal[0], pal[1])
	check(1, pal[2], pal[3])
}

func TestListenLatchesTouchesAndQuits(t *testing.T) {
	s := simScreen(t, 10, 5)
	defer s.Fini()
	term := New(s)

	quit := make(chan struct{})
	done := make(chan struct{})
	go func() {
		term.Listen(context.Background(), func() { close(quit) })
		close(done)
	}()

	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Listen did not return after escape")
	}
	select {
	case <-quit:
	default:
		t.Fatalf("escape did not request quit")
	}
	if !term.Touched() {
		t.Fatalf("expected the key press to register as a touch")
	}
	if term.Touched() {
		t.Fatalf("a touch must be consumed by the first read")
	}
}
