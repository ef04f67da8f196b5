// Package terminal renders frames into a truecolor terminal with tcell.
// Every cell shows two vertically stacked pixels using the upper half
// block: the foreground paints the top pixel, the background the bottom.
package terminal

import (
	"context"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/iburimskiy/screensaver/internal/pump"
)

var logger = log.New("terminal")

const halfBlock = '▀'

// Screen is a pump surface and touch source backed by a tcell screen.
type Screen struct {
	screen  tcell.Screen
	touched atomic.Bool
}

// Open initialises the process terminal.
func Open() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "open terminal")
	}
	if err := s.Init(); err != nil {
		return nil, errors.Wrap(err, "init terminal")
	}
	return New(s), nil
}

// New wraps an already initialised screen.
func New(s tcell.Screen) *Screen {
	s.EnableMouse()
	s.HideCursor()
	s.Clear()
	return &Screen{screen: s}
}

func (t *Screen) Close() { t.screen.Fini() }

// Touched reports whether a key or click arrived since the last call.
// Terminals have no release events, so every input counts as a short
// press.
func (t *Screen) Touched() bool { return t.touched.Swap(false) }

// Present fits the frame to the whole terminal.
func (t *Screen) Present(f pump.Frame) error {
	cols, rows := t.screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	b := f.Buffer
	for cy := 0; cy < rows; cy++ {
		top := (2 * cy) * b.Height / (2 * rows)
		bottom := (2*cy + 1) * b.Height / (2 * rows)
		for cx := 0; cx < cols; cx++ {
			x := cx * b.Width / cols
			style := tcell.StyleDefault.
				Foreground(cellColor(f, x, top)).
				Background(cellColor(f, x, bottom))
			t.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	t.screen.Show()
	return nil
}

func cellColor(f pump.Frame, x, y int) tcell.Color {
	c := f.Palette.Color(f.Buffer.At(x, y))
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Listen consumes terminal events until the screen is finalised or ctx
// ends. Escape, q and Ctrl-C call quit; any other key or a left click
// counts as a touch.
func (t *Screen) Listen(ctx context.Context, quit func()) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil || ctx.Err() != nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
				(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
				logger.Debug("quit requested")
				quit()
				return
			}
			t.touched.Store(true)
		case *tcell.EventMouse:
			if ev.Buttons()&tcell.Button1 != 0 {
				t.touched.Store(true)
			}
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}
