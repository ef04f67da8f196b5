package record

import (
	"bytes"
	"image/gif"
	"path/filepath"
	"testing"
	"time"

	"github.com/iburimskiy/screensaver/internal/effect"
	"github.com/iburimskiy/screensaver/internal/pump"
)

func fireFrame(t *testing.T) (pump.Frame, *effect.Effect) {
	t.Helper()
	e, err := effect.New(effect.Fire, effect.WithSeed(4))
	if err != nil {
		t.Fatalf("effect.New: %v", err)
	}
	return pump.Frame{Effect: e.ID(), Buffer: e.Buffer(), Palette: e.Palette(), Scale: e.Scale()}, e
}

func TestPresentUpscalesAndStopsAtLimit(t *testing.T) {
	r := New(320, 240, 3, 100*time.Millisecond)
	f, e := fireFrame(t)

	for i := 0; i < 3; i++ {
		e.AdvanceOneFrame()
		err := r.Present(f)
		if i < 2 && err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if i == 2 && err != ErrFull {
			t.Fatalf("expected ErrFull on the last frame, got %v", err)
		}
	}
	if err := r.Present(f); err != ErrFull || r.Frames() != 3 {
		t.Fatalf("expected the recorder to stay full at 3 frames, got %d (%v)", r.Frames(), err)
	}

	last := r.anim.Image[2]
	if b := last.Bounds(); b.Dx() != 320 || b.Dy() != 240 {
		t.Fatalf("expected 320x240 frames, got %v", b)
	}
	for _, p := range [][2]int{{0, 0}, {5, 5}, {319, 239}, {161, 200}} {
		x, y := p[0], p[1]
		want := f.Palette.Color(f.Buffer.At(x/4, y/4))
		if got := last.At(x, y); got != want {
			t.Fatalf("pixel (%d,%d): expected %v, got %v", x, y, want, got)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	r := New(320, 240, 2, 100*time.Millisecond)
	f, e := fireFrame(t)
	e.AdvanceOneFrame()
	r.Present(f)
	e.AdvanceOneFrame()
	r.Present(f)

	var out bytes.Buffer
	if err := r.Encode(&out); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	anim, err := gif.DecodeAll(&out)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(anim.Image) != 2 || anim.Delay[0] != 10 {
		t.Fatalf("expected 2 frames at 10cs, got %d frames, delay %v", len(anim.Image), anim.Delay)
	}
}

func TestSaveNeedsFrames(t *testing.T) {
	r := New(320, 240, 2, time.Second)
	if err := r.Save(filepath.Join(t.TempDir(), "empty.gif")); err == nil {
		t.Fatalf("expected an error for an empty recording")
	}
}
