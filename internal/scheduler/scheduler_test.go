package scheduler

import (
	"testing"
	"time"

	"github.com/iburimskiy/screensaver/internal/effect"
)

func effects(t *testing.T, n int) []*effect.Effect {
	t.Helper()
	list := make([]*effect.Effect, n)
	for i := range list {
		e, err := effect.New(effect.Matrix, effect.WithSeed(int64(i)))
		if err != nil {
			t.Fatalf("effect.New: %v", err)
		}
		list[i] = e
	}
	return list
}

func newScheduler(t *testing.T, n int, opts Options) *Scheduler {
	t.Helper()
	s, err := New(effects(t, n), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

var defaults = Options{
	AutoAdvance:   10 * time.Second,
	FrameInterval: 100 * time.Millisecond,
	Debounce:      500 * time.Millisecond,
}

func TestNewRejectsEmptyList(t *testing.T) {
	if _, err := New(nil, defaults); err != ErrNoEffects {
		t.Fatalf("expected ErrNoEffects, got %v", err)
	}
	if _, err := New(effects(t, 1), Options{}); err == nil {
		t.Fatalf("expected an error for a zero auto advance interval")
	}
}

func TestAutoAdvanceWraps(t *testing.T) {
	s := newScheduler(t, 3, defaults)

	var switches []time.Duration
	var order []int
	for now := time.Duration(0); now <= 45*time.Second; now += 50 * time.Millisecond {
		if s.Tick(now, false).Switched {
			switches = append(switches, now)
			order = append(order, s.Index())
		}
	}

	want := []int{1, 2, 0, 1}
	if len(order) != len(want) {
		t.Fatalf("expected %d switches, got %d at %v", len(want), len(order), switches)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("switch %d: expected index %d, got %d", i, want[i], order[i])
		}
	}
	for i := 1; i < len(switches); i++ {
		if gap := switches[i] - switches[i-1]; gap < 10*time.Second {
			t.Fatalf("switches %v apart, expected at least 10s", gap)
		}
	}
}

func TestDebounceCollapsesCloseTouches(t *testing.T) {
	s := newScheduler(t, 4, defaults)

	ticks := []struct {
		at      time.Duration
		touched bool
	}{
		{1000 * time.Millisecond, true},
		{1100 * time.Millisecond, false},
		{1200 * time.Millisecond, true},
		{1300 * time.Millisecond, false},
		{1400 * time.Millisecond, true},
	}
	switched := 0
	for _, tk := range ticks {
		if s.Tick(tk.at, tk.touched).Switched {
			switched++
		}
	}
	if switched != 1 || s.Index() != 1 {
		t.Fatalf("expected one transition, got %d (index %d)", switched, s.Index())
	}

	s.Tick(1600*time.Millisecond, false)
	if !s.Tick(1700*time.Millisecond, true).Switched {
		t.Fatalf("expected a touch past the debounce window to switch")
	}
}

func TestHeldTouchIsOneEdge(t *testing.T) {
	s := newScheduler(t, 4, defaults)
	switched := 0
	for now := time.Duration(0); now < 3*time.Second; now += 100 * time.Millisecond {
		if s.Tick(now, true).Switched {
			switched++
		}
	}
	if switched != 1 {
		t.Fatalf("expected a held touch to switch once, got %d", switched)
	}
}

func TestTouchAndTimerSwitchOnce(t *testing.T) {
	s := newScheduler(t, 3, defaults)
	s.Tick(0, false)

	res := s.Tick(10*time.Second, true)
	if !res.Switched || !res.Touched {
		t.Fatalf("expected a touch switch, got %+v", res)
	}
	if s.Index() != 1 {
		t.Fatalf("expected exactly one step, index %d", s.Index())
	}
	if s.Tick(19*time.Second, false).Switched {
		t.Fatalf("the timer must restart from the touch transition")
	}
	if !s.Tick(20*time.Second, false).Switched {
		t.Fatalf("expected the timer to fire 10s after the touch")
	}
}

func TestFramePacing(t *testing.T) {
	s := newScheduler(t, 1, Options{AutoAdvance: time.Hour, FrameInterval: 100 * time.Millisecond})

	rendered := 0
	for now := time.Duration(0); now < time.Second; now += 10 * time.Millisecond {
		if s.Tick(now, false).Rendered {
			rendered++
		}
	}
	if rendered != 10 {
		t.Fatalf("expected 10 frames in one second at 10 fps, got %d", rendered)
	}
	if s.Active().Frames() != 10 {
		t.Fatalf("expected the effect to count 10 frames, got %d", s.Active().Frames())
	}
}

func TestSwitchResetsAndRendersNextTick(t *testing.T) {
	s := newScheduler(t, 2, defaults)
	next := s.effects[1]
	next.AdvanceOneFrame()
	next.AdvanceOneFrame()

	s.Tick(0, false)
	res := s.Tick(200*time.Millisecond, true)
	if !res.Switched || res.Rendered {
		t.Fatalf("expected a switch without a render, got %+v", res)
	}
	if next.Frames() != 0 {
		t.Fatalf("expected the new effect to be reset, frames %d", next.Frames())
	}
	if !s.Tick(210*time.Millisecond, false).Rendered {
		t.Fatalf("expected the reset effect to render on the following tick")
	}
	if s.SinceTransition(210*time.Millisecond) != 10*time.Millisecond {
		t.Fatalf("unexpected time since transition %v", s.SinceTransition(210*time.Millisecond))
	}
}
