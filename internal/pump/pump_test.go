package pump

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/iburimskiy/screensaver/internal/effect"
	"github.com/iburimskiy/screensaver/internal/scheduler"
)

type recorder struct {
	frames []Frame
	err    error
}

func (r *recorder) Present(f Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

type script []bool

func (s *script) Touched() bool {
	if len(*s) == 0 {
		return false
	}
	v := (*s)[0]
	*s = (*s)[1:]
	return v
}

type switches []effect.ID

func (s *switches) EffectSwitched(_ int, id effect.ID) { *s = append(*s, id) }

type panicky struct{}

func (panicky) EffectSwitched(int, effect.ID) { panic("listener blew up") }

func newPump(t *testing.T, surface Surface, touch Touch, ids ...effect.ID) *Pump {
	t.Helper()
	list := make([]*effect.Effect, len(ids))
	for i, id := range ids {
		e, err := effect.New(id)
		if err != nil {
			t.Fatalf("effect.New: %v", err)
		}
		list[i] = e
	}
	s, err := scheduler.New(list, scheduler.Options{
		AutoAdvance:   time.Second,
		FrameInterval: 100 * time.Millisecond,
		Debounce:      500 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("scheduler.New: %v", err)
	}
	return New(s, surface, touch, &StepClock{Step: 50 * time.Millisecond}, 0)
}

func TestStepPresentsRenderedFrames(t *testing.T) {
	surface := &recorder{}
	p := newPump(t, surface, nil, effect.Matrix, effect.Fire)

	rendered := 0
	for i := 0; i < 10; i++ {
		res, err := p.Step()
		if err != nil {
			t.Fatalf("Step: %v", err)
		}
		if res.Rendered {
			rendered++
		}
	}
	if len(surface.frames) != rendered {
		t.Fatalf("expected %d presents, got %d", rendered, len(surface.frames))
	}
	f := surface.frames[0]
	if f.Effect != effect.Matrix || f.Scale != 16 || f.Buffer.Width != 20 {
		t.Fatalf("unexpected first frame %+v", f)
	}
}

func TestTouchSwitchesAndNotifies(t *testing.T) {
	surface := &recorder{}
	touch := &script{false, true, false}
	p := newPump(t, surface, touch, effect.Matrix, effect.Fire)
	var seen switches
	p.AddListener(&seen)
	p.AddListener(panicky{})

	p.Step()
	res, err := p.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !res.Switched {
		t.Fatalf("expected the touch to switch effects")
	}
	if len(seen) != 1 || seen[0] != effect.Fire {
		t.Fatalf("expected one switch to fire, got %v", seen)
	}
	if last := surface.frames[len(surface.frames)-1]; last.Effect != effect.Fire {
		t.Fatalf("expected the new effect presented, got %v", last.Effect)
	}
	if res, _ := p.Step(); !res.Rendered {
		t.Fatalf("expected the pump to keep rendering after a listener panic")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	p := newPump(t, &recorder{}, nil, effect.Matrix)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Run(ctx); err != nil {
		t.Fatalf("expected nil on cancellation, got %v", err)
	}
}

func TestRunReturnsSurfaceErrors(t *testing.T) {
	boom := errors.New("display gone")
	p := newPump(t, &recorder{err: boom}, nil, effect.Matrix)
	err := p.Run(context.Background())
	if errors.Cause(err) != boom {
		t.Fatalf("expected the surface error, got %v", err)
	}
}

func TestStepClock(t *testing.T) {
	c := &StepClock{Step: time.Second}
	for i := 0; i < 3; i++ {
		if got := c.Now(); got != time.Duration(i)*time.Second {
			t.Fatalf("read %d: expected %v, got %v", i, time.Duration(i)*time.Second, got)
		}
	}
}
