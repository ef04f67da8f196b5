// Package pump drives the scheduler at a steady rate and hands finished
// frames to a display surface.
package pump

import (
	"context"
	"fmt"
	"time"

	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/iburimskiy/screensaver/internal/effect"
	"github.com/iburimskiy/screensaver/internal/frame"
	"github.com/iburimskiy/screensaver/internal/palette"
	"github.com/iburimskiy/screensaver/internal/scheduler"
)

var logger = log.New("pump")

// Frame is what a surface needs to show one effect.
type Frame struct {
	Effect  effect.ID
	Buffer  *frame.Buffer
	Palette palette.Palette
	Scale   int
}

// Surface presents finished frames. Present is only ever called from the
// pump's goroutine, between completed frames.
type Surface interface {
	Present(f Frame) error
}

// Touch reports whether the screen is currently being touched.
type Touch interface {
	Touched() bool
}

// Clock is a monotonic time source measured from an arbitrary origin.
type Clock interface {
	Now() time.Duration
}

// SwitchListener is told about every effect transition.
type SwitchListener interface {
	EffectSwitched(index int, id effect.ID)
}

// NoTouch never reports a touch.
type NoTouch struct{}

func (NoTouch) Touched() bool { return false }

// SystemClock measures from its creation using the runtime's monotonic
// clock.
type SystemClock struct{ start time.Time }

func NewSystemClock() *SystemClock { return &SystemClock{start: time.Now()} }

func (c *SystemClock) Now() time.Duration { return time.Since(c.start) }

// StepClock advances by a fixed step every time it is read. It gives
// reproducible runs independent of wall time.
type StepClock struct {
	Step time.Duration
	now  time.Duration
}

func (c *StepClock) Now() time.Duration {
	t := c.now
	c.now += c.Step
	return t
}

type Pump struct {
	sched     *scheduler.Scheduler
	surface   Surface
	touch     Touch
	clock     Clock
	poll      time.Duration
	listeners []SwitchListener
	presented bool
}

// New wires a pump. poll is the sleep between steps in Run; it should be
// well below the target frame interval.
func New(s *scheduler.Scheduler, surface Surface, touch Touch, clock Clock, poll time.Duration) *Pump {
	if touch == nil {
		touch = NoTouch{}
	}
	if clock == nil {
		clock = NewSystemClock()
	}
	return &Pump{sched: s, surface: surface, touch: touch, clock: clock, poll: poll}
}

func (p *Pump) AddListener(l SwitchListener) {
	p.listeners = append(p.listeners, l)
}

func (p *Pump) Scheduler() *scheduler.Scheduler { return p.sched }

// Now reads the pump's clock.
func (p *Pump) Now() time.Duration { return p.clock.Now() }

// Current describes the active effect's framebuffer.
func (p *Pump) Current() Frame {
	e := p.sched.Active()
	return Frame{Effect: e.ID(), Buffer: e.Buffer(), Palette: e.Palette(), Scale: e.Scale()}
}

// Step runs a single tick. A panic raised while ticking or notifying
// listeners is recovered and logged, and the frame is skipped. The
// scheduler only commits a transition or a frame once it completed.
func (p *Pump) Step() (scheduler.Result, error) {
	now := p.clock.Now()
	touched := p.touch.Touched()

	var res scheduler.Result
	p.safely(func() { res = p.sched.Tick(now, touched) })
	if res.Switched {
		index, id := p.sched.Index(), p.sched.Active().ID()
		for _, l := range p.listeners {
			p.safely(func() { l.EffectSwitched(index, id) })
		}
	}

	if res.Switched || res.Rendered || !p.presented {
		if err := p.surface.Present(p.Current()); err != nil {
			return res, errors.Wrapf(err, "present %s", p.sched.Active().Name())
		}
		p.presented = true
	}
	return res, nil
}

func (p *Pump) safely(f func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("frame dropped", "effect", p.sched.Active().Name(), "panic", fmt.Sprint(r))
		}
	}()
	f()
}

// Run steps until ctx is cancelled or the surface fails. Cancellation is
// checked once per tick.
func (p *Pump) Run(ctx context.Context) error {
	logger.Info("pump started", "effects", p.sched.Len(), "poll", p.poll)
	for {
		select {
		case <-ctx.Done():
			logger.Info("pump stopped")
			return nil
		default:
		}
		if _, err := p.Step(); err != nil {
			return err
		}
		if p.poll > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(p.poll):
			}
		}
	}
}
