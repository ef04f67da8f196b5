// Package scheduler decides which effect is active and when it draws.
package scheduler

import (
	"time"

	log "github.com/mgutz/logxi/v1"
	"github.com/pkg/errors"

	"github.com/iburimskiy/screensaver/internal/effect"
)

var logger = log.New("scheduler")

var ErrNoEffects = errors.New("scheduler needs at least one effect")

// Options are the timing parameters handed over at construction.
type Options struct {
	AutoAdvance   time.Duration
	FrameInterval time.Duration
	Debounce      time.Duration
}

// Result reports what a single Tick did.
type Result struct {
	Switched bool
	Touched  bool
	Rendered bool
}

// Scheduler owns the effect rotation. Times are offsets on a monotonic
// clock supplied by the caller.
type Scheduler struct {
	effects []*effect.Effect
	opts    Options
	index   int

	lastTransition time.Duration
	lastFrame      time.Duration
	drawn          bool

	touchPrev bool
	lastEdge  time.Duration
	edgeSeen  bool
}

func New(effects []*effect.Effect, opts Options) (*Scheduler, error) {
	if len(effects) == 0 {
		return nil, ErrNoEffects
	}
	if opts.AutoAdvance <= 0 {
		return nil, errors.Errorf("auto advance interval must be positive, got %v", opts.AutoAdvance)
	}
	if opts.FrameInterval < 0 || opts.Debounce < 0 {
		return nil, errors.Errorf("frame interval and debounce must not be negative")
	}
	list := make([]*effect.Effect, len(effects))
	copy(list, effects)
	return &Scheduler{effects: list, opts: opts}, nil
}

func (s *Scheduler) Active() *effect.Effect { return s.effects[s.index] }
func (s *Scheduler) Index() int             { return s.index }
func (s *Scheduler) Len() int               { return len(s.effects) }

// SinceTransition is the time the active effect has been showing.
func (s *Scheduler) SinceTransition(now time.Duration) time.Duration {
	return now - s.lastTransition
}

// AutoAdvance is the configured rotation interval.
func (s *Scheduler) AutoAdvance() time.Duration { return s.opts.AutoAdvance }

// edge reports an accepted rising edge of the touch sample. Edges closer
// than the debounce window to the last accepted edge are ignored.
func (s *Scheduler) edge(now time.Duration, touched bool) bool {
	rising := touched && !s.touchPrev
	s.touchPrev = touched
	if !rising {
		return false
	}
	if s.edgeSeen && now-s.lastEdge < s.opts.Debounce {
		logger.Debug("touch ignored", "since", now-s.lastEdge)
		return false
	}
	s.edgeSeen = true
	s.lastEdge = now
	return true
}

// Tick runs one scheduling step. At most one transition happens per
// call; a touch wins over the timer. A tick that switched effects does
// not render, the freshly reset effect draws on the next eligible tick.
func (s *Scheduler) Tick(now time.Duration, touched bool) Result {
	var res Result

	res.Touched = s.edge(now, touched)
	if res.Touched || now-s.lastTransition >= s.opts.AutoAdvance {
		s.advance(now, res.Touched)
		res.Switched = true
		return res
	}

	if !s.drawn || now-s.lastFrame >= s.opts.FrameInterval {
		s.Active().AdvanceOneFrame()
		s.lastFrame = now
		s.drawn = true
		res.Rendered = true
	}
	return res
}

func (s *Scheduler) advance(now time.Duration, touched bool) {
	next := (s.index + 1) % len(s.effects)
	e := s.effects[next]
	e.Reset()
	s.index = next
	s.lastTransition = now
	s.drawn = false

	trigger := "timer"
	if touched {
		trigger = "touch"
	}
	logger.Info("switched effect", "index", s.index, "effect", e.Name(), "trigger", trigger)
}
