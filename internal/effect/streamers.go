package effect

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/screensaver/internal/frame"
)

const (
	streamerCount = 8
	// streamers are drawn from 30 pixels behind to 60 ahead of their x
	streamerBehind = 30
	streamerAhead  = 60
)

type streamer struct {
	x, base   float64
	amp, freq float64
	speed     float64
	phase     float64
	waveSpeed float64
	color     int
	thickness int
	dir       int
}

// streamers moves wavy ribbons across the screen.
type streamers struct {
	w, h  int
	top   int
	lines [streamerCount]streamer
	time  float64
}

func newStreamers(w, h, colors int) *streamers {
	return &streamers{w: w, h: h, top: colors - 1}
}

// shape randomises everything except position, direction and phase.
func (s *streamers) shape(st *streamer, rng *rand.Rand) {
	st.base = float64(between(rng, 10, s.h-10))
	st.amp = uniform(rng, 5, 25)
	st.freq = uniform(rng, 0.05, 0.15)
	st.speed = uniform(rng, 0.5, 2)
	st.color = between(rng, 1, s.top)
	st.thickness = between(rng, 1, 3)
	st.waveSpeed = uniform(rng, 0.02, 0.08)
}

func (s *streamers) reset(rng *rand.Rand) {
	s.time = 0
	for i := range s.lines {
		st := &s.lines[i]
		st.x = float64(between(rng, -20, s.w+20))
		s.shape(st, rng)
		st.phase = uniform(rng, 0, 2*math.Pi)
		st.dir = 1
		if rng.Intn(2) == 0 {
			st.dir = -1
		}
	}
}

func (s *streamers) move(st *streamer, rng *rand.Rand) {
	st.x += st.speed * float64(st.dir)
	st.phase += st.waveSpeed

	switch {
	case st.dir > 0 && st.x > float64(s.w+50):
		st.x = float64(between(rng, -50, -20))
	case st.dir < 0 && st.x < -50:
		st.x = float64(between(rng, s.w+20, s.w+50))
	default:
		return
	}
	s.shape(st, rng)
}

func (s *streamers) draw(fb *frame.Buffer, st *streamer) {
	start := clampInt(int(st.x)-streamerBehind, -10, s.w+10)
	end := clampInt(int(st.x)+streamerAhead, -10, s.w+10)

	prevX, prevY, have := 0, 0, false
	for x := start; x < end; x += 2 {
		if x < 0 || x >= s.w {
			continue
		}
		y := int(st.base + st.amp*math.Sin((float64(x)-st.x)*st.freq+st.phase))
		for k := 0; k < st.thickness; k++ {
			py := y + k - st.thickness/2
			if py < 0 || py >= s.h {
				continue
			}
			fb.Set(x, py, st.color)
			// bridge the two pixel gap to the previous sample
			if have && x-prevX <= 2 && abs(py-prevY) <= 4 {
				fb.Set(prevX, (py+prevY)/2, st.color)
			}
		}
		prevX, prevY, have = x, y, true
	}
}

func (s *streamers) advance(fb *frame.Buffer, rng *rand.Rand) {
	s.time += 0.1
	fb.Clear()
	for i := range s.lines {
		st := &s.lines[i]
		s.move(st, rng)
		s.draw(fb, st)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
