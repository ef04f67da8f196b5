package effect

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/screensaver/internal/frame"
)

const (
	wavesStep  = 0.08
	wavesShift = 0.5
)

type waveSource struct {
	x, y      float64
	freq, amp float64
	phase     float64
}

var initialSources = [4]waveSource{
	{x: 40, y: 30, freq: 0.2, amp: 1.0, phase: 0},
	{x: 120, y: 30, freq: 0.15, amp: 0.8, phase: math.Pi / 2},
	{x: 80, y: 90, freq: 0.25, amp: 0.9, phase: math.Pi},
	{x: 40, y: 90, freq: 0.18, amp: 0.7, phase: 3 * math.Pi / 2},
}

// waves sums distance-attenuated sine waves from four sources that
// orbit the centre.
type waves struct {
	cx, cy  float64
	sources [4]waveSource
	time    float64
	shift   float64
}

func newWaves(w, h int) *waves {
	return &waves{cx: float64(w / 2), cy: float64(h / 2)}
}

func (w *waves) reset(*rand.Rand) {
	w.sources = initialSources
	w.time = 0
	w.shift = 0
}

func (w *waves) orbit() {
	for i := range w.sources {
		s := &w.sources[i]
		fi := float64(i)
		angle := w.time*0.3 + fi*math.Pi/2
		radius := 20 + 15*math.Sin(w.time*0.2+fi)
		s.x = w.cx + radius*math.Cos(angle)
		s.y = w.cy + radius*math.Sin(angle)
		s.freq = 0.1 + fi*0.05 + 0.05*math.Sin(w.time*0.4+fi)
	}
}

func (w *waves) value(x, y float64) float64 {
	var sum float64
	for _, s := range w.sources {
		d := math.Hypot(x-s.x, y-s.y)
		v := s.amp * math.Sin(s.freq*d+s.phase+w.time*2)
		sum += v / (1 + d*0.01)
	}
	return sum
}

func (w *waves) advance(fb *frame.Buffer, _ *rand.Rand) {
	w.time += wavesStep
	w.shift += wavesShift
	w.orbit()
	n := fb.Colors
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			v := (w.value(float64(x), float64(y)) + 2) / 4
			fb.Set(x, y, wrapIndex(v*float64(n-1)+w.shift, n))
		}
	}
}
