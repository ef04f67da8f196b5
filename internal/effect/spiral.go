package effect

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/screensaver/internal/frame"
	"github.com/iburimskiy/screensaver/internal/palette"
)

const (
	spiralStep     = 0.08
	spiralRotation = 0.05
)

// spiralPalette runs blue to purple to pink.
func spiralPalette() palette.Palette {
	return palette.Func(32, func(t float64) (float64, float64, float64) {
		return 50 + 205*t*t, 20 + 100*math.Sin(t*math.Pi), 255 - 100*t
	})
}

type spiral struct {
	cx, cy   float64
	time     float64
	rotation float64
}

func newSpiral(w, h int) *spiral {
	return &spiral{cx: float64(w / 2), cy: float64(h / 2)}
}

func (s *spiral) reset(*rand.Rand) {
	s.time = 0
	s.rotation = 0
}

func (s *spiral) value(x, y float64) float64 {
	dx, dy := x-s.cx, y-s.cy
	r := math.Hypot(dx, dy)
	a := math.Atan2(dy, dx)
	arm := math.Sin(r*0.3 - s.time*3 + a*2 + s.rotation)
	radial := math.Cos(r*0.1 + s.time)
	return (arm + radial) / 2
}

func (s *spiral) advance(fb *frame.Buffer, _ *rand.Rand) {
	s.time += spiralStep
	s.rotation += spiralRotation
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			fb.Set(x, y, fieldIndex(s.value(float64(x), float64(y)), fb.Colors))
		}
	}
}
