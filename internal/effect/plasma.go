package effect

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/screensaver/internal/frame"
)

const (
	plasmaStep  = 0.08
	plasmaScale = 8.0
)

// plasma averages four sine waves: horizontal, vertical, diagonal and
// radial, each drifting at its own rate.
type plasma struct {
	cx, cy float64
	time   float64
}

func newPlasma(w, h int) *plasma {
	return &plasma{cx: float64(w / 2), cy: float64(h / 2)}
}

func (p *plasma) reset(*rand.Rand) { p.time = 0 }

func (p *plasma) value(x, y float64) float64 {
	t := p.time
	v1 := math.Sin((x + t*50) / plasmaScale)
	v2 := math.Sin((y + t*30) / plasmaScale)
	v3 := math.Sin((x + y + t*40) / plasmaScale)
	v4 := math.Sin(math.Hypot(x-p.cx, y-p.cy)/plasmaScale + t*20)
	return (v1 + v2 + v3 + v4) / 4
}

func (p *plasma) advance(fb *frame.Buffer, _ *rand.Rand) {
	p.time += plasmaStep
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			fb.Set(x, y, fieldIndex(p.value(float64(x), float64(y)), fb.Colors))
		}
	}
}
