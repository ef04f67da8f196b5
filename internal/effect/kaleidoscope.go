package effect

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/screensaver/internal/frame"
)

const (
	kaleidoscopeOrder    = 6
	kaleidoscopeRotation = 0.02
	kaleidoscopeShift    = 0.5
)

type kaleidoscope struct {
	cx, cy float64
	order  int
	time   float64
	shift  float64
}

func newKaleidoscope(w, h int) *kaleidoscope {
	return &kaleidoscope{cx: float64(w / 2), cy: float64(h / 2), order: kaleidoscopeOrder}
}

func (k *kaleidoscope) reset(*rand.Rand) {
	k.time = 0
	k.shift = 0
}

// fold maps angle into the first wedge. Odd wedges are mirrored so the
// pattern reflects across every wedge boundary.
func (k *kaleidoscope) fold(angle float64) float64 {
	wedge := 2 * math.Pi / float64(k.order)
	in := wrap(angle, wedge)
	seg := int(math.Floor(angle/wedge)) % (2 * k.order)
	if seg < 0 {
		seg += 2 * k.order
	}
	if seg%2 == 1 {
		in = wedge - in
	}
	return in
}

func (k *kaleidoscope) value(x, y float64) float64 {
	dx, dy := x-k.cx, y-k.cy
	r := math.Hypot(dx, dy)
	a := k.fold(math.Atan2(dy, dx) + k.time)

	mx := r * math.Cos(a)
	my := r * math.Sin(a)
	t := k.time

	p1 := math.Sin(mx*0.1 + t*2)
	p2 := math.Cos(my*0.08 + t*1.5)
	p3 := math.Sin((mx+my)*0.06 + t)
	p4 := math.Cos(r*0.05 + t*0.8)
	combined := (p1 + p2 + p3 + p4) / 4

	radial := math.Sin(r*0.02 + t*0.5)
	return (combined + radial) / 2
}

func (k *kaleidoscope) advance(fb *frame.Buffer, _ *rand.Rand) {
	k.time += kaleidoscopeRotation
	k.shift += kaleidoscopeShift
	n := fb.Colors
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			v := k.value(float64(x), float64(y))
			fb.Set(x, y, wrapIndex((v+1)*float64(n)/2+k.shift, n))
		}
	}
}
