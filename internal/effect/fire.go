package effect

import (
	"math/rand"

	"github.com/iburimskiy/screensaver/internal/frame"
)

const (
	fireSourceHeat = 28
	fireJitter     = 3
	// fireFloor is the lowest heat the source row is ever reseeded to.
	fireFloor = 20
	// flicker fires when rng.Intn(fireFlickerOf) < fireFlickerIn
	fireFlickerIn = 3
	fireFlickerOf = 11
)

// fire is a heat-diffusion cellular automaton. The bottom row is the
// source; every other row takes the average of the cells at and below it
// minus a random cooling term.
type fire struct {
	w, h int
	top  int
	heat []int
	time float64
}

func newFire(w, h, colors int) *fire {
	return &fire{w: w, h: h, top: colors - 1, heat: make([]int, w*h)}
}

func (f *fire) reset(*rand.Rand) {
	f.time = 0
	for i := range f.heat {
		f.heat[i] = 0
	}
	for x := 0; x < f.w; x++ {
		f.heat[(f.h-1)*f.w+x] = f.top
	}
}

// step runs one diffusion pass and reseeds the source row. Rows are
// visited bottom to top so heat rises within a single pass.
func (f *fire) step(rng *rand.Rand) {
	for y := f.h - 2; y >= 0; y-- {
		for x := 0; x < f.w; x++ {
			sum, count := 0, 0
			for dy := 0; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= f.w || ny >= f.h {
						continue
					}
					sum += f.heat[ny*f.w+nx]
					count++
				}
			}
			avg := float64(sum) / float64(count)
			h := int(avg - float64(between(rng, 1, 3)))
			if h < 0 {
				h = 0
			}
			if rng.Intn(fireFlickerOf) < fireFlickerIn {
				h -= between(rng, 0, 2)
			}
			f.heat[y*f.w+x] = clampInt(h, 0, f.top)
		}
	}
	for x := 0; x < f.w; x++ {
		base := fireSourceHeat + between(rng, -fireJitter, fireJitter)
		f.heat[(f.h-1)*f.w+x] = clampInt(base, fireFloor, f.top)
	}
}

func (f *fire) advance(fb *frame.Buffer, rng *rand.Rand) {
	f.time += 0.1
	f.step(rng)
	for y := 0; y < f.h; y++ {
		for x := 0; x < f.w; x++ {
			fb.Set(x, y, f.heat[y*f.w+x])
		}
	}
}
