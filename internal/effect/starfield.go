package effect

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/screensaver/internal/frame"
)

const (
	starCount = 150

	// spawn ranges for the first frame
	starSpreadMin, starSpreadMax = 1.0, 100.0
	starDepthMin, starDepthMax   = 1.0, 50.0
	// respawn ranges: near the vanishing point, far away
	starNearMin, starNearMax = 1.0, 5.0
	starFarMin, starFarMax   = 30.0, 50.0

	starSpeedMin, starSpeedMax   = 0.5, 2.0
	starBrightMin, starBrightMax = 5, 15
)

type star struct {
	x, y       float64
	z          float64
	brightness int
	speed      float64
}

// starfield flies through a field of particles diverging from the centre.
type starfield struct {
	w, h   int
	cx, cy float64
	top    int
	stars  [starCount]star
	time   float64
}

func newStarfield(w, h, colors int) *starfield {
	return &starfield{w: w, h: h, cx: float64(w / 2), cy: float64(h / 2), top: colors - 1}
}

func (s *starfield) place(st *star, rng *rand.Rand, dmin, dmax, zmin, zmax float64) {
	angle := uniform(rng, 0, 2*math.Pi)
	dist := uniform(rng, dmin, dmax)
	st.x = s.cx + dist*math.Cos(angle)
	st.y = s.cy + dist*math.Sin(angle)
	st.z = uniform(rng, zmin, zmax)
	st.brightness = between(rng, starBrightMin, starBrightMax)
	st.speed = uniform(rng, starSpeedMin, starSpeedMax)
}

func (s *starfield) reset(rng *rand.Rand) {
	s.time = 0
	for i := range s.stars {
		s.place(&s.stars[i], rng, starSpreadMin, starSpreadMax, starDepthMin, starDepthMax)
	}
}

func (s *starfield) respawn(st *star, rng *rand.Rand) {
	s.place(st, rng, starNearMin, starNearMax, starFarMin, starFarMax)
}

func (s *starfield) advance(fb *frame.Buffer, rng *rand.Rand) {
	s.time += 0.1
	warp := 1 + 0.5*math.Sin(s.time*0.3)
	fb.Clear()

	for i := range s.stars {
		st := &s.stars[i]
		dx, dy := st.x-s.cx, st.y-s.cy
		st.x += dx * 0.02 * st.speed * warp
		st.y += dy * 0.02 * st.speed * warp
		st.z -= 0.5 * st.speed * warp

		sx, sy := int(math.Floor(st.x)), int(math.Floor(st.y))
		if !fb.In(sx, sy) || st.z < 1 {
			s.respawn(st, rng)
			continue
		}

		// nearer stars are bigger and brighter
		size := math.Max(0.1, 30/st.z)
		b := clampInt(int(float64(st.brightness)*size), 1, s.top)
		if size > 1.5 {
			fb.Block(sx, sy, 2, b)
		} else {
			fb.Set(sx, sy, b)
		}
	}
}
