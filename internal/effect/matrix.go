package effect

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/screensaver/internal/frame"
)

const (
	matrixTrail     = 8
	matrixFall      = 0.3
	matrixWakeIn    = 5
	matrixWakeOf    = 101
	matrixRespawnLo = -15
	matrixRespawnHi = -5
)

type column struct {
	pos    float64
	speed  int
	active bool
}

// matrix is the green column rain on a coarse grid. Each column carries a
// falling head with a fading trail above it.
type matrix struct {
	rows int
	top  int
	cols []column
	time float64
}

func newMatrix(w, h, colors int) *matrix {
	return &matrix{rows: h, top: colors - 1, cols: make([]column, w)}
}

func (m *matrix) reset(rng *rand.Rand) {
	m.time = 0
	for i := range m.cols {
		c := &m.cols[i]
		c.pos = float64(between(rng, -10, m.rows))
		c.speed = between(rng, 1, 3)
		c.active = rng.Intn(2) == 0
	}
}

// trailIndex is the brightness of the cell k rows above the head.
func (m *matrix) trailIndex(k int) int {
	if k == 0 {
		return m.top
	}
	return clampInt(m.top-2*k, 0, m.top)
}

func (m *matrix) advance(fb *frame.Buffer, rng *rand.Rand) {
	m.time += 0.1
	fb.Clear()

	for x := range m.cols {
		c := &m.cols[x]
		if !c.active {
			if rng.Intn(matrixWakeOf) < matrixWakeIn {
				c.active = true
				c.pos = float64(between(rng, matrixRespawnLo, matrixRespawnHi))
			}
			continue
		}

		head := int(math.Floor(c.pos))
		for k := 0; k < matrixTrail; k++ {
			fb.Set(x, head-k, m.trailIndex(k))
		}

		c.pos += float64(c.speed) * matrixFall
		if c.pos > float64(m.rows+5) {
			c.pos = float64(between(rng, matrixRespawnLo, matrixRespawnHi))
			c.speed = between(rng, 1, 3)
			// one in four columns rests after a pass
			c.active = rng.Intn(4) != 0
		}
	}
}
