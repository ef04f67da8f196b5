package effect

import (
	"math"
	"math/rand"

	"github.com/iburimskiy/screensaver/internal/frame"
)

// Default escape-time cutoffs.
const (
	mandelbrotIterations = 32
	juliaIterations      = 20

	fractalStride = 2
)

// escape iterates z = z² + c from z and reports the iteration at which
// |z|² first exceeded 4.
func escape(zx, zy, cx, cy float64, limit int) (int, bool) {
	for i := 0; i < limit; i++ {
		if zx*zx+zy*zy > 4 {
			return i, true
		}
		zx, zy = zx*zx-zy*zy+cx, 2*zx*zy+cy
	}
	return limit, false
}

// escapeIndex colours an escaped point with the animated offset. Index 0
// stays reserved for points that never escaped.
func escapeIndex(n int, escaped bool, offset float64, colors int) int {
	if !escaped || colors < 2 {
		return 0
	}
	return wrapIndex(float64(n)+offset, colors-1) + 1
}

// renderStrided evaluates f on every stride-th pixel and replicates the
// result over the skipped block.
func renderStrided(fb *frame.Buffer, f func(x, y int) int) {
	for y := 0; y < fb.Height; y += fractalStride {
		for x := 0; x < fb.Width; x += fractalStride {
			fb.Block(x, y, fractalStride, f(x, y))
		}
	}
}

const (
	mandelbrotZoomSpeed = 1.02
	mandelbrotCycle     = 200
	mandelbrotTargetX   = -0.235125
	mandelbrotTargetY   = 0.827215
	mandelbrotHomeX     = -0.5
	mandelbrotHomeY     = 0.0
)

// mandelbrot zooms toward a point on the set boundary for a fixed number
// of frames, then starts over.
type mandelbrot struct {
	w, h     int
	maxIters int

	zoom        float64
	centerX     float64
	centerY     float64
	frameCount  int
	colorOffset float64
	time        float64
}

func newMandelbrot(w, h, maxIters int) *mandelbrot {
	return &mandelbrot{w: w, h: h, maxIters: maxIters}
}

func (m *mandelbrot) reset(*rand.Rand) {
	m.zoom = 1
	m.centerX, m.centerY = mandelbrotHomeX, mandelbrotHomeY
	m.frameCount = 0
	m.colorOffset = 0
	m.time = 0
}

func (m *mandelbrot) toComplex(x, y int) (float64, float64) {
	aspect := float64(m.w) / float64(m.h)
	pw := 4 / m.zoom
	ph := pw / aspect
	cx := m.centerX + (float64(x)/float64(m.w)-0.5)*pw
	cy := m.centerY + (float64(y)/float64(m.h)-0.5)*ph
	return cx, cy
}

func (m *mandelbrot) advance(fb *frame.Buffer, _ *rand.Rand) {
	m.time += 0.1
	m.frameCount++
	if m.frameCount < mandelbrotCycle {
		m.zoom *= mandelbrotZoomSpeed
		m.centerX += (mandelbrotTargetX - m.centerX) * 0.01
		m.centerY += (mandelbrotTargetY - m.centerY) * 0.01
	} else {
		m.frameCount = 0
		m.zoom = 1
		m.centerX, m.centerY = mandelbrotHomeX, mandelbrotHomeY
	}
	m.colorOffset += 2

	renderStrided(fb, func(x, y int) int {
		cx, cy := m.toComplex(x, y)
		n, escaped := escape(0, 0, cx, cy, m.maxIters)
		return escapeIndex(n, escaped, m.colorOffset, fb.Colors)
	})
}

const (
	juliaCenterX = -0.7
	juliaCenterY = 0.0
)

// julia morphs the constant c along a slow Lissajous path.
type julia struct {
	w, h     int
	maxIters int

	cr, ci      float64
	zoom        float64
	time        float64
	colorOffset float64
}

func newJulia(w, h, maxIters int) *julia {
	return &julia{w: w, h: h, maxIters: maxIters}
}

func (j *julia) reset(*rand.Rand) {
	j.cr, j.ci = -0.4, 0.6
	j.zoom = 1.5
	j.time = 0
	j.colorOffset = 0
}

func (j *julia) advance(fb *frame.Buffer, _ *rand.Rand) {
	j.time += 0.05
	j.colorOffset++
	j.cr = -0.4 + 0.3*math.Sin(j.time*0.5)
	j.ci = 0.6 + 0.2*math.Cos(j.time*0.7)
	j.zoom = 1.5 + 0.3*math.Sin(j.time*0.3)

	renderStrided(fb, func(x, y int) int {
		zx := (float64(x)/float64(j.w)-0.5)*4/j.zoom + juliaCenterX
		zy := (float64(y)/float64(j.h)-0.5)*4/j.zoom + juliaCenterY
		n, escaped := escape(zx, zy, j.cr, j.ci, j.maxIters)
		return escapeIndex(n, escaped, j.colorOffset, fb.Colors)
	})
}
