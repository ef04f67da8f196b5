package effect

import (
	"math"
	"math/rand"
)

// fieldIndex maps v in [-1, 1] onto [0, n-1], clamping stray values.
func fieldIndex(v float64, n int) int {
	i := int((v + 1) * float64(n-1) / 2)
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// wrapIndex floors v and folds it into [0, n-1].
func wrapIndex(v float64, n int) int {
	i := int(math.Floor(v)) % n
	if i < 0 {
		i += n
	}
	return i
}

// wrap folds a into [0, m).
func wrap(a, m float64) float64 {
	return a - m*math.Floor(a/m)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// between returns an integer in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
