package vmath

import (
	"math/rand/v2"
)

// Rand is the single pseudo-random stream of a run. Every component that needs
// randomness receives this handle; output is reproducible only while the order of
// draws stays fixed.
type Rand struct {
	r *rand.Rand
}

// NewRand seeds a PCG stream
func NewRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed))}
}

// Intn returns a uniform value in [0, n), 0 when n <= 0 without consuming a draw
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Between returns a uniform value in [lo, hi)
// Degenerate ranges (hi <= lo) return lo without consuming a draw
func (r *Rand) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.r.IntN(hi-lo)
}

// Float64 returns a uniform value in [0, 1)
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// Uint64 returns 64 uniform bits
func (r *Rand) Uint64() uint64 {
	return r.r.Uint64()
}

// Weighted picks an index according to weights (one draw)
// Nil or all-zero weights select uniformly among n entries
func (r *Rand) Weighted(n int, weights []float64) int {
	if n <= 0 {
		return 0
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if len(weights) != n || total <= 0 {
		return r.r.IntN(n)
	}

	u := r.r.Float64() * total
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u < acc {
			return i
		}
	}
	// Floating point residue lands on the last non-zero entry
	for i := n - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}
	return n - 1
}

// Chance returns true with probability p (one draw)
func (r *Rand) Chance(p float64) bool {
	return r.Weighted(2, []float64{1 - p, p}) == 1
}

// Sign returns -1 or 1 with equal probability
func (r *Rand) Sign() int {
	if r.r.IntN(2) == 0 {
		return -1
	}
	return 1
}

// Shuffle permutes n elements through swap
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.r.Shuffle(n, swap)
}
