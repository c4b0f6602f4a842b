package core

import "math/rand/v2"

// RNG is a thin wrapper around math/rand/v2 for deterministic seeding. The
// automaton reseeds it from LCG draws so its output is reproducible from the
// register state alone.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(seed, 0))}
}

// Reseed restarts the stream from seed.
func (r *RNG) Reseed(seed uint64) {
	r.r = rand.New(rand.NewPCG(seed, 0))
}

// IntN returns a uniformly distributed int in [0, n).
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Uint8n returns a random uint8 in [0, n).
func (r *RNG) Uint8n(n int) uint8 {
	if n <= 0 {
		return 0
	}
	return uint8(r.r.IntN(n))
}

// FillStates fills buf with states drawn uniformly from [0, k).
func (r *RNG) FillStates(buf []uint8, k int) {
	for i := range buf {
		buf[i] = r.Uint8n(k)
	}
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
