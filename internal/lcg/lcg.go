// Package lcg provides the linear congruential register that drives every
// reproducible random decision in the automaton: Langton rule-table
// construction and the seeding of randomized initial rows.
package lcg

import "math/bits"

// Numerical Recipes constants.
const (
	A uint64 = 1664525
	C uint64 = 1013904223
	M uint64 = 1 << 32
)

// DefaultSeed is the register value a fresh LCG starts from.
const DefaultSeed uint64 = 19

// LCG is a single-register generator computing seed = (a*seed + c) mod m.
// It is not safe for concurrent use.
type LCG struct {
	seed  uint64
	draws uint64
}

// New returns a register initialised to seed.
func New(seed uint64) *LCG {
	return &LCG{seed: seed}
}

// NewDefault returns a register initialised to DefaultSeed.
func NewDefault() *LCG {
	return New(DefaultSeed)
}

// Next advances the register with the given parameters and returns the new
// value in [0, m-1]. A modulus of zero stands for 2^64.
func (l *LCG) Next(a, c, m uint64) uint64 {
	hi, lo := bits.Mul64(a, l.seed)
	if m == 0 {
		l.seed = lo + c
	} else {
		prod := bits.Rem64(hi, lo, m)
		sum, carry := bits.Add64(prod, c%m, 0)
		l.seed = bits.Rem64(carry, sum, m)
	}
	l.draws++
	return l.seed
}

// Advance steps the register with the Numerical Recipes constants.
func (l *LCG) Advance() uint64 {
	return l.Next(A, C, M)
}

// Seed reports the current register value without advancing it.
func (l *LCG) Seed() uint64 { return l.seed }

// Draws reports how many times the register has been advanced.
func (l *LCG) Draws() uint64 { return l.draws }

// State is an opaque copy of a register, used to replay a sequence.
type State struct {
	Seed  uint64
	Draws uint64
}

// Snapshot captures the register so it can be restored later.
func (l *LCG) Snapshot() State {
	return State{Seed: l.seed, Draws: l.draws}
}

// Restore rewinds the register to a previously captured snapshot.
func (l *LCG) Restore(s State) {
	l.seed = s.Seed
	l.draws = s.Draws
}
