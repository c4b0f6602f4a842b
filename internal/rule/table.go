// Package rule builds the lookup tables that drive a one-dimensional k-state,
// radius-r automaton and evaluates wraparound neighborhoods against them.
//
// A Table is indexed by the most-significant-first base-k encoding of a
// neighborhood: entry n holds the next state for the neighborhood whose
// digits, read left to right, encode n. For direct decoding this is the
// usual Wolfram numbering, so rule 30 with k=2, r=1 behaves as expected.
package rule

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"lambda-ca/internal/basek"
)

// MaxTableSize bounds k^(2r+1) so a table always fits comfortably in memory.
const MaxTableSize = 1 << 24

var (
	// ErrInvalidAlphabet reports an alphabet size outside [2, 256].
	ErrInvalidAlphabet = errors.New("rule: alphabet size k must be in [2, 256]")
	// ErrInvalidRadius reports a negative neighborhood radius.
	ErrInvalidRadius = errors.New("rule: radius r must be non-negative")
	// ErrTableTooLarge reports a k^(2r+1) above MaxTableSize.
	ErrTableTooLarge = errors.New("rule: rule table too large")
	// ErrInvalidActivity reports a Langton target that is not an exact i/S.
	ErrInvalidActivity = errors.New("rule: invalid activity target")
)

// Size returns the number of table entries k^(2r+1).
func Size(k, r int) (int, error) {
	if k < 2 || k > 256 {
		return 0, fmt.Errorf("%w: k=%d", ErrInvalidAlphabet, k)
	}
	if r < 0 {
		return 0, fmt.Errorf("%w: r=%d", ErrInvalidRadius, r)
	}
	size := 1
	for i := 0; i < 2*r+1; i++ {
		size *= k
		if size > MaxTableSize {
			return 0, fmt.Errorf("%w: %d^%d exceeds %d entries", ErrTableTooLarge, k, 2*r+1, MaxTableSize)
		}
	}
	return size, nil
}

// MaxRule returns the largest rule number k^(k^(2r+1)) - 1, saturating at
// math.MaxUint64 when the true value does not fit.
func MaxRule(k, r int) (uint64, error) {
	size, err := Size(k, r)
	if err != nil {
		return 0, err
	}
	total := uint64(1)
	for i := 0; i < size; i++ {
		hi, lo := bits.Mul64(total, uint64(k))
		if hi != 0 {
			return math.MaxUint64, nil
		}
		total = lo
	}
	return total - 1, nil
}

// ClampRule saturates rule to [0, MaxRule(k, r)].
func ClampRule(rule uint64, k, r int) (uint64, error) {
	limit, err := MaxRule(k, r)
	if err != nil {
		return 0, err
	}
	return min(rule, limit), nil
}

// Table maps every neighborhood encoding to a next state. It is immutable
// once built.
type Table struct {
	k, r      int
	states    []uint8
	quiescent uint8
}

// K reports the alphabet size the table was built for.
func (t *Table) K() int { return t.k }

// Radius reports the neighborhood radius the table was built for.
func (t *Table) Radius() int { return t.r }

// Len reports the number of entries, k^(2r+1).
func (t *Table) Len() int { return len(t.states) }

// At returns the next state for neighborhood encoding n.
func (t *Table) At(n int) uint8 { return t.states[n] }

// States returns a copy of the entries indexed by neighborhood encoding.
func (t *Table) States() []uint8 { return slices.Clone(t.states) }

// Padded returns the entries as the zero-padded, most-significant-first digit
// sequence of the rule number: the entry for the highest neighborhood
// encoding comes first.
func (t *Table) Padded() []uint8 {
	out := slices.Clone(t.states)
	slices.Reverse(out)
	return out
}

// Lookup returns the next state for a neighborhood given as digits.
func (t *Table) Lookup(neighborhood []uint8) uint8 {
	return t.states[basek.DigitsToDecimal(neighborhood, t.k)]
}

// Quiescent reports the table's inactive state. Decoded tables use 0.
func (t *Table) Quiescent() uint8 { return t.quiescent }

// Count returns how many entries map to state.
func (t *Table) Count(state uint8) int {
	n := 0
	for _, s := range t.states {
		if s == state {
			n++
		}
	}
	return n
}

// Activity returns the fraction of entries that differ from the quiescent
// state (Langton's lambda).
func (t *Table) Activity() float64 {
	if len(t.states) == 0 {
		return 0
	}
	return float64(len(t.states)-t.Count(t.quiescent)) / float64(len(t.states))
}

// Rule re-encodes the table as a rule number. The result wraps for tables
// whose rule number does not fit in 64 bits.
func (t *Table) Rule() uint64 {
	return basek.DigitsToDecimal(t.Padded(), t.k)
}
