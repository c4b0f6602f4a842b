package rule

import "lambda-ca/internal/basek"

// Wrap maps any column onto the ring [0, width).
func Wrap(x, width int) int {
	return (x%width + width) % width
}

// Neighborhood returns the ring indices [cell-r, ..., cell+r], each wrapped
// into [0, width).
func Neighborhood(width, cell, r int) []int {
	return neighborhoodInto(make([]int, 2*r+1), width, cell)
}

// neighborhoodInto fills idx (of length 2r+1) with the wrapped indices
// centred on cell.
func neighborhoodInto(idx []int, width, cell int) []int {
	r := len(idx) / 2
	for i := range idx {
		idx[i] = Wrap(cell-r+i, width)
	}
	return idx
}

// Evaluator maps neighborhoods of a row through a table. It reuses an
// internal buffer and is not safe for concurrent use.
type Evaluator struct {
	table  *Table
	idx    []int
	digits []uint8
}

// NewEvaluator returns an evaluator bound to t.
func NewEvaluator(t *Table) *Evaluator {
	n := 2*t.r + 1
	return &Evaluator{table: t, idx: make([]int, n), digits: make([]uint8, n)}
}

// Table returns the table the evaluator reads from.
func (e *Evaluator) Table() *Table { return e.table }

// Evaluate returns the next state of cell given the previous row. Every
// value in row must be a valid state for the table's alphabet.
func (e *Evaluator) Evaluate(row []uint8, cell int) uint8 {
	for i, x := range neighborhoodInto(e.idx, len(row), cell) {
		e.digits[i] = row[x]
	}
	return e.table.states[basek.DigitsToDecimal(e.digits, e.table.k)]
}

// Apply writes the successor of prev into next. Both rows must have the same
// length and must not overlap.
func (e *Evaluator) Apply(prev, next []uint8) {
	for x := range next {
		next[x] = e.Evaluate(prev, x)
	}
}

// Evaluate is a convenience wrapper for one-off lookups.
func Evaluate(row []uint8, cell int, t *Table) uint8 {
	return NewEvaluator(t).Evaluate(row, cell)
}
