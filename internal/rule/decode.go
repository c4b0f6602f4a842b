package rule

import "lambda-ca/internal/basek"

// Decode builds the table for a rule number by reading its base-k digits.
// Rule numbers above MaxRule are clamped first.
func Decode(rule uint64, k, r int) (*Table, error) {
	size, err := Size(k, r)
	if err != nil {
		return nil, err
	}
	rule, err = ClampRule(rule, k, r)
	if err != nil {
		return nil, err
	}
	padded := basek.Pad(basek.DecimalToDigits(rule, k), size)
	states := make([]uint8, size)
	for n := range states {
		states[n] = padded[size-1-n]
	}
	return &Table{k: k, r: r, states: states}, nil
}
