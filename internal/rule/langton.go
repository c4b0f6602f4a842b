package rule

import (
	"fmt"
	"math"

	"lambda-ca/internal/core"
	"lambda-ca/internal/lcg"
)

const lambdaTolerance = 1e-9

// ValidateLambda checks that lambda is one of the S+1 fractions i/S and
// returns i, the number of non-quiescent entries a table must end up with.
func ValidateLambda(lambda float64, size int) (int, error) {
	if size <= 0 || math.IsNaN(lambda) || lambda < 0 || lambda > 1 {
		return 0, fmt.Errorf("%w: lambda=%v", ErrInvalidActivity, lambda)
	}
	active := math.Round(lambda * float64(size))
	if math.Abs(lambda-active/float64(size)) > lambdaTolerance {
		return 0, fmt.Errorf("%w: lambda=%v is not a multiple of 1/%d", ErrInvalidActivity, lambda, size)
	}
	return int(active), nil
}

// Langton builds a random table whose activity equals lambda exactly.
//
// One register draw seeds the general-purpose stream that picks the quiescent
// state and every perturbation; each refinement round advances the register
// once more. The resulting table is fully determined by the register state on
// entry, and the register is left advanced so later builds diverge.
func Langton(k, r int, lambda float64, reg *lcg.LCG) (*Table, error) {
	size, err := Size(k, r)
	if err != nil {
		return nil, err
	}
	target, err := ValidateLambda(lambda, size)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = lcg.NewDefault()
	}

	rng := core.NewRNG(reg.Advance())
	quiescent := rng.Uint8n(k)
	states := make([]uint8, size)
	for i := range states {
		states[i] = quiescent
	}

	active := 0
	for active != target {
		reg.Advance()
		// floor((lambda - measured) * S) is the remaining gap in entries.
		pick := max(1, target-active)
		for range pick {
			idx := rng.IntN(size)
			next := quiescent
			for next == quiescent {
				next = rng.Uint8n(k)
			}
			if states[idx] == quiescent {
				active++
			}
			states[idx] = next
		}
	}
	return &Table{k: k, r: r, states: states, quiescent: quiescent}, nil
}
