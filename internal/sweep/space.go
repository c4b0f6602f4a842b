// Package sweep runs grids of automaton configurations in parallel and
// summarises their cycle statistics.
package sweep

import (
	"lambda-ca/internal/lcg"
	"lambda-ca/internal/sims/kca"
)

// Space lists the values to sweep. An empty axis keeps the base
// configuration's value. Rules are used with the rule source, Lambdas with
// the Langton source.
type Space struct {
	Widths  []int
	Heights []int
	Randoms []bool
	Rules   []uint64
	Lambdas []float64

	// Repetitions is how many times each point is reset and run. Values
	// below one mean a single run.
	Repetitions int
}

// Point is one configuration of the sweep. Seed starts the point's private
// LCG register; Runner.Run assigns it.
type Point struct {
	Index       int
	Config      kca.Config
	Repetitions int
	Seed        uint64
}

// Engine builds the engine the point runs on.
func (p Point) Engine() (*kca.Engine, error) {
	return kca.New(p.Config, kca.WithRegister(lcg.New(p.Seed)))
}

// Label returns the swept rule value of the point: the rule number or the
// lambda.
func (p Point) Label() float64 {
	if p.Config.Source == kca.SourceLangton {
		return p.Config.Langton
	}
	return float64(p.Config.Rule)
}

// RuleRange returns the inclusive range [from, to] as a rule list.
func RuleRange(from, to uint64) []uint64 {
	if to < from {
		return nil
	}
	rules := make([]uint64, 0, to-from+1)
	for r := from; ; r++ {
		rules = append(rules, r)
		if r == to {
			break
		}
	}
	return rules
}

// Points expands the space around base. The rule axis varies fastest, then
// randomness, height and width.
func (s Space) Points(base kca.Config) []Point {
	widths := orDefault(s.Widths, base.Width)
	heights := orDefault(s.Heights, base.Height)
	randoms := orDefault(s.Randoms, base.Random)
	rules := orDefault(s.Rules, base.Rule)
	lambdas := orDefault(s.Lambdas, base.Langton)
	reps := max(s.Repetitions, 1)

	var points []Point
	for _, w := range widths {
		for _, h := range heights {
			for _, random := range randoms {
				cfg := base
				cfg.Width = w
				cfg.Height = h
				cfg.Random = random
				if base.Source == kca.SourceLangton {
					for _, l := range lambdas {
						cfg.Langton = l
						points = append(points, Point{Index: len(points), Config: cfg, Repetitions: reps})
					}
					continue
				}
				for _, r := range rules {
					cfg.Rule = r
					points = append(points, Point{Index: len(points), Config: cfg.Normalize(), Repetitions: reps})
				}
			}
		}
	}
	return points
}

func orDefault[T any](values []T, fallback T) []T {
	if len(values) == 0 {
		return []T{fallback}
	}
	return values
}
