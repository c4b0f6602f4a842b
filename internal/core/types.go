package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a space-time grid: W cells per row and H
// rows (time steps).
type Size struct {
	W int
	H int
}

// Sim defines the narrow contract drivers use to run an automaton. Reset
// rebuilds the grid and rule table, Step computes one more row and reports
// whether the run is complete.
type Sim interface {
	Name() string
	Size() Size
	Reset() error
	Step() bool
	Time() int
	Cells() []uint8
}

// StateCounter is implemented by simulations whose cells take more than two
// values. Renderers size their palette from it.
type StateCounter interface {
	States() int
}

// Completer is implemented by simulations that track run completion.
type Completer interface {
	Done() bool
}

// Factory constructs a Sim from flag-style key/value configuration.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names lists the registered simulations in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New looks up a registered factory and builds the simulation.
func New(name string, cfg map[string]string) (Sim, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q (available: %v)", name, Names())
	}
	return f(cfg)
}
