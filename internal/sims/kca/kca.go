// Package kca implements a one-dimensional k-state, radius-r cellular
// automaton whose space-time evolution is kept as a height x width grid.
//
// An Engine is driven by Reset followed by repeated Step calls. Configuration
// edits only take effect on the next Reset; rows already written are never
// revisited.
package kca

import (
	"lambda-ca/internal/core"
	"lambda-ca/internal/lcg"
	"lambda-ca/internal/rule"
)

// Status is the engine's lifecycle state.
type Status int

const (
	StatusUninitialized Status = iota
	StatusReady
	StatusRunning
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusRunning:
		return "running"
	case StatusComplete:
		return "complete"
	default:
		return "uninitialized"
	}
}

// Engine owns the grid, the time pointer and the active rule table.
// It is not safe for concurrent use.
type Engine struct {
	name string

	cfg    Config
	active Config

	reg *lcg.LCG
	rng *core.RNG

	grid   *core.ByteGrid
	table  *rule.Table
	eval   *rule.Evaluator
	t      int
	status Status
}

// Option customises a new Engine.
type Option func(*Engine)

// WithRegister makes the engine draw from reg instead of a private register
// starting at lcg.DefaultSeed. Engines sharing a register see one combined
// sequence.
func WithRegister(reg *lcg.LCG) Option {
	return func(e *Engine) {
		if reg != nil {
			e.reg = reg
		}
	}
}

// WithName overrides the identifier reported by Name.
func WithName(name string) Option {
	return func(e *Engine) {
		if name != "" {
			e.name = name
		}
	}
}

// New creates an uninitialized engine. Shape errors (size, alphabet, radius,
// source) are reported here; the Langton activity target is checked on Reset.
func New(cfg Config, opts ...Option) (*Engine, error) {
	cfg = cfg.Normalize()
	if err := cfg.ValidateShape(); err != nil {
		return nil, err
	}
	e := &Engine{name: "kca", cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.reg == nil {
		e.reg = lcg.NewDefault()
	}
	e.rng = core.NewRNG(e.reg.Seed())
	return e, nil
}

// Name returns the simulation identifier.
func (e *Engine) Name() string { return e.name }

// Size returns the dimensions of the current grid, or of the pending
// configuration before the first Reset.
func (e *Engine) Size() core.Size {
	if e.grid == nil {
		return core.Size{W: e.cfg.Width, H: e.cfg.Height}
	}
	return core.Size{W: e.grid.W, H: e.grid.H}
}

// Config returns the pending configuration used by the next Reset.
func (e *Engine) Config() Config { return e.cfg }

// Active returns the configuration the current grid was built with.
func (e *Engine) Active() Config { return e.active }

// SetConfig replaces the pending configuration. The current grid is left
// untouched until the next Reset.
func (e *Engine) SetConfig(cfg Config) error {
	cfg = cfg.Normalize()
	if err := cfg.ValidateShape(); err != nil {
		return err
	}
	e.cfg = cfg
	return nil
}

// States returns the alphabet size of the current grid, or of the pending
// configuration before the first Reset.
func (e *Engine) States() int {
	if e.grid == nil {
		return e.cfg.K
	}
	return e.active.K
}

// Register exposes the LCG register so callers can snapshot or restore it.
func (e *Engine) Register() *lcg.LCG { return e.reg }

// Reset discards the previous run, fills row 0 and rebuilds the rule table.
// If the configuration is rejected the engine keeps its previous state and
// the register is not advanced.
func (e *Engine) Reset() error {
	cfg := e.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	grid := core.NewByteGrid(cfg.Width, cfg.Height)
	first := grid.Row(0)
	if cfg.Random {
		e.rng.Reseed(e.reg.Advance())
		e.rng.FillStates(first, cfg.K)
	} else {
		first[cfg.Width/2] = uint8(cfg.K - 1)
	}

	var (
		table *rule.Table
		err   error
	)
	switch cfg.Source {
	case SourceLangton:
		table, err = rule.Langton(cfg.K, cfg.R, cfg.Langton, e.reg)
	default:
		table, err = rule.Decode(cfg.Rule, cfg.K, cfg.R)
	}
	if err != nil {
		return err
	}

	e.active = cfg
	e.grid = grid
	e.table = table
	e.eval = rule.NewEvaluator(table)
	e.t = 0
	e.status = StatusReady
	return nil
}

// Step computes the next row. It returns true, without touching the grid,
// once all rows have been written; repeated calls after that are no-ops. An
// engine that was never reset reports true as there is nothing to advance.
func (e *Engine) Step() bool {
	switch e.status {
	case StatusUninitialized, StatusComplete:
		return true
	}
	if e.t+1 >= e.grid.H {
		e.status = StatusComplete
		return true
	}
	e.t++
	e.eval.Apply(e.grid.Row(e.t-1), e.grid.Row(e.t))
	e.status = StatusRunning
	return false
}

// Run steps until the grid is complete and returns the number of productive
// steps taken.
func (e *Engine) Run() int {
	start := e.t
	for !e.Step() {
	}
	return e.t - start
}

// Time returns the index of the most recently completed row.
func (e *Engine) Time() int { return e.t }

// Status reports the lifecycle state.
func (e *Engine) Status() Status { return e.status }

// Done reports whether the run is complete.
func (e *Engine) Done() bool { return e.status == StatusComplete }

// Cells exposes the flattened grid for renderers. The slice must be treated
// as read-only. Before the first Reset it is empty.
func (e *Engine) Cells() []uint8 {
	if e.grid == nil {
		return nil
	}
	return e.grid.Cells()
}

// Grid returns a copy of the full space-time grid, row 0 first.
func (e *Engine) Grid() [][]uint8 {
	if e.grid == nil {
		return nil
	}
	return e.grid.Clone()
}

// Rows returns the rows computed so far (0..Time) as read-only views.
func (e *Engine) Rows() [][]uint8 {
	if e.grid == nil {
		return nil
	}
	return e.grid.Rows()[:e.t+1]
}

// Row returns a read-only view of row y.
func (e *Engine) Row(y int) []uint8 {
	if e.grid == nil || y < 0 || y >= e.grid.H {
		return nil
	}
	return e.grid.Row(y)
}

// Latest returns the most recently computed row.
func (e *Engine) Latest() []uint8 { return e.Row(e.t) }

// Table returns the active rule table, nil before the first Reset.
func (e *Engine) Table() *rule.Table { return e.table }

func init() {
	core.Register("kca", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(DefaultConfig(), cfg))
	})
	core.Register("langton", func(cfg map[string]string) (core.Sim, error) {
		return New(FromMap(DefaultLangtonConfig(), cfg), WithName("langton"))
	})
}
