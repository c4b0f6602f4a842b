package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"lambda-ca/internal/core"
	"lambda-ca/internal/render"

	"github.com/charmbracelet/log"
)

// NewLogger returns the stderr logger used by the command-line drivers.
func NewLogger(verbose bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// BuildSim creates the simulation named by cfg with its -set overrides.
func BuildSim(cfg *Config) (core.Sim, error) {
	return core.New(cfg.Sim, cfg.Set)
}

// States reports the alphabet size of sim, two when it does not say.
func States(sim core.Sim) int {
	if sc, ok := sim.(core.StateCounter); ok {
		return sc.States()
	}
	return 2
}

// Play resets sim and prints every row to out as it is computed, paced at
// tps rows per second. It returns once the grid is complete or ctx is done.
func Play(ctx context.Context, sim core.Sim, tps int, out io.Writer) error {
	if err := sim.Reset(); err != nil {
		return err
	}
	term := render.NewTerminal(States(sim))
	width := sim.Size().W
	row := func(t int) string {
		cells := sim.Cells()
		return term.Row(cells[t*width : (t+1)*width])
	}

	timer := core.NewFixedStep(tps)
	fmt.Fprintln(out, row(0))
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		timer.Wait()
		if sim.Step() {
			break
		}
		fmt.Fprintln(out, row(sim.Time()))
	}
	fmt.Fprintln(out, render.Status("%s t=%d complete", sim.Name(), sim.Time()))
	return nil
}

// SavePNG writes the current grid of sim to path.
func SavePNG(path string, sim core.Sim, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	size := sim.Size()
	if err := render.WritePNG(f, sim.Cells(), size.W, size.H, States(sim), scale); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
