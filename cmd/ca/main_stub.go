//go:build !ebiten

package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"

	"lambda-ca/internal/app"
	_ "lambda-ca/internal/sims/elementary"
	_ "lambda-ca/internal/sims/kca"
)

// Without the ebiten tag the player prints rows to the terminal. Build with
// -tags ebiten for the window.
func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	logger := app.NewLogger(cfg.Verbose)

	sim, err := app.BuildSim(cfg)
	if err != nil {
		logger.Fatal("cannot build simulation", "sim", cfg.Sim, "err", err)
	}
	logger.Debug("playing", "sim", sim.Name(), "overrides", cfg.Set.String(), "tps", cfg.TPS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := app.Play(ctx, sim, cfg.TPS, os.Stdout); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("interrupted", "t", sim.Time())
			return
		}
		logger.Fatal("run failed", "err", err)
	}

	if cfg.PNG != "" {
		if err := app.SavePNG(cfg.PNG, sim, cfg.Scale); err != nil {
			logger.Fatal("png export failed", "path", cfg.PNG, "err", err)
		}
		logger.Info("wrote png", "path", cfg.PNG)
	}
}
