//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"lambda-ca/internal/app"
	_ "lambda-ca/internal/sims/elementary"
	_ "lambda-ca/internal/sims/kca"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	logger := app.NewLogger(cfg.Verbose)

	sim, err := app.BuildSim(cfg)
	if err != nil {
		logger.Fatal("cannot build simulation", "sim", cfg.Sim, "err", err)
	}
	game := app.New(sim, cfg.Scale, cfg.HUDWidth, logger)
	if err := game.Reset(); err != nil {
		logger.Fatal("initial reset failed", "err", err)
	}
	size := sim.Size()

	ebiten.SetWindowTitle("lambda-ca: " + sim.Name())
	ebiten.SetTPS(max(cfg.TPS, 1))
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Error("game exited", "err", err)
		os.Exit(1)
	}
	if cfg.PNG != "" {
		if err := app.SavePNG(cfg.PNG, sim, cfg.Scale); err != nil {
			logger.Fatal("png export failed", "path", cfg.PNG, "err", err)
		}
		logger.Info("wrote png", "path", cfg.PNG)
	}
}
