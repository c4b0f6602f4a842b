//go:build ebiten

package app

import (
	"fmt"
	"image/color"

	"lambda-ca/internal/core"
	"lambda-ca/internal/render"
	"lambda-ca/internal/ui"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface. Rows are
// computed one per tick until the grid is complete.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	palette []color.RGBA
	logger  *log.Logger

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided simulation. Call Reset before the
// first frame to build the initial row and rule table.
func New(sim core.Sim, scale, hudWidth int, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.Default()
	}
	g := &Game{
		sim:      sim,
		hud:      ui.NewHUD(sim, hudWidth),
		logger:   logger,
		scale:    max(scale, 1),
		hudWidth: max(hudWidth, 0),
	}
	g.refreshSurfaces()
	return g
}

// Reset rebuilds the simulation from its pending configuration. A rejected
// configuration leaves the current run on screen and is reported in the HUD.
func (g *Game) Reset() error {
	err := g.sim.Reset()
	g.hud.SetError(err)
	if err != nil {
		g.logger.Warn("reset rejected", "sim", g.sim.Name(), "err", err)
		return err
	}
	g.tickOnce = false
	g.refreshSurfaces()
	g.logger.Debug("reset", "sim", g.sim.Name(), "size", fmt.Sprintf("%dx%d", g.sim.Size().W, g.sim.Size().H))
	return nil
}

// refreshSurfaces reallocates the painter and palette when the grid size or
// alphabet changed.
func (g *Game) refreshSurfaces() {
	size := g.sim.Size()
	if g.painter == nil {
		g.painter = render.NewGridPainter(size.W, size.H)
	} else if w, h := g.painter.Size(); w != size.W || h != size.H {
		g.painter = render.NewGridPainter(size.W, size.H)
		ebiten.SetWindowSize(size.W*g.scale+g.hudWidth, size.H*g.scale)
	}
	k := 2
	if sc, ok := g.sim.(core.StateCounter); ok {
		k = sc.States()
	}
	if len(g.palette) != k {
		g.palette = render.Palette(k)
	}
}

func (g *Game) toggleRandom() {
	provider, ok := g.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	setter, ok := g.sim.(core.IntParameterSetter)
	if !ok {
		return
	}
	value := 1
	if p, ok := provider.Parameters().Lookup("random"); ok && p.Value == "true" {
		value = 0
	}
	if setter.SetIntParameter("random", value) {
		g.Reset()
	}
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.toggleRandom()
	}

	size := g.sim.Size()
	g.hud.Update(size.W * g.scale)

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	g.hud.SetStatus(g.status())
	return nil
}

func (g *Game) status() string {
	state := "running"
	if c, ok := g.sim.(core.Completer); ok && c.Done() {
		state = "complete"
	} else if g.paused {
		state = "paused"
	}
	return fmt.Sprintf("t=%d/%d %s", g.sim.Time(), g.sim.Size().H-1, state)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
