//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"lambda-ca/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

var (
	titleColor    = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor    = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	mutedColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	errorColor    = color.RGBA{R: 230, G: 110, B: 100, A: 255}
	panelColor    = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	buttonOn      = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	buttonOff     = color.RGBA{R: 32, G: 34, B: 40, A: 255}
	buttonTextOn  = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	buttonTextOff = color.RGBA{R: 120, G: 120, B: 130, A: 255}
)

// HUD renders the parameter panel to the right of the space-time view. Edits
// made through it are pending until the next reset.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls    []control
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
	offsetX     int
	title       string

	status string
	err    string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for sim with a panel of the given width.
func NewHUD(sim core.Sim, width int) *HUD {
	h := &HUD{sim: sim, width: max(width, 0), title: "Controls"}
	if sim != nil && sim.Name() != "" {
		h.title = strings.ToUpper(sim.Name())
	}
	if h.width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, control{def: ctrl, text: "--"})
		}
		h.layout()
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// SetStatus replaces the status line drawn under the controls.
func (h *HUD) SetStatus(status string) {
	if h != nil {
		h.status = status
	}
}

// SetError shows err under the status line until it is cleared with nil.
func (h *HUD) SetError(err error) {
	if h == nil {
		return
	}
	h.err = ""
	if err != nil {
		h.err = err.Error()
	}
}

// Update refreshes the displayed values and handles clicks on the +/-
// buttons. offsetX is the panel's left edge in screen coordinates.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	if cp, ok := h.sim.(core.ParameterControlsProvider); ok {
		h.syncControls(cp.ParameterControls())
	}
	provider, ok := h.sim.(core.ParameterProvider)
	if !ok {
		return
	}
	h.refresh(provider.Parameters())
	h.handleClick()
}

// Draw paints the panel at offsetX. The panel is as tall as the scaled grid.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.sim.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

// syncControls picks up bounds and steps that depend on other parameters,
// such as the lambda step of 1/S.
func (h *HUD) syncControls(defs []core.ParameterControl) {
	if len(defs) != len(h.controls) {
		h.controls = h.controls[:0]
		for _, ctrl := range defs {
			h.controls = append(h.controls, control{def: ctrl, text: "--"})
		}
		h.layout()
		return
	}
	for i, ctrl := range defs {
		h.controls[i].def = ctrl
	}
}

func (h *HUD) refresh(snapshot core.ParameterSnapshot) {
	for i := range h.controls {
		c := &h.controls[i]
		c.valid = false
		c.text = "--"
		param, ok := snapshot.Lookup(c.def.Key)
		if !ok {
			continue
		}
		v, ok := parseValue(param)
		if !ok {
			continue
		}
		c.value = v
		c.valid = true
		c.text = formatValue(c.def, v)
	}
}

// parseValue reads a parameter as a number. Booleans map to 0 and 1 so they
// can be driven by an int control.
func parseValue(p core.Parameter) (float64, bool) {
	switch p.Type {
	case core.ParamTypeBool:
		b, err := strconv.ParseBool(p.Value)
		if err != nil {
			return 0, false
		}
		if b {
			return 1, true
		}
		return 0, true
	default:
		v, err := strconv.ParseFloat(p.Value, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	precision := 1
	switch step := ctrl.Step; {
	case step <= 0:
		precision = 2
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}

// target computes the value one step away in direction, clamped to the
// control's bounds. ok is false when the value cannot move that way.
func (c *control) target(direction int) (float64, bool) {
	step := c.def.Step
	if c.def.Type == core.ParamTypeInt {
		step = math.Max(math.Round(step), 1)
	} else if step <= 0 {
		step = 0.05
	}
	next := c.value + float64(direction)*step
	if c.def.HasMin && next < c.def.Min {
		next = c.def.Min
	}
	if c.def.HasMax && next > c.def.Max {
		next = c.def.Max
	}
	if math.Abs(next-c.value) < 1e-9 {
		return c.value, false
	}
	return next, true
}

func (h *HUD) canAdjust(c *control, direction int) bool {
	if !c.valid {
		return false
	}
	switch c.def.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return false
		}
	default:
		return false
	}
	_, ok := c.target(direction)
	return ok
}

func (h *HUD) adjust(c *control, direction int) {
	if !h.canAdjust(c, direction) {
		return
	}
	next, _ := c.target(direction)
	var accepted bool
	switch c.def.Type {
	case core.ParamTypeInt:
		accepted = h.intSetter.SetIntParameter(c.def.Key, int(math.Round(next)))
	case core.ParamTypeFloat:
		accepted = h.floatSetter.SetFloatParameter(c.def.Key, next)
	}
	if !accepted {
		h.err = fmt.Sprintf("%s: %s rejected", c.def.Label, formatValue(c.def, next))
	}
}

func (h *HUD) handleClick() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	px := mx - h.offsetX
	if px < 0 {
		return
	}
	pt := image.Pt(px, my)
	for i := range h.controls {
		c := &h.controls[i]
		switch {
		case pt.In(c.minus):
			h.adjust(c, -1)
			return
		case pt.In(c.plus):
			h.adjust(c, 1)
			return
		}
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, y, titleColor)
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, y+infoSpacing, mutedColor)
	}
	for i := range h.controls {
		c := &h.controls[i]
		text.Draw(h.panel, c.def.Label, face, panelPadding, c.top+labelBaseline, labelColor)
		valueColor := labelColor
		if !c.valid {
			valueColor = mutedColor
		}
		width := text.BoundString(face, c.text).Dx()
		text.Draw(h.panel, c.text, face, c.minus.Min.X-buttonGap-width, c.top+labelBaseline, valueColor)
		h.drawButton(c.minus, "-", h.canAdjust(c, -1))
		h.drawButton(c.plus, "+", h.canAdjust(c, 1))
	}

	y = controlsTop + len(h.controls)*lineHeight + infoSpacing/2
	if h.status != "" {
		text.Draw(h.panel, h.status, face, panelPadding, y, labelColor)
		y += infoSpacing / 2
	}
	if h.err != "" {
		text.Draw(h.panel, h.err, face, panelPadding, y, errorColor)
		y += infoSpacing / 2
	}
	text.Draw(h.panel, "R reset  N step  S random", face, panelPadding, y, mutedColor)
	text.Draw(h.panel, "Space pause  Q quit", face, panelPadding, y+infoSpacing/2, mutedColor)
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg, fg := buttonOn, buttonTextOn
	if !enabled {
		bg, fg = buttonOff, buttonTextOff
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minus = minus
		h.controls[i].plus = plus
	}
}

type control struct {
	def   core.ParameterControl
	text  string
	value float64
	valid bool

	top   int
	minus image.Rectangle
	plus  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
