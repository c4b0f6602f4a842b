package kca

import (
	"math"

	"lambda-ca/internal/core"
	"lambda-ca/internal/rule"
)

const (
	maxHUDWidth  = 1024
	maxHUDHeight = 1024
	maxHUDRadius = 4
	maxHUDStates = 8
)

// Parameters reports the pending configuration grouped for display.
func (e *Engine) Parameters() core.ParameterSnapshot {
	c := e.cfg
	ruleParams := []core.Parameter{
		core.IntParam("k", "States (k)", c.K),
		core.IntParam("r", "Radius (r)", c.R),
	}
	if c.Source == SourceLangton {
		ruleParams = append(ruleParams, core.FloatParam("langton", "Lambda", c.Langton))
	} else {
		ruleParams = append(ruleParams, core.Uint64Param("rule", "Rule", c.Rule))
	}
	size, _ := c.TableSize()
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("w", "Width", c.Width),
				core.IntParam("h", "Height", c.Height),
				core.BoolParam("random", "Random start", c.Random),
			},
		},
		{
			Name:    "Rule",
			Params:  ruleParams,
			Summary: string(c.Source),
		},
		{
			Name: "Run",
			Params: []core.Parameter{
				core.IntParam("t", "Time", e.t),
				core.IntParam("table_size", "Table size", size),
			},
			Summary: e.status.String(),
		},
	}}
}

// ParameterControls lists the values the HUD may adjust. Langton's lambda
// moves in steps of 1/S so every value it reaches is representable.
func (e *Engine) ParameterControls() []core.ParameterControl {
	c := e.cfg
	controls := []core.ParameterControl{
		{Key: "w", Label: "Width", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: maxHUDWidth, HasMax: true},
		{Key: "h", Label: "Height", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: maxHUDHeight, HasMax: true},
		{Key: "random", Label: "Random start", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "k", Label: "States (k)", Type: core.ParamTypeInt, Step: 1, Min: 2, HasMin: true, Max: maxHUDStates, HasMax: true},
		{Key: "r", Label: "Radius (r)", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: maxHUDRadius, HasMax: true},
	}
	if c.Source == SourceLangton {
		step := 0.05
		if size, err := c.TableSize(); err == nil {
			step = 1 / float64(size)
		}
		controls = append(controls, core.ParameterControl{
			Key: "langton", Label: "Lambda", Type: core.ParamTypeFloat,
			Step: step, Min: 0, HasMin: true, Max: 1, HasMax: true,
		})
		return controls
	}
	ctrl := core.ParameterControl{Key: "rule", Label: "Rule", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true}
	if limit, err := rule.MaxRule(c.K, c.R); err == nil && limit <= math.MaxInt32 {
		ctrl.Max = float64(limit)
		ctrl.HasMax = true
	}
	return append(controls, ctrl)
}

// SetIntParameter updates the pending configuration. The rule number is
// saturated to the valid range; other out-of-range values are refused.
func (e *Engine) SetIntParameter(key string, value int) bool {
	c := e.cfg
	switch key {
	case "w":
		c.Width = value
	case "h":
		c.Height = value
	case "r":
		c.R = value
	case "k":
		c.K = value
	case "random":
		c.Random = value != 0
	case "rule":
		c.Rule = uint64(max(value, 0))
	default:
		return false
	}
	return e.SetConfig(c) == nil
}

// SetFloatParameter updates Langton's lambda, clamped to [0, 1] and snapped
// to the nearest representable fraction of the current table size.
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	if key != "langton" || math.IsNaN(value) {
		return false
	}
	c := e.cfg
	value = math.Min(1, math.Max(0, value))
	if size, err := c.TableSize(); err == nil {
		value = math.Round(value*float64(size)) / float64(size)
	}
	c.Langton = value
	return e.SetConfig(c) == nil
}
