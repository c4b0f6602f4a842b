// Package elementary exposes Wolfram's two-state, radius-one automata as a
// preset of the general k-state engine.
package elementary

import (
	"strconv"

	"lambda-ca/internal/core"
	"lambda-ca/internal/sims/kca"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width  int
	Height int
	Rule   uint8
	Random bool
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 256, Height: 256, Rule: 110}
}

// FromMap populates a Config from a string map.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Rule = uint8(min(max(parsed, 0), 255))
		}
	}
	if v, ok := cfg["random"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Random = parsed
		}
	}
	return c
}

// Engine converts the preset into a full engine configuration.
func (c Config) Engine() kca.Config {
	return kca.Config{
		Width:  c.Width,
		Height: c.Height,
		R:      1,
		K:      2,
		Source: kca.SourceRule,
		Rule:   uint64(c.Rule),
		Random: c.Random,
	}
}

// New creates an elementary automaton with the given dimensions and rule.
func New(w, h int, rule uint8) (*kca.Engine, error) {
	return NewWithConfig(Config{Width: w, Height: h, Rule: rule})
}

// NewWithConfig creates an elementary automaton from a preset.
func NewWithConfig(c Config) (*kca.Engine, error) {
	return kca.New(c.Engine(), kca.WithName("elementary"))
}

func init() {
	core.Register("elementary", func(cfg map[string]string) (core.Sim, error) {
		return NewWithConfig(FromMap(cfg))
	})
}
