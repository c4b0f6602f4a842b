package kca

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"lambda-ca/internal/rule"
)

// Source selects how the rule table is produced on Reset.
type Source string

const (
	// SourceRule decodes Config.Rule into a table.
	SourceRule Source = "rule"
	// SourceLangton builds a random table with activity Config.Langton.
	SourceLangton Source = "langton"
)

var (
	// ErrInvalidSize reports a non-positive width or height.
	ErrInvalidSize = errors.New("kca: width and height must be at least 1")
	// ErrInvalidSource reports an unknown rule source.
	ErrInvalidSource = errors.New("kca: unknown rule source")
)

// Config holds every parameter of a one-dimensional automaton run.
type Config struct {
	Width  int
	Height int

	R int
	K int

	Source  Source
	Rule    uint64
	Langton float64

	Random bool
}

// DefaultConfig returns the rule-number configuration: rule 30, k=2, r=1 on a
// 50x50 grid with a single seeded cell.
func DefaultConfig() Config {
	return Config{
		Width:   50,
		Height:  50,
		R:       1,
		K:       2,
		Source:  SourceRule,
		Rule:    30,
		Langton: 1.0,
	}
}

// DefaultLangtonConfig is DefaultConfig with the Langton rule source.
func DefaultLangtonConfig() Config {
	c := DefaultConfig()
	c.Source = SourceLangton
	return c
}

// FromMap populates a Config from a string map (flag-style key/value pairs),
// starting from base. Unparseable values are ignored. Negative rule numbers
// saturate to zero.
func FromMap(base Config, cfg map[string]string) Config {
	c := base
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Height = parsed
		}
	}
	if v, ok := cfg["r"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.R = parsed
		}
	}
	if v, ok := cfg["k"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.K = parsed
		}
	}
	if v, ok := cfg["rule"]; ok {
		c.Rule = parseRule(v, c.Rule)
	}
	if v, ok := cfg["langton"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Langton = parsed
		}
	}
	if v, ok := cfg["random"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Random = parsed
		}
	}
	if v, ok := cfg["source"]; ok {
		c.Source = Source(strings.ToLower(strings.TrimSpace(v)))
	}
	return c
}

// parseRule reads a rule number, saturating out-of-range values to the
// uint64 bounds. Malformed input keeps fallback.
func parseRule(v string, fallback uint64) uint64 {
	v = strings.TrimSpace(v)
	parsed, err := strconv.ParseUint(strings.TrimPrefix(v, "+"), 10, 64)
	switch {
	case err == nil:
		return parsed
	case errors.Is(err, strconv.ErrRange):
		return math.MaxUint64
	}
	if _, err := strconv.ParseInt(v, 10, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return fallback
}

// TableSize returns k^(2r+1) for the configuration.
func (c Config) TableSize() (int, error) {
	return rule.Size(c.K, c.R)
}

// Normalize saturates Rule to the range allowed by K and R. Configurations
// with an invalid alphabet or radius are returned unchanged.
func (c Config) Normalize() Config {
	if clamped, err := rule.ClampRule(c.Rule, c.K, c.R); err == nil {
		c.Rule = clamped
	}
	return c
}

// ValidateShape checks everything that can be rejected at configuration time:
// grid size, alphabet, radius and rule source.
func (c Config) ValidateShape() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if _, err := rule.Size(c.K, c.R); err != nil {
		return err
	}
	switch c.Source {
	case SourceRule, SourceLangton:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSource, c.Source)
	}
	return nil
}

// Validate runs ValidateShape and, for the Langton source, checks that the
// activity target is one of the representable fractions i/S.
func (c Config) Validate() error {
	if err := c.ValidateShape(); err != nil {
		return err
	}
	if c.Source == SourceLangton {
		size, _ := c.TableSize()
		if _, err := rule.ValidateLambda(c.Langton, size); err != nil {
			return err
		}
	}
	return nil
}
