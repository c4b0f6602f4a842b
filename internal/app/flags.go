package app

import (
	"flag"
	"fmt"
	"sort"
	"strings"
)

// Config represents the command-line parameters for the ca player.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	HUDWidth int
	PNG      string
	Verbose  bool
	Set      Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "kca", Scale: 4, TPS: 30, HUDWidth: 240, Set: Overrides{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run (kca, langton, elementary)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "rows per second, 0 for unpaced")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels, 0 to hide")
	fs.StringVar(&c.PNG, "png", c.PNG, "write the finished grid to this PNG file")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "verbose logging")
	fs.Var(c.Set, "set", "simulation parameter as key=value (repeatable), e.g. -set k=3 -set rule=34")
}

// Overrides collects repeated key=value flags into the map handed to a
// simulation factory.
type Overrides map[string]string

// String lists the overrides in key order.
func (o Overrides) String() string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + o[k]
	}
	return strings.Join(parts, ",")
}

// Set parses one key=value pair. Later values for a key win.
func (o Overrides) Set(v string) error {
	key, value, ok := strings.Cut(v, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	o[strings.ToLower(key)] = strings.TrimSpace(value)
	return nil
}
