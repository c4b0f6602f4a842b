package app

import (
	"flag"
	"testing"
)

func TestConfigBindParsesOverrides(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("ca", flag.ContinueOnError)
	cfg.Bind(fs)
	err := fs.Parse([]string{"-sim", "langton", "-tps", "0", "-set", "k=3", "-set", "Langton = 0.5", "-set", "k=4"})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cfg.Sim != "langton" || cfg.TPS != 0 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Set["k"] != "4" || cfg.Set["langton"] != "0.5" {
		t.Fatalf("unexpected overrides: %v", cfg.Set)
	}
	if got := cfg.Set.String(); got != "k=4,langton=0.5" {
		t.Fatalf("String() = %q", got)
	}
}

func TestOverridesRejectMalformed(t *testing.T) {
	o := Overrides{}
	for _, v := range []string{"k", "=3", ""} {
		if err := o.Set(v); err == nil {
			t.Fatalf("expected error for %q", v)
		}
	}
}
