package elementary

import (
	"slices"
	"testing"
)

// bitStep is the classic shift-and-mask evaluation of a Wolfram rule.
func bitStep(rule uint8, cur []uint8) []uint8 {
	w := len(cur)
	next := make([]uint8, w)
	for x := 0; x < w; x++ {
		left := cur[(x-1+w)%w]
		center := cur[x]
		right := cur[(x+1)%w]
		idx := (left << 2) | (center << 1) | right
		next[x] = (rule >> idx) & 1
	}
	return next
}

func TestMatchesBitwiseReference(t *testing.T) {
	for _, rule := range []uint8{0, 30, 54, 90, 110, 150, 184, 255} {
		e, err := New(41, 30, rule)
		if err != nil {
			t.Fatal(err)
		}
		if err := e.Reset(); err != nil {
			t.Fatal(err)
		}
		ref := slices.Clone(e.Row(0))
		for !e.Step() {
			ref = bitStep(rule, ref)
			if !slices.Equal(e.Latest(), ref) {
				t.Fatalf("rule %d diverged from reference at t=%d: %v vs %v", rule, e.Time(), e.Latest(), ref)
			}
		}
	}
}

func TestResetSeedsCenterCell(t *testing.T) {
	e, err := New(9, 4, 110)
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Reset(); err != nil {
		t.Fatal(err)
	}
	want := []uint8{0, 0, 0, 0, 1, 0, 0, 0, 0}
	if !slices.Equal(e.Row(0), want) {
		t.Fatalf("row 0 = %v, want %v", e.Row(0), want)
	}
	if e.Name() != "elementary" {
		t.Fatalf("name = %q", e.Name())
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "64", "h": "0", "rule": "300", "random": "1"})
	if c.Width != 64 || c.Height != 256 || c.Rule != 255 || !c.Random {
		t.Fatalf("unexpected config %+v", c)
	}
	if got := FromMap(map[string]string{"rule": "-4"}).Rule; got != 0 {
		t.Fatalf("negative rule parsed as %d", got)
	}
	ec := c.Engine()
	if ec.K != 2 || ec.R != 1 || ec.Rule != 255 {
		t.Fatalf("unexpected engine config %+v", ec)
	}
}
