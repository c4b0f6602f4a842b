package rule

import (
	"errors"
	"math"
	"slices"
	"testing"

	"lambda-ca/internal/lcg"
)

func TestSizeAndValidation(t *testing.T) {
	if n, err := Size(3, 1); err != nil || n != 27 {
		t.Fatalf("Size(3, 1) = %d, %v", n, err)
	}
	if n, err := Size(2, 0); err != nil || n != 2 {
		t.Fatalf("Size(2, 0) = %d, %v", n, err)
	}
	if _, err := Size(1, 1); !errors.Is(err, ErrInvalidAlphabet) {
		t.Fatalf("expected ErrInvalidAlphabet, got %v", err)
	}
	if _, err := Size(257, 0); !errors.Is(err, ErrInvalidAlphabet) {
		t.Fatalf("expected ErrInvalidAlphabet for k=257, got %v", err)
	}
	if _, err := Size(2, -1); !errors.Is(err, ErrInvalidRadius) {
		t.Fatalf("expected ErrInvalidRadius, got %v", err)
	}
	if _, err := Size(2, 12); !errors.Is(err, ErrTableTooLarge) {
		t.Fatalf("expected ErrTableTooLarge, got %v", err)
	}
}

func TestMaxRule(t *testing.T) {
	cases := []struct {
		k, r int
		want uint64
	}{
		{2, 0, 3},
		{2, 1, 255},
		{2, 2, 1<<32 - 1},
		{3, 1, 7625597484986},
		{2, 3, math.MaxUint64},
	}
	for _, tc := range cases {
		got, err := MaxRule(tc.k, tc.r)
		if err != nil {
			t.Fatalf("MaxRule(%d, %d): %v", tc.k, tc.r, err)
		}
		if got != tc.want {
			t.Fatalf("MaxRule(%d, %d) = %d, want %d", tc.k, tc.r, got, tc.want)
		}
	}
	if got, _ := ClampRule(1000, 2, 1); got != 255 {
		t.Fatalf("ClampRule(1000) = %d, want 255", got)
	}
	if got, _ := ClampRule(110, 2, 1); got != 110 {
		t.Fatalf("ClampRule(110) = %d, want 110", got)
	}
}

func TestDecodeRule34K3(t *testing.T) {
	table, err := Decode(34, 3, 1)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 27 {
		t.Fatalf("expected 27 entries, got %d", table.Len())
	}
	want := make([]uint8, 27)
	copy(want[23:], []uint8{1, 0, 2, 1})
	if got := table.Padded(); !slices.Equal(got, want) {
		t.Fatalf("padded table = %v, want %v", got, want)
	}
	if got := table.Lookup([]uint8{2, 2, 2}); got != 0 {
		t.Fatalf("[2,2,2] -> %d, want 0", got)
	}
	if got := table.Lookup([]uint8{0, 0, 1}); got != 2 {
		t.Fatalf("[0,0,1] -> %d, want 2", got)
	}
	if got := table.Lookup([]uint8{0, 0, 0}); got != 1 {
		t.Fatalf("[0,0,0] -> %d, want 1", got)
	}
	if table.Rule() != 34 {
		t.Fatalf("re-encoded rule = %d, want 34", table.Rule())
	}
}

func TestDecodeLengthIndependentOfRule(t *testing.T) {
	for _, rule := range []uint64{0, 1, 30, 255, 256, math.MaxUint64} {
		table, err := Decode(rule, 2, 1)
		if err != nil {
			t.Fatal(err)
		}
		if table.Len() != 8 {
			t.Fatalf("rule %d produced %d entries", rule, table.Len())
		}
	}
	saturated, _ := Decode(math.MaxUint64, 2, 1)
	if saturated.Count(1) != 8 {
		t.Fatalf("clamped rule should map every neighborhood to 1, got %v", saturated.States())
	}
	big, err := Decode(12345, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if big.Len() != 128 || big.Rule() != 12345 {
		t.Fatalf("unexpected wide table len=%d rule=%d", big.Len(), big.Rule())
	}
}

func TestDecodeWolframOrdering(t *testing.T) {
	table, err := Decode(30, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	for n := 0; n < 8; n++ {
		if want := uint8((30 >> n) & 1); table.At(n) != want {
			t.Fatalf("entry %d = %d, want %d", n, table.At(n), want)
		}
	}
}

func TestLangtonHitsEveryRepresentableLambda(t *testing.T) {
	for _, tc := range []struct{ k, r int }{{2, 1}, {3, 1}, {4, 1}, {2, 2}} {
		size, err := Size(tc.k, tc.r)
		if err != nil {
			t.Fatal(err)
		}
		reg := lcg.NewDefault()
		for i := 0; i <= size; i++ {
			lambda := float64(i) / float64(size)
			table, err := Langton(tc.k, tc.r, lambda, reg)
			if err != nil {
				t.Fatalf("k=%d r=%d lambda=%v: %v", tc.k, tc.r, lambda, err)
			}
			if table.Len() != size {
				t.Fatalf("table length %d, want %d", table.Len(), size)
			}
			if got := table.Count(table.Quiescent()); got != size-i {
				t.Fatalf("k=%d r=%d lambda=%d/%d: %d quiescent entries, want %d", tc.k, tc.r, i, size, got, size-i)
			}
			if math.Abs(table.Activity()-lambda) > 1e-12 {
				t.Fatalf("activity %v, want %v", table.Activity(), lambda)
			}
			for n := 0; n < table.Len(); n++ {
				if int(table.At(n)) >= tc.k {
					t.Fatalf("entry %d holds invalid state %d", n, table.At(n))
				}
			}
		}
	}
}

func TestLangtonReproducibleFromRegister(t *testing.T) {
	a, err := Langton(3, 1, 13.0/27.0, lcg.New(77))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Langton(3, 1, 13.0/27.0, lcg.New(77))
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(a.States(), b.States()) || a.Quiescent() != b.Quiescent() {
		t.Fatal("same register state must produce the same table")
	}

	reg := lcg.New(77)
	first, _ := Langton(3, 1, 13.0/27.0, reg)
	drawsAfterFirst := reg.Draws()
	if drawsAfterFirst < 2 {
		t.Fatalf("expected at least two register draws, got %d", drawsAfterFirst)
	}
	second, _ := Langton(3, 1, 13.0/27.0, reg)
	if slices.Equal(first.States(), second.States()) {
		t.Fatal("successive builds on one register should diverge")
	}
}

func TestLangtonRejectsUnrepresentableLambda(t *testing.T) {
	for _, lambda := range []float64{0.3, -0.125, 1.5, math.NaN(), 0.125 + 1e-6} {
		reg := lcg.NewDefault()
		if _, err := Langton(2, 1, lambda, reg); !errors.Is(err, ErrInvalidActivity) {
			t.Fatalf("lambda %v: expected ErrInvalidActivity, got %v", lambda, err)
		}
		if reg.Draws() != 0 {
			t.Fatalf("lambda %v: register advanced on rejection", lambda)
		}
	}
	if n, err := ValidateLambda(0.375, 8); err != nil || n != 3 {
		t.Fatalf("ValidateLambda(0.375, 8) = %d, %v", n, err)
	}
	if n, err := ValidateLambda(1.0/3.0, 27); err != nil || n != 9 {
		t.Fatalf("ValidateLambda(1/3, 27) = %d, %v", n, err)
	}
}

func TestNeighborhoodWrapsAroundRing(t *testing.T) {
	cases := []struct {
		w, r int
		want []int
	}{
		{7, 1, []int{6, 0, 1}},
		{10, 3, []int{7, 8, 9, 0, 1, 2, 3}},
		{5, 2, []int{3, 4, 0, 1, 2}},
		{4, 0, []int{0}},
		{2, 2, []int{0, 1, 0, 1, 0}},
	}
	for _, tc := range cases {
		if got := Neighborhood(tc.w, 0, tc.r); !slices.Equal(got, tc.want) {
			t.Fatalf("Neighborhood(%d, 0, %d) = %v, want %v", tc.w, tc.r, got, tc.want)
		}
	}
	if got := Neighborhood(7, 6, 1); !slices.Equal(got, []int{5, 6, 0}) {
		t.Fatalf("right edge neighborhood = %v", got)
	}
}

func TestWrap(t *testing.T) {
	cases := map[int]int{-6: 4, -1: 4, 0: 0, 4: 4, 5: 0, 12: 2}
	for in, want := range cases {
		if got := Wrap(in, 5); got != want {
			t.Fatalf("Wrap(%d, 5) = %d, want %d", in, got, want)
		}
	}
}

func TestEvaluatorMatchesNeighborhoodLookup(t *testing.T) {
	table, err := Decode(34, 3, 2)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	row := []uint8{2, 0, 1, 1, 0, 2, 2}
	e := NewEvaluator(table)
	for cell := range row {
		var digits []uint8
		for _, x := range Neighborhood(len(row), cell, 2) {
			digits = append(digits, row[x])
		}
		if got, want := e.Evaluate(row, cell), table.Lookup(digits); got != want {
			t.Fatalf("cell %d: evaluator gave %d, lookup gave %d", cell, got, want)
		}
	}
}

func TestEvaluatorRule30(t *testing.T) {
	table, err := Decode(30, 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	eval := NewEvaluator(table)
	row := []uint8{0, 0, 0, 1, 0, 0, 0}
	next := make([]uint8, len(row))
	eval.Apply(row, next)
	if want := []uint8{0, 0, 1, 1, 1, 0, 0}; !slices.Equal(next, want) {
		t.Fatalf("rule 30 step = %v, want %v", next, want)
	}
	edges := []uint8{1, 0, 0, 0, 0, 0, 1}
	if got := Evaluate(edges, 0, table); got != 0 {
		t.Fatalf("wrapped neighborhood (1,1,0) -> %d, want 0", got)
	}
	if got := Evaluate(edges, 6, table); got != 1 {
		t.Fatalf("wrapped neighborhood (0,1,1) -> %d, want 1", got)
	}
}
