package basek

import (
	"slices"
	"testing"
)

func TestDecimalToDigitsKnownValue(t *testing.T) {
	got := DecimalToDigits(34, 3)
	if want := []uint8{1, 0, 2, 1}; !slices.Equal(got, want) {
		t.Fatalf("DecimalToDigits(34, 3) = %v, want %v", got, want)
	}
}

func TestDecimalToDigitsZeroIsEmpty(t *testing.T) {
	for k := 2; k <= 10; k++ {
		if got := DecimalToDigits(0, k); len(got) != 0 {
			t.Fatalf("DecimalToDigits(0, %d) = %v, want empty", k, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, k := range []int{2, 3, 4, 7, 10, 16, 256} {
		for n := uint64(0); n < 2000; n += 7 {
			if got := DigitsToDecimal(DecimalToDigits(n, k), k); got != n {
				t.Fatalf("round trip k=%d n=%d produced %d", k, n, got)
			}
		}
	}
	large := uint64(1<<63 + 12345)
	if got := DigitsToDecimal(DecimalToDigits(large, 3), 3); got != large {
		t.Fatalf("round trip of %d produced %d", large, got)
	}
}

func TestDigitsToDecimalIgnoresLeadingZeros(t *testing.T) {
	if got := DigitsToDecimal([]uint8{0, 0, 1, 0, 2, 1}, 3); got != 34 {
		t.Fatalf("expected 34, got %d", got)
	}
	if got := DigitsToDecimal(nil, 5); got != 0 {
		t.Fatalf("empty digits should decode to 0, got %d", got)
	}
}

func TestPad(t *testing.T) {
	got := Pad([]uint8{1, 0, 2, 1}, 7)
	if want := []uint8{0, 0, 0, 1, 0, 2, 1}; !slices.Equal(got, want) {
		t.Fatalf("Pad = %v, want %v", got, want)
	}
	short := []uint8{1, 1}
	if got := Pad(short, 1); !slices.Equal(got, short) {
		t.Fatalf("Pad should not truncate, got %v", got)
	}
}
