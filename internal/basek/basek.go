// Package basek converts between non-negative integers and their fixed-radix
// digit sequences. Digits are always ordered most-significant first.
package basek

// DecimalToDigits returns the base-k digits of n, most-significant first.
// Zero yields an empty slice; callers that need a fixed width use Pad.
// k must be in [2, 256].
func DecimalToDigits(n uint64, k int) []uint8 {
	if n == 0 {
		return []uint8{}
	}
	base := uint64(k)
	var digits []uint8
	for n != 0 {
		digits = append(digits, uint8(n%base))
		n /= base
	}
	for i, j := 0, len(digits)-1; i < j; i, j = i+1, j-1 {
		digits[i], digits[j] = digits[j], digits[i]
	}
	return digits
}

// DigitsToDecimal is the inverse of DecimalToDigits. Leading zeros are
// ignored. Values that do not fit in a uint64 wrap around.
func DigitsToDecimal(digits []uint8, k int) uint64 {
	base := uint64(k)
	var n uint64
	for _, d := range digits {
		n = n*base + uint64(d)
	}
	return n
}

// Pad left-pads digits with zeros to the requested length. Sequences already
// at least that long are returned unchanged.
func Pad(digits []uint8, length int) []uint8 {
	if len(digits) >= length {
		return digits
	}
	out := make([]uint8, length)
	copy(out[length-len(digits):], digits)
	return out
}
