package edgecases

import "math/rand/v2"

// ZeroDimensions clears Rows, Columns or both.
func ZeroDimensions(rows, cols int, rng *rand.Rand) (int, int) {
	switch rng.IntN(3) {
	case 0:
		return 0, cols
	case 1:
		return rows, 0
	default:
		return 0, 0
	}
}

// TruncateRows returns how many pixel rows to actually write for a frame that
// declares rows: between a quarter and three quarters of them, at least one
// and always fewer than declared.
func TruncateRows(rows int, rng *rand.Rand) int {
	if rows < 2 {
		return 0
	}
	keep := rows/4 + rng.IntN(max(rows/2, 1))
	return min(max(keep, 1), rows-1)
}

// GarbageBytes returns n random bytes without the DICM preamble.
func GarbageBytes(n int, rng *rand.Rand) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(rng.IntN(256))
	}
	if n >= 132 {
		copy(buf[128:132], "NOPE")
	}
	return buf
}
