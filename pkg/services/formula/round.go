package formula

import "math"

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// finite reports whether v can be handed to a caller.
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// maxCount is 2^63, the first float64 that no longer fits in an int64.
const maxCount = float64(math.MaxInt64)

// toCount converts a non-negative whole quantity to int64. It reports false
// when v is not finite or does not fit.
func toCount(v float64) (int64, bool) {
	if !finite(v) || v < 0 || v >= maxCount {
		return 0, false
	}
	return int64(v), true
}
