package formula

import (
	"math"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
)

// Precision bands in percentage points.
const (
	highPrecisionMax     = 3.0
	standardPrecisionMax = 5.0
)

// MarginOfError returns the achieved margin of error in percent, rounded to
// two decimals. A census (sample at or above a finite population) has no
// sampling error and yields 0, as does an empty sample.
func MarginOfError(in domain.MarginOfErrorInput) float64 {
	if in.Sample <= 0 {
		return 0
	}

	n := float64(in.Sample)
	se := math.Sqrt(in.P * (1 - in.P) / n)
	if in.Population > 0 {
		// Also covers N = 1, where the correction factor is undefined.
		if in.Sample >= in.Population {
			return 0
		}
		N := float64(in.Population)
		se *= math.Sqrt((N - n) / (N - 1))
	}

	moe := in.Z * se * 100
	if !finite(moe) {
		return 0
	}
	return round2(moe)
}

// PrecisionOf labels a margin of error in percent.
func PrecisionOf(moe float64) domain.Precision {
	switch {
	case moe <= highPrecisionMax:
		return domain.PrecisionHigh
	case moe <= standardPrecisionMax:
		return domain.PrecisionStandard
	default:
		return domain.PrecisionLow
	}
}

// EvaluateMarginOfError computes the margin of error together with its
// precision label.
func EvaluateMarginOfError(in domain.MarginOfErrorInput) domain.MarginOfErrorResult {
	moe := MarginOfError(in)
	return domain.MarginOfErrorResult{
		MarginOfError: moe,
		Precision:     PrecisionOf(moe),
	}
}

// IntervalAround returns the range an observed percentage may really take,
// bounded to [0, 100].
func IntervalAround(observed, moe float64) domain.Interval {
	return domain.Interval{
		Lower: round2(math.Max(0, observed-moe)),
		Upper: round2(math.Min(100, observed+moe)),
	}
}
