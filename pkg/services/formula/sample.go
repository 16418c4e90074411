package formula

import (
	"fmt"
	"math"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
)

// SampleSize returns the minimal sample for the requested confidence and
// precision, applying the finite population correction when a population is
// given. A non-positive margin of error yields 0. A sample too large to count
// returns ErrNotComputable.
func SampleSize(in domain.SampleSizeInput) (int64, error) {
	if in.MarginOfError <= 0 {
		return 0, nil
	}

	e := in.MarginOfError / 100
	n := math.Pow(in.Z, 2) * in.P * (1 - in.P) / math.Pow(e, 2)
	if in.Population > 0 {
		n = n / (1 + (n-1)/float64(in.Population))
	}
	if n <= 0 && finite(n) {
		return 0, nil
	}

	size, ok := toCount(math.Ceil(n))
	if !ok {
		return 0, fmt.Errorf("sample size %v for margin of error %v: %w", n, in.MarginOfError, ErrNotComputable)
	}
	return size, nil
}
