package formula

import (
	"fmt"
	"math"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
)

// TwoProportionTest compares the conversion rates of two groups with a pooled
// two-proportion Z-test. It returns ErrNotComputable when a group is empty or
// the pooled proportion has no variance.
func TwoProportionTest(a, b domain.ABGroup) (domain.ABTestResult, error) {
	if err := validateGroup("A", a); err != nil {
		return domain.ABTestResult{}, err
	}
	if err := validateGroup("B", b); err != nil {
		return domain.ABTestResult{}, err
	}
	if a.Sample == 0 || b.Sample == 0 {
		return domain.ABTestResult{}, fmt.Errorf("empty group: %w", ErrNotComputable)
	}

	nA, nB := float64(a.Sample), float64(b.Sample)
	p1 := float64(a.Successes) / nA
	p2 := float64(b.Successes) / nB
	pPool := float64(a.Successes+b.Successes) / (nA + nB)

	se := math.Sqrt(pPool * (1 - pPool) * (1/nA + 1/nB))
	if se == 0 || !finite(se) {
		return domain.ABTestResult{}, fmt.Errorf("pooled proportion %v has no variance: %w", pPool, ErrNotComputable)
	}
	z := math.Abs(p1-p2) / se

	return domain.ABTestResult{
		RateA:       round2(p1 * 100),
		RateB:       round2(p2 * 100),
		ZScore:      round2(z),
		PValue:      twoTailedPValue(z),
		Confidence:  classify(z),
		Significant: z > Z95,
	}, nil
}

func classify(z float64) domain.Confidence {
	switch {
	case z > Z99:
		return domain.Confidence99
	case z > Z95:
		return domain.Confidence95
	default:
		return domain.ConfidenceLow
	}
}

func validateGroup(name string, g domain.ABGroup) error {
	if g.Sample < 0 || g.Successes < 0 {
		return fmt.Errorf("group %s has negative counts: %w", name, ErrInvalidInput)
	}
	if g.Successes > g.Sample {
		return fmt.Errorf("group %s has %d successes out of %d: %w", name, g.Successes, g.Sample, ErrInvalidInput)
	}
	return nil
}
