package formula

import (
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"gonum.org/v1/gonum/stat/distuv"
)

// Critical values of the standard normal distribution for the levels offered
// by default.
const (
	Z90 = 1.645
	Z95 = 1.96
	Z99 = 2.576
)

var standardLevels = []domain.ConfidenceLevel{
	{Label: "90%", Level: 0.90, Z: Z90},
	{Label: "95%", Level: 0.95, Z: Z95},
	{Label: "99%", Level: 0.99, Z: Z99},
}

// StandardLevels returns the fixed confidence levels with their tabulated Z.
func StandardLevels() []domain.ConfidenceLevel {
	out := make([]domain.ConfidenceLevel, len(standardLevels))
	copy(out, standardLevels)
	return out
}

// ZForConfidence returns the two-tailed critical value for a confidence level
// in (0, 1). Standard levels use the tabulated values so results match the
// published tables exactly.
func ZForConfidence(level float64) (float64, error) {
	if level <= 0 || level >= 1 {
		return 0, fmt.Errorf("confidence level %v outside (0, 1): %w", level, ErrInvalidInput)
	}
	for _, l := range standardLevels {
		if l.Level == level {
			return l.Z, nil
		}
	}
	return distuv.UnitNormal.Quantile(1 - (1-level)/2), nil
}

// ConfidenceForZ returns the two-tailed confidence level covered by z.
func ConfidenceForZ(z float64) float64 {
	if z <= 0 || !finite(z) {
		return 0
	}
	return 1 - 2*distuv.UnitNormal.Survival(z)
}

// twoTailedPValue is the probability of a standard normal deviate at least as
// extreme as z in either direction.
func twoTailedPValue(z float64) float64 {
	return 2 * distuv.UnitNormal.Survival(z)
}
