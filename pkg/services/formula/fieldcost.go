package formula

import (
	"fmt"
	"math"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
)

// Incidence bands in percent. Lower bounds are inclusive.
const (
	mediumIncidenceMin     = 30.0
	highIncidenceMin       = 70.0
	screeningCostThreshold = 50.0
)

// FieldCost projects the budget and field effort of a study. A non-positive
// incidence rate cannot be fielded and returns ErrNotComputable; rates above
// 100 are clamped.
func FieldCost(in domain.FieldCostInput) (domain.FieldCostEstimate, error) {
	if in.SampleSize < 0 || in.CostPerInterview < 0 || in.DurationMinutes < 0 {
		return domain.FieldCostEstimate{}, fmt.Errorf("negative sample, cost or duration: %w", ErrInvalidInput)
	}
	if in.IncidenceRate <= 0 || !finite(in.IncidenceRate) {
		return domain.FieldCostEstimate{}, fmt.Errorf("incidence rate %v: %w", in.IncidenceRate, ErrNotComputable)
	}

	ir := math.Min(in.IncidenceRate, 100)
	n := float64(in.SampleSize)
	contacts, ok := toCount(math.Ceil(n / (ir / 100)))
	if !ok {
		return domain.FieldCostEstimate{}, fmt.Errorf("contacts for incidence rate %v: %w", in.IncidenceRate, ErrNotComputable)
	}
	hours, ok := toCount(math.Ceil(n * in.DurationMinutes / 60))
	if !ok {
		return domain.FieldCostEstimate{}, fmt.Errorf("field hours for %v minutes: %w", in.DurationMinutes, ErrNotComputable)
	}
	total := n * in.CostPerInterview
	if !finite(total) {
		return domain.FieldCostEstimate{}, fmt.Errorf("total cost for %v per interview: %w", in.CostPerInterview, ErrNotComputable)
	}

	return domain.FieldCostEstimate{
		TotalCost:         total,
		ContactsNeeded:    contacts,
		ScreenedOut:       contacts - in.SampleSize,
		TotalHours:        hours,
		Efficiency:        EfficiencyOf(ir),
		HighScreeningCost: ir < screeningCostThreshold,
	}, nil
}

// EfficiencyOf classifies an incidence rate in percent.
func EfficiencyOf(ir float64) domain.Efficiency {
	switch {
	case ir < mediumIncidenceMin:
		return domain.EfficiencyCritical
	case ir < highIncidenceMin:
		return domain.EfficiencyMedium
	default:
		return domain.EfficiencyHigh
	}
}
