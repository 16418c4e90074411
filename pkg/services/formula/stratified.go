package formula

import (
	"fmt"
	"math"
	"sort"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
)

// Allocate distributes a target sample over strata in proportion to their
// population. With AllocationProportional each stratum is rounded on its own
// and the total may drift from target; AllocationLargestRemainder hands the
// leftover units to the largest fractional parts so the total is exact.
func Allocate(target int64, strata []domain.Stratum, method domain.AllocationMethod) (domain.Allocation, error) {
	if method == "" {
		method = domain.AllocationProportional
	}
	if method != domain.AllocationProportional && method != domain.AllocationLargestRemainder {
		return domain.Allocation{}, fmt.Errorf("unknown allocation method %q: %w", method, ErrInvalidInput)
	}
	if target < 0 {
		return domain.Allocation{}, fmt.Errorf("negative target sample %d: %w", target, ErrInvalidInput)
	}

	var total float64
	for _, s := range strata {
		if s.Population < 0 || !finite(s.Population) {
			return domain.Allocation{}, fmt.Errorf("stratum %q has population %v: %w", s.Name, s.Population, ErrInvalidInput)
		}
		total += s.Population
	}
	if total == 0 {
		return domain.Allocation{}, fmt.Errorf("total population is zero: %w", ErrNotComputable)
	}

	out := domain.Allocation{
		Method:           method,
		TargetSample:     target,
		TotalPopulation:  total,
		SamplingFraction: round2(float64(target) / total * 100),
		Strata:           make([]domain.StratumAllocation, len(strata)),
	}

	quotas := make([]float64, len(strata))
	for i, s := range strata {
		w := s.Population / total
		quotas[i] = w * float64(target)
		out.Strata[i] = domain.StratumAllocation{Stratum: s, Weight: w}
	}

	switch method {
	case domain.AllocationProportional:
		for i, q := range quotas {
			out.Strata[i].Allocation = int64(math.Round(q))
		}
	case domain.AllocationLargestRemainder:
		largestRemainder(target, quotas, out.Strata)
	}

	for _, s := range out.Strata {
		out.Allocated += s.Allocation
	}
	out.Drift = out.Allocated - target
	return out, nil
}

func largestRemainder(target int64, quotas []float64, strata []domain.StratumAllocation) {
	order := make([]int, len(quotas))
	var assigned int64
	for i, q := range quotas {
		floor := math.Floor(q)
		strata[i].Allocation = int64(floor)
		assigned += int64(floor)
		order[i] = i
	}

	// Ties keep input order.
	sort.SliceStable(order, func(x, y int) bool {
		rx := quotas[order[x]] - math.Floor(quotas[order[x]])
		ry := quotas[order[y]] - math.Floor(quotas[order[y]])
		return rx > ry
	})

	for i := 0; assigned < target && len(order) > 0; i++ {
		strata[order[i%len(order)]].Allocation++
		assigned++
	}
}
