package formula

import (
	"fmt"
	"math"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
)

// DemandFunnel narrows a universe through four percentage filters and
// projects annual unit demand. Each layer is floored before the next filter
// is applied: layers count people, so fractions are never carried forward.
// A demand beyond the float64 range returns ErrNotComputable.
func DemandFunnel(in domain.DemandFunnelInput) (domain.DemandFunnel, error) {
	universe := in.Universe
	if universe < 0 {
		universe = 0
	}
	frequency := in.Frequency
	if frequency < 0 || !finite(frequency) {
		frequency = 0
	}

	potential := narrow(universe, in.PotentialPct)
	available := narrow(potential, in.AvailablePct)
	target := narrow(available, in.TargetPct)
	penetrated := narrow(target, in.PenetratedPct)

	demand := float64(penetrated) * frequency
	if !finite(demand) {
		return domain.DemandFunnel{}, fmt.Errorf("demand for frequency %v: %w", in.Frequency, ErrNotComputable)
	}

	return domain.DemandFunnel{
		Universe:   universe,
		Potential:  layer("potential", potential, universe),
		Available:  layer("available", available, universe),
		Target:     layer("target", target, universe),
		Penetrated: layer("penetrated", penetrated, universe),
		Demand:     demand,
	}, nil
}

func narrow(prev int64, pct float64) int64 {
	if !finite(pct) {
		pct = 0
	}
	pct = clamp(pct, 0, 100)
	// float64(prev) may round above prev near the int64 limit.
	n, ok := toCount(math.Floor(float64(prev) * (pct / 100)))
	if !ok || n > prev {
		return prev
	}
	return n
}

func layer(name string, size, universe int64) domain.FunnelLayer {
	l := domain.FunnelLayer{Name: name, Size: size}
	if universe > 0 {
		l.Share = round2(float64(size) / float64(universe) * 100)
	}
	return l
}
