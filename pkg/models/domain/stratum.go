package domain

// Stratum is one subgroup of the population. Names are free text and need not
// be unique; ID is the stable identity.
type Stratum struct {
	ID         string
	Name       string
	Population float64
}

// StratumPatch carries the fields to change on a stratum. Nil fields are left
// untouched.
type StratumPatch struct {
	Name       *string
	Population *float64
}

type AllocationMethod string

const (
	// AllocationProportional rounds every stratum independently; the total
	// may drift from the target by a few units.
	AllocationProportional AllocationMethod = "proportional"
	// AllocationLargestRemainder reconciles the total to the target exactly.
	AllocationLargestRemainder AllocationMethod = "largest_remainder"
)

type StratumAllocation struct {
	Stratum    Stratum
	Weight     float64
	Allocation int64
}

type Allocation struct {
	Method          AllocationMethod
	TargetSample    int64
	TotalPopulation float64
	// SamplingFraction is TargetSample as a percentage of TotalPopulation.
	SamplingFraction float64
	Strata           []StratumAllocation
	Allocated        int64
	Drift            int64 // Allocated - TargetSample
}
