package presets

import (
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
)

// Builtin returns the stock scenarios.
func Builtin() []domain.Preset {
	return []domain.Preset{
		{
			Name:  "electoral",
			Title: "Electoral poll",
			Description: "Close race where every point decides the winner. " +
				"The error must be smaller than the gap between candidates.",
			Input: domain.SampleSizeInput{Z: formula.Z99, P: domain.DefaultHeterogeneity, MarginOfError: 2},
		},
		{
			Name:  "mvp",
			Title: "Product launch (MVP)",
			Description: "Quick validation of a new product idea on a tight budget. " +
				"Direction matters more than precision.",
			Input: domain.SampleSizeInput{Z: formula.Z90, P: domain.DefaultHeterogeneity, MarginOfError: 7},
		},
		{
			Name:  "workplace",
			Title: "Workplace climate",
			Description: "Satisfaction survey in a company of 500 employees. " +
				"The finite population correction shrinks the sample considerably.",
			Input: domain.SampleSizeInput{Z: formula.Z95, P: domain.DefaultHeterogeneity, MarginOfError: 5, Population: 500},
		},
	}
}

// NewDefaultRegistry creates a registry with the stock scenarios.
func NewDefaultRegistry() Registry {
	r, err := NewRegistry(Builtin()...)
	if err != nil {
		panic(err)
	}
	return r
}
