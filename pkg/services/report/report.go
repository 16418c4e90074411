// Package report renders calculator results as domain reports for terminal
// and export output.
package report

import (
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
)

func populationLabel(n int64) interface{} {
	if n <= 0 {
		return "unbounded"
	}
	return n
}

func SampleSize(in domain.SampleSizeInput, n int64) *domain.Report {
	return &domain.Report{
		Title:      "Sample size",
		Calculator: "sample-size",
		Sections: []domain.ReportSection{
			{
				Title: "Parameters",
				Details: []domain.ReportDetail{
					{Name: "Confidence", Value: fmt.Sprintf("%.1f%%", formula.ConfidenceForZ(in.Z)*100), Description: fmt.Sprintf("Z = %.3f", in.Z)},
					{Name: "Heterogeneity", Value: in.P, Description: "Assumed proportion p"},
					{Name: "Margin of error", Value: in.MarginOfError, Unit: "%"},
					{Name: "Population", Value: populationLabel(in.Population)},
				},
			},
			{
				Title:   "Result",
				Summary: map[string]interface{}{"Required interviews": n},
				Details: []domain.ReportDetail{
					{Name: "Sample size", Value: n, Unit: "interviews", Description: "Rounded up to the next whole interview"},
				},
			},
		},
	}
}

func MarginOfError(in domain.MarginOfErrorInput, res domain.MarginOfErrorResult, interval *domain.Interval) *domain.Report {
	details := []domain.ReportDetail{
		{Name: "Margin of error", Value: fmt.Sprintf("±%.2f", res.MarginOfError), Unit: "%"},
		{Name: "Precision", Value: string(res.Precision)},
	}
	if interval != nil {
		details = append(details, domain.ReportDetail{
			Name:        "Interval",
			Value:       fmt.Sprintf("%.2f - %.2f", interval.Lower, interval.Upper),
			Unit:        "%",
			Description: "Range of the true value around the observed one",
		})
	}

	return &domain.Report{
		Title:      "Margin of error",
		Calculator: "margin-of-error",
		Sections: []domain.ReportSection{
			{
				Title: "Parameters",
				Details: []domain.ReportDetail{
					{Name: "Sample", Value: in.Sample, Unit: "interviews"},
					{Name: "Population", Value: populationLabel(in.Population)},
					{Name: "Z", Value: in.Z},
				},
			},
			{Title: "Result", Details: details},
		},
	}
}

func ABTest(a, b domain.ABGroup, res domain.ABTestResult) *domain.Report {
	verdict := "not significant"
	if res.Significant {
		verdict = "significant"
	}

	return &domain.Report{
		Title:      "A/B significance test",
		Calculator: "ab-test",
		Sections: []domain.ReportSection{
			{
				Title: "Groups",
				Details: []domain.ReportDetail{
					{Name: "A", Value: fmt.Sprintf("%d / %d", a.Successes, a.Sample), Description: fmt.Sprintf("rate %.2f%%", res.RateA)},
					{Name: "B", Value: fmt.Sprintf("%d / %d", b.Successes, b.Sample), Description: fmt.Sprintf("rate %.2f%%", res.RateB)},
				},
			},
			{
				Title:   "Result",
				Summary: map[string]interface{}{"Verdict": verdict},
				Details: []domain.ReportDetail{
					{Name: "Z score", Value: res.ZScore},
					{Name: "p-value", Value: fmt.Sprintf("%.4f", res.PValue), Description: "Two-tailed"},
					{Name: "Confidence", Value: string(res.Confidence)},
				},
			},
		},
	}
}

func Allocation(a domain.Allocation) *domain.Report {
	details := make([]domain.ReportDetail, 0, len(a.Strata))
	for _, s := range a.Strata {
		details = append(details, domain.ReportDetail{
			Name:        s.Stratum.Name,
			Value:       s.Allocation,
			Unit:        "interviews",
			Description: fmt.Sprintf("population %.0f, weight %.2f%%", s.Stratum.Population, s.Weight*100),
		})
	}

	return &domain.Report{
		Title:      "Stratified allocation",
		Calculator: "stratify",
		Sections: []domain.ReportSection{
			{
				Title: "Allocation",
				Summary: map[string]interface{}{
					"Method":            string(a.Method),
					"Target sample":     a.TargetSample,
					"Allocated":         a.Allocated,
					"Drift":             a.Drift,
					"Total population":  a.TotalPopulation,
					"Sampling fraction": fmt.Sprintf("%.1f%%", a.SamplingFraction),
				},
				Details: details,
			},
		},
	}
}

func FieldCost(in domain.FieldCostInput, est domain.FieldCostEstimate, currency string) *domain.Report {
	note := "Most contacts qualify. Search cost is low."
	if est.HighScreeningCost {
		note = "Finding qualified respondents is expensive. Most contacts are screened out."
	}

	return &domain.Report{
		Title:       "Field cost estimate",
		Calculator:  "field-cost",
		TotalAmount: est.TotalCost,
		Currency:    currency,
		Sections: []domain.ReportSection{
			{
				Title:   "Field effort",
				Summary: map[string]interface{}{"Efficiency": string(est.Efficiency)},
				Details: []domain.ReportDetail{
					{Name: "Interviews", Value: in.SampleSize, Unit: "interviews"},
					{Name: "Cost per interview", Value: in.CostPerInterview, Unit: currency},
					{Name: "Incidence rate", Value: in.IncidenceRate, Unit: "%"},
					{Name: "Contacts needed", Value: est.ContactsNeeded, Unit: "contacts"},
					{Name: "Screened out", Value: est.ScreenedOut, Unit: "contacts", Description: note},
					{Name: "Field hours", Value: est.TotalHours, Unit: "hours"},
				},
			},
		},
	}
}

func DemandFunnel(f domain.DemandFunnel) *domain.Report {
	details := []domain.ReportDetail{{Name: "universe", Value: f.Universe, Unit: "people", Description: "100.00% of universe"}}
	for _, l := range f.Layers() {
		details = append(details, domain.ReportDetail{
			Name:        l.Name,
			Value:       l.Size,
			Unit:        "people",
			Description: fmt.Sprintf("%.2f%% of universe", l.Share),
		})
	}

	return &domain.Report{
		Title:      "Demand funnel",
		Calculator: "demand",
		Sections: []domain.ReportSection{
			{
				Title:   "Market layers",
				Summary: map[string]interface{}{"Annual demand": f.Demand},
				Details: details,
			},
		},
	}
}

// Presets lists scenarios with the sample size each one requires. sizes is
// keyed by preset name.
func Presets(presets []domain.Preset, sizes map[string]int64) *domain.Report {
	details := make([]domain.ReportDetail, 0, len(presets))
	for _, p := range presets {
		details = append(details, domain.ReportDetail{
			Name:        p.Name,
			Value:       sizes[p.Name],
			Unit:        "interviews",
			Description: p.Title,
		})
	}

	return &domain.Report{
		Title:      "Preset scenarios",
		Calculator: "presets",
		Sections: []domain.ReportSection{
			{
				Title:   "Scenarios",
				Summary: map[string]interface{}{"Scenarios": len(presets)},
				Details: details,
			},
		},
	}
}
