package adapters

import (
	"github.com/de-tools/survey-atlas/pkg/models/api"
	"github.com/de-tools/survey-atlas/pkg/models/domain"
)

func heterogeneityOrDefault(p *float64) float64 {
	if p == nil {
		return domain.DefaultHeterogeneity
	}
	return *p
}

func MapSampleSizeRequestToDomain(req api.SampleSizeRequest, z float64) domain.SampleSizeInput {
	return domain.SampleSizeInput{
		Z:             z,
		P:             heterogeneityOrDefault(req.Heterogeneity),
		MarginOfError: req.MarginOfError,
		Population:    req.Population,
	}
}

func MapSampleSizeDomainToApi(in domain.SampleSizeInput, n int64) api.SampleSizeResponse {
	return api.SampleSizeResponse{
		SampleSize:    n,
		Z:             in.Z,
		Heterogeneity: in.P,
		MarginOfError: in.MarginOfError,
		Population:    in.Population,
	}
}

func MapMarginOfErrorRequestToDomain(req api.MarginOfErrorRequest, z float64) domain.MarginOfErrorInput {
	return domain.MarginOfErrorInput{
		Z:          z,
		P:          heterogeneityOrDefault(req.Heterogeneity),
		Sample:     req.Sample,
		Population: req.Population,
	}
}

func MapMarginOfErrorDomainToApi(res domain.MarginOfErrorResult, z float64, interval *domain.Interval) api.MarginOfErrorResponse {
	resp := api.MarginOfErrorResponse{
		MarginOfError: res.MarginOfError,
		Precision:     string(res.Precision),
		Z:             z,
	}
	if interval != nil {
		resp.Interval = &api.Interval{Lower: interval.Lower, Upper: interval.Upper}
	}
	return resp
}

func MapABGroupApiToDomain(g api.ABGroup) domain.ABGroup {
	return domain.ABGroup{Sample: g.Sample, Successes: g.Successes}
}

func MapABTestResultDomainToApi(res domain.ABTestResult) api.ABTestResponse {
	return api.ABTestResponse{
		RateA:       res.RateA,
		RateB:       res.RateB,
		ZScore:      res.ZScore,
		PValue:      res.PValue,
		Confidence:  string(res.Confidence),
		Significant: res.Significant,
	}
}

func MapStrataApiToDomain(strata []api.Stratum) []domain.Stratum {
	out := make([]domain.Stratum, 0, len(strata))
	for _, s := range strata {
		out = append(out, domain.Stratum{ID: s.ID, Name: s.Name, Population: s.Population})
	}
	return out
}

func MapStrataDomainToApi(strata []domain.Stratum) []api.Stratum {
	out := make([]api.Stratum, 0, len(strata))
	for _, s := range strata {
		out = append(out, MapStratumDomainToApi(s))
	}
	return out
}

func MapStratumDomainToApi(s domain.Stratum) api.Stratum {
	return api.Stratum{ID: s.ID, Name: s.Name, Population: s.Population}
}

func MapAllocationDomainToApi(a domain.Allocation) api.AllocationResponse {
	resp := api.AllocationResponse{
		Method:           string(a.Method),
		TargetSample:     a.TargetSample,
		TotalPopulation:  a.TotalPopulation,
		SamplingFraction: a.SamplingFraction,
		Allocated:        a.Allocated,
		Drift:            a.Drift,
		Strata:           make([]api.StratumAllocation, 0, len(a.Strata)),
	}
	for _, s := range a.Strata {
		resp.Strata = append(resp.Strata, api.StratumAllocation{
			ID:         s.Stratum.ID,
			Name:       s.Stratum.Name,
			Population: s.Stratum.Population,
			Weight:     s.Weight,
			Allocation: s.Allocation,
		})
	}
	return resp
}

func MapFieldCostRequestToDomain(req api.FieldCostRequest) domain.FieldCostInput {
	return domain.FieldCostInput{
		SampleSize:       req.SampleSize,
		CostPerInterview: req.CostPerInterview,
		IncidenceRate:    req.IncidenceRate,
		DurationMinutes:  req.DurationMinutes,
	}
}

func MapFieldCostDomainToApi(est domain.FieldCostEstimate) api.FieldCostResponse {
	return api.FieldCostResponse{
		TotalCost:         est.TotalCost,
		ContactsNeeded:    est.ContactsNeeded,
		ScreenedOut:       est.ScreenedOut,
		TotalHours:        est.TotalHours,
		Efficiency:        string(est.Efficiency),
		HighScreeningCost: est.HighScreeningCost,
	}
}

func MapDemandRequestToDomain(req api.DemandRequest) domain.DemandFunnelInput {
	return domain.DemandFunnelInput{
		Universe:      req.Universe,
		PotentialPct:  req.PotentialPct,
		AvailablePct:  req.AvailablePct,
		TargetPct:     req.TargetPct,
		PenetratedPct: req.PenetratedPct,
		Frequency:     req.Frequency,
	}
}

func MapDemandFunnelDomainToApi(f domain.DemandFunnel) api.DemandResponse {
	resp := api.DemandResponse{Universe: f.Universe, Demand: f.Demand}
	for _, l := range f.Layers() {
		resp.Layers = append(resp.Layers, api.FunnelLayer{Name: l.Name, Size: l.Size, Share: l.Share})
	}
	return resp
}

func MapConfidenceLevelsDomainToApi(levels []domain.ConfidenceLevel) []api.ConfidenceLevel {
	out := make([]api.ConfidenceLevel, 0, len(levels))
	for _, l := range levels {
		out = append(out, api.ConfidenceLevel{Label: l.Label, Level: l.Level, Z: l.Z})
	}
	return out
}

func MapPresetDomainToApi(p domain.Preset, n int64) api.Preset {
	return api.Preset{
		Name:          p.Name,
		Title:         p.Title,
		Description:   p.Description,
		Z:             p.Input.Z,
		Heterogeneity: p.Input.P,
		MarginOfError: p.Input.MarginOfError,
		Population:    p.Input.Population,
		SampleSize:    n,
	}
}
