package adapters

import (
	"github.com/de-tools/survey-atlas/pkg/models/api"
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/models/store"
)

func MapStorePlanToDomain(p *store.Plan) domain.Plan {
	plan := domain.Plan{
		ID:           p.ID,
		Name:         p.Name,
		TargetSample: p.TargetSample,
		Strata:       make([]domain.Stratum, 0, len(p.Strata)),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	for _, s := range p.Strata {
		plan.Strata = append(plan.Strata, domain.Stratum{ID: s.ID, Name: s.Name, Population: s.Population})
	}
	return plan
}

func MapDomainStrataToStore(strata []domain.Stratum) []store.Stratum {
	out := make([]store.Stratum, 0, len(strata))
	for _, s := range strata {
		out = append(out, store.Stratum{ID: s.ID, Name: s.Name, Population: s.Population})
	}
	return out
}

func MapPlanDomainToApi(p domain.Plan) api.Plan {
	var total float64
	for _, s := range p.Strata {
		total += s.Population
	}
	return api.Plan{
		ID:              p.ID,
		Name:            p.Name,
		TargetSample:    p.TargetSample,
		TotalPopulation: total,
		Strata:          MapStrataDomainToApi(p.Strata),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
