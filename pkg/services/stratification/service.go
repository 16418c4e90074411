package stratification

import (
	"context"
	"fmt"

	"github.com/de-tools/survey-atlas/pkg/adapters"
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/models/store"
	"github.com/de-tools/survey-atlas/pkg/monitoring"
	"github.com/de-tools/survey-atlas/pkg/services/calculator"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/de-tools/survey-atlas/pkg/services/strata"
	"github.com/de-tools/survey-atlas/pkg/store/plan"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultPlanName = "Stratified plan"

// PlanUpdate carries the plan fields to change. Nil fields are left untouched.
type PlanUpdate struct {
	Name         *string
	TargetSample *int64
}

// Service manages stratification plans and computes their allocations.
type Service interface {
	CreatePlan(ctx context.Context, name string, target int64, initial []domain.Stratum) (domain.Plan, error)
	GetPlan(ctx context.Context, planID string) (domain.Plan, error)
	ListPlans(ctx context.Context) ([]domain.Plan, error)
	UpdatePlan(ctx context.Context, planID string, update PlanUpdate) (domain.Plan, error)
	DeletePlan(ctx context.Context, planID string) error

	AddStratum(ctx context.Context, planID, name string, population float64) (domain.Stratum, error)
	UpdateStratum(ctx context.Context, planID, stratumID string, patch domain.StratumPatch) (domain.Stratum, error)
	RemoveStratum(ctx context.Context, planID, stratumID string) error

	Allocate(ctx context.Context, planID string, method domain.AllocationMethod) (domain.Allocation, error)
}

type service struct {
	store   plan.Store
	calc    calculator.Service
	metrics *monitoring.Metrics
}

func NewService(store plan.Store, calc calculator.Service, metrics *monitoring.Metrics) Service {
	return &service{
		store:   store,
		calc:    calc,
		metrics: metrics,
	}
}

func (s *service) CreatePlan(
	ctx context.Context,
	name string,
	target int64,
	initial []domain.Stratum,
) (domain.Plan, error) {
	if target < 0 {
		return domain.Plan{}, fmt.Errorf("negative target sample %d: %w", target, formula.ErrInvalidInput)
	}
	if name == "" {
		name = defaultPlanName
	}

	set, err := strata.NewSet(initial...)
	if err != nil {
		return domain.Plan{}, err
	}
	p := &store.Plan{
		ID:           uuid.NewString(),
		Name:         name,
		TargetSample: target,
		Strata:       adapters.MapDomainStrataToStore(set.List()),
	}
	if err := s.store.CreatePlan(ctx, p); err != nil {
		return domain.Plan{}, fmt.Errorf("failed to create plan: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("plan", p.ID).Int("strata", set.Len()).Msg("plan created")
	s.refreshGauge(ctx)
	return adapters.MapStorePlanToDomain(p), nil
}

func (s *service) GetPlan(ctx context.Context, planID string) (domain.Plan, error) {
	p, err := s.store.GetPlan(ctx, planID)
	if err != nil {
		return domain.Plan{}, err
	}
	return adapters.MapStorePlanToDomain(p), nil
}

func (s *service) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.store.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	out := make([]domain.Plan, 0, len(plans))
	for _, p := range plans {
		out = append(out, adapters.MapStorePlanToDomain(p))
	}
	return out, nil
}

func (s *service) UpdatePlan(ctx context.Context, planID string, update PlanUpdate) (domain.Plan, error) {
	if update.TargetSample != nil && *update.TargetSample < 0 {
		return domain.Plan{}, fmt.Errorf("negative target sample %d: %w", *update.TargetSample, formula.ErrInvalidInput)
	}

	p, err := s.store.UpdatePlan(ctx, planID, func(p *store.Plan) error {
		if update.Name != nil {
			p.Name = *update.Name
		}
		if update.TargetSample != nil {
			p.TargetSample = *update.TargetSample
		}
		return nil
	})
	if err != nil {
		return domain.Plan{}, err
	}
	return adapters.MapStorePlanToDomain(p), nil
}

func (s *service) DeletePlan(ctx context.Context, planID string) error {
	if err := s.store.DeletePlan(ctx, planID); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Str("plan", planID).Msg("plan deleted")
	s.refreshGauge(ctx)
	return nil
}

func (s *service) AddStratum(ctx context.Context, planID, name string, population float64) (domain.Stratum, error) {
	if population < 0 {
		return domain.Stratum{}, fmt.Errorf("negative population %v: %w", population, formula.ErrInvalidInput)
	}

	var added domain.Stratum
	_, err := s.editStrata(ctx, planID, func(set *strata.Set) error {
		added = set.Add(name, population)
		return nil
	})
	return added, err
}

func (s *service) UpdateStratum(
	ctx context.Context,
	planID, stratumID string,
	patch domain.StratumPatch,
) (domain.Stratum, error) {
	if patch.Population != nil && *patch.Population < 0 {
		return domain.Stratum{}, fmt.Errorf("negative population %v: %w", *patch.Population, formula.ErrInvalidInput)
	}

	var updated domain.Stratum
	_, err := s.editStrata(ctx, planID, func(set *strata.Set) error {
		var err error
		updated, err = set.Update(stratumID, patch)
		return err
	})
	return updated, err
}

func (s *service) RemoveStratum(ctx context.Context, planID, stratumID string) error {
	_, err := s.editStrata(ctx, planID, func(set *strata.Set) error {
		return set.Remove(stratumID)
	})
	return err
}

func (s *service) Allocate(ctx context.Context, planID string, method domain.AllocationMethod) (domain.Allocation, error) {
	p, err := s.GetPlan(ctx, planID)
	if err != nil {
		return domain.Allocation{}, err
	}
	return s.calc.Allocate(ctx, p.TargetSample, p.Strata, method)
}

func (s *service) editStrata(ctx context.Context, planID string, fn func(set *strata.Set) error) (*store.Plan, error) {
	return s.store.UpdatePlan(ctx, planID, func(p *store.Plan) error {
		set, err := strata.NewSet(adapters.MapStorePlanToDomain(p).Strata...)
		if err != nil {
			return err
		}
		if err := fn(set); err != nil {
			return err
		}
		p.Strata = adapters.MapDomainStrataToStore(set.List())
		return nil
	})
}

func (s *service) refreshGauge(ctx context.Context) {
	plans, err := s.store.ListPlans(ctx)
	if err != nil {
		return
	}
	s.metrics.SetPlans(len(plans))
}
