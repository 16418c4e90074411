package calculator

import (
	"context"
	"errors"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/monitoring"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/rs/zerolog"
)

// Calculator names used in logs and metrics.
const (
	NameSampleSize    = "sample_size"
	NameMarginOfError = "margin_of_error"
	NameABTest        = "ab_test"
	NameStratified    = "stratified"
	NameFieldCost     = "field_cost"
	NameDemand        = "demand"
)

// Service evaluates the survey calculators for request handlers.
type Service interface {
	SampleSize(ctx context.Context, in domain.SampleSizeInput) (int64, error)
	MarginOfError(ctx context.Context, in domain.MarginOfErrorInput) domain.MarginOfErrorResult
	ABTest(ctx context.Context, a, b domain.ABGroup) (domain.ABTestResult, error)
	Allocate(
		ctx context.Context,
		target int64,
		strata []domain.Stratum,
		method domain.AllocationMethod,
	) (domain.Allocation, error)
	FieldCost(ctx context.Context, in domain.FieldCostInput) (domain.FieldCostEstimate, error)
	DemandFunnel(ctx context.Context, in domain.DemandFunnelInput) (domain.DemandFunnel, error)
}

type service struct {
	metrics *monitoring.Metrics
}

// NewService creates a calculator service. metrics may be nil.
func NewService(metrics *monitoring.Metrics) Service {
	return &service{metrics: metrics}
}

func (s *service) SampleSize(ctx context.Context, in domain.SampleSizeInput) (int64, error) {
	n, err := formula.SampleSize(in)
	s.record(NameSampleSize, err)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Float64("margin_of_error", in.MarginOfError).Msg("sample size not computed")
		return 0, err
	}
	zerolog.Ctx(ctx).Debug().
		Float64("z", in.Z).
		Float64("margin_of_error", in.MarginOfError).
		Int64("population", in.Population).
		Int64("sample_size", n).
		Msg("sample size calculated")
	return n, nil
}

func (s *service) MarginOfError(ctx context.Context, in domain.MarginOfErrorInput) domain.MarginOfErrorResult {
	res := formula.EvaluateMarginOfError(in)
	zerolog.Ctx(ctx).Debug().
		Int64("sample", in.Sample).
		Float64("margin_of_error", res.MarginOfError).
		Msg("margin of error calculated")
	s.record(NameMarginOfError, nil)
	return res
}

func (s *service) ABTest(ctx context.Context, a, b domain.ABGroup) (domain.ABTestResult, error) {
	res, err := formula.TwoProportionTest(a, b)
	s.record(NameABTest, err)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Msg("a/b test not computed")
		return domain.ABTestResult{}, err
	}
	return res, nil
}

func (s *service) Allocate(
	ctx context.Context,
	target int64,
	strata []domain.Stratum,
	method domain.AllocationMethod,
) (domain.Allocation, error) {
	res, err := formula.Allocate(target, strata, method)
	s.record(NameStratified, err)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Int("strata", len(strata)).Msg("allocation not computed")
		return domain.Allocation{}, err
	}
	if res.Drift != 0 {
		zerolog.Ctx(ctx).Debug().
			Int64("target", target).
			Int64("drift", res.Drift).
			Msg("allocation total differs from target")
	}
	return res, nil
}

func (s *service) FieldCost(ctx context.Context, in domain.FieldCostInput) (domain.FieldCostEstimate, error) {
	res, err := formula.FieldCost(in)
	s.record(NameFieldCost, err)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Float64("incidence_rate", in.IncidenceRate).Msg("field cost not computed")
		return domain.FieldCostEstimate{}, err
	}
	return res, nil
}

func (s *service) DemandFunnel(ctx context.Context, in domain.DemandFunnelInput) (domain.DemandFunnel, error) {
	res, err := formula.DemandFunnel(in)
	s.record(NameDemand, err)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Float64("frequency", in.Frequency).Msg("demand funnel not computed")
		return domain.DemandFunnel{}, err
	}
	zerolog.Ctx(ctx).Debug().
		Int64("universe", res.Universe).
		Float64("demand", res.Demand).
		Msg("demand funnel calculated")
	return res, nil
}

func (s *service) record(calculator string, err error) {
	s.metrics.RecordCalculation(calculator, Outcome(err))
}

// Outcome maps a calculator error to its metrics label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return monitoring.OutcomeOK
	case errors.Is(err, formula.ErrNotComputable):
		return monitoring.OutcomeNotComputable
	default:
		return monitoring.OutcomeInvalid
	}
}
