package calculator

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/monitoring"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (Service, *monitoring.Metrics, context.Context) {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return NewService(metrics), metrics, logger.WithContext(context.Background())
}

func TestService_RecordsOutcomes(t *testing.T) {
	svc, metrics, ctx := setup(t)

	n, err := svc.SampleSize(ctx, domain.SampleSizeInput{Z: formula.Z95, P: 0.5, MarginOfError: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(385), n)

	_, err = svc.SampleSize(ctx, domain.SampleSizeInput{Z: formula.Z95, P: 0.5, MarginOfError: 1e-9})
	assert.ErrorIs(t, err, formula.ErrNotComputable)

	_, err = svc.DemandFunnel(ctx, domain.DemandFunnelInput{Universe: 1000, PotentialPct: 100, Frequency: 1e308})
	assert.ErrorIs(t, err, formula.ErrNotComputable)

	_, err = svc.ABTest(ctx, domain.ABGroup{Sample: 10}, domain.ABGroup{Sample: 10})
	assert.ErrorIs(t, err, formula.ErrNotComputable)

	_, err = svc.FieldCost(ctx, domain.FieldCostInput{SampleSize: -1, IncidenceRate: 10})
	assert.ErrorIs(t, err, formula.ErrInvalidInput)

	alloc, err := svc.Allocate(ctx, 100, []domain.Stratum{{Population: 1}, {Population: 1}, {Population: 1}}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), alloc.Drift)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CalculationsTotal.WithLabelValues(NameSampleSize, monitoring.OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CalculationsTotal.WithLabelValues(NameSampleSize, monitoring.OutcomeNotComputable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CalculationsTotal.WithLabelValues(NameDemand, monitoring.OutcomeNotComputable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CalculationsTotal.WithLabelValues(NameABTest, monitoring.OutcomeNotComputable)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CalculationsTotal.WithLabelValues(NameFieldCost, monitoring.OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CalculationsTotal.WithLabelValues(NameStratified, monitoring.OutcomeOK)))
}

func TestService_PassesResultsThrough(t *testing.T) {
	svc, _, ctx := setup(t)

	moe := svc.MarginOfError(ctx, domain.MarginOfErrorInput{Z: formula.Z95, P: 0.5, Sample: 1000})
	assert.InDelta(t, 3.1, moe.MarginOfError, 1e-9)
	assert.Equal(t, domain.PrecisionStandard, moe.Precision)

	funnel, err := svc.DemandFunnel(ctx, domain.DemandFunnelInput{
		Universe: 1000, PotentialPct: 50, AvailablePct: 50, TargetPct: 50, PenetratedPct: 50, Frequency: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(62), funnel.Penetrated.Size)
	assert.InDelta(t, 124.0, funnel.Demand, 1e-9)

	res, err := svc.ABTest(ctx, domain.ABGroup{Sample: 1000, Successes: 200}, domain.ABGroup{Sample: 1000, Successes: 240})
	require.NoError(t, err)
	assert.True(t, res.Significant)

	est, err := svc.FieldCost(ctx, domain.FieldCostInput{SampleSize: 384, CostPerInterview: 5, IncidenceRate: 100})
	require.NoError(t, err)
	assert.Equal(t, 1920.0, est.TotalCost)
	assert.Equal(t, int64(384), est.ContactsNeeded)
}

func TestService_WithoutMetrics(t *testing.T) {
	svc := NewService(nil)
	assert.NotPanics(t, func() {
		svc.SampleSize(context.Background(), domain.SampleSizeInput{Z: formula.Z95, P: 0.5, MarginOfError: 5})
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, monitoring.OutcomeOK, Outcome(nil))
	assert.Equal(t, monitoring.OutcomeNotComputable, Outcome(fmt.Errorf("wrapped: %w", formula.ErrNotComputable)))
	assert.Equal(t, monitoring.OutcomeInvalid, Outcome(formula.ErrInvalidInput))
	assert.Equal(t, monitoring.OutcomeInvalid, Outcome(errors.New("other")))
}
