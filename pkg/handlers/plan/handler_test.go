package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/de-tools/survey-atlas/pkg/models/api"
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/de-tools/survey-atlas/pkg/services/strata"
	"github.com/de-tools/survey-atlas/pkg/services/stratification"
	planstore "github.com/de-tools/survey-atlas/pkg/store/plan"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlanService struct {
	mock.Mock
}

func (m *mockPlanService) CreatePlan(
	ctx context.Context,
	name string,
	target int64,
	initial []domain.Stratum,
) (domain.Plan, error) {
	args := m.Called(ctx, name, target, initial)
	return args.Get(0).(domain.Plan), args.Error(1)
}

func (m *mockPlanService) GetPlan(ctx context.Context, planID string) (domain.Plan, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).(domain.Plan), args.Error(1)
}

func (m *mockPlanService) ListPlans(ctx context.Context) ([]domain.Plan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Plan), args.Error(1)
}

func (m *mockPlanService) UpdatePlan(
	ctx context.Context,
	planID string,
	update stratification.PlanUpdate,
) (domain.Plan, error) {
	args := m.Called(ctx, planID, update)
	return args.Get(0).(domain.Plan), args.Error(1)
}

func (m *mockPlanService) DeletePlan(ctx context.Context, planID string) error {
	return m.Called(ctx, planID).Error(0)
}

func (m *mockPlanService) AddStratum(
	ctx context.Context,
	planID, name string,
	population float64,
) (domain.Stratum, error) {
	args := m.Called(ctx, planID, name, population)
	return args.Get(0).(domain.Stratum), args.Error(1)
}

func (m *mockPlanService) UpdateStratum(
	ctx context.Context,
	planID, stratumID string,
	patch domain.StratumPatch,
) (domain.Stratum, error) {
	args := m.Called(ctx, planID, stratumID, patch)
	return args.Get(0).(domain.Stratum), args.Error(1)
}

func (m *mockPlanService) RemoveStratum(ctx context.Context, planID, stratumID string) error {
	return m.Called(ctx, planID, stratumID).Error(0)
}

func (m *mockPlanService) Allocate(
	ctx context.Context,
	planID string,
	method domain.AllocationMethod,
) (domain.Allocation, error) {
	args := m.Called(ctx, planID, method)
	return args.Get(0).(domain.Allocation), args.Error(1)
}

func newRequest(method, target string, body io.Reader, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

var testPlan = domain.Plan{
	ID:           "plan-1",
	Name:         "Regions",
	TargetSample: 400,
	Strata: []domain.Stratum{
		{ID: "north", Name: "North", Population: 5000},
		{ID: "south", Name: "South", Population: 15000},
	},
	CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}

func TestCreatePlan(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*mockPlanService)
		status    int
	}{
		{
			name: "created",
			body: `{"name": "Regions", "target_sample": 400, "strata": [{"name": "North", "population": 5000}]}`,
			setupMock: func(m *mockPlanService) {
				m.On("CreatePlan", mock.Anything, "Regions", int64(400),
					[]domain.Stratum{{Name: "North", Population: 5000}},
				).Return(testPlan, nil)
			},
			status: http.StatusCreated,
		},
		{
			name:      "negative target rejected by validation",
			body:      `{"target_sample": -1}`,
			setupMock: func(m *mockPlanService) {},
			status:    http.StatusBadRequest,
		},
		{
			name: "service rejects input",
			body: `{"target_sample": 10}`,
			setupMock: func(m *mockPlanService) {
				m.On("CreatePlan", mock.Anything, "", int64(10), []domain.Stratum{}).
					Return(domain.Plan{}, fmt.Errorf("bad: %w", formula.ErrInvalidInput))
			},
			status: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockPlanService)
			tt.setupMock(svc)

			req := newRequest(http.MethodPost, "/plans", strings.NewReader(tt.body), nil)
			rec := httptest.NewRecorder()
			NewHandler(svc).CreatePlan(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusCreated {
				var res api.Plan
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
				assert.Equal(t, "plan-1", res.ID)
				assert.Equal(t, 20000.0, res.TotalPopulation)
				assert.Len(t, res.Strata, 2)
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestGetPlan(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "found", status: http.StatusOK},
		{name: "missing", err: fmt.Errorf("%w: plan-1", planstore.ErrPlanNotFound), status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockPlanService)
			svc.On("GetPlan", mock.Anything, "plan-1").Return(testPlan, tt.err)

			req := newRequest(http.MethodGet, "/plans/plan-1", nil, map[string]string{"plan": "plan-1"})
			rec := httptest.NewRecorder()
			NewHandler(svc).GetPlan(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestListPlans(t *testing.T) {
	svc := new(mockPlanService)
	svc.On("ListPlans", mock.Anything).Return([]domain.Plan{testPlan}, nil)

	req := newRequest(http.MethodGet, "/plans", nil, nil)
	rec := httptest.NewRecorder()
	NewHandler(svc).ListPlans(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res []api.Plan
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	require.Len(t, res, 1)
	assert.Equal(t, "Regions", res[0].Name)
}

func TestUpdatePlan(t *testing.T) {
	svc := new(mockPlanService)
	target := int64(800)
	updated := testPlan
	updated.TargetSample = target
	svc.On("UpdatePlan", mock.Anything, "plan-1", stratification.PlanUpdate{TargetSample: &target}).
		Return(updated, nil)

	req := newRequest(http.MethodPatch, "/plans/plan-1",
		strings.NewReader(`{"target_sample": 800}`), map[string]string{"plan": "plan-1"})
	rec := httptest.NewRecorder()
	NewHandler(svc).UpdatePlan(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res api.Plan
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, target, res.TargetSample)
	svc.AssertExpectations(t)
}

func TestDeletePlan(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "deleted", status: http.StatusNoContent},
		{name: "missing", err: planstore.ErrPlanNotFound, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockPlanService)
			svc.On("DeletePlan", mock.Anything, "plan-1").Return(tt.err)

			req := newRequest(http.MethodDelete, "/plans/plan-1", nil, map[string]string{"plan": "plan-1"})
			rec := httptest.NewRecorder()
			NewHandler(svc).DeletePlan(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestStrata(t *testing.T) {
	params := map[string]string{"plan": "plan-1", "stratum": "north"}

	t.Run("add", func(t *testing.T) {
		svc := new(mockPlanService)
		svc.On("AddStratum", mock.Anything, "plan-1", "East", 2500.0).
			Return(domain.Stratum{ID: "east", Name: "East", Population: 2500}, nil)

		req := newRequest(http.MethodPost, "/plans/plan-1/strata",
			strings.NewReader(`{"name": "East", "population": 2500}`), params)
		rec := httptest.NewRecorder()
		NewHandler(svc).AddStratum(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var res api.Stratum
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
		assert.Equal(t, api.Stratum{ID: "east", Name: "East", Population: 2500}, res)
	})

	t.Run("update missing stratum", func(t *testing.T) {
		svc := new(mockPlanService)
		name := "Renamed"
		svc.On("UpdateStratum", mock.Anything, "plan-1", "north", domain.StratumPatch{Name: &name}).
			Return(domain.Stratum{}, fmt.Errorf("%w: north", strata.ErrStratumNotFound))

		req := newRequest(http.MethodPatch, "/plans/plan-1/strata/north",
			strings.NewReader(`{"name": "Renamed"}`), params)
		rec := httptest.NewRecorder()
		NewHandler(svc).UpdateStratum(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("negative population", func(t *testing.T) {
		svc := new(mockPlanService)

		req := newRequest(http.MethodPatch, "/plans/plan-1/strata/north",
			strings.NewReader(`{"population": -5}`), params)
		rec := httptest.NewRecorder()
		NewHandler(svc).UpdateStratum(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "UpdateStratum")
	})

	t.Run("remove", func(t *testing.T) {
		svc := new(mockPlanService)
		svc.On("RemoveStratum", mock.Anything, "plan-1", "north").Return(nil)

		req := newRequest(http.MethodDelete, "/plans/plan-1/strata/north", nil, params)
		rec := httptest.NewRecorder()
		NewHandler(svc).RemoveStratum(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		svc.AssertExpectations(t)
	})
}

func TestAllocation(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		method domain.AllocationMethod
		result domain.Allocation
		err    error
		status int
	}{
		{
			name:   "default method",
			method: "",
			result: domain.Allocation{Method: domain.AllocationProportional, TargetSample: 400, Allocated: 400},
			status: http.StatusOK,
		},
		{
			name:   "largest remainder",
			query:  "?method=largest_remainder",
			method: domain.AllocationLargestRemainder,
			result: domain.Allocation{Method: domain.AllocationLargestRemainder, TargetSample: 400, Allocated: 400},
			status: http.StatusOK,
		},
		{
			name:   "empty plan",
			method: "",
			err:    fmt.Errorf("no population: %w", formula.ErrNotComputable),
			status: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockPlanService)
			svc.On("Allocate", mock.Anything, "plan-1", tt.method).Return(tt.result, tt.err)

			req := newRequest(http.MethodGet, "/plans/plan-1/allocation"+tt.query, nil, map[string]string{"plan": "plan-1"})
			rec := httptest.NewRecorder()
			NewHandler(svc).Allocation(rec, req)

			require.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				var res api.AllocationResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
				assert.Equal(t, string(tt.result.Method), res.Method)
			}
			svc.AssertExpectations(t)
		})
	}
}
