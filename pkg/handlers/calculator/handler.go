package calculator

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/de-tools/survey-atlas/pkg/adapters"
	"github.com/de-tools/survey-atlas/pkg/handlers/render"
	"github.com/de-tools/survey-atlas/pkg/models/api"
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/calculator"
	"github.com/de-tools/survey-atlas/pkg/services/formula"
	"github.com/de-tools/survey-atlas/pkg/services/presets"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	calc    calculator.Service
	presets presets.Registry
}

func NewHandler(calc calculator.Service, registry presets.Registry) *Handler {
	return &Handler{
		calc:    calc,
		presets: registry,
	}
}

// resolveZ picks the critical value from an explicit z, then from a
// confidence level, falling back to 95%.
func resolveZ(z, level *float64) (float64, error) {
	switch {
	case z != nil:
		return *z, nil
	case level != nil:
		return formula.ZForConfidence(*level)
	default:
		return formula.Z95, nil
	}
}

func (h *Handler) SampleSize(w http.ResponseWriter, r *http.Request) {
	var req api.SampleSizeRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	z, err := resolveZ(req.Z, req.ConfidenceLevel)
	if err != nil {
		render.CalculatorError(w, r, err)
		return
	}

	in := adapters.MapSampleSizeRequestToDomain(req, z)
	n, err := h.calc.SampleSize(r.Context(), in)
	if err != nil {
		render.CalculatorError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapSampleSizeDomainToApi(in, n))
}

func (h *Handler) MarginOfError(w http.ResponseWriter, r *http.Request) {
	var req api.MarginOfErrorRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	z, err := resolveZ(req.Z, req.ConfidenceLevel)
	if err != nil {
		render.CalculatorError(w, r, err)
		return
	}

	res := h.calc.MarginOfError(r.Context(), adapters.MapMarginOfErrorRequestToDomain(req, z))

	var interval *domain.Interval
	if req.Observed != nil {
		iv := formula.IntervalAround(*req.Observed, res.MarginOfError)
		interval = &iv
	}
	render.JSON(w, r, http.StatusOK, adapters.MapMarginOfErrorDomainToApi(res, z, interval))
}

func (h *Handler) ABTest(w http.ResponseWriter, r *http.Request) {
	var req api.ABTestRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := h.calc.ABTest(
		r.Context(),
		adapters.MapABGroupApiToDomain(req.A),
		adapters.MapABGroupApiToDomain(req.B),
	)
	if err != nil {
		render.CalculatorError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapABTestResultDomainToApi(res))
}

func (h *Handler) Stratified(w http.ResponseWriter, r *http.Request) {
	var req api.StratifiedRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	alloc, err := h.calc.Allocate(
		r.Context(),
		req.TargetSample,
		adapters.MapStrataApiToDomain(req.Strata),
		domain.AllocationMethod(req.Method),
	)
	if err != nil {
		render.CalculatorError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapAllocationDomainToApi(alloc))
}

func (h *Handler) FieldCost(w http.ResponseWriter, r *http.Request) {
	var req api.FieldCostRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	est, err := h.calc.FieldCost(r.Context(), adapters.MapFieldCostRequestToDomain(req))
	if err != nil {
		render.CalculatorError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapFieldCostDomainToApi(est))
}

func (h *Handler) Demand(w http.ResponseWriter, r *http.Request) {
	var req api.DemandRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	funnel, err := h.calc.DemandFunnel(r.Context(), adapters.MapDemandRequestToDomain(req))
	if err != nil {
		render.CalculatorError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapDemandFunnelDomainToApi(funnel))
}

func (h *Handler) ConfidenceLevels(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, http.StatusOK, adapters.MapConfidenceLevelsDomainToApi(formula.StandardLevels()))
}

func (h *Handler) ListPresets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	list := h.presets.List()
	response := make([]api.Preset, 0, len(list))
	for _, p := range list {
		n, err := h.calc.SampleSize(ctx, p.Input)
		if err != nil {
			render.CalculatorError(w, r, fmt.Errorf("preset %q: %w", p.Name, err))
			return
		}
		response = append(response, adapters.MapPresetDomainToApi(p, n))
	}
	render.JSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetPreset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	name := chi.URLParam(r, "preset")

	p, err := h.presets.Get(name)
	if err != nil {
		if errors.Is(err, presets.ErrPresetNotFound) {
			render.Error(w, r, http.StatusNotFound, err)
			return
		}
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("preset", name).
			Msg("failed to get preset")
		render.Error(w, r, http.StatusInternalServerError, err)
		return
	}

	n, err := h.calc.SampleSize(ctx, p.Input)
	if err != nil {
		render.CalculatorError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapPresetDomainToApi(p, n))
}
