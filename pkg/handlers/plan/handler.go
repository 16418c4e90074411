package plan

import (
	"errors"
	"net/http"

	"github.com/de-tools/survey-atlas/pkg/adapters"
	"github.com/de-tools/survey-atlas/pkg/handlers/render"
	"github.com/de-tools/survey-atlas/pkg/models/api"
	"github.com/de-tools/survey-atlas/pkg/models/domain"
	"github.com/de-tools/survey-atlas/pkg/services/strata"
	"github.com/de-tools/survey-atlas/pkg/services/stratification"
	planstore "github.com/de-tools/survey-atlas/pkg/store/plan"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	plans stratification.Service
}

func NewHandler(plans stratification.Service) *Handler {
	return &Handler{plans: plans}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, planstore.ErrPlanNotFound) || errors.Is(err, strata.ErrStratumNotFound) {
		render.Error(w, r, http.StatusNotFound, err)
		return
	}
	render.CalculatorError(w, r, err)
}

func (h *Handler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req api.CreatePlanRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	p, err := h.plans.CreatePlan(r.Context(), req.Name, req.TargetSample, adapters.MapStrataApiToDomain(req.Strata))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusCreated, adapters.MapPlanDomainToApi(p))
}

func (h *Handler) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := h.plans.ListPlans(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := make([]api.Plan, 0, len(plans))
	for _, p := range plans {
		response = append(response, adapters.MapPlanDomainToApi(p))
	}
	render.JSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	p, err := h.plans.GetPlan(r.Context(), chi.URLParam(r, "plan"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapPlanDomainToApi(p))
}

func (h *Handler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var req api.UpdatePlanRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	update := stratification.PlanUpdate{Name: req.Name, TargetSample: req.TargetSample}
	p, err := h.plans.UpdatePlan(r.Context(), chi.URLParam(r, "plan"), update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapPlanDomainToApi(p))
}

func (h *Handler) DeletePlan(w http.ResponseWriter, r *http.Request) {
	if err := h.plans.DeletePlan(r.Context(), chi.URLParam(r, "plan")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddStratum(w http.ResponseWriter, r *http.Request) {
	var req api.AddStratumRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	s, err := h.plans.AddStratum(r.Context(), chi.URLParam(r, "plan"), req.Name, req.Population)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusCreated, adapters.MapStratumDomainToApi(s))
}

func (h *Handler) UpdateStratum(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateStratumRequest
	if err := render.Decode(w, r, &req); err != nil {
		render.Error(w, r, http.StatusBadRequest, err)
		return
	}

	patch := domain.StratumPatch{Name: req.Name, Population: req.Population}
	s, err := h.plans.UpdateStratum(r.Context(), chi.URLParam(r, "plan"), chi.URLParam(r, "stratum"), patch)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapStratumDomainToApi(s))
}

func (h *Handler) RemoveStratum(w http.ResponseWriter, r *http.Request) {
	err := h.plans.RemoveStratum(r.Context(), chi.URLParam(r, "plan"), chi.URLParam(r, "stratum"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Allocation(w http.ResponseWriter, r *http.Request) {
	method := domain.AllocationMethod(r.URL.Query().Get("method"))

	alloc, err := h.plans.Allocate(r.Context(), chi.URLParam(r, "plan"), method)
	if err != nil {
		writeError(w, r, err)
		return
	}
	render.JSON(w, r, http.StatusOK, adapters.MapAllocationDomainToApi(alloc))
}
