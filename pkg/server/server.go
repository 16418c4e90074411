package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	calchandlers "github.com/de-tools/survey-atlas/pkg/handlers/calculator"
	planhandlers "github.com/de-tools/survey-atlas/pkg/handlers/plan"
	"github.com/de-tools/survey-atlas/pkg/monitoring"
	surveymiddleware "github.com/de-tools/survey-atlas/pkg/server/middleware"
	"github.com/de-tools/survey-atlas/pkg/services/calculator"
	"github.com/de-tools/survey-atlas/pkg/services/presets"
	"github.com/de-tools/survey-atlas/pkg/services/stratification"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Calculator calculator.Service
	Plans      stratification.Service
	Presets    presets.Registry
	Metrics    *monitoring.Metrics
	// Gatherer backs /metrics. The endpoint is not mounted when nil.
	Gatherer prometheus.Gatherer
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	calcHandler := calchandlers.NewHandler(deps.Calculator, deps.Presets)
	planHandler := planhandlers.NewHandler(deps.Plans)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(surveymiddleware.Logger(&deps.Logger))
	router.Use(surveymiddleware.Metrics(deps.Metrics))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/sample-size", calcHandler.SampleSize)
		r.Post("/margin-of-error", calcHandler.MarginOfError)
		r.Post("/ab-test", calcHandler.ABTest)
		r.Post("/stratified", calcHandler.Stratified)
		r.Post("/field-cost", calcHandler.FieldCost)
		r.Post("/demand", calcHandler.Demand)

		r.Get("/confidence-levels", calcHandler.ConfidenceLevels)
		r.Get("/presets", calcHandler.ListPresets)
		r.Get("/presets/{preset}", calcHandler.GetPreset)

		r.Route("/plans", func(r chi.Router) {
			r.Post("/", planHandler.CreatePlan)
			r.Get("/", planHandler.ListPlans)

			r.Route("/{plan}", func(r chi.Router) {
				r.Get("/", planHandler.GetPlan)
				r.Patch("/", planHandler.UpdatePlan)
				r.Delete("/", planHandler.DeletePlan)
				r.Get("/allocation", planHandler.Allocation)

				r.Post("/strata", planHandler.AddStratum)
				r.Patch("/strata/{stratum}", planHandler.UpdateStratum)
				r.Delete("/strata/{stratum}", planHandler.RemoveStratum)
			})
		})
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		shutdownTimeout: timeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
