package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Calculation outcomes.
const (
	OutcomeOK            = "ok"
	OutcomeNotComputable = "not_computable"
	OutcomeInvalid       = "invalid"
)

// Metrics holds the Prometheus collectors of the service
type Metrics struct {
	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// Calculator metrics
	CalculationsTotal *prometheus.CounterVec

	// Plan metrics
	PlansActive prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "survey_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "survey_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "route"},
		),
		CalculationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "survey_calculations_total",
				Help: "Total number of calculator evaluations by outcome",
			},
			[]string{"calculator", "outcome"},
		),
		PlansActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "survey_plans_active",
				Help: "Number of stratification plans held in memory",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.CalculationsTotal, m.PlansActive)
	}
	return m
}

// RecordRequest records an HTTP request. Safe on a nil receiver.
func (m *Metrics) RecordRequest(method, route, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, route, status).Inc()
	m.RequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordCalculation counts a calculator evaluation. Safe on a nil receiver.
func (m *Metrics) RecordCalculation(calculator, outcome string) {
	if m == nil {
		return
	}
	m.CalculationsTotal.WithLabelValues(calculator, outcome).Inc()
}

// SetPlans sets the number of plans held in memory. Safe on a nil receiver.
func (m *Metrics) SetPlans(n int) {
	if m == nil {
		return
	}
	m.PlansActive.Set(float64(n))
}
