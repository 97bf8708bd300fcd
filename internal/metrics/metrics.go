// Package metrics exposes Prometheus instrumentation for analyses and the
// HTTP API. Each Metrics owns its registry so tests and multiple servers
// never collide on registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "uniguide"

// Metrics holds the Prometheus collectors for analyses, model estimates
// and HTTP traffic. Recording on a nil *Metrics is a no-op.
type Metrics struct {
	registry *prometheus.Registry

	assessmentsTotal   *prometheus.CounterVec
	assessmentDuration prometheus.Histogram
	mlEstimatesTotal   *prometheus.CounterVec
	mlAgreementTotal   *prometheus.CounterVec
	recordErrors       prometheus.Counter
	httpRequestsTotal  *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		assessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Analyses completed by status code and final risk tier.",
		}, []string{"status", "tier"}),
		assessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_duration_seconds",
			Help:      "Wall-clock time of one analysis including model inference.",
			Buckets:   prometheus.DefBuckets,
		}),
		mlEstimatesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ml_estimates_total",
			Help:      "Model estimates by availability and predicted label.",
		}, []string{"status", "label"}),
		mlAgreementTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ml_agreement_total",
			Help:      "Available model estimates by whether they match the rule band.",
		}, []string{"agrees"}),
		recordErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "audit_record_errors_total",
			Help:      "Audit events that failed to persist.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Histogram of HTTP request durations by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.assessmentsTotal,
		m.assessmentDuration,
		m.mlEstimatesTotal,
		m.mlAgreementTotal,
		m.recordErrors,
		m.httpRequestsTotal,
		m.httpDuration,
	)
	return m
}

// Registry returns the registry all metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveAssessment records one finished analysis.
func (m *Metrics) ObserveAssessment(status int, tier string, d time.Duration) {
	if m == nil {
		return
	}
	m.assessmentsTotal.WithLabelValues(strconv.Itoa(status), tier).Inc()
	m.assessmentDuration.Observe(d.Seconds())
}

// ObserveEstimate records the outcome of one model estimate. agrees is
// only counted for available estimates.
func (m *Metrics) ObserveEstimate(status, label string, agrees bool) {
	if m == nil {
		return
	}
	m.mlEstimatesTotal.WithLabelValues(status, label).Inc()
	if status == "available" {
		m.mlAgreementTotal.WithLabelValues(strconv.FormatBool(agrees)).Inc()
	}
}

// RecordError counts an audit event that could not be persisted.
func (m *Metrics) RecordError() {
	if m == nil {
		return
	}
	m.recordErrors.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler counts and times requests to next under the route label.
func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		}
	})
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
