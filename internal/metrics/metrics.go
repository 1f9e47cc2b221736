package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	SearchRequestsTotal   *prometheus.CounterVec
	SearchRequestDuration *prometheus.HistogramVec

	ProbeAttemptsTotal *prometheus.CounterVec
	ResolutionsTotal   *prometheus.CounterVec

	RunsTotal     *prometheus.CounterVec
	RunItemsTotal *prometheus.CounterVec

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	RateLimitHitsTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре, вызывать один раз на процесс.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_requests_total",
				Help: "Total number of lookups processed",
			},
			[]string{"type", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boolsearch_request_duration_seconds",
				Help:    "Lookup duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"type"},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "boolsearch_requests_in_flight",
				Help: "Number of lookups currently being processed",
			},
		),

		SearchRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_search_requests_total",
				Help: "Total number of search provider requests",
			},
			[]string{"provider", "engine", "status"},
		),
		SearchRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boolsearch_search_request_duration_seconds",
				Help:    "Search provider request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"provider"},
		),

		ProbeAttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_probe_attempts_total",
				Help: "Total number of direct fetch attempts",
			},
			[]string{"step", "status"},
		),
		ResolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_resolutions_total",
				Help: "Resolved lookups by routing class and outcome",
			},
			[]string{"class", "outcome"},
		),

		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_runs_total",
				Help: "Total number of batch runs",
			},
			[]string{"status"},
		),
		RunItemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_run_items_total",
				Help: "Batch run items by outcome",
			},
			[]string{"outcome"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_http_requests_total",
				Help: "Total number of HTTP API requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "boolsearch_http_request_duration_seconds",
				Help:    "HTTP API request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"route"},
		),

		RateLimitHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "boolsearch_rate_limit_hits_total",
				Help: "Total number of rate limit hits",
			},
			[]string{"source"},
		),
	}

	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor - для отдельного реестра (тесты, встраивание).
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordRequest(reqType, status string, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(reqType, status).Inc()
	m.RequestDuration.WithLabelValues(reqType).Observe(duration.Seconds())
}

func (m *Metrics) RecordSearchRequest(provider, engine, status string, duration time.Duration) {
	m.SearchRequestsTotal.WithLabelValues(provider, engine, status).Inc()
	m.SearchRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

func (m *Metrics) RecordProbeAttempt(step, status string) {
	m.ProbeAttemptsTotal.WithLabelValues(step, status).Inc()
}

func (m *Metrics) RecordResolution(class, outcome string) {
	m.ResolutionsTotal.WithLabelValues(class, outcome).Inc()
}

func (m *Metrics) RecordRun(status string) {
	m.RunsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordRunItem(outcome string) {
	m.RunItemsTotal.WithLabelValues(outcome).Inc()
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (m *Metrics) RecordRateLimitHit(source string) {
	m.RateLimitHitsTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) IncRequestsInFlight() {
	m.RequestsInFlight.Inc()
}

func (m *Metrics) DecRequestsInFlight() {
	m.RequestsInFlight.Dec()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
