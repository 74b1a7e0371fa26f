package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Provider call outcomes.
const (
	OutcomeSuccess           = "success"
	OutcomeUpstreamError     = "upstream_error"
	OutcomeTimeout           = "timeout"
	OutcomeTransportError    = "transport_error"
	OutcomeMalformedResponse = "malformed_response"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	providerRequests  *prometheus.CounterVec
	providerDurations *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Inbound HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Inbound HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "wiinpay_requests_total",
			Help: "Outbound WiinPay calls by outcome.",
		}, []string{"outcome"}),
		providerDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wiinpay_request_duration_seconds",
			Help:    "Outbound WiinPay call latency.",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
	}

	m.registry.MustRegister(m.httpRequests, m.httpDuration, m.providerRequests, m.providerDurations)
	return m
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveProviderCall(outcome string, elapsed time.Duration) {
	m.providerRequests.WithLabelValues(outcome).Inc()
	m.providerDurations.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
