package vndb

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records Prometheus metrics for every dispatched request.
// A nil *Metrics records nothing.
type Metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight *prometheus.GaugeVec
	permitWait       prometheus.Histogram
	errorsTotal      *prometheus.CounterVec
}

// NewMetrics registers the collectors on registerer
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vndb_requests_total",
				Help: "Total number of VNDB API requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vndb_request_duration_seconds",
				Help:    "Duration of VNDB API requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		requestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vndb_requests_in_flight",
				Help: "Number of VNDB API requests holding a permit",
			},
			[]string{"endpoint"},
		),
		permitWait: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vndb_permit_wait_seconds",
				Help:    "Time spent waiting for a concurrency permit",
				Buckets: prometheus.DefBuckets,
			},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vndb_errors_total",
				Help: "Total number of failed VNDB API requests by kind",
			},
			[]string{"endpoint", "kind"},
		),
	}
}

func (m *Metrics) recordRequest(method string, endpoint Endpoint, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, endpoint.String(), strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, endpoint.String()).Observe(d.Seconds())
}

func (m *Metrics) recordError(endpoint Endpoint, kind string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(endpoint.String(), kind).Inc()
}

func (m *Metrics) recordPermitWait(d time.Duration) {
	if m == nil {
		return
	}
	m.permitWait.Observe(d.Seconds())
}

func (m *Metrics) inFlight(endpoint Endpoint, delta float64) {
	if m == nil {
		return
	}
	m.requestsInFlight.WithLabelValues(endpoint.String()).Add(delta)
}
