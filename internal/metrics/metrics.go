package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Operation results recorded by ObserveOperation.
const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultFailure  = "failure"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	operations *prometheus.CounterVec
	requests   *prometheus.HistogramVec
}

// NewRegistry returns a registry holding the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "katalog",
			Name:      "product_operations_total",
			Help:      "Total number of product operations by operation and result.",
		}, []string{"operation", "result"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "katalog",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	reg.MustRegister(m.operations, m.requests)
	return m
}

// ObserveOperation counts one product operation. A nil Metrics is a no-op.
func (m *Metrics) ObserveOperation(operation, result string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

// ObserveRequest records the duration of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}
