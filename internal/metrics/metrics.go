package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "librarydesk"

// Recorder owns the application's Prometheus collectors.
type Recorder struct {
	registry     *prometheus.Registry
	operations   *prometheus.CounterVec
	activeLoans  prometheus.Gauge
	httpRequests *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_operations_total",
			Help:      "Catalog mutations by operation and result.",
		}, []string{"op", "result"}),
		activeLoans: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_loans",
			Help:      "Books currently lent out.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method and status code.",
		}, []string{"method", "status"}),
	}
	reg.MustRegister(
		r.operations,
		r.activeLoans,
		r.httpRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveOperation counts one catalog mutation. result is "ok" or an error kind.
func (r *Recorder) ObserveOperation(op, result string) {
	r.operations.WithLabelValues(op, result).Inc()
}

func (r *Recorder) SetActiveLoans(n int) {
	r.activeLoans.Set(float64(n))
}

func (r *Recorder) ObserveRequest(method string, status int) {
	r.httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
