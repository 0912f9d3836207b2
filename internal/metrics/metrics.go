package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pong"

// Metrics tracks request and payload counters on a private registry
type Metrics struct {
	registry *prometheus.Registry

	requests         *prometheus.CounterVec
	savedPayloads    prometheus.Counter
	rejectedPayloads prometheus.Counter
}

// NewMetrics creates a new metrics instance
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
		savedPayloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saved_payloads_total",
			Help:      "Payloads accepted by the save-data endpoint.",
		}),
		rejectedPayloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejected_payloads_total",
			Help:      "Payloads rejected by the save-data endpoint.",
		}),
	}
	m.registry.MustRegister(m.requests, m.savedPayloads, m.rejectedPayloads)
	return m
}

// ObserveRequest counts one served request
func (m *Metrics) ObserveRequest(route string, code int) {
	m.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// IncrementSavedPayloads increments the accepted payload counter
func (m *Metrics) IncrementSavedPayloads() {
	m.savedPayloads.Inc()
}

// IncrementRejectedPayloads increments the rejected payload counter
func (m *Metrics) IncrementRejectedPayloads() {
	m.rejectedPayloads.Inc()
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// GetSnapshot returns counter totals keyed by metric name, summed over labels
func (m *Metrics) GetSnapshot() map[string]int64 {
	snapshot := map[string]int64{
		namespace + "_http_requests_total":     0,
		namespace + "_saved_payloads_total":    0,
		namespace + "_rejected_payloads_total": 0,
	}

	families, err := m.registry.Gather()
	if err != nil {
		return snapshot
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			if c := metric.GetCounter(); c != nil {
				snapshot[mf.GetName()] += int64(c.GetValue())
			}
		}
	}
	return snapshot
}
