// Package metrics holds the Prometheus collectors of the ordering service.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ordering"

type Metrics struct {
	LoaderQueries *prometheus.HistogramVec
	LoadedRoots   *prometheus.HistogramVec
	OrderEvents   *prometheus.CounterVec
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	loaderQueries := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "loader",
		Name:      "queries_per_load",
		Help:      "Store queries issued to answer one order listing.",
		Buckets:   []float64{1, 2, 3, 5, 10, 25, 50, 100, 250},
	}, []string{"strategy"})
	loadedRoots := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "loader",
		Name:      "roots_per_load",
		Help:      "Orders returned by one order listing.",
		Buckets:   []float64{0, 1, 10, 50, 100, 500, 1000},
	}, []string{"strategy"})
	orderEvents := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "orders",
		Name:      "events_total",
		Help:      "Order lifecycle outcomes.",
	}, []string{"event", "reason"})

	reg.MustRegister(loaderQueries, loadedRoots, orderEvents)
	return &Metrics{
		LoaderQueries: loaderQueries,
		LoadedRoots:   loadedRoots,
		OrderEvents:   orderEvents,
	}
}

func (m *Metrics) ObserveLoad(strategy string, queries, roots int) {
	if m == nil {
		return
	}
	m.LoaderQueries.WithLabelValues(strategy).Observe(float64(queries))
	m.LoadedRoots.WithLabelValues(strategy).Observe(float64(roots))
}

func (m *Metrics) OrderPlaced() {
	m.orderEvent("placed", "")
}

func (m *Metrics) OrderCancelled() {
	m.orderEvent("cancelled", "")
}

func (m *Metrics) OrderRejected(reason string) {
	m.orderEvent("rejected", reason)
}

func (m *Metrics) DeliveriesCompleted(n int) {
	if m == nil {
		return
	}
	m.OrderEvents.WithLabelValues("delivered", "").Add(float64(n))
}

func (m *Metrics) orderEvent(event, reason string) {
	if m == nil {
		return
	}
	m.OrderEvents.WithLabelValues(event, reason).Inc()
}

// Handler serves the collectors registered on g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
