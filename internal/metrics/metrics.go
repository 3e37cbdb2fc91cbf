// Package metrics exposes storefront counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements shop.Recorder on a dedicated registry.
type Metrics struct {
	registry      *prometheus.Registry
	cartMutations *prometheus.CounterVec
	checkouts     prometheus.Counter
	unitsSold     prometheus.Counter
	rejections    *prometheus.CounterVec
	cartLines     prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_cart_mutations_total",
			Help: "Cart mutations by operation.",
		}, []string{"op"}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_checkouts_total",
			Help: "Completed purchases, including buy-now.",
		}),
		unitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "storefront_units_sold_total",
			Help: "Units sold across all purchases.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storefront_rejections_total",
			Help: "Operations rejected by a failed precondition.",
		}, []string{"reason"}),
		cartLines: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "storefront_cart_lines",
			Help: "Lines currently in the cart.",
		}),
	}
	m.registry.MustRegister(
		m.cartMutations,
		m.checkouts,
		m.unitsSold,
		m.rejections,
		m.cartLines,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) CartMutation(op string) {
	m.cartMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) Checkout(units int) {
	m.checkouts.Inc()
	m.unitsSold.Add(float64(units))
}

func (m *Metrics) Rejection(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *Metrics) CartLines(n int) {
	m.cartLines.Set(float64(n))
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
