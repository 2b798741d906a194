package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	ordersSubmitted *prometheus.CounterVec
	orderTotal      prometheus.Histogram
	cartMutations   *prometheus.CounterVec
	remoteErrors    *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		ordersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "menulink",
			Name:      "orders_submitted_total",
			Help:      "Orders formatted and handed to WhatsApp.",
		}, []string{"delivery_type", "payment_method"}),
		orderTotal: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "menulink",
			Name:      "order_total_amount",
			Help:      "Order totals in currency units.",
			Buckets:   prometheus.ExponentialBuckets(5000, 2, 10),
		}),
		cartMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "menulink",
			Name:      "cart_mutations_total",
			Help:      "Cart operations by kind.",
		}, []string{"op"}),
		remoteErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "menulink",
			Name:      "remote_api_errors_total",
			Help:      "Failed calls to the menu API by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(
		m.ordersSubmitted,
		m.orderTotal,
		m.cartMutations,
		m.remoteErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) OrderSubmitted(deliveryType, paymentMethod string, total int64) {
	m.ordersSubmitted.WithLabelValues(deliveryType, paymentMethod).Inc()
	m.orderTotal.Observe(float64(total))
}

func (m *Metrics) CartMutation(op string) {
	m.cartMutations.WithLabelValues(op).Inc()
}

func (m *Metrics) RemoteError(op string) {
	m.remoteErrors.WithLabelValues(op).Inc()
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
