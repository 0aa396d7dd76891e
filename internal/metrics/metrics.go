// Package metrics holds the prometheus collectors for checkout outcomes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Checkout results.
const (
	ResultPlaced             = "placed"
	ResultBasketNotFound     = "basket_not_found"
	ResultEmptyBasket        = "empty_basket"
	ResultInvalidItem        = "invalid_item"
	ResultCatalogItemMissing = "catalog_item_missing"
	ResultPersistenceFailed  = "persistence_failed"
	ResultCancelled          = "cancelled"
	ResultFailed             = "failed"

	ResultSent    = "sent"
	ResultTimeout = "timeout"
)

// Registry groups the checkout collectors.
type Registry struct {
	reg *prometheus.Registry

	Orders       *prometheus.CounterVec
	Reservations *prometheus.CounterVec
	Deliveries   *prometheus.CounterVec
	Duration     prometheus.Histogram
}

// NewRegistry creates collectors registered in a fresh registry.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "orders_total",
		Help:      "Checkout attempts by result.",
	}, []string{"result"})
	reservations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "reservation_publish_total",
		Help:      "Item reservation publishes by result.",
	}, []string{"result"})
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "checkout",
		Name:      "delivery_notify_total",
		Help:      "Delivery notifications by result.",
	}, []string{"result"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "checkout",
		Name:      "duration_seconds",
		Help:      "Checkout latency including side effects.",
		Buckets:   prometheus.DefBuckets,
	})

	r.MustRegister(orders, reservations, deliveries, duration)

	return &Registry{
		reg:          r,
		Orders:       orders,
		Reservations: reservations,
		Deliveries:   deliveries,
		Duration:     duration,
	}
}

// Handler exposes the registry in the prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// IncOrder counts a checkout attempt. Safe on a nil registry.
func (r *Registry) IncOrder(result string) {
	if r == nil {
		return
	}
	r.Orders.WithLabelValues(result).Inc()
}

// IncReservation counts a reservation publish. Safe on a nil registry.
func (r *Registry) IncReservation(result string) {
	if r == nil {
		return
	}
	r.Reservations.WithLabelValues(result).Inc()
}

// IncDelivery counts a delivery notification. Safe on a nil registry.
func (r *Registry) IncDelivery(result string) {
	if r == nil {
		return
	}
	r.Deliveries.WithLabelValues(result).Inc()
}

// ObserveDuration records a checkout latency. Safe on a nil registry.
func (r *Registry) ObserveDuration(d time.Duration) {
	if r == nil {
		return
	}
	r.Duration.Observe(d.Seconds())
}
