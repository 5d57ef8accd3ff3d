// Package metrics exposes the Prometheus instrumentation of the service on a
// private registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg                *prometheus.Registry
	OrdersCreated      prometheus.Counter
	OrderTransitions   prometheus.Counter
	EventsPublished    prometheus.Counter
	PublishFailures    prometheus.Counter
	EventsDispatched   prometheus.Counter
	EventsDropped      prometheus.Counter
	ConnectionsOpen    prometheus.Gauge
	TenantActiveOrders *prometheus.GaugeVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_created_total"})
	orderTransitions := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_transitions_total"})
	eventsPublished := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_events_published_total"})
	publishFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_events_publish_failures_total"})
	eventsDispatched := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_events_dispatched_total"})
	eventsDropped := prometheus.NewCounter(prometheus.CounterOpts{Name: "orders_events_dropped_total"})
	connectionsOpen := prometheus.NewGauge(prometheus.GaugeOpts{Name: "orders_stream_connections_open"})
	tenantActiveOrders := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "orders_tenant_active_orders"},
		[]string{"tenant_id"},
	)

	r.MustRegister(
		ordersCreated, orderTransitions, eventsPublished, publishFailures,
		eventsDispatched, eventsDropped, connectionsOpen, tenantActiveOrders,
	)
	return &Registry{
		reg:                r,
		OrdersCreated:      ordersCreated,
		OrderTransitions:   orderTransitions,
		EventsPublished:    eventsPublished,
		PublishFailures:    publishFailures,
		EventsDispatched:   eventsDispatched,
		EventsDropped:      eventsDropped,
		ConnectionsOpen:    connectionsOpen,
		TenantActiveOrders: tenantActiveOrders,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
