// Package metrics provides Prometheus metrics for the portal.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the portal.
type Metrics struct {
	RequestsTotal        *prometheus.CounterVec
	TaskMutationsTotal   *prometheus.CounterVec
	ContactMessagesTotal prometheus.Counter
	NotificationsUnread  prometheus.Gauge

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_requests_total",
				Help: "Total number of portal API requests by route and status.",
			},
			[]string{"route", "status"},
		),
		TaskMutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_task_mutations_total",
				Help: "Total task mutations by operation and result.",
			},
			[]string{"op", "result"},
		),
		ContactMessagesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "portal_contact_messages_total",
				Help: "Total contact-form messages accepted.",
			},
		),
		NotificationsUnread: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "portal_notifications_unread",
				Help: "Unread notifications in the current session feed.",
			},
		),
		registry: reg,
	}

	reg.MustRegister(m.RequestsTotal)
	reg.MustRegister(m.TaskMutationsTotal)
	reg.MustRegister(m.ContactMessagesTotal)
	reg.MustRegister(m.NotificationsUnread)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRequest increments the request counter.
func (m *Metrics) RecordRequest(route, status string) {
	m.RequestsTotal.WithLabelValues(route, status).Inc()
}

// RecordMutation increments the task mutation counter.
func (m *Metrics) RecordMutation(op, result string) {
	m.TaskMutationsTotal.WithLabelValues(op, result).Inc()
}
