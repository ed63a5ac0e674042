// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the facility collectors. Each instance owns its own
// registry so tests and multiple services never collide on the default one.
type Metrics struct {
	Registry *prometheus.Registry

	BedsAllocated  prometheus.Counter
	BedsWaitlisted prometheus.Counter
	BedsReleased   prometheus.Counter
	StaffResizes   prometheus.Counter
	BillsSettled   prometheus.Counter
	BillsPending   prometheus.Gauge
	HTTPRequests   *prometheus.CounterVec
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		BedsAllocated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facility_beds_allocated_total",
			Help: "Total number of successful bed allocations",
		}),
		BedsWaitlisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facility_beds_waitlisted_total",
			Help: "Total number of patients put on the waiting list",
		}),
		BedsReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facility_beds_released_total",
			Help: "Total number of beds released back to the pool",
		}),
		StaffResizes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facility_staff_resizes_total",
			Help: "Total number of staff directory table growths",
		}),
		BillsSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "facility_bills_settled_total",
			Help: "Total number of bills moved to the settled list",
		}),
		BillsPending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "facility_bills_pending",
			Help: "Number of unpaid bills",
		}),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "facility_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
	}
	m.Registry.MustRegister(
		m.BedsAllocated,
		m.BedsWaitlisted,
		m.BedsReleased,
		m.StaffResizes,
		m.BillsSettled,
		m.BillsPending,
		m.HTTPRequests,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
