// Package metrics holds the Prometheus collectors of the farm backend.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SlotSaves counts record store writes by slot and result ("ok" or "error").
	SlotSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farm_record_slot_saves_total",
		Help: "Record store slot saves by slot and result.",
	}, []string{"slot", "result"})

	// CheckinTodaySubmitted is 1 when today's check-in exists, set by the reminder job.
	CheckinTodaySubmitted = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "farm_checkin_today_submitted",
		Help: "Whether the check-in for the current day has been submitted.",
	})

	// HTTPRequests counts served requests by method, route template and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "farm_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route template.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "farm_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// Result labels.
const (
	ResultOK    = "ok"
	ResultError = "error"
)
