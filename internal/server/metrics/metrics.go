// Package metrics holds the Prometheus collectors of agroadmin.
package metrics

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agroadmin"

// Metrics groups every collector. A nil *Metrics is valid and records nothing.
type Metrics struct {
	AttachmentUploads  *prometheus.CounterVec
	AttachmentCleanups *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	GRPCRequests       *prometheus.CounterVec
	GRPCDuration       *prometheus.HistogramVec
	DBConnPool         *prometheus.GaugeVec
}

// New registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		AttachmentUploads: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attachment_uploads_total",
				Help:      "Attachment upload attempts by outcome",
			},
			[]string{"outcome"},
		),
		AttachmentCleanups: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attachment_cleanups_total",
				Help:      "Attachment removals after record deletion by outcome",
			},
			[]string{"outcome"},
		),
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		GRPCRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "grpc",
				Name:      "requests_total",
				Help:      "Total number of gRPC requests",
			},
			[]string{"method", "code"},
		),
		GRPCDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "grpc",
				Name:      "request_duration_seconds",
				Help:      "gRPC request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		DBConnPool: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connection_pool",
				Help:      "Database connection pool statistics",
			},
			[]string{"stat"},
		),
	}
}

func (m *Metrics) AttachmentUpload(outcome string) {
	if m == nil {
		return
	}
	m.AttachmentUploads.WithLabelValues(outcome).Inc()
}

func (m *Metrics) AttachmentCleanup(outcome string) {
	if m == nil {
		return
	}
	m.AttachmentCleanups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveHTTP(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) ObserveGRPC(method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.GRPCRequests.WithLabelValues(method, code).Inc()
	m.GRPCDuration.WithLabelValues(method).Observe(seconds)
}

// RecordDBStats copies the pool statistics into the DBConnPool gauge.
func (m *Metrics) RecordDBStats(s sql.DBStats) {
	if m == nil {
		return
	}
	m.DBConnPool.WithLabelValues("open").Set(float64(s.OpenConnections))
	m.DBConnPool.WithLabelValues("in_use").Set(float64(s.InUse))
	m.DBConnPool.WithLabelValues("idle").Set(float64(s.Idle))
	m.DBConnPool.WithLabelValues("wait_count").Set(float64(s.WaitCount))
}
