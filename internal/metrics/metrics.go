// Package metrics defines Prometheus metrics for the salon admin API.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "salon_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ChangeLogWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_change_log_writes_total",
			Help: "Change log writes by entity type and result",
		},
		[]string{"entity_type", "result"},
	)

	SnapshotRefreshes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_snapshot_refreshes_total",
			Help: "Appointment snapshot refreshes by result",
		},
		[]string{"result"},
	)

	AuditQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "salon_audit_queue_depth",
			Help: "Pending events in the async audit queue",
		},
	)

	AuditEventsDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "salon_audit_events_dropped_total",
			Help: "Audit events dropped because the async queue was full",
		},
	)

	ArchiveUploads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_archive_uploads_total",
			Help: "Change log archive uploads by result",
		},
		[]string{"result"},
	)

	PermissionCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "salon_permission_cache_lookups_total",
			Help: "Permission cache lookups by result",
		},
		[]string{"result"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal,
		ChangeLogWrites, SnapshotRefreshes,
		AuditQueueDepth, AuditEventsDropped,
		ArchiveUploads, PermissionCacheLookups,
	)
}
