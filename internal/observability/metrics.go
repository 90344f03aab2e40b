// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skillshare"

var (
	// NotificationsTotal counts stored notifications by kind.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of notifications recorded by kind",
	}, []string{"kind"})

	// NotificationPublishFailures counts real-time deliveries that could not be published.
	NotificationPublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_publish_failures_total",
		Help:      "Total number of notifications stored but not published for live delivery",
	})

	// FollowOperations counts follow and unfollow calls by outcome.
	FollowOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "follow_operations_total",
		Help:      "Total follow graph mutations by operation and result",
	}, []string{"op", "result"})

	// MediaOperations counts media store calls by outcome.
	MediaOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "media_operations_total",
		Help:      "Total media storage operations by operation and result",
	}, []string{"op", "result"})

	// RedisCommands counts Redis commands by name and result.
	RedisCommands = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redis_commands_total",
		Help:      "Total Redis commands by command and result",
	}, []string{"cmd", "result"})

	// CacheLookups counts cache-aside lookups by outcome.
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "database_query_latency_seconds",
		Help:      "Database query latency in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnections is the gauge of open notification sockets.
	WebSocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_connections",
		Help:      "Number of active notification WebSocket connections",
	})

	// WebSocketDrops counts messages dropped because a client's send buffer was full.
	WebSocketDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "websocket_drops_total",
		Help:      "Total number of WebSocket messages dropped",
	}, []string{"reason"})
)

// Result converts an error into a metric label.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	if table == "" {
		table = "unknown"
	}
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
