package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnect_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FeedQueryLatency records feed assembly latency bucketed by follow-set size.
	FeedQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "devconnect_feed_query_latency_seconds",
		Help:    "Feed query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})

	// EngagementEvents counts domain engagement events by type.
	EngagementEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_engagement_events_total",
		Help: "Total engagement events (likes, follows, comments) by type",
	}, []string{"event_type"})

	// CacheRequests counts cache lookups by key class and outcome (hit/miss).
	CacheRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "devconnect_cache_requests_total",
		Help: "Total cache lookups by key class and outcome",
	}, []string{"key_class", "outcome"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

// ObserveFeedQuery records how long a feed page took to assemble.
func ObserveFeedQuery(source string, start time.Time) {
	FeedQueryLatency.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// RecordEngagement increments the engagement counter for the event type.
func RecordEngagement(eventType string) {
	EngagementEvents.WithLabelValues(eventType).Inc()
}

// RecordCacheHit records a cache hit for the key class.
func RecordCacheHit(keyClass string) {
	CacheRequests.WithLabelValues(keyClass, "hit").Inc()
}

// RecordCacheMiss records a cache miss for the key class.
func RecordCacheMiss(keyClass string) {
	CacheRequests.WithLabelValues(keyClass, "miss").Inc()
}
