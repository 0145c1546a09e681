package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Review engagement
	ReactionsTotal    *prometheus.CounterVec
	ReportsTotal      *prometheus.CounterVec
	AutoRemovalsTotal prometheus.Counter
	CommentsTotal     *prometheus.CounterVec
	WriteRetries      *prometheus.CounterVec

	// Cache
	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	// Rate limiting
	RateLimitHits prometheus.Counter
}

var (
	metrics *Metrics
	once    sync.Once
)

// Init registers all metrics with the default registry. Safe to call more than once.
func Init() *Metrics {
	once.Do(func() {
		metrics = &Metrics{
			HTTPRequestsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "http_requests_total",
					Help: "Total number of HTTP requests",
				},
				[]string{"method", "path", "status"},
			),
			HTTPRequestDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "http_request_duration_seconds",
					Help:    "HTTP request duration in seconds",
					Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
				},
				[]string{"method", "path"},
			),
			HTTPRequestsInFlight: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "http_requests_in_flight",
					Help: "Number of HTTP requests currently being processed",
				},
			),
			ReactionsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "review_reactions_total",
					Help: "Like/dislike toggles by kind and resulting state",
				},
				[]string{"kind", "state"},
			),
			ReportsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "review_reports_total",
					Help: "Accepted review reports by reason",
				},
				[]string{"reason"},
			),
			AutoRemovalsTotal: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "review_auto_removals_total",
					Help: "Reviews hidden after reaching the report threshold",
				},
			),
			CommentsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "review_comments_total",
					Help: "Comment operations",
				},
				[]string{"op"},
			),
			WriteRetries: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "review_write_retries_total",
					Help: "Optimistic-concurrency retries on review writes",
				},
				[]string{"op"},
			),
			CacheHits: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "review_cache_hits_total",
					Help: "Review cache hits",
				},
			),
			CacheMisses: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "review_cache_misses_total",
					Help: "Review cache misses",
				},
			),
			RateLimitHits: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "rate_limit_hits_total",
					Help: "Requests rejected by the rate limiter",
				},
			),
		}
	})
	return metrics
}

// Get returns the global metrics instance
func Get() *Metrics {
	return Init()
}

// GinHandler returns a Gin-compatible handler for Prometheus metrics
func GinHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// MetricsMiddleware is a Gin middleware for collecting HTTP metrics
func MetricsMiddleware() gin.HandlerFunc {
	m := Get()
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method

		m.HTTPRequestsInFlight.Inc()
		defer m.HTTPRequestsInFlight.Dec()

		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordReaction records a like/dislike toggle; active is the resulting state
func RecordReaction(kind string, active bool) {
	state := "off"
	if active {
		state = "on"
	}
	Get().ReactionsTotal.WithLabelValues(kind, state).Inc()
}

// RecordReport records an accepted report and, if it tipped the review over, a removal
func RecordReport(reason string, removedNow bool) {
	Get().ReportsTotal.WithLabelValues(reason).Inc()
	if removedNow {
		Get().AutoRemovalsTotal.Inc()
	}
}

// RecordComment records a comment create/delete
func RecordComment(op string) {
	Get().CommentsTotal.WithLabelValues(op).Inc()
}

// RecordWriteRetry records a version conflict that forced a re-read
func RecordWriteRetry(op string) {
	Get().WriteRetries.WithLabelValues(op).Inc()
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	Get().CacheHits.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	Get().CacheMisses.Inc()
}

// RecordRateLimitHit records a rejected request
func RecordRateLimitHit() {
	Get().RateLimitHits.Inc()
}
