package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlsqlchat_http_requests_total",
			Help: "Total number of HTTP requests served.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nlsqlchat_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	backendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlsqlchat_backend_requests_total",
			Help: "Requests sent to the NL-to-SQL backend by endpoint and outcome.",
		},
		[]string{"endpoint", "status"},
	)

	backendRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nlsqlchat_backend_request_duration_seconds",
			Help:    "Latency of backend calls.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)

	validationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nlsqlchat_validation_failures_total",
			Help: "Submissions rejected locally before reaching the backend.",
		},
		[]string{"kind"},
	)

	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "nlsqlchat_active_sessions",
			Help: "Sessions currently held in memory.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		backendRequestsTotal,
		backendRequestDurationSeconds,
		validationFailuresTotal,
		activeSessions,
	)
}

// ObserveBackend records one backend call. status is the HTTP status code, or 0 on transport failure.
func ObserveBackend(endpoint string, status int, elapsed time.Duration) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	backendRequestsTotal.WithLabelValues(endpoint, label).Inc()
	backendRequestDurationSeconds.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// ValidationFailure counts a locally rejected upload or query.
func ValidationFailure(kind string) {
	validationFailuresTotal.WithLabelValues(kind).Inc()
}

func SetActiveSessions(n int) {
	activeSessions.Set(float64(n))
}

// Middleware records request counts and latency keyed by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		httpRequestDurationSeconds.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
