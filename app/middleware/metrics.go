package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration in seconds partitioned by method, route, and status code
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// In-flight HTTP requests
	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Upstream platform calls partitioned by outcome, tracked so a platform
	// outage is visible separately from console errors
	platformRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_platform_requests_total",
			Help: "Total number of upstream platform API calls",
		},
		[]string{"outcome"},
	)

	// Sessions purged after an upstream 401
	sessionPurgesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "console_session_purges_total",
			Help: "Sessions purged after the platform rejected their token",
		},
	)
)

// Metrics returns a Fiber v3 middleware that records basic Prometheus metrics.
// Labels are kept low-cardinality by using the matched route path when available.
func Metrics() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		route := c.Path()
		if r := c.Route(); r != nil && r.Path != "" {
			route = r.Path // Use route template to avoid high cardinality
		}

		labels := prometheus.Labels{
			"method": c.Method(),
			"route":  route,
			"status": strconv.Itoa(status),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())

		return err
	}
}

// CountPlatformRequest records the outcome of one upstream call.
func CountPlatformRequest(outcome string) {
	platformRequestsTotal.WithLabelValues(outcome).Inc()
}

// CountSessionPurge records a forced session purge.
func CountSessionPurge() {
	sessionPurgesTotal.Inc()
}
