package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	ActivitiesRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_activities_recorded_total",
			Help: "Activities durably recorded, by activity type",
		},
		[]string{"type"},
	)

	LedgerWriteRetries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_write_retries_total",
			Help: "Ledger transactions retried after a conflict or transient failure",
		},
	)

	LedgerWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ledger_write_failures_total",
			Help: "Ledger writes that failed after exhausting retries",
		},
	)

	FitScores = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "role_fit_score",
			Help:    "Distribution of computed role fit scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

var registerOnce sync.Once

// Init 注册指标，重复调用安全
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			ActivitiesRecorded,
			LedgerWriteRetries,
			LedgerWriteFailures,
			FitScores,
		)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
