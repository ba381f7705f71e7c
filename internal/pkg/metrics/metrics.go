package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trashroute",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trashroute",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	httpResponseSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "trashroute",
		Subsystem: "http",
		Name:      "response_size_bytes",
		Help:      "HTTP response size in bytes",
		Buckets:   prometheus.ExponentialBuckets(100, 10, 6),
	}, []string{"method", "path"})

	// Pickup-request metrics
	RequestsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trashroute",
		Subsystem: "pickup",
		Name:      "requests_submitted_total",
		Help:      "Total pickup requests submitted",
	})

	StatusTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trashroute",
		Subsystem: "pickup",
		Name:      "status_transitions_total",
		Help:      "Total lifecycle transitions applied",
	}, []string{"action", "to_status"})

	IllegalTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trashroute",
		Subsystem: "pickup",
		Name:      "illegal_transitions_total",
		Help:      "Total lifecycle transitions rejected",
	}, []string{"action"})

	OutOfRegionPicks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trashroute",
		Subsystem: "geo",
		Name:      "out_of_region_picks_total",
		Help:      "Total location picks rejected for falling outside the service region",
	})

	DraftsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trashroute",
		Subsystem: "pickup",
		Name:      "drafts_active",
		Help:      "Current number of live draft sessions",
	})

	CacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trashroute",
		Subsystem: "cache",
		Name:      "hits_total",
		Help:      "Total cache hits",
	}, []string{"operation"})

	CacheMisses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trashroute",
		Subsystem: "cache",
		Name:      "misses_total",
		Help:      "Total cache misses",
	}, []string{"operation"})

	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trashroute",
		Subsystem: "events",
		Name:      "published_total",
		Help:      "Total lifecycle events published to the broker",
	}, []string{"subject"})

	EventPublishErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trashroute",
		Subsystem: "events",
		Name:      "publish_errors_total",
		Help:      "Total lifecycle event publish failures",
	}, []string{"subject"})

	// Database pool metrics
	DBPoolConnsOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trashroute",
		Subsystem: "db",
		Name:      "pool_conns_open",
		Help:      "Total connections open in the database pool",
	})

	DBPoolConnsAcquired = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trashroute",
		Subsystem: "db",
		Name:      "pool_conns_acquired",
		Help:      "Connections currently acquired from the database pool",
	})

	DBPoolConnsIdle = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "trashroute",
		Subsystem: "db",
		Name:      "pool_conns_idle",
		Help:      "Idle connections in the database pool",
	})
)

// Middleware records request metrics.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		httpRequestsTotal.WithLabelValues(method, path, status).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(duration)
		httpResponseSize.WithLabelValues(method, path).Observe(float64(len(c.Response().Body())))

		return err
	}
}

// Handler returns a Fiber handler serving the Prometheus /metrics endpoint.
func Handler() fiber.Handler {
	handler := promhttp.Handler()
	return func(c *fiber.Ctx) error {
		fasthttpadaptor.NewFastHTTPHandler(handler)(c.Context())
		return nil
	}
}

// UpdateDBPoolMetrics updates database pool gauges from pgx pool stats.
func UpdateDBPoolMetrics(stat interface{}) {
	type poolStat interface {
		AcquiredConns() int32
		IdleConns() int32
		TotalConns() int32
	}

	if s, ok := stat.(poolStat); ok {
		DBPoolConnsAcquired.Set(float64(s.AcquiredConns()))
		DBPoolConnsIdle.Set(float64(s.IdleConns()))
		DBPoolConnsOpen.Set(float64(s.TotalConns()))
	}
}
