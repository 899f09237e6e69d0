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
		Namespace: "photocompass",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "photocompass",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "path"})

	// Photo index metrics
	PhotosIndexed = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "photocompass",
		Subsystem: "index",
		Name:      "photos_indexed",
		Help:      "Number of geotagged photos currently indexed",
	})

	ScanSkips = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "photocompass",
		Subsystem: "index",
		Name:      "scan_skips_total",
		Help:      "Total files skipped during directory scans",
	})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "photocompass",
		Subsystem: "index",
		Name:      "scan_duration_seconds",
		Help:      "Duration of directory scans",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})

	// Selection engine metrics
	SelectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "photocompass",
		Subsystem: "selection",
		Name:      "duration_seconds",
		Help:      "Duration of a single viewpoint selection pass",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	SelectedPhotos = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "photocompass",
		Subsystem: "selection",
		Name:      "result_size",
		Help:      "Number of photos returned per selection",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	})

	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "photocompass",
		Subsystem: "ws",
		Name:      "active_connections",
		Help:      "Current number of active viewpoint WebSocket connections",
	})

	StaleResultsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "photocompass",
		Subsystem: "ws",
		Name:      "stale_results_dropped_total",
		Help:      "Selection results discarded because a newer viewpoint superseded them",
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
