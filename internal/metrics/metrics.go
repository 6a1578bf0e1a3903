// Package metrics exposes Prometheus collectors for the catalog, the HTTP API
// and background tasks. Every Collector owns its registry, so tests and
// multiple servers in one process never clash on registration.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mrlokans/booknotes/internal/catalog"
)

const namespace = "booknotes"

// Operation results used as the "result" label.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultInvalid  = "invalid"
	ResultError    = "error"
)

type Collector struct {
	registry *prometheus.Registry

	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	httpInProgress prometheus.Gauge

	tasks *prometheus.CounterVec
}

// New creates a collector with Go runtime and process metrics registered.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_operations_total",
			Help:      "Catalog repository operations by result.",
		}, []string{"operation", "result"}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_operation_duration_seconds",
			Help:      "Catalog repository operation latency.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10},
		}, []string{"method", "path"}),
		httpInProgress: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_progress",
			Help:      "HTTP requests currently being served.",
		}),
		tasks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tasks_processed_total",
			Help:      "Background tasks processed by queue and result.",
		}, []string{"queue", "result"}),
	}
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// ObserveOperation records a catalog repository call.
func (c *Collector) ObserveOperation(op string, duration time.Duration, err error) {
	c.operations.WithLabelValues(op, Result(err)).Inc()
	c.operationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// ObserveTask records a processed background task.
func (c *Collector) ObserveTask(queue string, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	c.tasks.WithLabelValues(queue, result).Inc()
}

// Middleware records request counts and latency per route template.
func (c *Collector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		c.httpInProgress.Inc()
		defer c.httpInProgress.Dec()

		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := ctx.Request.Method
		c.httpRequests.WithLabelValues(method, path, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.httpDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

// Result classifies a catalog error for the "result" label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, catalog.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, catalog.ErrInvalidInput):
		return ResultInvalid
	default:
		return ResultError
	}
}
