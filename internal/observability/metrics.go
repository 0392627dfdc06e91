// Package observability wires Prometheus metrics and OpenTelemetry tracing
// into the HTTP server and the ephemeris use case.
package observability

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Computation outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// HTTPCollector bundles Prometheus metrics for the HTTP surface and the
// computations behind it.
type HTTPCollector struct {
	gatherer prometheus.Gatherer

	Requests         *prometheus.CounterVec
	RequestDurations *prometheus.HistogramVec
	Computations     *prometheus.CounterVec
}

// NewHTTPCollector registers metrics against reg, defaulting to the global
// Prometheus registry when nil.
func NewHTTPCollector(reg prometheus.Registerer) (*HTTPCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ephemeris_http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by route, method, and status code.",
	}, []string{"route", "method", "status"}), "ephemeris_http_requests_total")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ephemeris_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"route", "method"}), "ephemeris_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	computations, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ephemeris_computations_total",
		Help: "Total number of ephemeris computations, labeled by operation and outcome.",
	}, []string{"operation", "outcome"}), "ephemeris_computations_total")
	if err != nil {
		return nil, err
	}

	return &HTTPCollector{
		gatherer:         gatherer,
		Requests:         requests,
		RequestDurations: durations,
		Computations:     computations,
	}, nil
}

// Middleware records request counts and durations. Unmatched routes are
// labeled "unmatched" to keep label cardinality bounded.
func (c *HTTPCollector) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		if c == nil {
			return
		}

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method

		if c.Requests != nil {
			c.Requests.WithLabelValues(route, method, strconv.Itoa(ctx.Writer.Status())).Inc()
		}
		if c.RequestDurations != nil {
			c.RequestDurations.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		}
	}
}

// ObserveComputation counts one computation of the named operation.
func (c *HTTPCollector) ObserveComputation(operation string, err error) {
	if c == nil || c.Computations == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	c.Computations.WithLabelValues(operation, outcome).Inc()
}

// Handler exposes a ready-to-use /metrics handler.
func (c *HTTPCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}
