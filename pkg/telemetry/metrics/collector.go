// Package metrics exposes Prometheus metrics for the router.
//
// All metrics live under the configured namespace (default "janus") and are
// served from the admin listener's /metrics endpoint. A nil *Collector is a
// valid no-op recorder, which is how metrics are disabled.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"mercator-hq/janus/pkg/config"
)

// Collector owns the router's Prometheus metrics and their registry.
type Collector struct {
	registry *prometheus.Registry

	// requestsTotal counts proxied tenant requests by environment, how the
	// decision was made (binding/detected/default/passthrough) and outcome.
	requestsTotal *prometheus.CounterVec

	// requestDuration tracks proxied request latency by environment.
	requestDuration *prometheus.HistogramVec

	// detectionsTotal counts auto-detection runs by result
	// (dev/stable/ambiguous).
	detectionsTotal *prometheus.CounterVec

	// bindingOpsTotal counts control-plane store operations by op and outcome.
	bindingOpsTotal *prometheus.CounterVec

	// originUp reports origin reachability from the scheduled health sweeps.
	originUp *prometheus.GaugeVec
}

// NewCollector creates and registers the router metrics.
// Returns nil when metrics are disabled; all Collector methods are nil-safe.
func NewCollector(cfg *config.MetricsConfig) *Collector {
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	c := &Collector{
		registry: registry,

		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "requests_total",
				Help:      "Total tenant requests routed, by environment, decision source and outcome",
			},
			[]string{"env", "source", "outcome"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "request_duration_seconds",
				Help:      "Duration of proxied requests in seconds",
				Buckets:   cfg.RequestDurationBuckets,
			},
			[]string{"env"},
		),

		detectionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "detections_total",
				Help:      "Auto-detection probes run for unbound tenants, by result",
			},
			[]string{"result"},
		),

		bindingOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "binding_ops_total",
				Help:      "Control-plane binding store operations, by op and outcome",
			},
			[]string{"op", "outcome"},
		),

		originUp: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Name:      "origin_up",
				Help:      "Origin reachability from scheduled health sweeps (1 = reachable)",
			},
			[]string{"env"},
		),
	}

	registry.MustRegister(
		c.requestsTotal,
		c.requestDuration,
		c.detectionsTotal,
		c.bindingOpsTotal,
		c.originUp,
	)

	return c
}

// Handler returns the /metrics HTTP handler for the admin listener.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordRequest records one routed tenant request.
func (c *Collector) RecordRequest(env, source, outcome string, durationSeconds float64) {
	if c == nil {
		return
	}
	c.requestsTotal.WithLabelValues(env, source, outcome).Inc()
	if env != "" {
		c.requestDuration.WithLabelValues(env).Observe(durationSeconds)
	}
}

// RecordDetection records the result of one auto-detection run.
func (c *Collector) RecordDetection(result string) {
	if c == nil {
		return
	}
	c.detectionsTotal.WithLabelValues(result).Inc()
}

// RecordBindingOp records a control-plane store operation.
func (c *Collector) RecordBindingOp(op, outcome string) {
	if c == nil {
		return
	}
	c.bindingOpsTotal.WithLabelValues(op, outcome).Inc()
}

// SetOriginUp records origin reachability for one environment.
func (c *Collector) SetOriginUp(env string, up bool) {
	if c == nil {
		return
	}
	v := 0.0
	if up {
		v = 1.0
	}
	c.originUp.WithLabelValues(env).Set(v)
}
