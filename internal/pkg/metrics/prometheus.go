package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeEmpty = "empty"
)

// Collector holds the Prometheus collectors of the reporting service on a
// private registry. All methods are safe on a nil receiver.
type Collector struct {
	registry *prometheus.Registry

	gridQueries     *prometheus.CounterVec
	sourceFailures  *prometheus.CounterVec
	trendLookups    *prometheus.CounterVec
	exportsTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a collector whose metric names start with prefix.
func NewCollector(prefix string) *Collector {
	if prefix == "" {
		prefix = "adsight"
	}
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		gridQueries: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_grid_queries_total",
				Help: "Grid queries answered, by report type and outcome",
			},
			[]string{"report_type", "outcome"},
		),
		sourceFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_source_failures_total",
				Help: "Failed reads from the report sources, by operation",
			},
			[]string{"operation"},
		),
		trendLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_trend_lookups_total",
				Help: "Per-bucket business sales lookups, by outcome",
			},
			[]string{"outcome"},
		),
		exportsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_exports_total",
				Help: "Report exports served, by format and outcome",
			},
			[]string{"format", "outcome"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_request_duration_seconds",
				Help:    "Duration of report requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
}

var (
	defaultOnce      sync.Once
	defaultCollector *Collector
)

// Default returns the process-wide collector.
func Default() *Collector {
	defaultOnce.Do(func() {
		defaultCollector = NewCollector("adsight")
	})
	return defaultCollector
}

// GridQuery counts one answered grid query.
func (c *Collector) GridQuery(reportType, outcome string) {
	if c == nil {
		return
	}
	c.gridQueries.WithLabelValues(reportType, outcome).Inc()
}

// SourceFailure counts one failed source read.
func (c *Collector) SourceFailure(operation string) {
	if c == nil {
		return
	}
	c.sourceFailures.WithLabelValues(operation).Inc()
}

// TrendLookup counts one business sales lookup made for a trend bucket.
func (c *Collector) TrendLookup(outcome string) {
	if c == nil {
		return
	}
	c.trendLookups.WithLabelValues(outcome).Inc()
}

// Export counts one export.
func (c *Collector) Export(format, outcome string) {
	if c == nil {
		return
	}
	c.exportsTotal.WithLabelValues(format, outcome).Inc()
}

// ObserveRequest records how long a route took since start.
func (c *Collector) ObserveRequest(route string, start time.Time) {
	if c == nil {
		return
	}
	c.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

// Registry exposes the underlying registry, mainly for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
