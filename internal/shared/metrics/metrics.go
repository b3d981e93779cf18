package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "querium"

// Metrics holds the Prometheus collectors for one application instance.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsUploaded  *prometheus.CounterVec
	ExtractionFailures *prometheus.CounterVec
	DocumentsDeleted   prometheus.Counter
	IndexDocuments     prometheus.Gauge
	SearchRequests     *prometheus.CounterVec
	SearchDuration     prometheus.Histogram
	ChatResponses      *prometheus.CounterVec
	HTTPRequests       *prometheus.CounterVec
}

// New creates collectors on a fresh registry, so several apps can coexist in one process.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DocumentsUploaded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_uploaded_total",
			Help:      "Documents extracted and indexed",
		}, []string{"content_type"}),
		ExtractionFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_failures_total",
			Help:      "Uploads rejected because text extraction failed",
		}, []string{"content_type"}),
		DocumentsDeleted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_deleted_total",
			Help:      "Documents removed from the index",
		}),
		IndexDocuments: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_documents",
			Help:      "Documents currently held in the index",
		}),
		SearchRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Index searches by outcome (hit, miss, degraded)",
		}, []string{"outcome"}),
		SearchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Index search latency",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}),
		ChatResponses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_responses_total",
			Help:      "Composed answers by outcome (found, not_found, error)",
		}, []string{"outcome"}),
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveUpload records a successfully indexed document.
func (m *Metrics) ObserveUpload(contentType string) {
	if m == nil {
		return
	}
	m.DocumentsUploaded.WithLabelValues(contentType).Inc()
}

// ObserveExtractionFailure records a failed extraction.
func (m *Metrics) ObserveExtractionFailure(contentType string) {
	if m == nil {
		return
	}
	m.ExtractionFailures.WithLabelValues(contentType).Inc()
}

// ObserveDelete records a removal that actually dropped a document.
func (m *Metrics) ObserveDelete() {
	if m == nil {
		return
	}
	m.DocumentsDeleted.Inc()
}

// SetIndexSize updates the index size gauge.
func (m *Metrics) SetIndexSize(n int) {
	if m == nil {
		return
	}
	m.IndexDocuments.Set(float64(n))
}

// ObserveSearch records one search and its latency.
func (m *Metrics) ObserveSearch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SearchRequests.WithLabelValues(outcome).Inc()
	m.SearchDuration.Observe(elapsed.Seconds())
}

// ObserveChat records one composed answer.
func (m *Metrics) ObserveChat(outcome string) {
	if m == nil {
		return
	}
	m.ChatResponses.WithLabelValues(outcome).Inc()
}

// Middleware counts requests per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if m == nil {
			return
		}
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// Handler exposes metrics in Prometheus text format.
func (m *Metrics) Handler() gin.HandlerFunc {
	if m == nil {
		return func(c *gin.Context) {
			c.Status(http.StatusNotFound)
		}
	}
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
