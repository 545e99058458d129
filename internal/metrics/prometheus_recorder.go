package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	conversionDuration *prom.HistogramVec
	conversions        *prom.CounterVec
	linksExtracted     prom.Counter
	linkInserts        *prom.CounterVec
	downloads          *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them on reg.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		conversionDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "linkconv",
			Name:      "conversion_duration_seconds",
			Help:      "Duration of a full seven-format conversion",
			Buckets:   prom.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"parser"}),
		conversions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "linkconv",
			Name:      "conversions_total",
			Help:      "Conversion requests by outcome",
		}, []string{"result"}),
		linksExtracted: prom.NewCounter(prom.CounterOpts{
			Namespace: "linkconv",
			Name:      "links_extracted_total",
			Help:      "Anchors found across all conversions",
		}),
		linkInserts: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "linkconv",
			Name:      "link_inserts_total",
			Help:      "Link insertions by outcome",
		}, []string{"result"}),
		downloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "linkconv",
			Name:      "downloads_total",
			Help:      "Downloads served by format",
		}, []string{"format"}),
	}
	reg.MustRegister(pr.conversionDuration, pr.conversions, pr.linksExtracted, pr.linkInserts, pr.downloads)
	return pr
}

func (p *PrometheusRecorder) ObserveConversion(parser string, d time.Duration, result ResultLabel, links int) {
	if p == nil || p.conversions == nil {
		return
	}
	p.conversions.WithLabelValues(string(result)).Inc()
	if result == ResultEmpty {
		return
	}
	p.conversionDuration.WithLabelValues(parser).Observe(d.Seconds())
	p.linksExtracted.Add(float64(links))
}

func (p *PrometheusRecorder) IncLinkInsert(result ResultLabel) {
	if p == nil || p.linkInserts == nil {
		return
	}
	p.linkInserts.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) IncDownload(format string) {
	if p == nil || p.downloads == nil {
		return
	}
	p.downloads.WithLabelValues(format).Inc()
}

// HTTPHandler returns an http.Handler that serves the metrics of reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
